package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/infrastructure/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	user := &domain.User{ID: "user-123", Email: "alice@example.com", Name: "Alice"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if claims.UserID != user.ID {
		t.Fatalf("expected user id %q, got %q", user.ID, claims.UserID)
	}
	if claims.Email != user.Email || claims.Name != user.Name {
		t.Fatalf("claims do not match user: %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a future expiry, got %v", claims.ExpiresAt)
	}
}

func TestJWTExpiredTokenIsReported(t *testing.T) {
	t.Parallel()

	signed := signWith(t, "secret", auth.Claims{
		UserID: "expired",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	})

	_, err := auth.NewJWTManager("secret", time.Minute).Verify(signed)
	if !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTRejectsForgedTokens(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("right-secret", time.Minute)

	forged := signWith(t, "wrong-secret", auth.Claims{
		UserID: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})

	if _, err := manager.Verify(forged); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func signWith(t *testing.T, secret string, claims auth.Claims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
