package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/financo/internal/domain"
	"github.com/iho/financo/internal/usecase"
	"github.com/iho/financo/internal/usecase/mocks"
)

func newUserUseCase(userRepo *mocks.MockUserRepository) *usecase.UserUseCase {
	return usecase.NewUserUseCase(
		userRepo,
		mocks.NewMockIDGenerator(),
		&mocks.MockClock{Instant: testDate},
	)
}

func TestUserUseCase_Register(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.RegisterInput
		expectError bool
		errorType   error
	}{
		{
			name: "valid registration",
			input: usecase.RegisterInput{
				Email:    "alice@example.com",
				Name:     "Alice",
				Password: "Sup3rSecret",
			},
		},
		{
			name: "reject invalid email",
			input: usecase.RegisterInput{
				Email:    "not-an-email",
				Name:     "Alice",
				Password: "Sup3rSecret",
			},
			expectError: true,
			errorType:   domain.ErrInvalidEmail,
		},
		{
			name: "reject weak password",
			input: usecase.RegisterInput{
				Email:    "alice@example.com",
				Name:     "Alice",
				Password: "short",
			},
			expectError: true,
			errorType:   domain.ErrPasswordTooWeak,
		},
		{
			name: "reject empty name",
			input: usecase.RegisterInput{
				Email:    "alice@example.com",
				Password: "Sup3rSecret",
			},
			expectError: true,
			errorType:   domain.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			uc := newUserUseCase(userRepo)

			user, err := uc.Register(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.HashedPassword != "" {
				t.Error("hashed password must never be returned")
			}
			if !user.Active {
				t.Error("new user must be active")
			}
		})
	}
}

func TestUserUseCase_Register_DuplicateEmail(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo)

	input := usecase.RegisterInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "Sup3rSecret",
	}

	if _, err := uc.Register(context.Background(), input); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := uc.Register(context.Background(), input)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserUseCase_Register_NormalizesEmail(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo)

	user, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "  Alice@Example.COM ",
		Name:     "Alice",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased trimmed email, got %q", user.Email)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo)

	if _, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "Sup3rSecret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "alice@example.com",
			Password: "Sup3rSecret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.HashedPassword != "" {
			t.Error("hashed password must never be returned")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "alice@example.com",
			Password: "WrongPassw0rd",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "nobody@example.com",
			Password: "Sup3rSecret",
		})
		// Same error as a wrong password: no account enumeration.
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUserUseCase_List_StripsHashes(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := newUserUseCase(userRepo)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := uc.Register(context.Background(), usecase.RegisterInput{
			Email:    email,
			Name:     "Member",
			Password: "Sup3rSecret",
		}); err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
	}

	users, err := uc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("expected two users, got %d", len(users))
	}
	for _, u := range users {
		if u.HashedPassword != "" {
			t.Error("hashed password must never be listed")
		}
	}
}
