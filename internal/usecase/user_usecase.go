package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/financo/internal/domain"
)

// UserUseCase handles household member registration and authentication.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
	clock    domain.Clock
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, clock domain.Clock) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
		clock:    clock,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new user with a hashed password.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          email,
		Name:           strings.TrimSpace(input.Name),
		HashedPassword: hashed,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the user on success.
// The error does not reveal whether the email or the password was wrong.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user.HashedPassword = ""
	return user, nil
}

// Get retrieves a user by ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// List returns household members with pagination.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.HashedPassword = ""
	}

	return users, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
