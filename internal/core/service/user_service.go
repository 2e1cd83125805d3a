package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/taskman/internal/core/domain"
	"github.com/martijn/taskman/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserUpdate holds the fields of a partial user update. Nil fields are left
// unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
}

// HashPassword hashes a password using bcrypt
func (s *UserService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *UserService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateUser validates the payload, enforces username/email uniqueness and
// persists a new user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	input := domain.UserInput{Username: &username, Email: &email, Password: &password}
	if details := domain.ValidateUser(input, []string{"username", "email", "password"}); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if err := s.checkUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, email, hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraints are the last line of defense against
		// concurrent writers racing the checks above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: "Username or email already exists"}
		}
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "User", ID: id}
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update, re-checking uniqueness for any changed
// username or email. Keeping the current value never triggers a conflict.
func (s *UserService) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	input := domain.UserInput{Username: update.Username, Email: update.Email, Password: update.Password}
	if details := domain.ValidateUser(input, nil); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if update.Username != nil && *update.Username != user.Username {
		if err := s.checkUsernameFree(ctx, *update.Username, user.ID); err != nil {
			return nil, err
		}
		user.Username = *update.Username
	}

	if update.Email != nil && *update.Email != user.Email {
		if err := s.checkEmailFree(ctx, *update.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *update.Email
	}

	if update.Password != nil && *update.Password != "" {
		hash, err := s.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: "Username or email already exists"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "User", ID: id}
		}
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes a user; the store cascades the delete to its tasks.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "User", ID: id}
		}
		return err
	}
	return nil
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]*domain.User, error) {
	return s.userRepo.List(ctx, filter)
}

// CountUsers counts users matching the filter
func (s *UserService) CountUsers(ctx context.Context, filter repository.UserFilter) (int, error) {
	return s.userRepo.Count(ctx, filter)
}

func (s *UserService) checkUsernameFree(ctx context.Context, username string, selfID int64) error {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return &ConflictError{Message: "Username already exists"}
	}
	return nil
}

func (s *UserService) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return &ConflictError{Message: "Email already exists"}
	}
	return nil
}
