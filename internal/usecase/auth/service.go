package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/username"
	"skillswap/internal/pkg/validate"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUserNotFound           = errors.New("user does not exist")
	ErrUsernameUnavailable    = errors.New("no username available")
	ErrCreateFailed           = errors.New("create user failed")
	ErrInternal               = errors.New("internal error")
)

const (
	passwordCost = 10

	// createRetries bounds how often a username lost to a concurrent
	// registration is regenerated.
	createRetries = 3
)

type RegisterInput struct {
	FName    string `json:"fname" validate:"required,max=19"`
	LName    string `json:"lname" validate:"required,max=19"`
	Email    string `json:"email" validate:"required,skillswap_email"`
	Password string `json:"password" validate:"skillswap_password"`
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, error)
	Login(ctx context.Context, in LoginInput) (user.User, error)
}

type Service struct {
	users     user.Repository
	names     *username.Generator
	validator *validate.Validator
}

func NewService(users user.Repository, names *username.Generator) *Service {
	if names == nil {
		names = username.NewGenerator()
	}
	return &Service{users: users, names: names, validator: validate.New()}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.FName = strings.TrimSpace(in.FName)
	in.LName = strings.TrimSpace(in.LName)
	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	taken, err := s.users.EmailTakenByOther(ctx, in.Email, "")
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if taken {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for i := 0; i < createRetries; i++ {
		name, err := s.names.Unique(ctx, s.users.ExistsByUsername)
		if err != nil {
			if errors.Is(err, username.ErrExhausted) {
				return user.User{}, ErrUsernameUnavailable
			}
			return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		created, err := s.users.Create(ctx, user.User{
			FName:        in.FName,
			LName:        in.LName,
			Email:        in.Email,
			Username:     name,
			PasswordHash: string(hash),
		})
		switch {
		case err == nil:
			return sanitizeUser(created), nil
		case errors.Is(err, user.ErrDuplicateUsername):
			continue
		case errors.Is(err, user.ErrDuplicateEmail):
			return user.User{}, ErrEmailAlreadyRegistered
		default:
			return user.User{}, fmt.Errorf("%w: %v", ErrCreateFailed, err)
		}
	}
	return user.User{}, ErrUsernameUnavailable
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrUserNotFound
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
