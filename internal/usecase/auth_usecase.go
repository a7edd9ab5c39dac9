package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/pkg/username"
	ucauth "skillswap/internal/usecase/auth"
	"skillswap/internal/usecase/profile"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")
)

// Session is a signed session token and its lifetime.
type Session struct {
	Token     string
	ExpiresIn time.Duration
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, error)
	Login(ctx context.Context, in ucauth.LoginInput) (profile.Profile, Session, error)
}

type Auth struct {
	authSvc   *ucauth.Service
	assembler *profile.Assembler
	jwt       jwt.Service
}

func NewAuthUsecase(users user.Repository, skills skill.Repository, names *username.Generator, jwtSvc jwt.Service) *Auth {
	return &Auth{
		authSvc:   ucauth.NewService(users, names),
		assembler: profile.NewAssembler(users, skills),
		jwt:       jwtSvc,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, error) {
	return u.authSvc.Register(ctx, in)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (profile.Profile, Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return profile.Profile{}, Session{}, err
	}

	p, err := u.assembler.Assemble(ctx, usr)
	if err != nil {
		return profile.Profile{}, Session{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	sess, err := issueSession(u.jwt, usr)
	if err != nil {
		return profile.Profile{}, Session{}, err
	}
	return p, sess, nil
}

func issueSession(svc jwt.Service, usr user.User) (Session, error) {
	token, err := svc.GenerateSessionToken(jwt.Identity{
		UserID:   usr.ID,
		Username: usr.Username,
		Email:    usr.Email,
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: sign session: %v", ErrInternal, err)
	}
	return Session{Token: token, ExpiresIn: svc.TTL()}, nil
}
