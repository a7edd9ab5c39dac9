package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/domain/skill"
	"skillswap/internal/infrastructure/persistence/memory"
	"skillswap/internal/pkg/jwt"
	ucauth "skillswap/internal/usecase/auth"
	ucuser "skillswap/internal/usecase/user"
)

func TestAuth_LoginIssuesSessionAndProfile(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	if _, err := store.Skills().EnsureSkills(ctx, []skill.Skill{{Name: "React"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tokens := jwt.NewHMACService("secret", time.Hour, "skillswap")
	auth := NewAuthUsecase(store.Users(), store.Skills(), nil, tokens)

	created, err := auth.Register(ctx, ucauth.RegisterInput{FName: "Ada", LName: "L", Email: "ada@x.io", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	p, sess, err := auth.Login(ctx, ucauth.LoginInput{Email: "ada@x.io", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.Username != created.Username {
		t.Fatalf("expected profile of %q, got %q", created.Username, p.Username)
	}
	if sess.ExpiresIn != time.Hour {
		t.Fatalf("expected 1h session, got %v", sess.ExpiresIn)
	}
	claims, err := tokens.ValidateToken(sess.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != created.ID || claims.Email != "ada@x.io" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, _, err := auth.Login(ctx, ucauth.LoginInput{Email: "ada@x.io", Password: "nope123"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUser_EditProfileReissuesSession(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tokens := jwt.NewHMACService("secret", time.Hour, "skillswap")
	created, err := NewAuthUsecase(store.Users(), store.Skills(), nil, tokens).
		Register(ctx, ucauth.RegisterInput{FName: "Ada", LName: "L", Email: "ada@x.io", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	uc := NewUserUsecase(store.Users(), store.Skills(), nil, tokens)
	_, sess, err := uc.EditProfile(ctx, created.ID, ucuser.EditProfileInput{
		FName:    "Ada",
		LName:    "L",
		Email:    "ada@new.io",
		Username: "AdaCodes",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	claims, err := tokens.ValidateToken(sess.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Username != "AdaCodes" || claims.Email != "ada@new.io" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestSkill_AddAndList(t *testing.T) {
	ctx := context.Background()
	uc := NewSkillUsecase(memory.NewStore().Skills())

	if _, err := uc.AddSkill(ctx, "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.AddSkill(ctx, "Go", "backend"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.AddSkill(ctx, "Go", "backend"); !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
	items, err := uc.ListSkills(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Category != "backend" {
		t.Fatalf("unexpected items %+v", items)
	}
}
