package usecase

import (
	"context"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/usecase/profile"
	ucuser "skillswap/internal/usecase/user"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID string) (profile.Profile, error)
	ViewProfile(ctx context.Context, ref ucuser.ProfileRef) (profile.Profile, error)
	EditProfile(ctx context.Context, userID string, in ucuser.EditProfileInput) (user.User, Session, error)
	UpdateSkills(ctx context.Context, userID string, names []string) (ucuser.SkillUpdate, error)
	UpdateInterests(ctx context.Context, userID string, names []string) (ucuser.SkillUpdate, error)
	Matches(ctx context.Context, userID string) ([]ucuser.MatchSummary, error)
	Connect(ctx context.Context, userID, target string) ([]ucuser.MatchSummary, error)
	Notifications(ctx context.Context, userID string) ([]user.Notification, error)
}

type User struct {
	svc *ucuser.Service
	jwt jwt.Service
}

func NewUserUsecase(users user.Repository, skills skill.Repository, notifier ucuser.Notifier, jwtSvc jwt.Service) *User {
	return &User{svc: ucuser.NewService(users, skills, notifier), jwt: jwtSvc}
}

func (u *User) GetMe(ctx context.Context, userID string) (profile.Profile, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) ViewProfile(ctx context.Context, ref ucuser.ProfileRef) (profile.Profile, error) {
	return u.svc.ViewProfile(ctx, ref)
}

// EditProfile saves the changes and signs a fresh session carrying the new
// username and email.
func (u *User) EditProfile(ctx context.Context, userID string, in ucuser.EditProfileInput) (user.User, Session, error) {
	updated, err := u.svc.EditProfile(ctx, userID, in)
	if err != nil {
		return user.User{}, Session{}, err
	}
	sess, err := issueSession(u.jwt, updated)
	if err != nil {
		return user.User{}, Session{}, err
	}
	return updated, sess, nil
}

func (u *User) UpdateSkills(ctx context.Context, userID string, names []string) (ucuser.SkillUpdate, error) {
	return u.svc.UpdateSkillSet(ctx, userID, user.FieldSkills, names)
}

func (u *User) UpdateInterests(ctx context.Context, userID string, names []string) (ucuser.SkillUpdate, error) {
	return u.svc.UpdateSkillSet(ctx, userID, user.FieldInterests, names)
}

func (u *User) Matches(ctx context.Context, userID string) ([]ucuser.MatchSummary, error) {
	return u.svc.Matches(ctx, userID)
}

func (u *User) Connect(ctx context.Context, userID, target string) ([]ucuser.MatchSummary, error) {
	return u.svc.Connect(ctx, userID, target)
}

func (u *User) Notifications(ctx context.Context, userID string) ([]user.Notification, error) {
	return u.svc.Notifications(ctx, userID)
}
