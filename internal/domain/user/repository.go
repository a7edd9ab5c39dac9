package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// GetByIDs returns the users that still exist; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UsernameTakenByOther(ctx context.Context, username, exceptID string) (bool, error)
	EmailTakenByOther(ctx context.Context, email, exceptID string) (bool, error)

	UpdateProfile(ctx context.Context, id string, ch ProfileChanges) error
	// AddToSet merges ids into the selected collection without duplicates.
	AddToSet(ctx context.Context, id string, field SkillField, ids []string) error
	AddMatch(ctx context.Context, id, matchID string) error
	PushNotification(ctx context.Context, id string, n Notification) error
}
