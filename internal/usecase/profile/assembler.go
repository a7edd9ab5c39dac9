// Package profile turns a stored user, whose skills and matches are ids,
// into the flat record the client renders.
package profile

import (
	"context"
	"fmt"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
)

type Profile struct {
	ID            string
	FName         string
	LName         string
	Username      string
	Email         string
	Skills        []string
	Interests     []string
	Matches       []string
	Bio           string
	Notifications []user.Notification
}

type Assembler struct {
	users  user.Repository
	skills skill.Repository
}

func NewAssembler(users user.Repository, skills skill.Repository) *Assembler {
	return &Assembler{users: users, skills: skills}
}

func (a *Assembler) Catalog(ctx context.Context) (skill.Catalog, error) {
	items, err := a.skills.GetAll(ctx)
	if err != nil {
		return skill.Catalog{}, fmt.Errorf("load skill catalog: %w", err)
	}
	return skill.NewCatalog(items), nil
}

func (a *Assembler) Directory(ctx context.Context, ids []string) (user.Directory, error) {
	if len(ids) == 0 {
		return user.NewDirectory(nil), nil
	}
	found, err := a.users.GetByIDs(ctx, ids)
	if err != nil {
		return user.Directory{}, fmt.Errorf("load matched users: %w", err)
	}
	return user.NewDirectory(found), nil
}

// Assemble resolves u's references. Only store failures are errors: a
// skill id missing from the catalog is left out, and a match whose user
// is gone shows up as "".
func (a *Assembler) Assemble(ctx context.Context, u user.User) (Profile, error) {
	cat, err := a.Catalog(ctx)
	if err != nil {
		return Profile{}, err
	}
	dir, err := a.Directory(ctx, u.Matches)
	if err != nil {
		return Profile{}, err
	}
	return Build(u, cat, dir), nil
}

// Build is the pure part of Assemble.
func Build(u user.User, cat skill.Catalog, dir user.Directory) Profile {
	matches := make([]string, 0, len(u.Matches))
	for _, id := range u.Matches {
		matches = append(matches, dir.UsernameOf(id, ""))
	}

	notifications := u.Notifications
	if notifications == nil {
		notifications = []user.Notification{}
	}

	return Profile{
		ID:            u.ID,
		FName:         u.FName,
		LName:         u.LName,
		Username:      u.Username,
		Email:         u.Email,
		Skills:        names(cat, u.Skills),
		Interests:     names(cat, u.Interests),
		Matches:       matches,
		Bio:           u.Bio,
		Notifications: notifications,
	}
}

func names(cat skill.Catalog, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n := cat.NameOf(id, ""); n != "" {
			out = append(out, n)
		}
	}
	return out
}
