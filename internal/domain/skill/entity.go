package skill

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("skill not found")
	ErrDuplicateName = errors.New("skill already exists")
)

type Skill struct {
	ID        string
	Name      string
	Category  string
	CreatedAt time.Time
}

type Repository interface {
	GetAll(ctx context.Context) ([]Skill, error)
	// GetByNames returns catalog entries for the names that exist.
	GetByNames(ctx context.Context, names []string) ([]Skill, error)
	Create(ctx context.Context, s Skill) (Skill, error)
	// EnsureSkills inserts the missing entries and reports how many were added.
	EnsureSkills(ctx context.Context, items []Skill) (int, error)
}
