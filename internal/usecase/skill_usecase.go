package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillswap/internal/domain/skill"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSkillAlreadyExists = errors.New("skill already exists")
)

type SkillItem struct {
	ID       string
	Name     string
	Category string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, name, category string) (SkillItem, error)
}

type Skill struct {
	repo skill.Repository
}

func NewSkillUsecase(repo skill.Repository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, Category: it.Category})
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, category string) (SkillItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, skill.Skill{Name: name, Category: strings.TrimSpace(category)})
	if err != nil {
		if errors.Is(err, skill.ErrDuplicateName) {
			return SkillItem{}, ErrSkillAlreadyExists
		}
		return SkillItem{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return SkillItem{ID: created.ID, Name: created.Name, Category: created.Category}, nil
}
