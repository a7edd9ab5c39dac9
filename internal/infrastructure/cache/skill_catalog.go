package cache

import (
	"context"
	"time"

	"skillswap/internal/domain/skill"

	"go.uber.org/zap"
)

const CatalogKey = "skills:catalog"

// JSONCache is the subset of Redis used by the catalog decorator.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cachedSkill struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillCatalog decorates a skill.Repository, serving GetAll from the cache
// and dropping the cached list whenever the catalog changes.
type SkillCatalog struct {
	skill.Repository

	cache  JSONCache
	logger *zap.Logger
}

func NewSkillCatalog(next skill.Repository, c JSONCache, logger *zap.Logger) *SkillCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillCatalog{Repository: next, cache: c, logger: logger}
}

func (s *SkillCatalog) GetAll(ctx context.Context) ([]skill.Skill, error) {
	var cached []cachedSkill
	hit, err := s.cache.GetJSON(ctx, CatalogKey, &cached)
	if err != nil {
		s.logger.Debug("catalog cache read failed", zap.Error(err))
	}
	if hit {
		out := make([]skill.Skill, 0, len(cached))
		for _, c := range cached {
			out = append(out, skill.Skill{ID: c.ID, Name: c.Name, Category: c.Category, CreatedAt: c.CreatedAt})
		}
		return out, nil
	}

	items, err := s.Repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	toCache := make([]cachedSkill, 0, len(items))
	for _, it := range items {
		toCache = append(toCache, cachedSkill{ID: it.ID, Name: it.Name, Category: it.Category, CreatedAt: it.CreatedAt})
	}
	if err := s.cache.SetJSON(ctx, CatalogKey, toCache, 0); err != nil {
		s.logger.Debug("catalog cache write failed", zap.Error(err))
	}
	return items, nil
}

func (s *SkillCatalog) Create(ctx context.Context, sk skill.Skill) (skill.Skill, error) {
	created, err := s.Repository.Create(ctx, sk)
	if err != nil {
		return skill.Skill{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *SkillCatalog) EnsureSkills(ctx context.Context, items []skill.Skill) (int, error) {
	n, err := s.Repository.EnsureSkills(ctx, items)
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, err
}

func (s *SkillCatalog) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, CatalogKey); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
