package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/domain/skill"
	"skillswap/internal/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	data    map[string][]byte
	deletes int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (m *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *mapCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	m.deletes++
	return nil
}

func TestSkillCatalog_ServesFromCacheUntilCreate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := store.Skills()
	_, err := repo.Create(ctx, skill.Skill{Name: "React", Category: "frontend"})
	require.NoError(t, err)

	c := newMapCache()
	cat := NewSkillCatalog(repo, c, nil)

	items, err := cat.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, c.data, CatalogKey)

	// Written behind the decorator's back: still served from cache.
	_, err = repo.Create(ctx, skill.Skill{Name: "Vue", Category: "frontend"})
	require.NoError(t, err)
	items, err = cat.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = cat.Create(ctx, skill.Skill{Name: "Svelte", Category: "frontend"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.deletes)

	items, err = cat.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestSkillCatalog_DuplicateKeepsCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c := newMapCache()
	cat := NewSkillCatalog(store.Skills(), c, nil)

	_, err := cat.Create(ctx, skill.Skill{Name: "CSS"})
	require.NoError(t, err)
	_, err = cat.Create(ctx, skill.Skill{Name: "CSS"})
	assert.ErrorIs(t, err, skill.ErrDuplicateName)
	assert.Equal(t, 1, c.deletes)
}

func TestRedis_UnavailableIsAMiss(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(ctx, config.RedisConfig{}, nil)

	var out []cachedSkill
	hit, err := r.GetJSON(ctx, CatalogKey, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, r.SetJSON(ctx, CatalogKey, []string{"x"}, 0))
	assert.NoError(t, r.Delete(ctx, CatalogKey))
	assert.Error(t, r.Ping(ctx))
}
