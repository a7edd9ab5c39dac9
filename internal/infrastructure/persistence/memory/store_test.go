package memory

import (
	"context"
	"testing"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	a, err := repo.Create(ctx, user.User{Email: "a@x.io", Username: "BoldOtter"})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	_, err = repo.Create(ctx, user.User{Email: "a@x.io", Username: "CalmFox"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	_, err = repo.Create(ctx, user.User{Email: "b@x.io", Username: "BoldOtter"})
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)

	b, err := repo.Create(ctx, user.User{Email: "b@x.io", Username: "CalmFox"})
	require.NoError(t, err)

	err = repo.UpdateProfile(ctx, b.ID, user.ProfileChanges{Email: "b@x.io", Username: "BoldOtter"})
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)

	taken, err := repo.UsernameTakenByOther(ctx, "BoldOtter", a.ID)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = repo.UsernameTakenByOther(ctx, "BoldOtter", b.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserRepository_AddToSetMergesWithoutDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	u, err := repo.Create(ctx, user.User{Email: "a@x.io", Username: "BoldOtter"})
	require.NoError(t, err)

	require.NoError(t, repo.AddToSet(ctx, u.ID, user.FieldSkills, []string{"s1", "s2"}))
	require.NoError(t, repo.AddToSet(ctx, u.ID, user.FieldSkills, []string{"s2", "s3"}))
	require.NoError(t, repo.AddToSet(ctx, u.ID, user.FieldInterests, []string{"s1"}))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, got.Skills)
	assert.Equal(t, []string{"s1"}, got.Interests)

	assert.ErrorIs(t, repo.AddToSet(ctx, "missing", user.FieldSkills, []string{"s1"}), user.ErrNotFound)
}

func TestUserRepository_GetByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	a, err := repo.Create(ctx, user.User{Email: "a@x.io", Username: "BoldOtter"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, user.User{Email: "b@x.io", Username: "CalmFox"})
	require.NoError(t, err)

	got, err := repo.GetByIDs(ctx, []string{b.ID, "gone", a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CalmFox", got[0].Username)
	assert.Equal(t, "BoldOtter", got[1].Username)
}

func TestSkillRepository_EnsureSkillsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Skills()
	items := []skill.Skill{{Name: "React"}, {Name: "CSS"}}

	n, err := repo.EnsureSkills(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = repo.EnsureSkills(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "CSS", all[0].Name)
}
