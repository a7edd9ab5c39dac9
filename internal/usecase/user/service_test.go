package user

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
	"skillswap/internal/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	got map[string][]user.Notification
}

func (r *recordingNotifier) Notify(userID string, n user.Notification) {
	if r.got == nil {
		r.got = map[string][]user.Notification{}
	}
	r.got[userID] = append(r.got[userID], n)
}

type fixture struct {
	store    *memory.Store
	svc      *Service
	notifier *recordingNotifier
	ada      user.User
	bob      user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Skills().EnsureSkills(ctx, []skill.Skill{{Name: "React"}, {Name: "CSS"}, {Name: "TypeScript"}})
	require.NoError(t, err)

	ada, err := store.Users().Create(ctx, user.User{FName: "Ada", LName: "Lovelace", Email: "ada@x.io", Username: "BoldOtter"})
	require.NoError(t, err)
	bob, err := store.Users().Create(ctx, user.User{FName: "Bob", LName: "Marley", Email: "bob@x.io", Username: "CalmFox"})
	require.NoError(t, err)

	n := &recordingNotifier{}
	return fixture{
		store:    store,
		svc:      NewService(store.Users(), store.Skills(), n),
		notifier: n,
		ada:      ada,
		bob:      bob,
	}
}

func edit(u user.User) EditProfileInput {
	return EditProfileInput{FName: u.FName, LName: u.LName, Email: u.Email, Username: u.Username, Bio: u.Bio}
}

func TestEditProfile_UsernameTakenLeavesRecordUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := edit(f.ada)
	in.Username = f.bob.Username
	in.Bio = "changed"
	_, err := f.svc.EditProfile(ctx, f.ada.ID, in)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := f.store.Users().GetByID(ctx, f.ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "BoldOtter", got.Username)
	assert.Empty(t, got.Bio)
}

func TestEditProfile_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := edit(f.ada)
	in.Email = "not-an-email"
	_, err := f.svc.EditProfile(ctx, f.ada.ID, in)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	in = edit(f.ada)
	in.Username = "abc"
	_, err = f.svc.EditProfile(ctx, f.ada.ID, in)
	assert.ErrorIs(t, err, ErrInvalidUsername)

	in = edit(f.ada)
	in.Email = f.bob.Email
	_, err = f.svc.EditProfile(ctx, f.ada.ID, in)
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.EditProfile(ctx, "missing", edit(f.ada))
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestEditProfile_Success(t *testing.T) {
	f := newFixture(t)
	in := edit(f.ada)
	in.Username = "AdaCodes"
	in.Bio = "analytical engines"

	got, err := f.svc.EditProfile(context.Background(), f.ada.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "AdaCodes", got.Username)
	assert.Equal(t, "analytical engines", got.Bio)
	assert.Empty(t, got.PasswordHash)
}

func TestUpdateSkillSet_DropsUnknownNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.UpdateSkillSet(ctx, f.ada.ID, user.FieldSkills, []string{"React", "Cobol", "React"})
	require.NoError(t, err)
	assert.Equal(t, []string{"React"}, res.Accepted)
	assert.Equal(t, []string{"Cobol"}, res.Ignored)

	_, err = f.svc.UpdateSkillSet(ctx, f.ada.ID, user.FieldSkills, []string{"React", "CSS"})
	require.NoError(t, err)

	p, err := f.svc.GetMe(ctx, f.ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "CSS"}, p.Skills)
	for _, s := range p.Skills {
		assert.NotEmpty(t, s)
	}
}

func TestUpdateSkillSet_OnlyUnknownNamesSucceeds(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.UpdateSkillSet(context.Background(), f.ada.ID, user.FieldInterests, []string{"Cobol"})
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)

	got, err := f.store.Users().GetByID(context.Background(), f.ada.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Interests)
}

func TestUpdateSkillSet_MissingNames(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateSkillSet(context.Background(), f.ada.ID, user.FieldSkills, []string{" ", ""})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestConnect_AndMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	matches, err := f.svc.Matches(ctx, f.ada.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = f.svc.Connect(ctx, f.ada.ID, "CalmFox")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, MatchSummary{Name: "Bob Marley", Username: "CalmFox"}, matches[0])

	// set semantics
	matches, err = f.svc.Connect(ctx, f.ada.ID, "CalmFox")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	notes, err := f.svc.Notifications(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, user.NotificationTypeMatch, notes[0].Type)
	assert.Equal(t, "BoldOtter", notes[0].From)
	assert.Len(t, f.notifier.got[f.bob.ID], 2)

	_, err = f.svc.Connect(ctx, f.ada.ID, "BoldOtter")
	assert.ErrorIs(t, err, ErrSelfMatch)
	_, err = f.svc.Connect(ctx, f.ada.ID, "Nobody")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestMatches_SkipsVanishedUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Connect(ctx, f.ada.ID, "CalmFox")
	require.NoError(t, err)

	f.store.Users().Delete(ctx, f.bob.ID)

	matches, err := f.svc.Matches(ctx, f.ada.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)

	p, err := f.svc.GetMe(ctx, f.ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, p.Matches)
}

func TestViewProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.ViewProfile(ctx, ProfileRef{Username: "CalmFox"})
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, p.ID)

	p, err = f.svc.ViewProfile(ctx, ProfileRef{ID: f.ada.ID, Username: "CalmFox"})
	require.NoError(t, err)
	assert.Equal(t, "BoldOtter", p.Username)

	_, err = f.svc.ViewProfile(ctx, ProfileRef{})
	assert.True(t, errors.Is(err, ErrMissingIdentifier))
	_, err = f.svc.ViewProfile(ctx, ProfileRef{Username: "Nobody"})
	assert.ErrorIs(t, err, user.ErrNotFound)
}
