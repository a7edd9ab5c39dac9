package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
	"skillswap/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envTestDatabaseURL = "SKILLSWAP_TEST_DATABASE_URL"

func connectTestDB(t *testing.T) database.DB {
	t.Helper()

	url := strings.TrimSpace(os.Getenv(envTestDatabaseURL))
	if url == "" {
		t.Skipf("%s not set; skipping postgres integration test", envTestDatabaseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{URL: url, ConnectTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := (migration.Runner{FS: migration.Files()}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

// uniq keeps rows from parallel or repeated runs apart.
func uniq(prefix string) string {
	return fmt.Sprintf("%s%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func TestPostgres_UserRepository(t *testing.T) {
	db := connectTestDB(t)
	ctx := context.Background()

	users := repository.NewPostgresUserRepository(db)
	skills := repository.NewPostgresSkillRepository(db)

	goName, rustName := uniq("go-"), uniq("rust-")
	_, err := skills.EnsureSkills(ctx, []skill.Skill{
		{Name: goName, Category: "Technology"},
		{Name: rustName, Category: "Technology"},
	})
	require.NoError(t, err)
	found, err := skills.GetByNames(ctx, []string{goName, rustName, "not-a-skill"})
	require.NoError(t, err)
	require.Len(t, found, 2)

	email := uniq("ada") + "@example.com"
	ada, err := users.Create(ctx, user.User{
		FName: "Ada", LName: "Lovelace", Email: email, Username: uniq("ada"), PasswordHash: "x",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ada.ID)

	_, err = users.Create(ctx, user.User{
		FName: "Eve", LName: "Copy", Email: email, Username: uniq("eve"), PasswordHash: "x",
	})
	assert.True(t, errors.Is(err, user.ErrDuplicateEmail), "got %v", err)

	_, err = users.Create(ctx, user.User{
		FName: "Eve", LName: "Copy", Email: uniq("eve") + "@example.com", Username: ada.Username, PasswordHash: "x",
	})
	assert.True(t, errors.Is(err, user.ErrDuplicateUsername), "got %v", err)

	ids := []string{found[0].ID, found[1].ID}
	require.NoError(t, users.AddToSet(ctx, ada.ID, user.FieldSkills, ids[:1]))
	require.NoError(t, users.AddToSet(ctx, ada.ID, user.FieldSkills, ids))

	got, err := users.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, got.Skills)
	assert.Empty(t, got.Interests)

	bob, err := users.Create(ctx, user.User{
		FName: "Bob", LName: "B", Email: uniq("bob") + "@example.com", Username: uniq("bob"), PasswordHash: "x",
	})
	require.NoError(t, err)

	require.NoError(t, users.AddMatch(ctx, ada.ID, bob.ID))
	require.NoError(t, users.AddMatch(ctx, ada.ID, bob.ID))
	require.NoError(t, users.PushNotification(ctx, bob.ID, user.Notification{
		Type: user.NotificationTypeMatch, Message: "hi", From: ada.Username, CreatedAt: time.Now().UTC(),
	}))

	got, err = users.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, got.Matches)

	gotBob, err := users.GetByUsername(ctx, bob.Username)
	require.NoError(t, err)
	require.Len(t, gotBob.Notifications, 1)
	assert.Equal(t, ada.Username, gotBob.Notifications[0].From)

	taken, err := users.UsernameTakenByOther(ctx, bob.Username, ada.ID)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = users.UsernameTakenByOther(ctx, ada.Username, ada.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	err = users.UpdateProfile(ctx, ada.ID, user.ProfileChanges{
		FName: "Ada", LName: "Lovelace", Email: email, Username: bob.Username, Bio: "x",
	})
	assert.True(t, errors.Is(err, user.ErrDuplicateUsername), "got %v", err)

	got, err = users.GetByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada.Username, got.Username)

	many, err := users.GetByIDs(ctx, []string{bob.ID, uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, many, 1)

	_, err = users.GetByEmail(ctx, uniq("nobody")+"@example.com")
	assert.True(t, errors.Is(err, user.ErrNotFound))
}
