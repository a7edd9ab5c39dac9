package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"skillswap/internal/database"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, fname, lname, email, username, password_hash, bio, skills, interests, matches, notifications, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, fname, lname, email, username, password_hash, bio)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		u.ID, u.FName, u.LName, u.Email, u.Username, u.PasswordHash, u.Bio,
	)
	created, err := scanUser(row)
	if err != nil {
		return user.User{}, translateUserErr(err)
	}
	return created, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::text[])`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *PostgresUserRepository) UsernameTakenByOther(ctx context.Context, username, exceptID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`, username, exceptID)
}

func (r *PostgresUserRepository) EmailTakenByOther(ctx context.Context, email, exceptID string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`, email, exceptID)
}

func (r *PostgresUserRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id string, ch user.ProfileChanges) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET fname = $2, lname = $3, email = $4, username = $5, bio = $6, updated_at = now()
		 WHERE id = $1`,
		id, ch.FName, ch.LName, ch.Email, ch.Username, ch.Bio,
	)
	if err != nil {
		return translateUserErr(err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

// Array merges keep first-seen order and drop duplicates.
const (
	addSkillsSQL = `UPDATE users
		 SET skills = ARRAY(
		 	SELECT x FROM unnest(skills || $2::text[]) WITH ORDINALITY AS t(x, n)
		 	GROUP BY x ORDER BY min(n)
		 ), updated_at = now()
		 WHERE id = $1`
	addInterestsSQL = `UPDATE users
		 SET interests = ARRAY(
		 	SELECT x FROM unnest(interests || $2::text[]) WITH ORDINALITY AS t(x, n)
		 	GROUP BY x ORDER BY min(n)
		 ), updated_at = now()
		 WHERE id = $1`
)

func (r *PostgresUserRepository) AddToSet(ctx context.Context, id string, field user.SkillField, ids []string) error {
	var query string
	switch field {
	case user.FieldSkills:
		query = addSkillsSQL
	case user.FieldInterests:
		query = addInterestsSQL
	default:
		return fmt.Errorf("unknown skill field: %d", field)
	}
	if ids == nil {
		ids = []string{}
	}

	n, err := r.db.Exec(ctx, query, id, ids)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) AddMatch(ctx context.Context, id, matchID string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET matches = CASE WHEN $2 = ANY(matches) THEN matches ELSE array_append(matches, $2) END,
		     updated_at = now()
		 WHERE id = $1`,
		id, matchID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) PushNotification(ctx context.Context, id string, nt user.Notification) error {
	b, err := json.Marshal(nt)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET notifications = notifications || jsonb_build_array($2::jsonb), updated_at = now()
		 WHERE id = $1`,
		id, string(b),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u     user.User
		notif []byte
	)
	if err := row.Scan(
		&u.ID, &u.FName, &u.LName, &u.Email, &u.Username, &u.PasswordHash, &u.Bio,
		&u.Skills, &u.Interests, &u.Matches, &notif, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return user.User{}, err
	}
	if len(notif) > 0 {
		if err := json.Unmarshal(notif, &u.Notifications); err != nil {
			return user.User{}, fmt.Errorf("decode notifications: %w", err)
		}
	}
	return u, nil
}

func translateUserErr(err error) error {
	constraint, ok := dbpostgres.IsUniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case "users_email_key":
		return fmt.Errorf("%w: %v", user.ErrDuplicateEmail, err)
	case "users_username_key":
		return fmt.Errorf("%w: %v", user.ErrDuplicateUsername, err)
	default:
		return err
	}
}
