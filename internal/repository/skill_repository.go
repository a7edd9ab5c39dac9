package repository

import (
	"context"
	"fmt"

	"skillswap/internal/database"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
)

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAll(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) GetByNames(ctx context.Context, names []string) ([]skill.Skill, error) {
	if len(names) == 0 {
		return []skill.Skill{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM skills WHERE name = ANY($1::text[])`,
		names,
	)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) RETURNING created_at`,
		s.ID, s.Name, s.Category,
	)
	if err := row.Scan(&s.CreatedAt); err != nil {
		if _, dup := dbpostgres.IsUniqueViolation(err); dup {
			return skill.Skill{}, fmt.Errorf("%w: %v", skill.ErrDuplicateName, err)
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) EnsureSkills(ctx context.Context, items []skill.Skill) (int, error) {
	var inserted int64
	err := database.WithTx(ctx, r.db, func(ctx context.Context, tx database.Tx) error {
		for _, it := range items {
			n, err := tx.Exec(ctx,
				`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`,
				uuid.NewString(), it.Name, it.Category,
			)
			if err != nil {
				return err
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}

func scanSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
