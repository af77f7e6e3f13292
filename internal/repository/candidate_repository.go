package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const candidateColumns = `id, name, skills, experience, education, summary`

type CandidateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Profile, error)
	List(ctx context.Context, limit, offset int) ([]candidate.Profile, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, fmt.Errorf("candidate %s: %w", id, candidate.ErrNotFound)
		}
		return candidate.Profile{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context, limit, offset int) ([]candidate.Profile, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 5000 {
		limit = 5000
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 ORDER BY created_at ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Profile, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCandidate(row database.Row) (candidate.Profile, error) {
	var c candidate.Profile
	if err := row.Scan(&c.ID, &c.Name, &c.Skills, &c.Experience, &c.Education, &c.Summary); err != nil {
		return candidate.Profile{}, err
	}
	return c, nil
}
