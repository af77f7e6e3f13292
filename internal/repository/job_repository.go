package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobSelect = `SELECT j.id, j.title, c.id, c.name, j.location, j.description, j.job_type,
	j.posted_at, j.required_skills, j.salary_min, j.salary_max, j.salary_currency
 FROM jobs j
 JOIN companies c ON c.id = j.company_id`

type JobRepository interface {
	List(ctx context.Context, filter job.Filter) ([]job.Posting, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
}

type PostgresJobRepository struct {
	db       database.DB
	pageSize int
}

// listCursor is the last row of a page; the next page starts strictly after it
// in (posted_at DESC, id DESC) order.
type listCursor struct {
	postedAt time.Time
	id       uuid.UUID
}

// NewPostgresJobRepository returns a catalog reading active postings. Listings
// are fetched in pages of pageSize rows until the catalog is exhausted; zero
// means 500.
func NewPostgresJobRepository(db database.DB, pageSize int) *PostgresJobRepository {
	if pageSize <= 0 {
		pageSize = 500
	}
	return &PostgresJobRepository{db: db, pageSize: pageSize}
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)

	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, fmt.Errorf("job %s: %w", id, job.ErrNotFound)
		}
		return job.Posting{}, err
	}
	return p, nil
}

// List returns every active posting matching filter, newest first.
func (r *PostgresJobRepository) List(ctx context.Context, filter job.Filter) ([]job.Posting, error) {
	out := make([]job.Posting, 0)
	var cursor *listCursor
	for {
		page, err := r.listPage(ctx, filter, cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < r.pageSize {
			return out, nil
		}
		last := page[len(page)-1]
		cursor = &listCursor{postedAt: last.PostedAt, id: last.ID}
	}
}

func (r *PostgresJobRepository) listPage(ctx context.Context, filter job.Filter, cursor *listCursor) ([]job.Posting, error) {
	query, args := buildListQuery(filter, r.pageSize, cursor)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := make([]job.Posting, 0, r.pageSize)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		page = append(page, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

func buildListQuery(filter job.Filter, pageSize int, cursor *listCursor) (string, []any) {
	conds := []string{"j.is_active = true"}
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		p := arg("%" + escapeLike(q) + "%")
		conds = append(conds, fmt.Sprintf("(j.title ILIKE %[1]s OR c.name ILIKE %[1]s OR j.location ILIKE %[1]s OR j.description ILIKE %[1]s)", p))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		conds = append(conds, "j.location ILIKE "+arg("%"+escapeLike(loc)+"%"))
	}
	if filter.Type != "" {
		conds = append(conds, "j.job_type = "+arg(string(filter.Type)))
	}
	if cursor != nil {
		conds = append(conds, fmt.Sprintf("(j.posted_at, j.id) < (%s, %s)", arg(cursor.postedAt), arg(cursor.id)))
	}

	query := jobSelect + "\n WHERE " + strings.Join(conds, " AND ") +
		"\n ORDER BY j.posted_at DESC, j.id DESC\n LIMIT " + arg(pageSize)
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern (backslash is the
// default escape character).
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanPosting(row database.Row) (job.Posting, error) {
	var (
		p         job.Posting
		jobType   string
		postedAt  time.Time
		salaryMin *float64
		salaryMax *float64
		currency  *string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Company.ID, &p.Company.Name, &p.Location, &p.Description, &jobType,
		&postedAt, &p.RequiredSkills, &salaryMin, &salaryMax, &currency,
	)
	if err != nil {
		return job.Posting{}, err
	}

	p.Type = job.Type(jobType)
	p.PostedAt = postedAt.UTC()
	if salaryMin != nil && salaryMax != nil {
		s := &job.Salary{Min: *salaryMin, Max: *salaryMax}
		if currency != nil {
			s.Currency = *currency
		}
		p.Salary = s
	}
	return p, nil
}
