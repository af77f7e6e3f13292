package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	data    map[string][]byte
	readErr error
	sets    int
}

func (m *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if m.readErr != nil {
		return false, m.readErr
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = b
	m.sets++
	return nil
}

type countingJobRepo struct {
	items []job.Posting
	err   error
	calls int
}

func (r *countingJobRepo) List(context.Context, job.Filter) ([]job.Posting, error) {
	r.calls++
	return r.items, r.err
}

func (r *countingJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return job.Posting{}, job.ErrNotFound
}

func TestCachedJobCatalog_List(t *testing.T) {
	posted := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	next := &countingJobRepo{items: []job.Posting{{
		ID:             uuid.New(),
		Title:          "Electrician",
		Company:        job.Company{ID: uuid.New(), Name: "Volt"},
		Type:           job.TypeTemp,
		PostedAt:       posted,
		RequiredSkills: []string{"Wiring"},
		Salary:         &job.Salary{Min: 14, Max: 18, Currency: "EUR"},
	}}}
	cache := &memoryCache{}
	c := NewCachedJobCatalog(next, cache, time.Minute, nil)

	first, err := c.List(context.Background(), job.Filter{Query: "Electric"})
	require.NoError(t, err)
	second, err := c.List(context.Background(), job.Filter{Query: "  electric "})
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first, second)
}

func TestCachedJobCatalog_CacheErrorsFallThrough(t *testing.T) {
	next := &countingJobRepo{items: []job.Posting{{ID: uuid.New(), Title: "Cook"}}}
	c := NewCachedJobCatalog(next, &memoryCache{readErr: errors.New("redis down")}, time.Minute, nil)

	items, err := c.List(context.Background(), job.Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, next.calls)
}

func TestCachedJobCatalog_ProviderErrorNotCached(t *testing.T) {
	boom := errors.New("db down")
	cache := &memoryCache{}
	c := NewCachedJobCatalog(&countingJobRepo{err: boom}, cache, time.Minute, nil)

	_, err := c.List(context.Background(), job.Filter{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.sets)
}

func TestCatalogCacheKey(t *testing.T) {
	a := CatalogCacheKey(job.Filter{Query: "Go  Developer", Location: "Lyon"})
	b := CatalogCacheKey(job.Filter{Query: "go developer", Location: " lyon"})
	c := CatalogCacheKey(job.Filter{Query: "go developer", Location: "Paris"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, catalogKeyPrefix))
}

func TestBuildListQuery(t *testing.T) {
	q, args := buildListQuery(job.Filter{}, 50, nil)
	assert.Contains(t, q, "WHERE j.is_active = true\n ORDER BY j.posted_at DESC, j.id DESC")
	assert.Equal(t, []any{50}, args)

	q, args = buildListQuery(job.Filter{Query: "go", Location: "Lyon", Type: job.TypeFreelance}, 10, nil)
	assert.Contains(t, q, "j.title ILIKE $1 OR c.name ILIKE $1")
	assert.Contains(t, q, "j.location ILIKE $2")
	assert.Contains(t, q, "j.job_type = $3")
	assert.Contains(t, q, "LIMIT $4")
	assert.Equal(t, []any{"%go%", "%Lyon%", "freelance", 10}, args)

	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	id := uuid.New()
	q, args = buildListQuery(job.Filter{Type: job.TypeTemp}, 10, &listCursor{postedAt: at, id: id})
	assert.Contains(t, q, "(j.posted_at, j.id) < ($2, $3)")
	assert.Contains(t, q, "LIMIT $4")
	assert.Equal(t, []any{"temp", at, id, 10}, args)
}

func TestBuildListQuery_EscapesLikeWildcards(t *testing.T) {
	_, args := buildListQuery(job.Filter{Query: "100%", Location: "st_denis"}, 10, nil)
	assert.Equal(t, []any{`%100\%%`, `%st\_denis%`, 10}, args)

	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

// pagedDB serves postings ordered by (posted_at, id) descending, honouring the
// keyset cursor and LIMIT passed by buildListQuery.
type pagedDB struct {
	items   []job.Posting
	queries int
}

func (d *pagedDB) Ping(context.Context) error { return nil }
func (d *pagedDB) Close() error               { return nil }
func (d *pagedDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (d *pagedDB) QueryRow(context.Context, string, ...any) database.Row {
	return &pagedRows{}
}

func (d *pagedDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	d.queries++
	limit := args[len(args)-1].(int)

	var (
		after  bool
		cursor listCursor
	)
	if strings.Contains(query, "(j.posted_at, j.id) <") {
		after = true
		cursor = listCursor{postedAt: args[len(args)-3].(time.Time), id: args[len(args)-2].(uuid.UUID)}
	}

	page := make([]job.Posting, 0, limit)
	for _, p := range d.items {
		if after && !rowBefore(p, cursor) {
			continue
		}
		if len(page) == limit {
			break
		}
		page = append(page, p)
	}
	return &pagedRows{items: page, pos: -1}, nil
}

func rowBefore(p job.Posting, c listCursor) bool {
	if !p.PostedAt.Equal(c.postedAt) {
		return p.PostedAt.Before(c.postedAt)
	}
	return bytes.Compare(p.ID[:], c.id[:]) < 0
}

type pagedRows struct {
	items []job.Posting
	pos   int
}

func (r *pagedRows) Close()     {}
func (r *pagedRows) Err() error { return nil }
func (r *pagedRows) Next() bool {
	r.pos++
	return r.pos < len(r.items)
}

func (r *pagedRows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.items) {
		return pgx.ErrNoRows
	}
	p := r.items[r.pos]
	*dest[0].(*uuid.UUID) = p.ID
	*dest[1].(*string) = p.Title
	*dest[2].(*uuid.UUID) = p.Company.ID
	*dest[3].(*string) = p.Company.Name
	*dest[4].(*string) = p.Location
	*dest[5].(*string) = p.Description
	*dest[6].(*string) = string(p.Type)
	*dest[7].(*time.Time) = p.PostedAt
	*dest[8].(*[]string) = p.RequiredSkills
	return nil
}

func sortedPostings(n int) []job.Posting {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]job.Posting, n)
	for i := range items {
		items[i] = job.Posting{
			ID:       uuid.New(),
			Title:    fmt.Sprintf("Job %d", i),
			Type:     job.TypeTemp,
			PostedAt: base.Add(time.Duration(i/3) * time.Hour),
		}
	}
	sort.Slice(items, func(a, b int) bool {
		return rowBefore(items[b], listCursor{postedAt: items[a].PostedAt, id: items[a].ID})
	})
	return items
}

func TestPostgresJobRepository_ListPagesWholeCatalog(t *testing.T) {
	db := &pagedDB{items: sortedPostings(23)}
	repo := NewPostgresJobRepository(db, 5)

	got, err := repo.List(context.Background(), job.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 23)
	assert.Equal(t, 5, db.queries)

	seen := map[uuid.UUID]bool{}
	for i, p := range got {
		assert.Equal(t, db.items[i].ID, p.ID)
		assert.False(t, seen[p.ID], "duplicate %s", p.ID)
		seen[p.ID] = true
	}
}

func TestPostgresJobRepository_ListExactPageMultiple(t *testing.T) {
	db := &pagedDB{items: sortedPostings(10)}
	repo := NewPostgresJobRepository(db, 5)

	got, err := repo.List(context.Background(), job.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 10)
	assert.Equal(t, 3, db.queries)
}

func TestPostgresJobRepository_ListBeyondDefaultPage(t *testing.T) {
	db := &pagedDB{items: sortedPostings(1203)}
	repo := NewPostgresJobRepository(db, 0)

	got, err := repo.List(context.Background(), job.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 1203)
}
