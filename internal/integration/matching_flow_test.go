package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/export"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type matchItem struct {
	Job struct {
		JobID uuid.UUID `json:"job_id"`
		Title string    `json:"title"`
	} `json:"job"`
	Match struct {
		Score         int      `json:"score"`
		MatchedSkills []string `json:"matched_skills"`
		MissingSkills []string `json:"missing_skills"`
	} `json:"match"`
}

type seededIDs struct {
	companyID   uuid.UUID
	candidateID uuid.UUID
	backendID   uuid.UUID
	frontendID  uuid.UUID
}

func TestIntegration_CandidateMatches(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, ctx, db)

	items := callMatches(t, app, seed.candidateID)
	if len(items) < 2 {
		t.Fatalf("matches: expected at least the 2 seeded jobs, got %d", len(items))
	}

	assertNoDuplicateJobs(t, items)
	assertSortedByScoreDesc(t, items)

	scores := map[uuid.UUID]int{}
	for _, it := range items {
		scores[it.Job.JobID] = it.Match.Score
	}
	if got := scores[seed.backendID]; got != 100 {
		t.Fatalf("matches: backend job expected score=100, got %d", got)
	}
	if got := scores[seed.frontendID]; got != 0 {
		t.Fatalf("matches: frontend job expected score=0, got %d", got)
	}
}

func TestIntegration_UnknownCandidate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	app := newTestFiberApp(t, ctx, db)

	req := httptest.NewRequest("GET", "/api/v1/candidates/"+uuid.NewString()+"/matches", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("matches request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("unknown candidate: expected 404, got %d", resp.StatusCode)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("TALENTMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("TALENTMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("TALENTMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("TALENTMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("TALENTMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("TALENTMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set TALENTMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}, nil)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		companyID:   uuid.New(),
		candidateID: uuid.New(),
		backendID:   uuid.New(),
		frontendID:  uuid.New(),
	}

	mustExec(t, ctx, db, `INSERT INTO companies (id, name) VALUES ($1, $2)`, out.companyID, "IT Test Co")
	mustExec(t, ctx, db,
		`INSERT INTO candidates (id, name, skills) VALUES ($1, $2, $3)`,
		out.candidateID, "Integration Candidate", []string{"Go", "PostgreSQL"},
	)
	mustExec(t, ctx, db,
		`INSERT INTO jobs (id, title, company_id, location, job_type, posted_at, required_skills, salary_min, salary_max, salary_currency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		out.backendID, "Backend Engineer - IT", out.companyID, "Lyon", "permanent",
		time.Now().Add(-48*time.Hour), []string{"go", "postgresql"}, 40000.0, 50000.0, "EUR",
	)
	mustExec(t, ctx, db,
		`INSERT INTO jobs (id, title, company_id, location, job_type, posted_at, required_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		out.frontendID, "Frontend Engineer - IT", out.companyID, "Paris", "temp",
		time.Now().Add(-24*time.Hour), []string{"React"},
	)

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 OR id = $2`, seed.backendID, seed.frontendID)
	_, _ = db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, seed.candidateID)
	_, _ = db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, seed.companyID)
}

func newTestFiberApp(t *testing.T, ctx context.Context, db database.DB) *fiber.App {
	t.Helper()

	candidates := repository.NewPostgresCandidateRepository(db)
	jobs := repository.NewCachedJobCatalog(
		repository.NewPostgresJobRepository(db, 0),
		cache.NewRedis(ctx, "", time.Minute, nil),
		time.Minute,
		nil,
	)
	matchingUC := usecase.NewMatchingUsecase(candidates, jobs, 4, nil)

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware(nil)
	app.Use(errMw.Middleware())

	routes.NewRegistry(
		handler.NewHealthHandler(handler.HealthCheck{Name: "database", Target: db, Required: true}),
		handler.NewMatchHandler(matchingUC, candidates, 100, language.Und, export.NewExporter("")),
		nil,
	).Register(app)
	return app
}

func callMatches(t *testing.T, app *fiber.App, candidateID uuid.UUID) []matchItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/candidates/"+candidateID.String()+"/matches?q=-%20IT", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("matches request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("matches decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("matches: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}
	if sr.Message != "ok" {
		t.Fatalf("matches: expected message=ok, got %s", sr.Message)
	}

	var items []matchItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("matches: data unmarshal error: %v", err)
	}
	return items
}

func assertSortedByScoreDesc(t *testing.T, items []matchItem) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if items[i].Match.Score > items[i-1].Match.Score {
			t.Fatalf("matches: expected score descending at idx=%d: prev=%d cur=%d", i, items[i-1].Match.Score, items[i].Match.Score)
		}
	}
}

func assertNoDuplicateJobs(t *testing.T, items []matchItem) {
	t.Helper()

	seen := map[uuid.UUID]struct{}{}
	for i, it := range items {
		if it.Job.JobID == uuid.Nil {
			t.Fatalf("matches: idx=%d has nil job_id", i)
		}
		if _, ok := seen[it.Job.JobID]; ok {
			t.Fatalf("matches: duplicate job_id=%s", it.Job.JobID)
		}
		seen[it.Job.JobID] = struct{}{}
	}
}

func mustExec(t *testing.T, ctx context.Context, db database.DB, query string, args ...any) {
	t.Helper()

	if _, err := db.Exec(ctx, query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func stringsOrDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
