package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"job-match/internal/app"
	"job-match/internal/config"
	"job-match/internal/database"
	"job-match/internal/database/migration"
	"job-match/internal/database/seeder"
	"job-match/internal/domain/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type rankedItem struct {
	JobID uuid.UUID `json:"job_id"`
	Title string    `json:"title"`
	Match struct {
		MatchPercentage float64 `json:"match_percentage"`
	} `json:"match"`
}

type applicationItem struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Notes  string    `json:"notes"`
}

// TestIntegration_PostgresRankingAndTracker needs a reachable Postgres; it skips otherwise.
func TestIntegration_PostgresRankingAndTracker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := testConfig(t)
	a, cleanup, err := app.Bootstrap(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	defer func() { _ = cleanup() }()

	db := a.Container.DB
	if _, err := (migration.Runner{FS: migration.Embedded()}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	tag := "zq" + strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	jobs := seedCatalog(t, ctx, db, tag)
	userID := uuid.New()
	defer cleanupRows(t, db, tag, userID)

	tok, err := a.Container.JWT.GenerateAccessToken(userID, "")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	call := func(method, path, body string) (int, semanticResponse, string) {
		t.Helper()
		var rdr io.Reader
		if body != "" {
			rdr = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, rdr)
		req.Header.Set("Authorization", "Bearer "+tok)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
		if err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
		raw, _ := io.ReadAll(resp.Body)
		var env semanticResponse
		_ = json.Unmarshal(raw, &env)
		return resp.StatusCode, env, string(raw)
	}

	if status, _, raw := call(http.MethodPut, "/api/v1/users/me/skills", `{"skills":["Python","SQL","Docker"]}`); status != http.StatusOK {
		t.Fatalf("put skills: status=%d body=%s", status, raw)
	}

	status, env, raw := call(http.MethodGet, "/api/v1/jobs?search="+tag, "")
	if status != http.StatusOK {
		t.Fatalf("list jobs: status=%d body=%s", status, raw)
	}
	var items []rankedItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode jobs: %v", err)
	}
	if len(items) != len(jobs) {
		t.Fatalf("list jobs: expected %d items, got %d", len(jobs), len(items))
	}
	assertSortedByMatchDesc(t, items)
	assertNoDuplicateJobs(t, items)
	if items[0].Match.MatchPercentage != 100 || items[1].Match.MatchPercentage != 66.67 {
		t.Fatalf("list jobs: unexpected scores %+v", items)
	}

	status, env, raw = call(http.MethodPost, "/api/v1/tracker/applications",
		`{"company":"Grab","position":"Data Engineer","date_applied":"2024-06-01"}`)
	if status != http.StatusCreated {
		t.Fatalf("create application: status=%d body=%s", status, raw)
	}
	var created applicationItem
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode application: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := `{"notes":"round ` + string(rune('a'+i)) + `"}`
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/tracker/applications/"+created.ID.String(), strings.NewReader(body))
			req.Header.Set("Authorization", "Bearer "+tok)
			req.Header.Set("Content-Type", "application/json")
			if resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second}); err == nil {
				_ = resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	status, env, raw = call(http.MethodGet, "/api/v1/tracker/applications/"+created.ID.String(), "")
	if status != http.StatusOK {
		t.Fatalf("get application: status=%d body=%s", status, raw)
	}
	var got applicationItem
	_ = json.Unmarshal(env.Data, &got)
	if !strings.HasPrefix(got.Notes, "round ") || got.Status != "Applied" {
		t.Fatalf("get application: unexpected record %+v", got)
	}

	status, _, raw = call(http.MethodGet, "/api/v1/tracker/applications/export", "")
	if status != http.StatusOK || !strings.Contains(raw, "Grab,Data Engineer,Applied,2024-06-01,round ") {
		t.Fatalf("export: status=%d body=%s", status, raw)
	}

	if status, _, raw := call(http.MethodDelete, "/api/v1/tracker/applications/"+created.ID.String(), ""); status != http.StatusOK {
		t.Fatalf("delete: status=%d body=%s", status, raw)
	}
	if status, _, _ := call(http.MethodDelete, "/api/v1/tracker/applications/"+created.ID.String(), ""); status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	return config.Config{
		App: config.AppConfig{AppName: "job-match-integration", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:         host,
			DBPort:         port,
			DBName:         name,
			DBUser:         user,
			DBPassword:     pass,
			DBSSLMode:      stringsOrDefault(ssl, "disable"),
			ConnectTimeout: 5 * time.Second,
		},
		JWT: config.JWTConfig{AccessSecret: "integration-secret", AccessExpiresIn: time.Hour},
	}
}

func seedCatalog(t *testing.T, ctx context.Context, db database.DB, tag string) []job.Job {
	t.Helper()

	jobs := []job.Job{
		{ExternalID: tag + "-1", Title: "Data Engineer " + tag, Company: "Grab", Location: "Singapore", EmploymentType: "Full-time", RequiredSkills: []string{"python", "sql", "kubernetes"}},
		{ExternalID: tag + "-2", Title: "Platform Engineer " + tag, Company: "DBS Bank", Location: "Singapore", EmploymentType: "Full-time", RequiredSkills: []string{"docker", "sql"}},
		{ExternalID: tag + "-3", Title: "Frontend Developer " + tag, Company: "Meta", Location: "Remote", EmploymentType: "Contract", RequiredSkills: []string{"react"}},
	}
	for i := range jobs {
		jobs[i].ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(jobs[i].ExternalID))
	}

	r := seeder.Runner{Seeders: []seeder.Seeder{seeder.JobCatalogSeeder{Jobs: jobs}}}
	if err := r.Run(ctx, db); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return jobs
}

func cleanupRows(t *testing.T, db database.DB, tag string, userID uuid.UUID) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = db.Exec(ctx, `DELETE FROM jobs WHERE external_id LIKE $1`, tag+"-%")
	_, _ = db.Exec(ctx, `DELETE FROM candidate_skills WHERE user_id = $1`, userID)
	_, _ = db.Exec(ctx, `DELETE FROM tracked_applications WHERE user_id = $1`, userID)
}

func assertSortedByMatchDesc(t *testing.T, items []rankedItem) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if items[i].Match.MatchPercentage > items[i-1].Match.MatchPercentage {
			t.Fatalf("expected match_percentage descending at idx=%d: prev=%v cur=%v", i, items[i-1].Match.MatchPercentage, items[i].Match.MatchPercentage)
		}
	}
}

func assertNoDuplicateJobs(t *testing.T, items []rankedItem) {
	t.Helper()

	seen := map[uuid.UUID]struct{}{}
	for i, it := range items {
		if it.JobID == uuid.Nil {
			t.Fatalf("idx=%d has nil job_id", i)
		}
		if _, ok := seen[it.JobID]; ok {
			t.Fatalf("duplicate job_id=%s", it.JobID)
		}
		seen[it.JobID] = struct{}{}
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
