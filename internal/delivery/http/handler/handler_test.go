package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-match/internal/delivery/http/middleware"
	"job-match/internal/domain/job"
	"job-match/internal/pkg/response"
	"job-match/internal/repository/memory"
	"job-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *response.Meta  `json:"meta"`
}

type testServer struct {
	app  *fiber.App
	user uuid.UUID
	jobs []job.Job
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jobs := []job.Job{
		{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("a")), ExternalID: "a", Title: "Data Engineer", Company: "Grab", Location: "Singapore", EmploymentType: "Full-time", RequiredSkills: []string{"python", "sql", "kubernetes"}},
		{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("b")), ExternalID: "b", Title: "Frontend Developer", Company: "Meta", Location: "Remote", EmploymentType: "Contract", RequiredSkills: []string{"react"}},
	}
	catalog := memory.NewJobCatalog(jobs...)
	skills := memory.NewCandidateSkillStore()

	errMw := middleware.NewErrorMiddleware(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errMw.Handler()})
	app.Use(errMw.Middleware())

	user := uuid.New()
	app.Use(func(c fiber.Ctx) error {
		if c.Get("X-Anonymous") == "" {
			c.Locals(middleware.CtxUserIDKey, user)
		}
		return c.Next()
	})

	NewMatchHandler(usecase.NewMatchingUsecase(catalog, skills, nil, nil)).RegisterRoutes(app)
	NewJobsHandler(usecase.NewJobListUsecase(catalog, skills, nil, nil)).RegisterRoutes(app)
	NewCandidateSkillHandler(usecase.NewCandidateSkillUsecase(skills, nil, nil)).RegisterRoutes(app)

	th := NewTrackerHandler(usecase.NewTrackerUsecase(memory.NewTrackedApplicationStore(), false, nil))
	th.now = func() time.Time { return time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC) }
	th.RegisterRoutes(app)

	return &testServer{app: app, user: user, jobs: jobs}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (*http.Response, envelope, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env, raw
}

func TestTrackerHandler_CRUD(t *testing.T) {
	s := newTestServer(t)

	resp, env, _ := s.do(t, http.MethodPost, "/tracker/applications",
		`{"company":"Grab","position":"Backend Engineer","date_applied":"2024-06-01","notes":"referral"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID           uuid.UUID `json:"id"`
		Status       string    `json:"status"`
		DateApplied  string    `json:"date_applied"`
		NextStatuses []string  `json:"next_statuses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Applied", created.Status)
	assert.Equal(t, "2024-06-01", created.DateApplied)
	assert.Equal(t, []string{"Interview Scheduled", "Rejected", "Withdrawn"}, created.NextStatuses)

	resp, env, _ = s.do(t, http.MethodPatch, "/tracker/applications/"+created.ID.String(), `{"status":"Interview Scheduled"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Interview Scheduled", updated.Status)
	assert.Equal(t, "referral", updated.Notes)

	resp, env, _ = s.do(t, http.MethodGet, "/tracker/applications", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	resp, env, _ = s.do(t, http.MethodGet, "/tracker/applications/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"total":1`)

	resp, _, _ = s.do(t, http.MethodDelete, "/tracker/applications/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env, _ = s.do(t, http.MethodGet, "/tracker/applications/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Application not found", env.Message)
}

func TestTrackerHandler_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{"missing company", http.MethodPost, "/tracker/applications", `{"position":"x","date_applied":"2024-01-01"}`, "company"},
		{"unknown status", http.MethodPost, "/tracker/applications", `{"company":"a","position":"b","status":"Ghosted","date_applied":"2024-01-01"}`, "status"},
		{"impossible date", http.MethodPost, "/tracker/applications", `{"company":"a","position":"b","date_applied":"2024-02-30"}`, "date_applied"},
		{"blank company", http.MethodPost, "/tracker/applications", `{"company":"  ","position":"b","date_applied":"2024-02-01"}`, "company"},
		{"empty patch", http.MethodPatch, "/tracker/applications/" + uuid.NewString(), `{}`, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env, _ := s.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var fields []struct {
				Field string `json:"field"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &fields))
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)
		})
	}

	resp, _, _ := s.do(t, http.MethodGet, "/tracker/applications/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _, _ = s.do(t, http.MethodPatch, "/tracker/applications/"+uuid.NewString(), `{"notes":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTrackerHandler_Export(t *testing.T) {
	s := newTestServer(t)

	resp, _, _ := s.do(t, http.MethodPost, "/tracker/applications",
		`{"company":"Meta","position":"SWE","status":"Rejected","date_applied":"2024-05-01","notes":"too senior, \"maybe later\""}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _, raw := s.do(t, http.MethodGet, "/tracker/applications/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="job-tracker-2024-06-30.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t,
		"Company,Position,Status,Date Applied,Notes\n"+
			"Meta,SWE,Rejected,2024-05-01,\"too senior, \"\"maybe later\"\"\"\n",
		string(raw))
}

func TestJobsHandler_ListRanked(t *testing.T) {
	s := newTestServer(t)

	resp, _, _ := s.do(t, http.MethodPut, "/users/me/skills", `{"skills":["Python","SQL","Docker"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env, _ := s.do(t, http.MethodGet, "/jobs?limit=10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 10, env.Meta.Limit)

	var items []struct {
		Title string `json:"title"`
		Match struct {
			MatchPercentage float64  `json:"match_percentage"`
			MissingSkills   []string `json:"missing_skills"`
		} `json:"match"`
		TurnoverRate int `json:"turnover_rate"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Data Engineer", items[0].Title)
	assert.Equal(t, 66.67, items[0].Match.MatchPercentage)
	assert.Equal(t, []string{"kubernetes"}, items[0].Match.MissingSkills)
	assert.Equal(t, 19, items[0].TurnoverRate)

	resp, _, _ = s.do(t, http.MethodGet, "/jobs?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _, _ = s.do(t, http.MethodGet, "/jobs?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _, _ = s.do(t, http.MethodGet, "/jobs", "", "X-Anonymous", "1")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJobsHandler_DetailMatchAndStats(t *testing.T) {
	s := newTestServer(t)

	resp, env, _ := s.do(t, http.MethodGet, "/jobs/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"total_jobs":2,"total_companies":2,"employment_types":["Contract","Full-time"]}`, string(env.Data))

	resp, env, _ = s.do(t, http.MethodGet, "/jobs/"+s.jobs[1].ID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"title":"Frontend Developer"`)

	resp, _, _ = s.do(t, http.MethodGet, "/jobs/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env, _ = s.do(t, http.MethodGet, "/jobs/"+s.jobs[1].ID.String()+"/match", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"match_percentage":0`)
	assert.Contains(t, string(env.Data), `"missing_skills":["react"]`)
}

func TestCandidateSkillHandler(t *testing.T) {
	s := newTestServer(t)

	resp, env, _ := s.do(t, http.MethodPut, "/users/me/skills", `{"skills":[" Go ","go","","Rust"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"skills":["Go","Rust"]}`, string(env.Data))

	resp, env, _ = s.do(t, http.MethodGet, "/users/me/skills", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"skills":["Go","Rust"]}`, string(env.Data))

	resp, _, _ = s.do(t, http.MethodPut, "/users/me/skills", `{"skills":"go"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
