package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-match/internal/domain/job"
	"job-match/internal/infrastructure/cache"
	"job-match/internal/repository"
	"job-match/internal/repository/memory"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleCatalog() []job.Job {
	return []job.Job{
		{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("1")), ExternalID: "1", Title: "Data Engineer", Company: "Grab", Location: "Singapore", EmploymentType: "Full-time", RequiredSkills: []string{"python", "sql", "kubernetes"}},
		{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("2")), ExternalID: "2", Title: "Frontend Developer", Company: "Meta", Location: "Remote", EmploymentType: "Contract", RequiredSkills: []string{"react", "typescript"}},
		{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("3")), ExternalID: "3", Title: "Platform Engineer", Company: "DBS Bank", Location: "Singapore", EmploymentType: "Full-time", RequiredSkills: []string{"docker", "sql"}},
		{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("4")), ExternalID: "4", Title: "Intern", Company: "Google", Location: "Jakarta", EmploymentType: "Internship", RequiredSkills: nil},
	}
}

type countingJobs struct {
	repository.JobRepository
	listCalls int
}

func (c *countingJobs) ListAll(ctx context.Context) ([]job.Job, error) {
	c.listCalls++
	return c.JobRepository.ListAll(ctx)
}

type failingJobs struct {
	repository.JobRepository
}

func (failingJobs) ListAll(context.Context) ([]job.Job, error) {
	return nil, errors.New("connection reset")
}

func newRankedFixture(t *testing.T) (*JobList, *countingJobs, *memory.CandidateSkillStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jobs := &countingJobs{JobRepository: memory.NewJobCatalog(sampleCatalog()...)}
	skills := memory.NewCandidateSkillStore()
	rc := cache.NewRedisFromClient(client, time.Minute, zap.NewNop())
	return NewJobListUsecase(jobs, skills, rc, zap.NewNop()), jobs, skills, mr
}

func TestJobList_RanksByMatchPercentage(t *testing.T) {
	ctx := context.Background()
	u, _, skills, _ := newRankedFixture(t)
	user := uuid.New()
	require.NoError(t, skills.SaveSkills(ctx, user, []string{"Python", "SQL", "Docker"}))

	page, hit, err := u.ListRankedJobs(ctx, user, JobListParams{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, defaultListLimit, page.Limit)
	require.Len(t, page.Items, 4)

	titles := make([]string, 0, len(page.Items))
	for _, it := range page.Items {
		titles = append(titles, it.Job.Title)
	}
	assert.Equal(t, []string{"Platform Engineer", "Data Engineer", "Frontend Developer", "Intern"}, titles)

	assert.Equal(t, 100.0, page.Items[0].Match.MatchPercentage)
	assert.Equal(t, 66.67, page.Items[1].Match.MatchPercentage)
	assert.Equal(t, []string{"kubernetes"}, page.Items[1].Match.MissingSkills)
	assert.Equal(t, 21, page.Items[0].TurnoverRate)
	assert.Equal(t, 19, page.Items[1].TurnoverRate)
}

func TestJobList_FiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	u, _, skills, _ := newRankedFixture(t)
	user := uuid.New()
	require.NoError(t, skills.SaveSkills(ctx, user, []string{"sql"}))

	page, _, err := u.ListRankedJobs(ctx, user, JobListParams{Location: "Singapore", EmploymentType: "Full-time", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Platform Engineer", page.Items[0].Job.Title)

	page, _, err = u.ListRankedJobs(ctx, user, JobListParams{Location: "Singapore", EmploymentType: "Full-time", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Data Engineer", page.Items[0].Job.Title)

	page, _, err = u.ListRankedJobs(ctx, user, JobListParams{Search: "META"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Frontend Developer", page.Items[0].Job.Title)

	page, _, err = u.ListRankedJobs(ctx, user, JobListParams{Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Empty(t, page.Items)
}

func TestJobList_InvalidParams(t *testing.T) {
	ctx := context.Background()
	u, _, _, _ := newRankedFixture(t)

	for _, p := range []JobListParams{{Limit: -1}, {Limit: maxListLimit + 1}, {Offset: -5}} {
		_, _, err := u.ListRankedJobs(ctx, uuid.New(), p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	_, _, err := u.ListRankedJobs(ctx, uuid.Nil, JobListParams{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestJobList_CacheHitAndInvalidationOnSkillChange(t *testing.T) {
	ctx := context.Background()
	u, jobs, skills, mr := newRankedFixture(t)
	user := uuid.New()
	require.NoError(t, skills.SaveSkills(ctx, user, []string{"react"}))

	_, hit, err := u.ListRankedJobs(ctx, user, JobListParams{Search: "engineer"})
	require.NoError(t, err)
	assert.False(t, hit)

	cached, hit, err := u.ListRankedJobs(ctx, user, JobListParams{Search: "  Engineer "})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, jobs.listCalls)
	assert.Equal(t, 2, cached.Total)
	assert.Len(t, mr.Keys(), 1)

	skillUsecase := NewCandidateSkillUsecase(skills, u.cache, zap.NewNop())
	_, err = skillUsecase.ReplaceSkills(ctx, user, []string{"python"})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())

	page, hit, err := u.ListRankedJobs(ctx, user, JobListParams{Search: "engineer"})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, jobs.listCalls)
	assert.Equal(t, "Data Engineer", page.Items[0].Job.Title)
}

func TestJobList_WorksWithoutCache(t *testing.T) {
	ctx := context.Background()
	u := NewJobListUsecase(memory.NewJobCatalog(sampleCatalog()...), memory.NewCandidateSkillStore(), nil, nil)

	page, hit, err := u.ListRankedJobs(ctx, uuid.New(), JobListParams{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, page.Items, 4)
	for _, it := range page.Items {
		assert.Zero(t, it.Match.MatchPercentage)
	}
}

func TestJobList_RepositoryFailureIsInternal(t *testing.T) {
	u := NewJobListUsecase(failingJobs{}, memory.NewCandidateSkillStore(), nil, nil)
	_, _, err := u.ListRankedJobs(context.Background(), uuid.New(), JobListParams{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestJobList_GetJobAndStats(t *testing.T) {
	ctx := context.Background()
	u, _, _, _ := newRankedFixture(t)
	catalog := sampleCatalog()

	j, err := u.GetJob(ctx, catalog[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Frontend Developer", j.Title)

	_, err = u.GetJob(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	st, err := u.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.TotalJobs)
	assert.Equal(t, 4, st.TotalCompanies)
	assert.Equal(t, []string{"Contract", "Full-time", "Internship"}, st.EmploymentTypes)
}
