package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-match/internal/domain/job"
	"job-match/internal/repository"

	"github.com/google/uuid"
)

// JobCatalog is an in-process catalog, usually preloaded from a CSV export.
type JobCatalog struct {
	mu    sync.RWMutex
	jobs  []job.Job
	index map[string]int
}

func NewJobCatalog(jobs ...job.Job) *JobCatalog {
	c := &JobCatalog{index: make(map[string]int)}
	_, _ = c.Upsert(context.Background(), jobs)
	return c
}

var _ repository.JobRepository = (*JobCatalog)(nil)

func (c *JobCatalog) ListAll(_ context.Context) ([]job.Job, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]job.Job, len(c.jobs))
	copy(out, c.jobs)
	return out, nil
}

func (c *JobCatalog) FindByID(_ context.Context, jobID uuid.UUID) (job.Job, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, j := range c.jobs {
		if j.ID == jobID {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (c *JobCatalog) Stats(_ context.Context) (job.Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	companies := map[string]struct{}{}
	types := map[string]struct{}{}
	for _, j := range c.jobs {
		if j.Company != "" {
			companies[j.Company] = struct{}{}
		}
		if strings.TrimSpace(j.EmploymentType) != "" {
			types[j.EmploymentType] = struct{}{}
		}
	}

	st := job.Stats{
		TotalJobs:       len(c.jobs),
		TotalCompanies:  len(companies),
		EmploymentTypes: make([]string, 0, len(types)),
	}
	for t := range types {
		st.EmploymentTypes = append(st.EmploymentTypes, t)
	}
	sort.Strings(st.EmploymentTypes)
	return st, nil
}

// Upsert replaces jobs with a known external id in place and appends the rest.
func (c *JobCatalog) Upsert(_ context.Context, jobs []job.Job) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, j := range jobs {
		if j.CreatedAt.IsZero() {
			j.CreatedAt = time.Now().UTC()
		}
		if i, ok := c.index[j.ExternalID]; ok {
			j.ID = c.jobs[i].ID
			j.CreatedAt = c.jobs[i].CreatedAt
			c.jobs[i] = j
			continue
		}
		c.index[j.ExternalID] = len(c.jobs)
		c.jobs = append(c.jobs, j)
	}
	return len(jobs), nil
}
