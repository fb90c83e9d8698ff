package search

import (
	"sort"
	"strings"

	"job-match/internal/domain/job"

	"github.com/google/uuid"
)

type JobFilter struct {
	SearchTerm     string
	Location       string
	EmploymentType string
}

// Ranker orders and narrows a job catalog. Implementations must not mutate their inputs.
type Ranker interface {
	Rank(jobs []job.Job, scores map[uuid.UUID]float64) []job.Job
	Filter(jobs []job.Job, f JobFilter) []job.Job
}

type ScoreRanker struct{}

func (ScoreRanker) Rank(jobs []job.Job, scores map[uuid.UUID]float64) []job.Job {
	return RankJobs(jobs, scores)
}

func (ScoreRanker) Filter(jobs []job.Job, f JobFilter) []job.Job {
	return FilterJobs(jobs, f)
}

// RankJobs returns a copy of jobs ordered by score, highest first. Jobs without a score
// count as zero and equal scores keep catalog order.
func RankJobs(jobs []job.Job, scores map[uuid.UUID]float64) []job.Job {
	out := make([]job.Job, len(jobs))
	copy(out, jobs)
	if len(out) < 2 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].ID] > scores[out[j].ID]
	})
	return out
}

// FilterJobs keeps the jobs that satisfy every non-empty criterion, in input order.
// The search term is case-insensitive; location and type filters match as written.
func FilterJobs(jobs []job.Job, f JobFilter) []job.Job {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	loc := strings.TrimSpace(f.Location)
	typ := strings.TrimSpace(f.EmploymentType)

	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if term != "" && !matchesTerm(j, term) {
			continue
		}
		if loc != "" && !strings.Contains(j.Location, loc) {
			continue
		}
		if typ != "" && !strings.Contains(j.EmploymentType, typ) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesTerm(j job.Job, term string) bool {
	return strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Company), term) ||
		strings.Contains(strings.ToLower(j.Location), term)
}
