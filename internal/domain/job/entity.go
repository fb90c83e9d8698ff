package job

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is a catalog entry. The core only reads it.
type Job struct {
	ID             uuid.UUID
	ExternalID     string
	Title          string
	Company        string
	Location       string
	EmploymentType string
	WorkplaceModel string
	Salary         string
	Description    string
	Posted         string
	URL            string
	RequiredSkills []string
	CreatedAt      time.Time
}

type Stats struct {
	TotalJobs       int
	TotalCompanies  int
	EmploymentTypes []string
}

// NormalizeSkills trims every entry and drops blanks and case-insensitive duplicates,
// keeping the first spelling seen.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
