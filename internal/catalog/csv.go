package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"job-match/internal/domain/job"

	"github.com/google/uuid"
)

// namespace seeds deterministic job ids so re-imports keep identifiers stable.
var namespace = uuid.MustParse("9a6d1b58-2f4e-4b8f-9d3c-6f2a7e1c0b11")

var ErrMissingHeader = errors.New("catalog csv: missing header")

// Columns understood by Parse. Unknown columns are ignored and any column may be absent.
const (
	colTitle          = "title"
	colCompany        = "company"
	colLocation       = "location"
	colPosted         = "posted"
	colWorkplaceModel = "workplace_model"
	colEmploymentType = "employment_type"
	colSalary         = "salary"
	colDescription    = "job_description"
	colExternalID     = "jobid"
	colURL            = "url"
	colRequiredSkills = "required_skills"
)

// JobID derives the catalog id for an external identifier.
func JobID(externalID string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(externalID))
}

// Parse reads a job board export. Rows without an external id get "job_<row>" where row
// counts data rows from zero. required_skills is a ';' separated list.
func Parse(r io.Reader) ([]job.Job, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("catalog csv: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		idx[h] = i
	}

	out := make([]job.Job, 0)
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog csv: row %d: %w", row, err)
		}

		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			v := strings.TrimSpace(rec[i])
			if strings.EqualFold(v, "nan") {
				return ""
			}
			return v
		}

		ext := get(colExternalID)
		if ext == "" {
			ext = fmt.Sprintf("job_%d", row)
		}

		out = append(out, job.Job{
			ID:             JobID(ext),
			ExternalID:     ext,
			Title:          get(colTitle),
			Company:        get(colCompany),
			Location:       get(colLocation),
			EmploymentType: get(colEmploymentType),
			WorkplaceModel: get(colWorkplaceModel),
			Salary:         get(colSalary),
			Description:    get(colDescription),
			Posted:         get(colPosted),
			URL:            get(colURL),
			RequiredSkills: job.NormalizeSkills(strings.Split(get(colRequiredSkills), ";")),
		})
	}
	return out, nil
}

func ParseFile(path string) ([]job.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
