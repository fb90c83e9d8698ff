package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"job-match/internal/database"
	"job-match/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// JobRepository is the job catalog.
type JobRepository interface {
	ListAll(ctx context.Context) ([]job.Job, error)
	FindByID(ctx context.Context, jobID uuid.UUID) (job.Job, error)
	Stats(ctx context.Context) (job.Stats, error)
	Upsert(ctx context.Context, jobs []job.Job) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, external_id, title, company, location, employment_type, workplace_model,
	salary, description, posted, url, required_skills, created_at`

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var skills []byte
	if err := row.Scan(
		&j.ID, &j.ExternalID, &j.Title, &j.Company, &j.Location, &j.EmploymentType, &j.WorkplaceModel,
		&j.Salary, &j.Description, &j.Posted, &j.URL, &skills, &j.CreatedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.RequiredSkills = []string{}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &j.RequiredSkills); err != nil {
			return job.Job{}, fmt.Errorf("decode required_skills for job %s: %w", j.ID, err)
		}
	}
	return j, nil
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	j, err := scanJob(row)
	if err != nil {
		if database.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) Stats(ctx context.Context) (job.Stats, error) {
	var st job.Stats
	row := r.db.QueryRow(ctx, `SELECT COUNT(*), COUNT(DISTINCT NULLIF(company, '')) FROM jobs`)
	if err := row.Scan(&st.TotalJobs, &st.TotalCompanies); err != nil {
		return job.Stats{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT employment_type FROM jobs WHERE employment_type <> '' ORDER BY employment_type ASC`,
	)
	if err != nil {
		return job.Stats{}, err
	}
	defer rows.Close()

	st.EmploymentTypes = make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return job.Stats{}, err
		}
		st.EmploymentTypes = append(st.EmploymentTypes, t)
	}
	if err := rows.Err(); err != nil {
		return job.Stats{}, err
	}
	return st, nil
}

// Upsert inserts or refreshes jobs keyed by external id inside one transaction.
func (r *PostgresJobRepository) Upsert(ctx context.Context, jobs []job.Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	n := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, j := range jobs {
			skills, err := json.Marshal(nonNil(j.RequiredSkills))
			if err != nil {
				return err
			}
			affected, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, external_id, title, company, location, employment_type, workplace_model,
					salary, description, posted, url, required_skills)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
				 ON CONFLICT (external_id) DO UPDATE SET
					title = EXCLUDED.title,
					company = EXCLUDED.company,
					location = EXCLUDED.location,
					employment_type = EXCLUDED.employment_type,
					workplace_model = EXCLUDED.workplace_model,
					salary = EXCLUDED.salary,
					description = EXCLUDED.description,
					posted = EXCLUDED.posted,
					url = EXCLUDED.url,
					required_skills = EXCLUDED.required_skills,
					updated_at = now()`,
				j.ID, j.ExternalID, j.Title, j.Company, j.Location, j.EmploymentType, j.WorkplaceModel,
				j.Salary, j.Description, j.Posted, j.URL, string(skills),
			)
			if err != nil {
				return fmt.Errorf("upsert job %s: %w", j.ExternalID, err)
			}
			n += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
