package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"job-match/internal/database"

	"github.com/google/uuid"
)

// CandidateSkillRepository stores the skill list extracted from a user's résumé.
type CandidateSkillRepository interface {
	FindSkills(ctx context.Context, userID uuid.UUID) ([]string, error)
	SaveSkills(ctx context.Context, userID uuid.UUID, skills []string) error
}

type PostgresCandidateSkillRepository struct {
	db database.DB
}

func NewPostgresCandidateSkillRepository(db database.DB) *PostgresCandidateSkillRepository {
	return &PostgresCandidateSkillRepository{db: db}
}

// FindSkills returns an empty list for users that never saved skills.
func (r *PostgresCandidateSkillRepository) FindSkills(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var raw []byte
	row := r.db.QueryRow(ctx, `SELECT skills FROM candidate_skills WHERE user_id = $1`, userID)
	if err := row.Scan(&raw); err != nil {
		if database.IsNoRows(err) {
			return []string{}, nil
		}
		return nil, err
	}

	out := []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode skills for user %s: %w", userID, err)
		}
	}
	return out, nil
}

func (r *PostgresCandidateSkillRepository) SaveSkills(ctx context.Context, userID uuid.UUID, skills []string) error {
	b, err := json.Marshal(nonNil(skills))
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO candidate_skills (user_id, skills, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET skills = EXCLUDED.skills, updated_at = now()`,
		userID, string(b),
	)
	return err
}
