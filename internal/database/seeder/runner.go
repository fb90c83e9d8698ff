package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-match/internal/database"

	"go.uber.org/zap"
)

// Seeder writes one data set and reports how many rows it touched.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int, error)
}

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run executes the seeders in order and stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		n, err := s.Run(ctx, db)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeder finished",
			zap.String("seeder", s.Name()),
			zap.Int("rows", n),
			zap.Duration("took", time.Since(start)),
		)
	}
	return nil
}
