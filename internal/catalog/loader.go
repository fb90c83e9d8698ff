package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"job-match/internal/domain/job"
)

type fileResult struct {
	index int
	jobs  []job.Job
	err   error
}

// LoadFiles parses several exports with a bounded pool of workers. The result keeps the
// order of paths, so a later file wins when the catalog upserts by external id.
func LoadFiles(ctx context.Context, paths []string, workers int) ([]job.Job, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	tasks := make(chan int)
	results := make(chan fileResult, len(paths))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range tasks {
				jobs, err := ParseFile(paths[i])
				results <- fileResult{index: i, jobs: jobs, err: err}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for i := range paths {
			select {
			case <-ctx.Done():
				return
			case tasks <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	parsed := make([][]job.Job, len(paths))
	done := 0
	var firstErr error
	for r := range results {
		done++
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", paths[r.index], r.err)
		}
		parsed[r.index] = r.jobs
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && done < len(paths) {
		return nil, err
	}

	out := make([]job.Job, 0)
	for _, jobs := range parsed {
		out = append(out, jobs...)
	}
	return out, nil
}

// SplitPaths turns a comma separated list into trimmed, non-empty paths.
func SplitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
