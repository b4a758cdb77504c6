package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spachava753/vacuumsim/internal/config"
	"github.com/spachava753/vacuumsim/internal/models"
)

// JobOrchestrator runs one comparison per configured world and stores the
// results under the job directory.
type JobOrchestrator struct {
	cfg         models.JobConfig
	worlds      []models.WorldConfig
	newExecutor NewTrialExecutorFunc
}

// NewJobOrchestrator resolves and validates every world of the job.
func NewJobOrchestrator(cfg models.JobConfig, executorFactory NewTrialExecutorFunc) (*JobOrchestrator, error) {
	worlds, err := config.ResolveWorlds(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving worlds: %w", err)
	}
	if cfg.NTrials <= 0 {
		return nil, models.Invalidf("trial count must be positive, got %d", cfg.NTrials)
	}

	return &JobOrchestrator{
		cfg:         cfg,
		worlds:      worlds,
		newExecutor: executorFactory,
	}, nil
}

// Worlds returns the resolved worlds in run order.
func (o *JobOrchestrator) Worlds() []models.WorldConfig {
	return o.worlds
}

// Run executes every comparison defined by the job configuration.
func (o *JobOrchestrator) Run(ctx context.Context) (*models.JobResult, error) {
	startTime := time.Now()

	// Create job output directory
	jobName := startTime.Format("2006-01-02__15-04-05")
	jobDir := filepath.Join(o.cfg.JobsDir, jobName)
	if o.cfg.Name != nil {
		jobName = *o.cfg.Name
		jobDir = filepath.Join(o.cfg.JobsDir, sanitizeName(jobName, "job"))
	}

	if _, err := os.Stat(jobDir); err == nil {
		return nil, fmt.Errorf("job directory already exists: %s (will not overwrite existing results)", jobDir)
	}

	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return nil, fmt.Errorf("creating job directory: %w", err)
	}

	// Save job config
	if err := writeJSON(filepath.Join(jobDir, "config.json"), o.cfg); err != nil {
		return nil, err
	}

	jr := &models.JobResult{
		RunID:     uuid.NewString(),
		JobName:   jobName,
		Seed:      o.cfg.Seed,
		StartedAt: startTime,
	}

	slog.Info("starting job", "job", jobName, "run_id", jr.RunID, "worlds", len(o.worlds))

	for _, world := range o.worlds {
		harness, err := NewHarness(models.ComparisonConfig{
			World:             world,
			NTrials:           o.cfg.NTrials,
			NConcurrentTrials: o.cfg.NConcurrentTrials,
			Seed:              o.cfg.Seed,
		}, o.newExecutor)
		if err != nil {
			return nil, fmt.Errorf("world %q: %w", world.Name, err)
		}

		cmp, err := harness.Compare(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.Warn("job cancelled", "job", jobName, "world", world.Name)
				jr.Cancelled = true
				break
			}
			return nil, fmt.Errorf("world %q: %w", world.Name, err)
		}

		if err := writeJSON(filepath.Join(jobDir, sanitizeName(world.Name, "world"), "comparison.json"), cmp); err != nil {
			return nil, err
		}

		jr.FailedTrials += cmp.Reflex.FailedTrials + cmp.ModelBased.FailedTrials
		jr.Comparisons = append(jr.Comparisons, *cmp)
	}

	jr.EndedAt = time.Now()
	jr.TotalDurationSec = jr.EndedAt.Sub(jr.StartedAt).Seconds()

	// Save job result
	if err := writeJSON(filepath.Join(jobDir, "result.json"), jr); err != nil {
		return nil, err
	}

	return jr, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

const maxDirNameLength = 64

var invalidNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// sanitizeName turns a world or job name into a single safe path element,
// using fallback when nothing usable is left.
func sanitizeName(name, fallback string) string {
	s := invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxDirNameLength {
		s = strings.TrimRight(s[:maxDirNameLength], "-")
	}
	if s == "" {
		s = fallback
	}
	return s
}
