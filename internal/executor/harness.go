package executor

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/spachava753/vacuumsim/internal/agent"
	"github.com/spachava753/vacuumsim/internal/models"
)

// TrialExecutor executes a single trial and returns the result.
type TrialExecutor interface {
	Execute(ctx context.Context, trial models.Trial) (*models.TrialResult, error)
}

// NewTrialExecutorFunc creates a TrialExecutor for a comparison.
type NewTrialExecutorFunc func(cfg models.ComparisonConfig) TrialExecutor

// DefaultTrialExecutorFunc creates a default trial executor.
func DefaultTrialExecutorFunc(models.ComparisonConfig) TrialExecutor {
	return NewTrialExecutor()
}

// Harness runs the same number of trials for every agent kind in one world
// and aggregates the results.
//
// Trials that abort with an out-of-bounds violation are excluded from the
// aggregate means, counted in FailedTrials and kept in Failures; the
// remaining trials still run.
type Harness struct {
	cfg         models.ComparisonConfig
	newExecutor NewTrialExecutorFunc
}

// NewHarness validates cfg; an invalid configuration starts no trial.
func NewHarness(cfg models.ComparisonConfig, executorFactory NewTrialExecutorFunc) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if executorFactory == nil {
		executorFactory = DefaultTrialExecutorFunc
	}
	return &Harness{cfg: cfg, newExecutor: executorFactory}, nil
}

// Compare runs every trial and returns the aggregate of both architectures.
func (h *Harness) Compare(ctx context.Context) (*models.Comparison, error) {
	var trials []models.Trial
	for i := range h.cfg.NTrials {
		for _, kind := range agent.Kinds() {
			trials = append(trials, models.Trial{
				ID:    fmt.Sprintf("%s__%s__%d", h.cfg.World.Name, kind, i+1),
				Agent: kind,
				World: h.cfg.World,
				Index: i,
				Seed:  h.cfg.Seed,
			})
		}
	}

	nWorkers := h.cfg.NConcurrentTrials
	if nWorkers <= 0 {
		nWorkers = 1
	}

	slog.Info("running comparison",
		"world", h.cfg.World.Name,
		"trials", len(trials),
		"workers", nWorkers,
		"seed", h.cfg.Seed,
	)

	results, err := h.runConcurrent(ctx, trials, nWorkers)
	if err != nil {
		return nil, err
	}

	return &models.Comparison{
		World:      h.cfg.World,
		Seed:       h.cfg.Seed,
		NTrials:    h.cfg.NTrials,
		Reflex:     aggregate(models.AgentReflex, results),
		ModelBased: aggregate(models.AgentModelBased, results),
	}, nil
}

// runConcurrent executes trials on at most nWorkers goroutines. Results are
// stored by trial index so the output does not depend on scheduling.
func (h *Harness) runConcurrent(ctx context.Context, trials []models.Trial, nWorkers int) ([]*models.TrialResult, error) {
	results := make([]*models.TrialResult, len(trials))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nWorkers)

	for i, trial := range trials {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			executor := h.newExecutor(h.cfg)
			res, err := executor.Execute(gctx, trial)
			if err != nil {
				return fmt.Errorf("trial %s: %w", trial.ID, err)
			}
			if res.Error != nil {
				slog.Warn("trial failed", "trial", trial.ID, "type", res.Error.Type, "error", res.Error.Message)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func aggregate(kind models.AgentKind, results []*models.TrialResult) models.AggregateResult {
	ar := models.AggregateResult{
		Agent:  kind,
		Trials: []models.TrialResult{},
	}

	var allClean int
	for _, r := range results {
		if r == nil || r.Agent != kind {
			continue
		}
		ar.TotalTrials++
		if r.Error != nil {
			ar.FailedTrials++
			ar.Failures = append(ar.Failures, *r)
			continue
		}
		ar.CompletedTrials++
		ar.Trials = append(ar.Trials, *r)
		if r.TerminatedBy == models.TerminatedAllClean {
			allClean++
		}
	}

	if ar.CompletedTrials == 0 {
		return ar
	}

	n := float64(ar.CompletedTrials)
	for _, r := range ar.Trials {
		ar.MeanMoves += float64(r.Moves)
		ar.MeanEfficiency += r.Efficiency
		ar.MeanSteps += float64(r.Steps)
	}
	ar.MeanMoves /= n
	ar.MeanEfficiency /= n
	ar.MeanSteps /= n

	for _, r := range ar.Trials {
		dm := float64(r.Moves) - ar.MeanMoves
		de := r.Efficiency - ar.MeanEfficiency
		ar.VarianceMoves += dm * dm
		ar.VarianceEfficiency += de * de
	}
	ar.VarianceMoves /= n
	ar.VarianceEfficiency /= n
	ar.AllCleanRate = float64(allClean) / n

	return ar
}
