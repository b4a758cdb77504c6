package executor

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"

	"github.com/spachava753/vacuumsim/internal/agent"
	"github.com/spachava753/vacuumsim/internal/grid"
	"github.com/spachava753/vacuumsim/internal/models"
)

// RunnerState is the trial state machine position.
type RunnerState int

const (
	StateRunning RunnerState = iota
	StateAllClean
	StateStepLimit
	StateAborted
)

func (s RunnerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAllClean:
		return "terminated(all_clean)"
	case StateStepLimit:
		return "terminated(step_limit)"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("RunnerState(%d)", int(s))
	}
}

// Runner drives one agent against one grid until the grid is clean or the
// step limit is reached. It exclusively owns the grid, the agent and the
// random source for the duration of the trial.
type Runner struct {
	grid      *grid.Grid
	agent     agent.Agent
	rng       *rand.Rand
	stepLimit int

	pos    models.Position
	steps  int
	moves  int
	cleans int

	state  RunnerState
	result models.TrialResult
	err    error
}

// NewRunner creates a runner with the agent at (0,0) and no steps taken.
func NewRunner(g *grid.Grid, a agent.Agent, rng *rand.Rand, stepLimit int) (*Runner, error) {
	if g == nil || a == nil || rng == nil {
		return nil, models.Invalidf("runner requires a grid, an agent and a random source")
	}
	if stepLimit <= 0 {
		return nil, models.Invalidf("step limit must be positive, got %d", stepLimit)
	}
	if b, ok := a.(agent.Bounded); ok && b.MemoryBounds() != g.Bounds() {
		return nil, models.Invalidf("agent %s memory is %dx%d, grid is %dx%d",
			a.Kind(), b.MemoryBounds().Width, b.MemoryBounds().Height, g.Width(), g.Height())
	}
	return &Runner{grid: g, agent: a, rng: rng, stepLimit: stepLimit}, nil
}

func (r *Runner) State() RunnerState        { return r.state }
func (r *Runner) Position() models.Position { return r.pos }
func (r *Runner) Grid() *grid.Grid          { return r.grid }

// Done reports whether the runner has left the Running state.
func (r *Runner) Done() bool { return r.state != StateRunning }

// Err returns the error that aborted the trial, if any.
func (r *Runner) Err() error { return r.err }

// Result returns the frozen trial result once the trial has terminated.
func (r *Runner) Result() (models.TrialResult, bool) {
	if r.state != StateAllClean && r.state != StateStepLimit {
		return models.TrialResult{}, false
	}
	return r.result, true
}

// Step performs one decide/apply/terminate cycle. After termination it
// returns ErrTrialTerminated, after an abort it returns the abort error;
// neither touches any state.
func (r *Runner) Step() (models.StepRecord, error) {
	switch r.state {
	case StateRunning:
	case StateAborted:
		return models.StepRecord{}, r.err
	default:
		return models.StepRecord{}, models.ErrTrialTerminated
	}

	dirty, err := r.grid.IsDirty(r.pos.X, r.pos.Y)
	if err != nil {
		return r.abort(err)
	}

	act := r.agent.Decide(agent.Percept{Position: r.pos, Bounds: r.grid.Bounds(), Dirty: dirty}, r.rng)
	rec := models.StepRecord{Action: act}

	switch act.Kind {
	case models.ActionClean:
		removed, err := r.grid.Clean(r.pos.X, r.pos.Y)
		if err != nil {
			return r.abort(err)
		}
		if removed {
			r.cleans++
		}
		rec.Removed = removed
	case models.ActionMove:
		next := r.pos.Step(act.Direction)
		if !r.grid.Bounds().Contains(next) {
			return r.abort(fmt.Errorf("agent %s moved %s from %s: %w",
				r.agent.Kind(), act.Direction, r.pos, &models.OutOfBoundsError{Pos: next, Bounds: r.grid.Bounds()}))
		}
		r.pos = next
		r.moves++
	default:
		return r.abort(fmt.Errorf("agent %s returned unknown action %s", r.agent.Kind(), act))
	}

	r.steps++
	rec.Step = r.steps
	rec.Position = r.pos
	rec.Remaining = r.grid.Remaining()

	r.checkTermination()
	return rec, nil
}

// Steps returns a lazy sequence of step records. Each pull performs exactly
// one step; the sequence ends when the trial terminates or aborts, in which
// case the abort error is yielded last.
func (r *Runner) Steps() iter.Seq2[models.StepRecord, error] {
	return func(yield func(models.StepRecord, error) bool) {
		for !r.Done() {
			rec, err := r.Step()
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Run steps until termination and returns the trial result. The context is
// checked between steps.
func (r *Runner) Run(ctx context.Context) (models.TrialResult, error) {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return models.TrialResult{}, err
		}
		if _, err := r.Step(); err != nil {
			return models.TrialResult{}, err
		}
	}
	if r.err != nil {
		return models.TrialResult{}, r.err
	}
	return r.result, nil
}

func (r *Runner) checkTermination() {
	if r.state != StateRunning {
		return
	}
	var reason models.TerminationReason
	switch {
	case r.grid.IsFullyClean():
		r.state = StateAllClean
		reason = models.TerminatedAllClean
	case r.steps >= r.stepLimit:
		r.state = StateStepLimit
		reason = models.TerminatedStepLimit
	default:
		return
	}

	r.result = models.TrialResult{
		Agent:         r.agent.Kind(),
		Moves:         r.moves,
		Cleans:        r.cleans,
		Steps:         r.steps,
		InitialDirt:   r.grid.InitialDirt(),
		RemainingDirt: r.grid.Remaining(),
		TerminatedBy:  reason,
		Efficiency:    models.Efficiency(r.cleans, r.steps),
	}
}

func (r *Runner) abort(err error) (models.StepRecord, error) {
	r.state = StateAborted
	r.err = err
	return models.StepRecord{}, err
}

// TrialSources returns the independent random sources of trial index i under
// seed: one for the dirt layout and one for agent decisions. Every agent kind
// running trial i sees the same layout.
func TrialSources(seed uint64, i int) (gridRNG, agentRNG *rand.Rand) {
	stream := uint64(i) * 2
	return rand.New(rand.NewPCG(seed, stream)), rand.New(rand.NewPCG(seed, stream+1))
}

// DefaultTrialExecutor runs a single trial in-process.
type DefaultTrialExecutor struct{}

// NewTrialExecutor creates a new trial executor.
func NewTrialExecutor() *DefaultTrialExecutor {
	return &DefaultTrialExecutor{}
}

// Execute builds a fresh grid, agent and runner for the trial and runs it to
// completion. An out-of-bounds contract violation is reported in the
// result's Error field; configuration and context errors are returned.
func (e *DefaultTrialExecutor) Execute(ctx context.Context, trial models.Trial) (*models.TrialResult, error) {
	if err := trial.World.Validate(); err != nil {
		return nil, err
	}

	gridRNG, agentRNG := TrialSources(trial.Seed, trial.Index)
	g, err := grid.New(trial.World.Width, trial.World.Height, trial.World.DirtProbability, gridRNG)
	if err != nil {
		return nil, fmt.Errorf("creating grid: %w", err)
	}
	a, err := agent.New(trial.Agent, g.Bounds())
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}
	runner, err := NewRunner(g, a, agentRNG, trial.World.StepLimit)
	if err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}

	slog.Debug("starting trial", "trial", trial.ID, "initial_dirt", g.InitialDirt())

	res, err := runner.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		slog.Debug("trial aborted", "trial", trial.ID, "error", err)
		res = models.TrialResult{
			Agent:         trial.Agent,
			InitialDirt:   g.InitialDirt(),
			RemainingDirt: g.Remaining(),
			Error: &models.TrialError{
				Type:    models.ClassifyError(err),
				Message: err.Error(),
			},
		}
	} else {
		slog.Debug("trial finished",
			"trial", trial.ID,
			"terminated_by", res.TerminatedBy,
			"steps", res.Steps,
			"cleans", res.Cleans,
		)
	}

	res.ID = trial.ID
	res.World = trial.World.Name
	res.Index = trial.Index
	return &res, nil
}
