package models

import "time"

// JobConfig represents the parsed job.yaml configuration.
type JobConfig struct {
	Name              *string    `yaml:"name,omitempty" json:"name,omitempty"`
	JobsDir           string     `yaml:"jobs_dir" json:"jobs_dir"`
	Seed              uint64     `yaml:"seed" json:"seed"`
	NTrials           int        `yaml:"n_trials" json:"n_trials"`
	NConcurrentTrials int        `yaml:"n_concurrent_trials" json:"n_concurrent_trials"`
	LogLevel          string     `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Worlds            []WorldRef `yaml:"worlds" json:"worlds"`
}

// WorldRef specifies a world either inline or by the path of a world.toml.
type WorldRef struct {
	Name            string   `yaml:"name,omitempty" json:"name,omitempty"`
	Path            *string  `yaml:"path,omitempty" json:"path,omitempty"`
	Width           int      `yaml:"width,omitempty" json:"width,omitempty"`
	Height          int      `yaml:"height,omitempty" json:"height,omitempty"`
	DirtProbability *float64 `yaml:"dirt_probability,omitempty" json:"dirt_probability,omitempty"`
	StepLimit       int      `yaml:"step_limit,omitempty" json:"step_limit,omitempty"`
}

// IsInline reports whether any inline world field is set.
func (r WorldRef) IsInline() bool {
	return r.Width != 0 || r.Height != 0 || r.DirtProbability != nil || r.StepLimit != 0
}

// ComparisonConfig is the input of one comparison run.
type ComparisonConfig struct {
	World             WorldConfig
	NTrials           int
	NConcurrentTrials int
	Seed              uint64
}

// Validate rejects configurations before any trial starts.
func (c ComparisonConfig) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if c.NTrials <= 0 {
		return Invalidf("trial count must be positive, got %d", c.NTrials)
	}
	return nil
}

// AggregateResult summarises every trial of one agent kind.
type AggregateResult struct {
	Agent              AgentKind     `json:"agent"`
	TotalTrials        int           `json:"total_trials"`
	CompletedTrials    int           `json:"completed_trials"`
	FailedTrials       int           `json:"failed_trials"`
	MeanMoves          float64       `json:"mean_moves"`
	VarianceMoves      float64       `json:"variance_moves"`
	MeanEfficiency     float64       `json:"mean_efficiency"`
	VarianceEfficiency float64       `json:"variance_efficiency"`
	MeanSteps          float64       `json:"mean_steps"`
	AllCleanRate       float64       `json:"all_clean_rate"`
	Trials             []TrialResult `json:"trials"`
	Failures           []TrialResult `json:"failures,omitempty"`
}

// Comparison holds the aggregate of both agent architectures for one world.
type Comparison struct {
	World      WorldConfig     `json:"world"`
	Seed       uint64          `json:"seed"`
	NTrials    int             `json:"n_trials"`
	Reflex     AggregateResult `json:"reflex"`
	ModelBased AggregateResult `json:"model_based"`
}

// JobResult contains every comparison of a job run.
type JobResult struct {
	RunID            string       `json:"run_id"`
	JobName          string       `json:"job_name"`
	Seed             uint64       `json:"seed"`
	Cancelled        bool         `json:"cancelled"`
	FailedTrials     int          `json:"failed_trials"`
	TotalDurationSec float64      `json:"total_duration_sec"`
	StartedAt        time.Time    `json:"started_at"`
	EndedAt          time.Time    `json:"ended_at"`
	Comparisons      []Comparison `json:"comparisons"`
}
