package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spachava753/vacuumsim/internal/models"
)

const (
	defaultJobsDir   = "jobs"
	defaultSeed      = 1
	defaultTrials    = 20
	defaultLogLevel  = "info"
	defaultWorldName = "default"
)

// DefaultWorld returns the 8x8 world with 30% dirt and a 200 step limit.
func DefaultWorld() models.WorldConfig {
	return models.WorldConfig{
		Name:            defaultWorldName,
		Width:           8,
		Height:          8,
		DirtProbability: 0.3,
		StepLimit:       200,
	}
}

// DefaultJobConfig returns a JobConfig with default values.
func DefaultJobConfig() models.JobConfig {
	return models.JobConfig{
		JobsDir:           defaultJobsDir,
		Seed:              defaultSeed,
		NTrials:           defaultTrials,
		NConcurrentTrials: 1,
		LogLevel:          defaultLogLevel,
	}
}

// LoadJobConfig loads and parses a job.yaml file. Relative world paths are
// resolved against the directory of the job file.
func LoadJobConfig(path string) (models.JobConfig, error) {
	cfg := DefaultJobConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading job config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing job config: %w", err)
	}

	// Validate world refs
	for i, ref := range cfg.Worlds {
		hasPath := ref.Path != nil && *ref.Path != ""
		if !hasPath && !ref.IsInline() {
			return cfg, fmt.Errorf("world[%d]: must specify either 'path' or inline dimensions", i)
		}
		if hasPath && ref.IsInline() {
			return cfg, fmt.Errorf("world[%d]: cannot specify both 'path' and inline dimensions", i)
		}
		if hasPath && !filepath.IsAbs(*ref.Path) {
			abs := filepath.Join(filepath.Dir(path), *ref.Path)
			cfg.Worlds[i].Path = &abs
		}
	}

	// Apply defaults for missing values
	if cfg.JobsDir == "" {
		cfg.JobsDir = defaultJobsDir
	}
	if cfg.NTrials == 0 {
		cfg.NTrials = defaultTrials
	}
	if cfg.NConcurrentTrials == 0 {
		cfg.NConcurrentTrials = 1
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

// ResolveWorlds turns the job's world refs into validated world configs.
// Inline refs inherit unset fields from DefaultWorld. A job without worlds
// runs DefaultWorld.
func ResolveWorlds(cfg models.JobConfig) ([]models.WorldConfig, error) {
	if len(cfg.Worlds) == 0 {
		return []models.WorldConfig{DefaultWorld()}, nil
	}

	worlds := make([]models.WorldConfig, 0, len(cfg.Worlds))
	seen := make(map[string]bool)
	for i, ref := range cfg.Worlds {
		var w models.WorldConfig
		if ref.Path != nil && *ref.Path != "" {
			loaded, err := LoadWorldConfigFromPath(*ref.Path)
			if err != nil {
				return nil, fmt.Errorf("world[%d]: %w", i, err)
			}
			w = loaded
		} else {
			w = DefaultWorld()
			w.Name = ""
			if ref.Width != 0 {
				w.Width = ref.Width
			}
			if ref.Height != 0 {
				w.Height = ref.Height
			}
			if ref.DirtProbability != nil {
				w.DirtProbability = *ref.DirtProbability
			}
			if ref.StepLimit != 0 {
				w.StepLimit = ref.StepLimit
			}
		}

		if ref.Name != "" {
			w.Name = ref.Name
		}
		if w.Name == "" {
			w.Name = fmt.Sprintf("world-%d", i+1)
		}
		if seen[w.Name] {
			return nil, fmt.Errorf("world[%d]: duplicate world name %q", i, w.Name)
		}
		seen[w.Name] = true

		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("world %q: %w", w.Name, err)
		}
		worlds = append(worlds, w)
	}
	return worlds, nil
}
