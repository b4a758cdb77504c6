package models

// WorldConfig describes one environment configuration shared by every trial
// of a comparison.
type WorldConfig struct {
	Name            string  `yaml:"name" toml:"name" json:"name"`
	Width           int     `yaml:"width" toml:"width" json:"width"`
	Height          int     `yaml:"height" toml:"height" json:"height"`
	DirtProbability float64 `yaml:"dirt_probability" toml:"dirt_probability" json:"dirt_probability"`
	StepLimit       int     `yaml:"step_limit" toml:"step_limit" json:"step_limit"`

	// Legacy square-grid and "WxH" forms, resolved by the config loader.
	Size       int    `yaml:"-" toml:"size,omitempty" json:"-"`
	Dimensions string `yaml:"-" toml:"dimensions,omitempty" json:"-"`
}

// Bounds returns the grid extent of the world.
func (w WorldConfig) Bounds() Bounds {
	return Bounds{Width: w.Width, Height: w.Height}
}

// Validate checks the ranges every grid and runner constructor relies on.
func (w WorldConfig) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return Invalidf("grid dimensions must be positive, got %dx%d", w.Width, w.Height)
	}
	if !(w.DirtProbability >= 0 && w.DirtProbability <= 1) {
		return Invalidf("dirt probability must be in [0,1], got %g", w.DirtProbability)
	}
	if w.StepLimit <= 0 {
		return Invalidf("step limit must be positive, got %d", w.StepLimit)
	}
	return nil
}
