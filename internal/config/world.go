package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/spachava753/vacuumsim/internal/models"
	"github.com/spachava753/vacuumsim/internal/util"
)

// WorldFile is the file name looked up when a world path is a directory.
const WorldFile = "world.toml"

// LoadWorldConfig loads and parses a world file from the given filesystem.
// Unset fields keep the values of DefaultWorld.
func LoadWorldConfig(fsys fs.FS, name string) (models.WorldConfig, error) {
	cfg := DefaultWorld()

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", name, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parsing %s: unknown key %q", name, undecoded[0].String())
	}

	explicit := md.IsDefined("width") || md.IsDefined("height")

	// "dimensions" is a WxH shorthand for width and height
	if !explicit && md.IsDefined("dimensions") {
		w, h, err := util.ParseDimensions(cfg.Dimensions)
		if err != nil {
			return cfg, fmt.Errorf("parsing dimensions %q: %w", cfg.Dimensions, err)
		}
		cfg.Width, cfg.Height = w, h
		explicit = true
	}

	// Legacy square grids only specify "size"
	if !explicit && md.IsDefined("size") {
		cfg.Width, cfg.Height = cfg.Size, cfg.Size
	}
	cfg.Size, cfg.Dimensions = 0, ""

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// LoadWorldConfigFromPath loads a world file, or the world.toml inside path
// when path is a directory. The world is named after the directory when the
// file does not set a name.
func LoadWorldConfigFromPath(path string) (models.WorldConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.WorldConfig{}, fmt.Errorf("reading world: %w", err)
	}

	dir, file := filepath.Dir(path), filepath.Base(path)
	if info.IsDir() {
		dir, file = path, WorldFile
	}

	cfg, err := LoadWorldConfig(os.DirFS(dir), file)
	if err != nil {
		return cfg, err
	}
	if cfg.Name == "" || cfg.Name == defaultWorldName {
		abs, err := filepath.Abs(dir)
		if err == nil {
			cfg.Name = filepath.Base(abs)
		}
	}
	return cfg, nil
}
