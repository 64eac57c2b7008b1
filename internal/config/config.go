// Package config handles region mapper configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all mapper settings.
type Config struct {
	Mapper    MapperConfig    `yaml:"mapper"`
	Generator GeneratorConfig `yaml:"generator"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MapperConfig holds labeling settings.
type MapperConfig struct {
	SeedRow    int  `yaml:"seed_row"`
	SeedCol    int  `yaml:"seed_col"`
	StrictSeed bool `yaml:"strict_seed"` // Fail instead of skipping an unusable seed
}

// GeneratorConfig holds random grid settings.
type GeneratorConfig struct {
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	ObstacleRatio float64 `yaml:"obstacle_ratio"`
	Seed          int64   `yaml:"seed"` // 0 = time based
}

// RenderConfig holds output settings.
type RenderConfig struct {
	CellSize   int    `yaml:"cell_size"`
	ShowLabels bool   `yaml:"show_labels"`
	Text       bool   `yaml:"text"`   // Print text tables to stdout
	Output     string `yaml:"output"` // .png, .bmp, .yaml, .txt or .gat; empty = none
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mapper: MapperConfig{
			SeedRow: 0,
			SeedCol: 0,
		},
		Generator: GeneratorConfig{
			Rows:          10,
			Cols:          15,
			ObstacleRatio: 0.35,
		},
		Render: RenderConfig{
			CellSize:   24,
			ShowLabels: true,
			Text:       true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Generator.Rows <= 0 || c.Generator.Cols <= 0 {
		return fmt.Errorf("%w: generator size %dx%d", ErrInvalid, c.Generator.Rows, c.Generator.Cols)
	}
	if c.Generator.ObstacleRatio < 0 || c.Generator.ObstacleRatio > 1 {
		return fmt.Errorf("%w: obstacle_ratio %v outside [0, 1]", ErrInvalid, c.Generator.ObstacleRatio)
	}
	if c.Render.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %d", ErrInvalid, c.Render.CellSize)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
