// Package config holds simulation configuration: the constructor
// arguments the core model accepts, loadable from a TOML file or built up
// through a fluent chain, following this codebase's builder-style
// construction pattern.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/avtools/airfieldsim/internal/movement"
)

// ErrInvalidWindDirection is returned when an unsupported wind direction is
// configured.
var ErrInvalidWindDirection = errors.New("config: wind_direction must be \"07\" or \"25\"")

// ErrInvalidArrivalRate is returned when the arrival rate falls outside
// [0,1].
var ErrInvalidArrivalRate = errors.New("config: arrival_rate must be between 0 and 1")

// Config is the full set of constructor arguments for a simulation run.
type Config struct {
	NumArrivingAirplanes int     `toml:"num_arriving_airplanes"`
	WindDirection        string  `toml:"wind_direction"`
	ArrivalRate          float64 `toml:"arrival_rate"`
	NodesFile            string  `toml:"nodes_file"`
	EdgesFile            string  `toml:"edges_file"`

	Seed          uint64 `toml:"seed"`
	MaxTicks      int    `toml:"max_ticks"`
	PathCacheSize int    `toml:"path_cache_size"`

	Log LogConfig `toml:"log"`

	durations movement.DurationTable
}

// LogConfig configures the ambient logging stack.
type LogConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file_path"`
}

// Default returns the baseline configuration: five arrivals, wind "07",
// a 0.1 per-tick arrival probability, no topology files set.
func Default() Config {
	return Config{
		NumArrivingAirplanes: 5,
		WindDirection:        "07",
		ArrivalRate:          0.1,
		Seed:                 1,
		MaxTicks:             10_000,
		PathCacheSize:        256,
		Log:                  LogConfig{Level: "info"},
		durations:            movement.DefaultDurationTable(),
	}
}

// Load reads a TOML configuration file, applying it on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	if cfg.durations == (movement.DurationTable{}) {
		cfg.durations = movement.DefaultDurationTable()
	}
	return cfg, cfg.Validate()
}

// WithArrivals sets the number of arrivals to spawn and returns the
// config, for fluent construction.
func (c Config) WithArrivals(n int) Config {
	c.NumArrivingAirplanes = n
	return c
}

// WithWind sets the active wind direction ("07" or "25").
func (c Config) WithWind(direction string) Config {
	c.WindDirection = direction
	return c
}

// WithArrivalRate sets the per-tick Bernoulli spawn probability.
func (c Config) WithArrivalRate(rate float64) Config {
	c.ArrivalRate = rate
	return c
}

// WithTopology sets the nodes and edges file paths.
func (c Config) WithTopology(nodesFile, edgesFile string) Config {
	c.NodesFile = nodesFile
	c.EdgesFile = edgesFile
	return c
}

// WithSeed sets the deterministic RNG seed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

// WithDurations overrides the movement duration table.
func (c Config) WithDurations(d movement.DurationTable) Config {
	c.durations = d
	return c
}

// Durations returns the movement duration table, defaulted if unset.
func (c Config) Durations() movement.DurationTable {
	if c.durations == (movement.DurationTable{}) {
		return movement.DefaultDurationTable()
	}
	return c.durations
}

// Validate checks the configuration against the external-interface
// constraints: a non-negative arrival count, a recognized wind direction,
// and an arrival rate in [0,1].
func (c Config) Validate() error {
	if c.NumArrivingAirplanes < 0 {
		return errors.New("config: num_arriving_airplanes must be non-negative")
	}
	if c.WindDirection != "07" && c.WindDirection != "25" {
		return fmt.Errorf("%w: got %q", ErrInvalidWindDirection, c.WindDirection)
	}
	if c.ArrivalRate < 0 || c.ArrivalRate > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidArrivalRate, c.ArrivalRate)
	}
	if c.NodesFile == "" || c.EdgesFile == "" {
		return errors.New("config: nodes_file and edges_file are required")
	}
	if _, err := os.Stat(c.NodesFile); err != nil {
		return fmt.Errorf("config: nodes_file: %w", err)
	}
	if _, err := os.Stat(c.EdgesFile); err != nil {
		return fmt.Errorf("config: edges_file: %w", err)
	}
	return nil
}
