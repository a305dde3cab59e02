// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Scent      ScentConfig      `yaml:"scent"`
	Vision     VisionConfig     `yaml:"vision"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Species    []SpeciesConfig  `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world geometry and environment parameters.
type WorldConfig struct {
	Bound           float64     `yaml:"bound"`             // Positions clamp to [-bound, +bound] on X and Z
	WaterSources    [][]float64 `yaml:"water_sources"`     // [x, z] pairs
	WaterRange      float64     `yaml:"water_range"`       // Distance at which a source counts as nearby
	Wind            []float64   `yaml:"wind"`              // [x, y, z]
	DayLengthFactor float64     `yaml:"day_length_factor"` // Sim seconds per in-world minute
	NightStart      float64     `yaml:"night_start"`       // Hour after which it is night
	NightEnd        float64     `yaml:"night_end"`         // Hour before which it is night
}

// ScentConfig holds scent field parameters.
type ScentConfig struct {
	GridSize int     `yaml:"grid_size"`
	CellSize float64 `yaml:"cell_size"`
}

// VisionConfig holds perception parameters.
type VisionConfig struct {
	PredatorFOV  float64 `yaml:"predator_fov"`  // Degrees
	HerbivoreFOV float64 `yaml:"herbivore_fov"` // Degrees
	Range        float64 `yaml:"range"`
	NightPenalty float64 `yaml:"night_penalty"`
}

// PopulationConfig holds spawn parameters.
type PopulationConfig struct {
	MaxEntities int     `yaml:"max_entities"`
	SpawnSpread float64 `yaml:"spawn_spread"` // Initial XZ positions land in [-spread, +spread]
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per aggregation window
	OutputDir   string  `yaml:"output_dir"`
}

// TerrainConfig holds heightmap noise parameters.
type TerrainConfig struct {
	Seed       int64   `yaml:"seed"`
	Scale      float64 `yaml:"scale"`      // Base noise frequency
	Octaves    int     `yaml:"octaves"`    // FBM octaves
	Lacunarity float64 `yaml:"lacunarity"` // Frequency multiplier per octave
	Gain       float64 `yaml:"gain"`       // Amplitude multiplier per octave
	Amplitude  float64 `yaml:"amplitude"`  // Peak terrain height in metres
}

// SpeciesConfig overrides one species catalogue entry by name. Zero-valued
// fields keep the built-in default.
type SpeciesConfig struct {
	Name       string  `yaml:"name"`
	BaseHealth float64 `yaml:"base_health"`
	BaseSpeed  float64 `yaml:"base_speed"`
	BaseSize   float64 `yaml:"base_size"`
	HungerRate float64 `yaml:"hunger_rate"`
	ThirstRate float64 `yaml:"thirst_rate"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Bound32        float32      // World.Bound as float32
	WaterRange32   float32      // World.WaterRange as float32
	Wind32         [3]float32   // World.Wind as float32
	WaterSources32 [][2]float32 // World.WaterSources as float32 XZ pairs
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Bound32 = float32(c.World.Bound)
	c.Derived.WaterRange32 = float32(c.World.WaterRange)

	c.Derived.Wind32 = [3]float32{}
	for i := 0; i < len(c.World.Wind) && i < 3; i++ {
		c.Derived.Wind32[i] = float32(c.World.Wind[i])
	}

	c.Derived.WaterSources32 = make([][2]float32, 0, len(c.World.WaterSources))
	for _, ws := range c.World.WaterSources {
		if len(ws) < 2 {
			continue
		}
		c.Derived.WaterSources32 = append(c.Derived.WaterSources32,
			[2]float32{float32(ws[0]), float32(ws[1])})
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
