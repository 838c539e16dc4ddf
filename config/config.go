// Package config provides configuration loading and access for the effect.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Frame     FrameConfig     `yaml:"frame"`
	Grass     GrassConfig     `yaml:"grass"`
	Particles ParticlesConfig `yaml:"particles"`
	Noise     NoiseConfig     `yaml:"noise"`
	Player    PlayerConfig    `yaml:"player"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds preview window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FrameConfig holds frame timing.
type FrameConfig struct {
	DT float64 `yaml:"dt"` // seconds per headless frame
}

// GrassConfig holds the wind/velocity texture parameters.
type GrassConfig struct {
	TextureSize   int        `yaml:"texture_size"`   // side of the square wind/velocity textures
	TileDimension float64    `yaml:"tile_dimension"` // blades per tile side
	TileDensity   float64    `yaml:"tile_density"`   // world units per blade
	BladeHeight   float64    `yaml:"blade_height"`   // player above this does not push grass
	WindVX        float64    `yaml:"wind_vx"`        // [-1, 1]
	WindVZ        float64    `yaml:"wind_vz"`        // [-1, 1]
	DecayAmount   float64    `yaml:"decay_amount"`   // velocity magnitude divisor per frame
	ScaleX        float64    `yaml:"scale_x"`        // footprint width multiplier
	ScaleZ        float64    `yaml:"scale_z"`        // footprint depth multiplier
	Offset        [3]float64 `yaml:"offset"`         // tile origin in world space
}

// ParticlesConfig holds airborne particle parameters.
type ParticlesConfig struct {
	Count         int        `yaml:"count"`
	GridScale     float64    `yaml:"grid_scale"`     // XZ extent of spawn offsets around the player
	ParticleScale float64    `yaml:"particle_scale"` // rendered size
	Direction     [3]float64 `yaml:"direction"`      // drift direction, normalized on load
}

// NoiseConfig selects the noise sample source.
type NoiseConfig struct {
	Kind       string  `yaml:"kind"`        // simplex, wav or white
	Path       string  `yaml:"path"`        // WAV file for kind=wav
	NumSamples int     `yaml:"num_samples"` // samples to generate (0 = whole file for wav)
	Frequency  float64 `yaml:"frequency"`   // simplex sampling step
	Seed       int64   `yaml:"seed"`
}

// PlayerConfig holds the host player body.
type PlayerConfig struct {
	Start     [3]float64 `yaml:"start"`      // AABB min corner
	Size      [3]float64 `yaml:"size"`       // AABB extent
	WalkSpeed float64    `yaml:"walk_speed"` // world units per second
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Frame.DT as float32
	MaxDim    float32 // world extent covered by the grass textures
	NumPixels int     // TextureSize^2
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the frame kernels cannot run with.
func (c *Config) validate() error {
	g := c.Grass
	if g.TextureSize <= 0 {
		return fmt.Errorf("grass.texture_size must be positive, got %d", g.TextureSize)
	}
	if g.TileDimension <= 0 || g.TileDensity <= 0 {
		return fmt.Errorf("grass tile dimension and density must be positive, got %v x %v", g.TileDimension, g.TileDensity)
	}
	if g.DecayAmount == 0 {
		return fmt.Errorf("grass.decay_amount must be non-zero")
	}
	if g.WindVX < -1 || g.WindVX > 1 || g.WindVZ < -1 || g.WindVZ > 1 {
		return fmt.Errorf("grass wind direction must lie in [-1, 1], got (%v, %v)", g.WindVX, g.WindVZ)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("particles.count must not be negative, got %d", c.Particles.Count)
	}
	switch c.Noise.Kind {
	case "simplex", "white":
		if c.Noise.NumSamples <= 0 {
			return fmt.Errorf("noise.num_samples must be positive for kind %q", c.Noise.Kind)
		}
	case "wav":
		if c.Noise.Path == "" {
			return fmt.Errorf("noise.path is required for kind wav")
		}
	default:
		return fmt.Errorf("unknown noise.kind %q", c.Noise.Kind)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Frame.DT)
	c.Derived.MaxDim = float32(c.Grass.TileDimension * c.Grass.TileDensity)
	c.Derived.NumPixels = c.Grass.TextureSize * c.Grass.TextureSize
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
