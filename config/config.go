// Package config provides configuration loading and access for the stirring
// mode generator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/turbstir/stir"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrMaxModes reports a negative mode capacity.
var ErrMaxModes = errors.New("config: max_modes must be non-negative")

// Config holds all generator configuration parameters.
type Config struct {
	Box      BoxConfig      `yaml:"box"`
	Stirring StirringConfig `yaml:"stirring"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
	Output   OutputConfig   `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// BoxConfig holds the periodic domain extents.
type BoxConfig struct {
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
	Lz float64 `yaml:"lz"`
}

// StirringConfig holds the driving-field parameters.
type StirringConfig struct {
	Energy           float64 `yaml:"energy"`            // Energy injection rate
	DecayTime        float64 `yaml:"decay_time"`        // OU correlation/decay time
	StirMin          float64 `yaml:"stir_min"`          // Lower wavenumber shell bound
	StirMax          float64 `yaml:"stir_max"`          // Upper wavenumber shell bound
	NDim             int     `yaml:"ndim"`              // Spatial dimensionality (1-3)
	SolenoidalWeight float64 `yaml:"solenoidal_weight"` // 1=divergence-free, 0=compressive
	MaxModes         int     `yaml:"max_modes"`         // Mode table capacity
	Seed             int64   `yaml:"seed"`              // Sequential generator seed
}

// SpectrumConfig selects the spectral form and its shape parameters.
type SpectrumConfig struct {
	Form        string  `yaml:"form"`          // band | parabolic | powerlaw
	PowerLawExp float64 `yaml:"power_law_exp"` // powerlaw only
	AnglesExp   float64 `yaml:"angles_exp"`    // powerlaw only
	LatticeMax  int     `yaml:"lattice_max"`   // Enumeration bound (0 = default 256)
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Output directory for CSV logs and config snapshot ("" = disabled)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Form stir.SpectralForm // Spectrum.Form parsed
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
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
// If path is empty, only embedded defaults are used. The result is validated.
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	form, err := stir.ParseSpectralForm(c.Spectrum.Form)
	if err != nil {
		return err
	}
	c.Derived.Form = form
	return nil
}

// StirParams assembles the generator parameters from the loaded config.
func (c *Config) StirParams() stir.Params {
	return stir.Params{
		Lx:               c.Box.Lx,
		Ly:               c.Box.Ly,
		Lz:               c.Box.Lz,
		NDim:             c.Stirring.NDim,
		Energy:           c.Stirring.Energy,
		DecayTime:        c.Stirring.DecayTime,
		StirMin:          c.Stirring.StirMin,
		StirMax:          c.Stirring.StirMax,
		SolenoidalWeight: c.Stirring.SolenoidalWeight,
		SpectralForm:     c.Derived.Form,
		PowerLawExp:      c.Spectrum.PowerLawExp,
		AnglesExp:        c.Spectrum.AnglesExp,
		LatticeMax:       c.Spectrum.LatticeMax,
	}
}

// Validate fails fast on configuration errors, before any generation runs.
func (c *Config) Validate() error {
	if c.Stirring.MaxModes < 0 {
		return fmt.Errorf("%w: got %d", ErrMaxModes, c.Stirring.MaxModes)
	}
	return c.StirParams().Validate()
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
