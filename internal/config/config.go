// Package config loads calculator settings from YAML with environment
// overrides for the Gemini credentials.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	ModeBasic      = "basic"
	ModeScientific = "scientific"
	ModeGraphical  = "graphical"
)

var (
	ErrInvalidStep  = errors.New("plot step must be positive")
	ErrInvertedPlot = errors.New("plot x_start must be below x_end")
	ErrUnknownTheme = errors.New("unknown theme")
	ErrUnknownMode  = errors.New("unknown mode")
)

// Config is the root configuration.
type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	Plot    PlotConfig    `yaml:"plot"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the word problem solver.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// PlotConfig is the sampling range and export size, in inches.
type PlotConfig struct {
	XStart float64 `yaml:"x_start"`
	XEnd   float64 `yaml:"x_end"`
	Step   float64 `yaml:"step"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type UIConfig struct {
	Theme string `yaml:"theme"` // dark, light
	Mode  string `yaml:"mode"`  // basic, scientific, graphical
}

type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:   "gemini-2.5-flash-preview-05-20",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: "60s",
		},
		Plot: PlotConfig{
			XStart: -2 * math.Pi,
			XEnd:   2 * math.Pi,
			Step:   0.1,
			Width:  8,
			Height: 5,
		},
		UI: UIConfig{
			Theme: ThemeDark,
			Mode:  ModeScientific,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/calc/config.yaml, falling back to
// the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "calc", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("CALC_GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if url := os.Getenv("CALC_GEMINI_BASE_URL"); url != "" {
		c.Gemini.BaseURL = url
	}
	if model := os.Getenv("CALC_GEMINI_MODEL"); model != "" {
		c.Gemini.Model = model
	}
}

// Validate rejects settings the calculator cannot run with.
func (c *Config) Validate() error {
	if c.Plot.Step <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidStep, c.Plot.Step)
	}
	if c.Plot.XStart >= c.Plot.XEnd {
		return fmt.Errorf("%w: %v >= %v", ErrInvertedPlot, c.Plot.XStart, c.Plot.XEnd)
	}
	switch c.UI.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("%w %q", ErrUnknownTheme, c.UI.Theme)
	}
	switch c.UI.Mode {
	case ModeBasic, ModeScientific, ModeGraphical:
	default:
		return fmt.Errorf("%w %q", ErrUnknownMode, c.UI.Mode)
	}
	if _, err := c.GeminiTimeout(); err != nil {
		return err
	}
	return nil
}

// GeminiTimeout parses gemini.timeout. Empty means zero, which the API
// client replaces with its default.
func (c *Config) GeminiTimeout() (time.Duration, error) {
	if c.Gemini.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid gemini timeout: %w", err)
	}
	return d, nil
}
