package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/telemetry"
)

const (
	DefaultIntervalMs = frame.DefaultIntervalMs
	DefaultFPS        = 60
	DefaultSpeed      = 1.0
	DefaultCold       = "#0000ff"
	DefaultHot        = "#ff0000"
	DefaultTheme      = "cyberpunk"
	DefaultLogLevel   = "info"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Input      string         `yaml:"input"`
	IntervalMs float64        `yaml:"interval_ms"`
	Strict     bool           `yaml:"strict"`
	Indexed    bool           `yaml:"indexed"`
	Colors     ColorConfig    `yaml:"colors"`
	Playback   PlaybackConfig `yaml:"playback"`
	Log        LogConfig      `yaml:"log"`
}

type ColorConfig struct {
	Cold  string `yaml:"cold"`
	Hot   string `yaml:"hot"`
	Clamp bool   `yaml:"clamp"`
}

type PlaybackConfig struct {
	FPS   int     `yaml:"fps"`
	Speed float64 `yaml:"speed"`
	Theme string  `yaml:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		IntervalMs: DefaultIntervalMs,
		Strict:     true,
		Colors: ColorConfig{
			Cold: DefaultCold,
			Hot:  DefaultHot,
		},
		Playback: PlaybackConfig{
			FPS:   DefaultFPS,
			Speed: DefaultSpeed,
			Theme: DefaultTheme,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in the file at path onto cfg and
// validates the result. Keys missing from the file keep their current value.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.IntervalMs > 0) {
		return fmt.Errorf("%w: interval_ms must be positive, got %v", ErrInvalid, c.IntervalMs)
	}
	if c.Playback.FPS <= 0 {
		return fmt.Errorf("%w: playback.fps must be positive, got %d", ErrInvalid, c.Playback.FPS)
	}
	if !(c.Playback.Speed > 0) {
		return fmt.Errorf("%w: playback.speed must be positive, got %v", ErrInvalid, c.Playback.Speed)
	}
	if _, err := colorscale.ParseHex(c.Colors.Cold); err != nil {
		return fmt.Errorf("%w: colors.cold %q: %v", ErrInvalid, c.Colors.Cold, err)
	}
	if _, err := colorscale.ParseHex(c.Colors.Hot); err != nil {
		return fmt.Errorf("%w: colors.hot %q: %v", ErrInvalid, c.Colors.Hot, err)
	}
	return nil
}

// FrameConfig converts the file settings into the deriver's immutable
// configuration. Call Validate first.
func (c *Config) FrameConfig() (frame.Config, error) {
	cold, err := colorscale.ParseHex(c.Colors.Cold)
	if err != nil {
		return frame.Config{}, fmt.Errorf("%w: colors.cold: %v", ErrInvalid, err)
	}
	hot, err := colorscale.ParseHex(c.Colors.Hot)
	if err != nil {
		return frame.Config{}, fmt.Errorf("%w: colors.hot: %v", ErrInvalid, err)
	}
	return frame.Config{
		IntervalMs: c.IntervalMs,
		Cold:       cold,
		Hot:        hot,
		Clamp:      c.Colors.Clamp,
	}, nil
}

func (c *Config) ParserOptions() []telemetry.Option {
	var opts []telemetry.Option
	if !c.Strict {
		opts = append(opts, telemetry.Lenient())
	}
	if c.Indexed {
		opts = append(opts, telemetry.WithIndexColumn())
	}
	return opts
}
