package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/cpxplay/internal/config"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/logging"
	"github.com/san-kum/cpxplay/internal/telemetry"
	"github.com/san-kum/cpxplay/internal/timeline"
)

// resolveConfig layers the preset, the config file and any flags the user
// set explicitly, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if !config.ApplyPreset(cfg, preset) {
			return nil, fmt.Errorf("unknown preset %q (see 'cpxplay presets')", preset)
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("lenient") {
		cfg.Strict = !lenient
	}
	if flags.Changed("indexed") {
		cfg.Indexed = indexed
	}
	if flags.Changed("cold") {
		cfg.Colors.Cold = coldHex
	}
	if flags.Changed("hot") {
		cfg.Colors.Hot = hotHex
	}
	if flags.Changed("clamp") {
		cfg.Colors.Clamp = clamp
	}
	if flags.Changed("fps") {
		cfg.Playback.FPS = fps
	}
	if flags.Changed("speed") {
		cfg.Playback.Speed = speed
	}
	if flags.Changed("theme") {
		cfg.Playback.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("json-logs") {
		cfg.Log.JSON = jsonLogs
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger. Interactive views must not write to
// the terminal they draw on, so they log to the configured file or nowhere.
func newLogger(cfg *config.Config, interactive bool) (zerolog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case cfg.Log.File != "":
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		return zerolog.Nop(), closeFn, nil
	}

	return logging.Setup(cfg.Log.Level, cfg.Log.JSON, w), closeFn, nil
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file (pass one as an argument or set 'input' in the config)")
	}
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

// loadTimeline runs the whole pipeline: parse, derive, index.
func loadTimeline(cfg *config.Config, r io.Reader, log zerolog.Logger) (*timeline.Timeline, error) {
	samples, err := telemetry.NewParser(cfg.ParserOptions()...).ParseReader(r)
	if err != nil {
		return nil, err
	}

	fc, err := cfg.FrameConfig()
	if err != nil {
		return nil, err
	}
	d, err := frame.NewDeriver(fc)
	if err != nil {
		return nil, err
	}
	frames := d.Derive(samples)

	tl, err := timeline.New(frames, fc.IntervalMs)
	if err != nil {
		return nil, err
	}

	first := frames[0]
	log.Debug().
		Int("samples", len(samples)).
		Float64("duration_ms", tl.DurationMs()).
		Float64("min_f", first.MinimumTemperature.Value).
		Float64("max_f", first.MaximumTemperature.Value).
		Msg("timeline loaded")
	return tl, nil
}

// prepare resolves the configuration, sets up logging and loads the input.
// The returned cleanup must be called when the command is done.
func prepare(cmd *cobra.Command, args []string, interactive bool) (*config.Config, *timeline.Timeline, zerolog.Logger, func(), error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, zerolog.Nop(), func() {}, err
	}

	log, closeLog, err := newLogger(cfg, interactive)
	if err != nil {
		return nil, nil, zerolog.Nop(), func() {}, err
	}

	in, err := openInput(cfg.Input, cmd.InOrStdin())
	if err != nil {
		closeLog()
		return nil, nil, log, func() {}, err
	}
	defer in.Close()

	tl, err := loadTimeline(cfg, in, log)
	if err != nil {
		log.Error().Err(err).Str("input", cfg.Input).Msg("load failed")
		closeLog()
		return nil, nil, log, func() {}, err
	}
	return cfg, tl, log, closeLog, nil
}
