package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cpxplay/internal/analysis"
	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/config"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/label"
	"github.com/san-kum/cpxplay/internal/metrics"
	"github.com/san-kum/cpxplay/internal/playback"
	"github.com/san-kum/cpxplay/internal/timeline"
	"github.com/san-kum/cpxplay/internal/tui"
	"github.com/san-kum/cpxplay/internal/viz"
)

var (
	configFile string
	preset     string
	intervalMs float64
	lenient    bool
	indexed    bool
	coldHex    string
	hotHex     string
	clamp      bool
	fps        int
	speed      float64
	theme      string
	logLevel   string
	logFile    string
	jsonLogs   bool
	noColor    bool
	quitOnEnd  bool
	every      int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "cpxplay [file]",
		Short:        "replay recorded board telemetry",
		Args:         cobra.MaximumNArgs(1),
		RunE:         runPlay,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&intervalMs, "interval", config.DefaultIntervalMs, "ms between samples")
	pf.BoolVar(&lenient, "lenient", false, "read unparseable fields as NaN instead of failing")
	pf.BoolVar(&indexed, "indexed", false, "input rows start with a sequence number column")
	pf.StringVar(&coldHex, "cold", config.DefaultCold, "color for the coldest sample")
	pf.StringVar(&hotHex, "hot", config.DefaultHot, "color for the hottest sample")
	pf.BoolVar(&clamp, "clamp", false, "clamp colors to the cold/hot range")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.BoolVar(&jsonLogs, "json-logs", false, "emit logs as json")

	addPlaybackFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play [file]",
		Short: "replay with the interactive 3d view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	addPlaybackFlags(playCmd)
	playCmd.Flags().BoolVar(&quitOnEnd, "quit-on-end", false, "exit when playback finishes")

	plainCmd := &cobra.Command{
		Use:   "plain [file]",
		Short: "replay with plain ansi side views",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlain,
	}
	addPlaybackFlags(plainCmd)
	plainCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ansi colors")

	framesCmd := &cobra.Command{
		Use:   "frames [file]",
		Short: "print derived frames as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFrames,
	}
	framesCmd.Flags().IntVar(&every, "every", 1, "print every nth frame")

	labelCmd := &cobra.Command{
		Use:   "label [file] [ms]",
		Short: "print the label shown at a playback time",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runLabel,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "plot telemetry channels",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "frequency analysis of pitch and roll",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "summary metrics for a recording",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTERVAL\tSPEED\tFPS\tCOLD\tHOT\tSTRICT")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%s\t%s\t%t\n",
					name, p.IntervalMs, p.Playback.Speed, p.Playback.FPS,
					p.Colors.Cold, p.Colors.Hot, p.Strict)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the resolved settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "cpxplay.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := resolveConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(playCmd, plainCmd, framesCmd, labelCmd, plotCmd, analyzeCmd, statsCmd, presetsCmd, configCmd)
	return rootCmd
}

func addPlaybackFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	f.Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed multiplier")
	f.StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, tl, log, done, err := prepare(cmd, args, true)
	if err != nil {
		return err
	}
	defer done()

	return viz.Run(tl, viz.Options{
		Title:     titleFor(cfg.Input),
		FPS:       cfg.Playback.FPS,
		Speed:     cfg.Playback.Speed,
		Theme:     cfg.Playback.Theme,
		QuitOnEnd: quitOnEnd,
		Log:       log,
	})
}

func runPlain(cmd *cobra.Command, args []string) error {
	cfg, tl, log, done, err := prepare(cmd, args, false)
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	r := tui.NewLiveRenderer(out, titleFor(cfg.Input))
	if noColor {
		r.DisableColor()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := playback.NewScheduler(tl, r, r, playback.WithLogger(log))
	d := playback.NewDriver(cfg.Playback.FPS, cfg.Playback.Speed, log)

	r.Start()
	err = d.Run(ctx, s)
	r.Stop()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runFrames(cmd *cobra.Command, args []string) error {
	_, tl, _, done, err := prepare(cmd, args, false)
	if err != nil {
		return err
	}
	defer done()

	step := every
	if step < 1 {
		step = 1
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMS\tX\tY\tZ\tPITCH\tROLL\tTEMP F\tLIGHT\tCOLOR")
	for i := 0; i < tl.Len(); i += step {
		f := tl.At(i)
		fmt.Fprintf(w, "%d\t%.0f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			f.TimeRecorded, f.TimeLapse,
			f.Acceleration.X, f.Acceleration.Y, f.Acceleration.Z,
			f.Pitch, f.Roll, f.TemperatureF, f.Light,
			colorscale.Hex(f.Color),
		)
	}
	return w.Flush()
}

func runLabel(cmd *cobra.Command, args []string) error {
	var at float64
	if len(args) == 2 {
		if _, err := fmt.Sscan(args[1], &at); err != nil {
			return fmt.Errorf("invalid time %q: %w", args[1], err)
		}
	}

	_, tl, _, done, err := prepare(cmd, args[:1], false)
	if err != nil {
		return err
	}
	defer done()

	f, ok := tl.Nearest(at)
	if !ok {
		return fmt.Errorf("no frame within %.0f ms of %.0f ms", tl.IntervalMs()/2, at)
	}
	label.Write(cmd.OutOrStdout(), f)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, tl, _, done, err := prepare(cmd, args, false)
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "input: %s\n", titleFor(cfg.Input))
	fmt.Fprintf(out, "frames: %d (%.1fs)\n\n", tl.Len(), tl.DurationMs()/1000)

	channels := []struct {
		caption string
		fn      func(frame.Frame) float64
	}{
		{"temperature (F)", func(f frame.Frame) float64 { return f.TemperatureF }},
		{"pitch (deg)", func(f frame.Frame) float64 { return f.Pitch }},
		{"roll (deg)", func(f frame.Frame) float64 { return f.Roll }},
		{"light (lumens)", func(f frame.Frame) float64 { return f.Light }},
	}

	for _, ch := range channels {
		data := finite(tl.Series(ch.fn))
		if len(data) == 0 {
			fmt.Fprintf(out, "%s: no finite values\n\n", ch.caption)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ch.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, tl, _, done, err := prepare(cmd, args, false)
	if err != nil {
		return err
	}
	defer done()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n\n", titleFor(cfg.Input))

	for _, axis := range []struct {
		name string
		fn   func(frame.Frame) float64
	}{
		{"pitch", func(f frame.Frame) float64 { return f.Pitch }},
		{"roll", func(f frame.Frame) float64 { return f.Roll }},
	} {
		series := tl.Series(axis.fn)
		freqs, ps := analysis.Spectrum(series, tl.IntervalMs())
		if len(ps) < 2 {
			fmt.Fprintf(out, "%s: not enough frames\n\n", axis.name)
			continue
		}

		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s power spectrum (0-%.1f hz)", axis.name, freqs[len(freqs)-1])),
		)
		fmt.Fprintln(out, graph)

		hz, power := analysis.DominantFrequency(series, tl.IntervalMs())
		fmt.Fprintf(out, "dominant frequency: %.3f hz (power %.2f)\n", hz, power)
		if hz > 0 {
			fmt.Fprintf(out, "period: %.3f s\n", 1.0/hz)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, tl, _, done, err := prepare(cmd, args, false)
	if err != nil {
		return err
	}
	defer done()

	return writeStats(cmd.OutOrStdout(), cfg.Input, tl)
}

func writeStats(out io.Writer, input string, tl *timeline.Timeline) error {
	first := tl.First()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "input\t%s\n", titleFor(input))
	fmt.Fprintf(w, "frames\t%d\n", tl.Len())
	fmt.Fprintf(w, "duration\t%.2fs\n", tl.DurationMs()/1000)
	fmt.Fprintf(w, "min temp\t%.2f F (%s)\n", first.MinimumTemperature.Value, colorscale.Hex(first.MinimumTemperature.Color))
	fmt.Fprintf(w, "max temp\t%.2f F (%s)\n", first.MaximumTemperature.Value, colorscale.Hex(first.MaximumTemperature.Color))
	for _, r := range metrics.Evaluate(tl.Frames(), metrics.Defaults()...) {
		fmt.Fprintf(w, "%s\t%.3f\n", r.Name, r.Value)
	}
	return w.Flush()
}

func titleFor(input string) string {
	if input == "-" || input == "" {
		return "stdin"
	}
	return input
}

func finite(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
