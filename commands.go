package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/b97tsk/almanac/internal/almanac"
	"github.com/b97tsk/almanac/internal/logging"
	"github.com/b97tsk/almanac/internal/remap"
)

type (
	_LowestResult struct {
		Mode   string `json:"mode" yaml:"mode"`
		Lowest int64  `json:"lowest" yaml:"lowest"`
	}

	_Interval struct {
		Start int64 `json:"start" yaml:"start"`
		End   int64 `json:"end" yaml:"end"`
	}

	_RangesResult struct {
		Mode      string      `json:"mode" yaml:"mode"`
		Values    int64       `json:"values" yaml:"values"`
		Lowest    *int64      `json:"lowest,omitempty" yaml:"lowest,omitempty"`
		Intervals []_Interval `json:"intervals" yaml:"intervals"`
	}

	_TraceStep struct {
		Category string `json:"category" yaml:"category"`
		Value    int64  `json:"value" yaml:"value"`
	}

	_TraceResult struct {
		Seed  int64        `json:"seed" yaml:"seed"`
		Steps []_TraceStep `json:"steps" yaml:"steps"`
	}
)

// _App carries what the subcommands share once flags and config are read.
type _App struct {
	v          *viper.Viper
	configPath string
	cfg        _Config
	logger     *slog.Logger
	closer     io.Closer
}

func (app *_App) command() *cobra.Command {
	app.v = _newViper()

	root := &cobra.Command{
		Use:   "almanac",
		Short: "Map seeds through almanac maps",
		Long: `almanac reads a seed list and a chain of category maps and reports
where the seeds end up.

Seeds are read either as single values (--mode points) or as
(start, length) pairs (--mode pairs). Settings may also come from
./almanac.yaml or ALMANAC_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default ./almanac.yaml if present)")
	flags.String("mode", _defaultMode, "read seeds as single values (points) or (start, length) pairs")
	flags.String("format", _defaultFormat, "output format: text, json or yaml")
	flags.String("log-level", _defaultLevel, "console log level: debug, info, warn or error")
	flags.String("log-file", "", "also write debug logs to this file, rotated")
	err := _bindFlags(app.v, flags, map[string]string{
		"mode":      "mode",
		"format":    "format",
		"log.level": "log-level",
		"log.file":  "log-file",
	})
	if err != nil {
		panic(err)
	}

	root.AddCommand(app.lowestCmd(), app.rangesCmd(), app.traceCmd())
	return root
}

func (app *_App) setup(cmd *cobra.Command) error {
	cfg, err := _loadConfig(app.v, app.configPath)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(cmd.ErrOrStderr(), cfg.Log.logging())
	if err != nil {
		return err
	}
	app.cfg, app.logger, app.closer = cfg, logger, closer
	logger.Debug("config loaded",
		"file", app.v.ConfigFileUsed(),
		"mode", cfg.Mode,
		"format", cfg.Format,
	)
	return nil
}

func (app *_App) close() {
	if app.closer != nil {
		app.closer.Close()
		app.closer = nil
	}
}

func (app *_App) load(cmd *cobra.Command, args []string) (*almanac.Almanac, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}
	a, err := _loadAlmanac(name, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	if err := a.CheckChain(); err != nil {
		app.logger.Warn(err.Error())
	}
	app.logger.Info("almanac loaded", "input", name, "seeds", len(a.Seeds), "maps", len(a.Stages))
	return a, nil
}

func (app *_App) pairs() bool {
	return app.cfg.Mode == "pairs"
}

// write renders v in the configured format; text handles the text format.
func (app *_App) write(cmd *cobra.Command, v interface{}, text func(w io.Writer, s _Styler)) error {
	w := cmd.OutOrStdout()
	if app.cfg.Format == "text" {
		text(w, _newStyler(w))
		return nil
	}
	return _encode(w, app.cfg.Format, v)
}

func (app *_App) lowestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lowest [FILE]",
		Short: "Print the lowest value any seed reaches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.load(cmd, args)
			if err != nil {
				return err
			}
			low, err := a.Lowest(app.pairs(), remap.WithLogger(app.logger))
			if err != nil {
				return err
			}
			result := _LowestResult{Mode: app.cfg.Mode, Lowest: low}
			return app.write(cmd, result, func(w io.Writer, s _Styler) {
				fprintln(w, s.value(low))
			})
		},
	}
}

func (app *_App) rangesCmd() *cobra.Command {
	var coalesce bool

	cmd := &cobra.Command{
		Use:   "ranges [FILE]",
		Short: "Print the intervals the seeds end up in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.load(cmd, args)
			if err != nil {
				return err
			}
			set := a.Points()
			if app.pairs() {
				if set, err = a.Pairs(); err != nil {
					return err
				}
			}

			out := a.Engine(remap.WithLogger(app.logger)).Intervals(set)
			if coalesce {
				out = out.Coalesce()
			} else {
				out = out.Sorted()
			}

			result := _RangesResult{
				Mode:      app.cfg.Mode,
				Values:    out.Len(),
				Intervals: make([]_Interval, 0, len(out)),
			}
			for _, iv := range out {
				result.Intervals = append(result.Intervals, _Interval{iv.Start, iv.End})
			}
			if low, ok := out.Min(); ok {
				result.Lowest = &low
			}

			return app.write(cmd, result, func(w io.Writer, s _Styler) {
				for _, iv := range out {
					fprintln(w, s.value(iv))
				}
				fprintf(w, "%s %s\n", s.label("values"), s.value(result.Values))
				if result.Lowest != nil {
					fprintf(w, "%s %s\n", s.label("lowest"), s.value(*result.Lowest))
				}
			})
		},
	}
	cmd.Flags().BoolVar(&coalesce, "coalesce", false, "merge touching and overlapping intervals")
	return cmd
}

func (app *_App) traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace FILE [VALUE...]",
		Short: "Show every category a value passes through",
		Long: `trace maps each VALUE through the maps one at a time and prints
the value reached in every category. Without values it traces every seed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.load(cmd, args[:1])
			if err != nil {
				return err
			}

			values := a.Seeds
			if len(args) > 1 {
				values = make([]int64, 0, len(args)-1)
				for _, arg := range args[1:] {
					v, err := strconv.ParseInt(arg, 10, 64)
					if err != nil {
						return fmt.Errorf("invalid value %q", arg)
					}
					values = append(values, v)
				}
			}

			names := _categories(a.Stages)
			e := a.Engine(remap.WithLogger(app.logger))
			results := make([]_TraceResult, 0, len(values))
			for _, v := range values {
				path := e.Trace(v)
				r := _TraceResult{Seed: v, Steps: make([]_TraceStep, len(path))}
				for i, x := range path {
					r.Steps[i] = _TraceStep{Category: names[i], Value: x}
				}
				results = append(results, r)
			}

			return app.write(cmd, results, func(w io.Writer, s _Styler) {
				for _, r := range results {
					parts := make([]string, len(r.Steps))
					for i, step := range r.Steps {
						parts[i] = s.label(step.Category) + " " + s.value(step.Value)
					}
					fprintln(w, strings.Join(parts, ", "))
				}
			})
		},
	}
}

// _categories names the category before the first map and after each one.
func _categories(stages []*remap.Table) []string {
	names := make([]string, 0, len(stages)+1)
	first := "value"
	if len(stages) > 0 && stages[0].From != "" {
		first = stages[0].From
	}
	names = append(names, first)
	for i, t := range stages {
		name := t.To
		if name == "" {
			name = "stage" + strconv.Itoa(i+1)
		}
		names = append(names, name)
	}
	return names
}
