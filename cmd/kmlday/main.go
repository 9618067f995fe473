package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planbiir/kmlday/internal/config"
	"github.com/planbiir/kmlday/internal/logging"
	"github.com/planbiir/kmlday/internal/pipeline"
	"github.com/planbiir/kmlday/internal/stats"
	"github.com/planbiir/kmlday/internal/track"
)

const version = "v1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var (
		cfgFile   string
		showStats bool
		statsJSON bool
	)

	root := &cobra.Command{
		Use:   "kmlday -i /path/to/track.kml",
		Short: "kmlday - Group KML track logs by date and report movement statistics",
		Example: `  kmlday -i Al-Malqa-2024-10-17_to_23.kml
  kmlday -i track.kml -o by_date.kml -r report.csv
  kmlday -i track.kml --dry-run --stats
  KMLDAY_FILTER_EXCLUDE=Draft kmlday -i track.kml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return nil
			}
			return config.ReadFile(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runPipeline(cmd, cfg, showStats, statsJSON)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.Bool("log-pretty", true, "Human-readable log output")

	f := root.Flags()
	f.StringP("input", "i", "", "Input KML file")
	f.StringP("output", "o", "", "Output KML file (default: <input>_by_date.kml)")
	f.StringP("report", "r", "", "Report CSV file (default: <input>_report.csv)")
	f.String("exclude", track.DefaultExclude, "Drop placemarks whose description contains this text")
	f.Bool("dry-run", false, "Show statistics without writing output files")
	f.Bool("progress", false, "Show a progress bar while aggregating")
	f.BoolVar(&showStats, "stats", false, "Show per-date statistics")
	f.BoolVar(&statsJSON, "stats-json", false, "Output per-date statistics as JSON")

	bindFlags(v, root, map[string]string{
		config.KeyLogLevel:  "log-level",
		config.KeyLogPretty: "log-pretty",
		config.KeyInput:     "input",
		config.KeyOutput:    "output",
		config.KeyReport:    "report",
		config.KeyExclude:   "exclude",
		config.KeyDryRun:    "dry-run",
		config.KeyProgress:  "progress",
	})

	root.AddCommand(newInspectCmd(v), newConfigCmd(v))
	return root
}

// bindFlags ties viper keys to flags so that an unset flag falls through to
// env and config file values
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func runPipeline(cmd *cobra.Command, cfg config.Config, showStats, statsJSON bool) error {
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
	logger.Debug().Interface("config", cfg).Msg("Resolved configuration")

	res, err := pipeline.New(cfg, logger, pipeline.WithProgressWriter(cmd.ErrOrStderr())).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case statsJSON:
		data, err := json.MarshalIndent(res.Rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case showStats || cfg.DryRun:
		printStats(out, res)
	}

	return nil
}

func printStats(w io.Writer, res pipeline.Result) {
	fmt.Fprintf(w, "\n📊 Date Statistics:\n")
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(w, "📍 Placemarks: %d kept, %d filtered, %d without date\n",
		res.Placemarks, res.Skipped, res.Undated)
	for _, row := range res.Rows {
		printRow(w, row)
	}
	fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}

func printRow(w io.Writer, row stats.Row) {
	fmt.Fprintf(w, "📅 %s: %d placemarks\n", row.Date, row.PlacemarkCount)
	fmt.Fprintf(w, "   • Distance: %.2f km in %.2f h (%.2f km/h)\n",
		row.TotalDistance, row.TotalTime, row.AvgSpeed)
	fmt.Fprintf(w, "   • Segments: %.2f to %.2f km, density %.2f\n",
		row.MinSegment, row.MaxSegment, row.AvgDensity)
}
