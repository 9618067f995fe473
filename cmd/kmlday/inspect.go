package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planbiir/kmlday/internal/config"
	"github.com/planbiir/kmlday/internal/geo"
	"github.com/planbiir/kmlday/internal/kml"
	"github.com/planbiir/kmlday/internal/stats"
	"github.com/planbiir/kmlday/internal/track"
)

func newInspectCmd(v *viper.Viper) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "inspect <file.kml>",
		Short: "Print per-placemark points, time span and distance without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := kml.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			exclude := v.GetString(config.KeyExclude)
			if all {
				exclude = ""
			}
			records := track.Extract(doc.Nodes(), track.WithExclude(exclude))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", args[0])
			fmt.Fprintf(out, "  placemarks: %d (%d filtered)\n", len(doc.Placemarks), len(doc.Placemarks)-len(records))
			groups := track.GroupByDate(records)
			fmt.Fprintf(out, "  dates: %d %v\n", groups.Len(), groups.Dates())
			if start, end, ok := timeBounds(records); ok {
				fmt.Fprintf(out, "  time span: %s to %s (duration %v)\n", start, end, end.Sub(start))
			}

			for i, r := range records {
				printPlacemark(out, i+1, r)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include placemarks the description filter would drop")
	return cmd
}

func printPlacemark(w io.Writer, idx int, r track.Record) {
	fmt.Fprintf(w, "\nPlacemark #%d: %s\n", idx, track.Value(r.Name))
	if r.Date != nil {
		fmt.Fprintf(w, "  date: %s\n", *r.Date)
	}
	if hours, ok := stats.Duration(r.StartTime, r.EndTime); ok {
		fmt.Fprintf(w, "  duration: %.2f h\n", hours)
	}
	if r.SpanBegin != nil || r.SpanEnd != nil {
		fmt.Fprintf(w, "  timespan: %s to %s\n", spanValue(r.SpanBegin), spanValue(r.SpanEnd))
	}

	points, err := geo.ParsePath(track.Value(r.Coordinates))
	var malformed *geo.MalformedCoordinateError
	if errors.As(err, &malformed) {
		fmt.Fprintf(w, "  ✗ malformed coordinate %q\n", malformed.Token)
		return
	}
	fmt.Fprintf(w, "  points: %d\n", len(points))
	if len(points) == 0 {
		return
	}
	fmt.Fprintf(w, "  distance: %.3f km\n", geo.PathLength(points))
	if density, ok := geo.PathDensity(points); ok {
		fmt.Fprintf(w, "  density: %.2f\n", density)
	}
}

func spanValue(s *string) string {
	if s == nil {
		return "?"
	}
	return *s
}

// timeBounds returns the earliest start and latest end over records whose
// name carries parseable timestamps
func timeBounds(records []track.Record) (start, end time.Time, ok bool) {
	for _, r := range records {
		if r.StartTime == nil || r.EndTime == nil {
			continue
		}
		s, err := stats.ParseTimestamp(*r.StartTime)
		if err != nil {
			continue
		}
		e, err := stats.ParseTimestamp(*r.EndTime)
		if err != nil {
			continue
		}
		if !ok || s.Before(start) {
			start = s
		}
		if !ok || e.After(end) {
			end = e
		}
		ok = true
	}
	return start, end, ok
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil && !errors.Is(err, config.ErrMissingInput) {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), data)
			return nil
		},
	}
}
