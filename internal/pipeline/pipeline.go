package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/planbiir/kmlday/internal/config"
	"github.com/planbiir/kmlday/internal/kml"
	"github.com/planbiir/kmlday/internal/stats"
	"github.com/planbiir/kmlday/internal/track"
)

// Pipeline runs one input document through extraction, grouping, the
// rebuilt document and the report
type Pipeline struct {
	cfg         config.Config
	logger      zerolog.Logger
	progressOut io.Writer
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithProgressWriter sets where the progress bar is drawn (stderr by default)
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) {
		p.progressOut = w
	}
}

// Result summarizes a completed run
type Result struct {
	Placemarks int // records left after the description filter
	Skipped    int // placemarks removed by the filter
	Undated    int // records left out of every group
	Groups     track.Groups
	Rows       []stats.Row
}

// New creates a pipeline for cfg
func New(cfg config.Config, logger zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:         cfg,
		logger:      logger,
		progressOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every stage in order. The document is written before the
// report; a failing report leaves the document in place. ctx is checked
// between stages.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	p.logger.Info().Str("file", p.cfg.Input).Msg("Parsing and filtering data...")
	doc, err := kml.Parse(p.cfg.Input)
	if err != nil {
		return res, fmt.Errorf("failed to parse input file: %w", err)
	}

	records := track.Extract(doc.Nodes(), track.WithExclude(p.cfg.Filter.Exclude))
	res.Placemarks = len(records)
	res.Skipped = len(doc.Placemarks) - len(records)
	p.logger.Info().
		Int("placemarks", res.Placemarks).
		Int("skipped", res.Skipped).
		Msgf("Filtered %d placemarks.", res.Placemarks)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	p.logger.Info().Msg("Organizing data by date...")
	res.Groups = track.GroupByDate(records)
	res.Undated = len(records) - res.Groups.Count()
	p.logger.Debug().
		Strs("dates", res.Groups.Dates()).
		Int("undated", res.Undated).
		Msg("Grouped placemarks")

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if p.cfg.DryRun {
		p.logger.Info().Msg("Dry run, skipping KML output")
	} else {
		p.logger.Info().Msg("Creating new KML file...")
		if err := kml.WriteDocumentFile(p.cfg.Output, res.Groups); err != nil {
			return res, fmt.Errorf("failed to write output file: %w", err)
		}
		p.logger.Info().Str("file", p.cfg.Output).Msgf("Output saved to %s", p.cfg.Output)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	p.logger.Info().Msg("Generating report...")
	res.Rows, err = p.aggregate(res.Groups)
	if err != nil {
		return res, fmt.Errorf("failed to compute report: %w", err)
	}

	if p.cfg.DryRun {
		p.logger.Info().Msg("Dry run, skipping report output")
		return res, nil
	}
	if err := stats.WriteReportFile(p.cfg.Report, res.Rows); err != nil {
		return res, fmt.Errorf("failed to write report: %w", err)
	}
	p.logger.Info().Str("file", p.cfg.Report).Msgf("Report saved to %s", p.cfg.Report)

	return res, nil
}

func (p *Pipeline) aggregate(groups track.Groups) ([]stats.Row, error) {
	var bar *progressbar.ProgressBar
	if p.cfg.Progress {
		bar = progressbar.NewOptions(
			groups.Len(),
			progressbar.OptionSetWriter(p.progressOut),
			progressbar.OptionSetDescription("Aggregating dates"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	rows := make([]stats.Row, 0, groups.Len())
	for _, g := range groups.All() {
		row, err := stats.Aggregate(g)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)

		p.logger.Debug().
			Str("date", row.Date).
			Int("placemarks", row.PlacemarkCount).
			Float64("distance_km", row.TotalDistance).
			Float64("hours", row.TotalTime).
			Msg("Aggregated date")
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return rows, nil
}
