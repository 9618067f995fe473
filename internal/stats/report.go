package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteReportFile creates path and writes the report table to it
func WriteReportFile(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	if err := WriteReport(file, rows); err != nil {
		return err
	}
	return file.Close()
}

// WriteReport writes the header and one line per row, numbers at 2 decimals
func WriteReport(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write report row %s: %w", row.Date, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// Record formats the row as report fields
func (r Row) Record() []string {
	return []string{
		r.Date,
		format2(r.TotalDistance),
		strconv.Itoa(r.PlacemarkCount),
		format2(r.TotalTime),
		format2(r.AvgSpeed),
		format2(r.AvgDensity),
		format2(r.MaxSegment),
		format2(r.MinSegment),
	}
}

func format2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
