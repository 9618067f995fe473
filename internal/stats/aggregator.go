package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/planbiir/kmlday/internal/geo"
	"github.com/planbiir/kmlday/internal/track"
)

// TimestampLayout is the 14-digit YYYYMMDDHHMMSS form used in placemark names
const TimestampLayout = "20060102150405"

// ErrInvalidTimestamp is returned by ParseTimestamp for anything that isn't
// a 14-digit timestamp
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp reads a naive YYYYMMDDHHMMSS timestamp
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, s, err)
	}
	return ts, nil
}

// Duration returns end minus start in hours. ok is false when either stamp is
// missing or unparsable. Negative spans are returned as-is.
func Duration(start, end *string) (hours float64, ok bool) {
	if start == nil || end == nil || *start == "" || *end == "" {
		return 0, false
	}

	s, err := ParseTimestamp(*start)
	if err != nil {
		return 0, false
	}
	e, err := ParseTimestamp(*end)
	if err != nil {
		return 0, false
	}

	return e.Sub(s).Seconds() / 3600.0, true
}

// Aggregate computes the statistics of one date group. Coordinates that
// fail to parse abort the aggregation.
func Aggregate(g track.Group) (Row, error) {
	row := Row{
		Date:           g.Date,
		PlacemarkCount: len(g.Records),
	}

	var (
		densitySum   float64
		densityCount int
		haveSegment  bool
	)

	for _, r := range g.Records {
		var points []geo.Point
		if r.Coordinates != nil {
			var err error
			points, err = geo.ParsePath(*r.Coordinates)
			if err != nil {
				return Row{}, fmt.Errorf("date %s, placemark %q: %w", g.Date, track.Value(r.Name), err)
			}
		}

		row.TotalDistance += geo.PathLength(points)

		if hours, ok := Duration(r.StartTime, r.EndTime); ok {
			row.TotalTime += hours
		}

		if density, ok := geo.PathDensity(points); ok && density != 0 {
			densitySum += density
			densityCount++
		}

		for _, seg := range geo.Segments(points) {
			if seg > row.MaxSegment {
				row.MaxSegment = seg
			}
			if !haveSegment || seg < row.MinSegment {
				row.MinSegment = seg
				haveSegment = true
			}
		}
	}

	if row.TotalTime > 0 {
		row.AvgSpeed = row.TotalDistance / row.TotalTime
	}
	if densityCount > 0 {
		row.AvgDensity = densitySum / float64(densityCount)
	}

	return row, nil
}

// AggregateAll computes one row per group, in group order
func AggregateAll(groups track.Groups) ([]Row, error) {
	rows := make([]Row, 0, groups.Len())
	for _, g := range groups.All() {
		row, err := Aggregate(g)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
