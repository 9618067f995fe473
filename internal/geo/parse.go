package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedCoordinate is returned when a coordinate tuple can't be read
var ErrMalformedCoordinate = errors.New("malformed coordinate")

var (
	errNotFinite   = errors.New("not a finite number")
	errLatOutRange = errors.New("latitude outside [-90, 90]")
)

// MalformedCoordinateError names the offending "lon,lat[,alt]" token.
type MalformedCoordinateError struct {
	Token string
	Err   error
}

func (e *MalformedCoordinateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed coordinate %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("malformed coordinate %q", e.Token)
}

func (e *MalformedCoordinateError) Unwrap() error {
	return ErrMalformedCoordinate
}

// ParsePath reads whitespace separated "lon,lat[,alt]" tuples into points.
// Altitude is ignored. Order is preserved and each tuple is swapped into
// (lat, lon).
func ParsePath(raw string) ([]Point, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil, nil
	}

	points := make([]Point, 0, len(tokens))
	for _, token := range tokens {
		p, err := parseTuple(token)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func parseTuple(token string) (Point, error) {
	fields := strings.Split(token, ",")
	if len(fields) < 2 {
		return Point{}, &MalformedCoordinateError{Token: token}
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, &MalformedCoordinateError{Token: token, Err: err}
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, &MalformedCoordinateError{Token: token, Err: err}
	}
	if !finite(lon) || !finite(lat) {
		return Point{}, &MalformedCoordinateError{Token: token, Err: errNotFinite}
	}
	if math.Abs(lat) > 90 {
		return Point{}, &MalformedCoordinateError{Token: token, Err: errLatOutRange}
	}

	return Point{Lat: lat, Lon: lon}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
