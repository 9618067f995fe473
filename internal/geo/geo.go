package geo

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/geodesic"
)

// Point is a position in degrees. Callers parsing KML text must swap the
// "lon,lat" order before building one (see ParsePath).
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the WGS-84 geodesic distance between a and b in kilometers
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}

	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)
	return meters / 1000
}

// PathLength sums the distance of every consecutive pair of points
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0.0
	}

	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Segments returns the distance of each consecutive pair, in path order
func Segments(points []Point) []float64 {
	if len(points) < 2 {
		return nil
	}

	segments := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segments = append(segments, Distance(points[i-1], points[i]))
	}
	return segments
}

// BoundingBoxArea returns (maxLat-minLat)*(maxLon-minLon) in square degrees
func BoundingBoxArea(points []Point) float64 {
	if len(points) == 0 {
		return 0.0
	}

	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = orb.Point{p.Lon, p.Lat}
	}

	b := mp.Bound()
	return (b.Top() - b.Bottom()) * (b.Right() - b.Left())
}

// PathDensity is path length divided by bounding box area. ok is false when
// there are no points or the box is degenerate.
func PathDensity(points []Point) (density float64, ok bool) {
	area := BoundingBoxArea(points)
	if area <= 0 {
		return 0, false
	}
	return PathLength(points) / area, true
}
