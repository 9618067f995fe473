package stats

// Row holds the movement statistics of one date group
type Row struct {
	Date           string  `json:"date"`
	TotalDistance  float64 `json:"total_distance_km"`
	PlacemarkCount int     `json:"placemark_count"`
	TotalTime      float64 `json:"total_time_hrs"`
	AvgSpeed       float64 `json:"average_speed_kmh"`
	AvgDensity     float64 `json:"path_density"`
	MaxSegment     float64 `json:"max_segment_km"`
	MinSegment     float64 `json:"min_segment_km"`
}

// Header is the first line of the report table
var Header = []string{
	"Date",
	"Total Distance (km)",
	"Placemark Count",
	"Total Time (hrs)",
	"Average Speed (km/h)",
	"Path Density",
	"Max Segment Distance (km)",
	"Min Segment Distance (km)",
}
