package track

// Node is a parsed placemark as seen by the extractor. Each accessor reports
// whether the field was present in the source document.
type Node interface {
	Name() (string, bool)
	Description() (string, bool)
	Coordinates() (string, bool)
	TimeSpan() (begin, end string, ok bool)
}

// Record is a normalized placemark. Nil pointers mean the field was absent.
// Records are built once by Extract and never modified afterwards.
type Record struct {
	Name        *string
	Description *string

	// Date is the first 8 characters of StartTime, the grouping key
	Date      *string
	StartTime *string
	EndTime   *string

	// Coordinates is the raw, trimmed "lon,lat[,alt] ..." path text
	Coordinates *string

	// SpanBegin and SpanEnd come from the placemark's TimeSpan element.
	// They are informational only; dates and durations use the name.
	SpanBegin *string
	SpanEnd   *string
}

// Group is every record sharing one date, in extraction order
type Group struct {
	Date    string
	Records []Record
}

// Groups keeps date groups in the order their dates were first seen
type Groups struct {
	groups []Group
	index  map[string]int
}

// Len returns the number of date groups
func (g Groups) Len() int {
	return len(g.groups)
}

// All returns the groups in creation order
func (g Groups) All() []Group {
	return g.groups
}

// Dates returns the group keys in creation order
func (g Groups) Dates() []string {
	dates := make([]string, len(g.groups))
	for i, group := range g.groups {
		dates[i] = group.Date
	}
	return dates
}

// Get returns the group for date
func (g Groups) Get(date string) (Group, bool) {
	i, ok := g.index[date]
	if !ok {
		return Group{}, false
	}
	return g.groups[i], true
}

// Count returns the number of grouped records across all dates
func (g Groups) Count() int {
	n := 0
	for _, group := range g.groups {
		n += len(group.Records)
	}
	return n
}

func ptr(s string) *string {
	return &s
}

// Value dereferences an optional field, returning "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
