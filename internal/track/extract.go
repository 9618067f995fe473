package track

import "strings"

// DefaultExclude is the description substring that removes a placemark
const DefaultExclude = "Projecting"

type extractOptions struct {
	exclude string
}

// ExtractOption customizes Extract
type ExtractOption func(*extractOptions)

// WithExclude overrides the description substring used to drop placemarks.
// An empty term keeps every placemark.
func WithExclude(term string) ExtractOption {
	return func(o *extractOptions) {
		o.exclude = term
	}
}

// Extract turns placemark nodes into records in document order, dropping any
// node whose description contains the exclusion term (case-sensitive).
func Extract(nodes []Node, opts ...ExtractOption) []Record {
	o := extractOptions{exclude: DefaultExclude}
	for _, opt := range opts {
		opt(&o)
	}

	records := make([]Record, 0, len(nodes))
	for _, node := range nodes {
		if excluded(node, o.exclude) {
			continue
		}
		records = append(records, newRecord(node))
	}
	return records
}

func excluded(node Node, term string) bool {
	if term == "" {
		return false
	}
	desc, ok := node.Description()
	return ok && strings.Contains(desc, term)
}

func newRecord(node Node) Record {
	var r Record

	if name, ok := node.Name(); ok {
		r.Name = ptr(name)
		r.StartTime, r.EndTime, r.Date = splitName(name)
	}
	if desc, ok := node.Description(); ok {
		r.Description = ptr(desc)
	}
	if coords, ok := node.Coordinates(); ok {
		r.Coordinates = ptr(strings.TrimSpace(coords))
	}
	if begin, end, ok := node.TimeSpan(); ok {
		if begin != "" {
			r.SpanBegin = ptr(begin)
		}
		if end != "" {
			r.SpanEnd = ptr(end)
		}
	}

	return r
}

// splitName cuts "<start>-<end>" at the first dash only, so the end part
// keeps any further dashes.
func splitName(name string) (start, end, date *string) {
	before, after, found := strings.Cut(name, "-")
	if !found {
		return nil, nil, nil
	}

	d := before
	if len(d) > 8 {
		d = d[:8]
	}
	return ptr(before), ptr(after), ptr(d)
}
