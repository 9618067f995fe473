package kml

import (
	"encoding/xml"

	gokml "github.com/twpayne/go-kml"

	"github.com/planbiir/kmlday/internal/track"
)

// Namespace is the only schema namespace recognised when reading
const Namespace = gokml.Namespace

// element is a generic XML node. Only character data directly inside the
// element is kept in Text; children are walked separately.
type element struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []element `xml:",any"`
}

func (e *element) is(local string) bool {
	return e.XMLName.Space == Namespace && e.XMLName.Local == local
}

// child returns the first direct child named local
func (e *element) child(local string) *element {
	for i := range e.Children {
		if e.Children[i].is(local) {
			return &e.Children[i]
		}
	}
	return nil
}

// find returns the first descendant named local, in document order
func (e *element) find(local string) *element {
	for i := range e.Children {
		c := &e.Children[i]
		if c.is(local) {
			return c
		}
		if found := c.find(local); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects every descendant named local, in document order
func (e *element) findAll(local string, out []*element) []*element {
	for i := range e.Children {
		c := &e.Children[i]
		if c.is(local) {
			out = append(out, c)
		}
		out = c.findAll(local, out)
	}
	return out
}

// Placemark is a placemark read from a KML document. Nil fields were absent.
type Placemark struct {
	name        *string
	description *string
	coordinates *string
	begin, end  *string
}

// NewPlacemark builds a placemark from optional fields
func NewPlacemark(name, description, coordinates *string) Placemark {
	return Placemark{name: name, description: description, coordinates: coordinates}
}

func (p Placemark) Name() (string, bool)        { return optional(p.name) }
func (p Placemark) Description() (string, bool) { return optional(p.description) }
func (p Placemark) Coordinates() (string, bool) { return optional(p.coordinates) }

// TimeSpan returns the begin/end of the placemark's TimeSpan element
func (p Placemark) TimeSpan() (begin, end string, ok bool) {
	if p.begin == nil && p.end == nil {
		return "", "", false
	}
	b, _ := optional(p.begin)
	e, _ := optional(p.end)
	return b, e, true
}

func optional(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// Document is a parsed KML file reduced to its placemarks
type Document struct {
	Placemarks []Placemark
}

// Nodes exposes the placemarks to the record extractor
func (d *Document) Nodes() []track.Node {
	nodes := make([]track.Node, len(d.Placemarks))
	for i, p := range d.Placemarks {
		nodes[i] = p
	}
	return nodes
}
