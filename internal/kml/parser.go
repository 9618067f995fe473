package kml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// Parse reads and parses a KML file
func Parse(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses KML from an io.Reader. Placemarks are collected at any
// depth in document order, including ones nested in Folders. Documents
// declaring a non-UTF-8 encoding are transcoded.
func ParseReader(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var root element
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse KML: %w", err)
	}

	var doc Document
	for _, pm := range root.findAll("Placemark", nil) {
		doc.Placemarks = append(doc.Placemarks, placemarkFrom(pm))
	}

	return &doc, nil
}

func placemarkFrom(pm *element) Placemark {
	var p Placemark

	if e := pm.child("name"); e != nil {
		p.name = &e.Text
	}
	if e := pm.child("description"); e != nil {
		p.description = &e.Text
	}
	// the path may sit in a LineString or a MultiGeometry
	if e := pm.find("coordinates"); e != nil {
		p.coordinates = &e.Text
	}
	if span := pm.child("TimeSpan"); span != nil {
		if e := span.child("begin"); e != nil {
			p.begin = &e.Text
		}
		if e := span.child("end"); e != nil {
			p.end = &e.Text
		}
	}

	return p
}
