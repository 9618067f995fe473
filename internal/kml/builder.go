package kml

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"os"

	gokml "github.com/twpayne/go-kml"

	"github.com/planbiir/kmlday/internal/track"
)

// Shared line style applied to every path in the rebuilt document
const (
	LineStyleID = "greenLineStyle"
	LineWidth   = 2
)

// LineColor renders as ff00ff00 (aabbggrr)
var LineColor = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}

// Build assembles the rebuilt document: one shared style, then one Folder
// per date in group order. Absent or empty record fields produce no element.
func Build(groups track.Groups) *gokml.CompoundElement {
	doc := gokml.Document(
		gokml.SharedStyle(LineStyleID,
			gokml.LineStyle(
				gokml.Color(LineColor),
				gokml.Width(LineWidth),
			),
		),
	)

	for _, g := range groups.All() {
		folder := gokml.Folder(gokml.Name(g.Date))
		for _, r := range g.Records {
			folder.Add(placemark(r))
		}
		doc.Add(folder)
	}

	return gokml.KML(doc)
}

func placemark(r track.Record) *gokml.CompoundElement {
	pm := gokml.Placemark()

	if name := track.Value(r.Name); name != "" {
		pm.Add(gokml.Name(name))
	}
	if desc := track.Value(r.Description); desc != "" {
		pm.Add(newText("description", desc))
	}

	start, end := track.Value(r.StartTime), track.Value(r.EndTime)
	if start != "" || end != "" {
		ext := gokml.ExtendedData()
		if start != "" {
			ext.Add(data("start_time", start))
		}
		if end != "" {
			ext.Add(data("end_time", end))
		}
		pm.Add(ext)
	}

	if coords := track.Value(r.Coordinates); coords != "" {
		pm.Add(
			gokml.StyleURL("#"+LineStyleID),
			gokml.LineString(newText("coordinates", coords)),
		)
	}

	return pm
}

// data builds <Data name="..."><value>...</value></Data>
func data(name, value string) *gokml.CompoundElement {
	d := gokml.Data(gokml.Value(value))
	d.Attr = append(d.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: name})
	return d
}

// text is a leaf element written from its source text. Unlike
// gokml.SimpleElement it keeps line breaks instead of escaping them, and
// coordinates are never reformatted.
type text struct {
	xml.StartElement
	value string
}

var _ gokml.Element = (*text)(nil)

func newText(local, value string) *text {
	return &text{
		StartElement: xml.StartElement{Name: xml.Name{Local: local}},
		value:        value,
	}
}

func (t *text) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if err := e.EncodeToken(t.StartElement); err != nil {
		return err
	}
	if err := e.EncodeToken(xml.CharData(t.value)); err != nil {
		return err
	}
	return e.EncodeToken(t.End())
}

func (t *text) Write(w io.Writer) error {
	return t.WriteIndent(w, "", "")
}

func (t *text) WriteIndent(w io.Writer, prefix, indent string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent(prefix, indent)
	return enc.Encode(t)
}

// WriteDocument writes the XML declaration and the indented document
func WriteDocument(w io.Writer, groups track.Groups) error {
	if err := Build(groups).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to encode KML: %w", err)
	}
	return nil
}

// WriteDocumentFile creates filename and writes the rebuilt document to it
func WriteDocumentFile(filename string, groups track.Groups) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteDocument(file, groups); err != nil {
		return err
	}
	return file.Close()
}
