package wml

import (
	"bytes"
	"encoding/xml"
	"io"
	"slices"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"gitlab.com/tozd/go/errors"
)

const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// BodyElement is one top-level child of w:body.
type BodyElement struct {
	// Name is the local element name, e.g. "p", "tbl" or "sdt".
	Name string
	span span
}

// Size returns the length of the element's markup in bytes.
func (e BodyElement) Size() int {
	return int(e.span.end - e.span.start)
}

// span is a half-open byte range of the main document part.
type span struct {
	start, end int64
}

// bodyLayout records where the pieces of w:body sit in the part bytes.
type bodyLayout struct {
	bodyStart int64 // just after the w:body start tag
	bodyEnd   int64 // at the w:body end tag
	elements  []BodyElement
	sectPr    *span  // body-level section properties
	sections  []span // paragraph-level w:sectPr
	hdrFtrRef []span // w:headerReference and w:footerReference anywhere in the body
}

func scanBody(data []byte) (*bodyLayout, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	layout := &bodyLayout{}
	depth, bodyDepth := 0, -1
	var childName string
	var childStart int64
	// open start offsets of nested sectPr / reference elements by depth
	open := make(map[int]int64)

	for {
		offset := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf("%w: %v", ooxml.ErrInvalidFormat, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch {
			case bodyDepth < 0:
				if t.Name.Local == "body" && t.Name.Space == nsW {
					bodyDepth = depth
					layout.bodyStart = decoder.InputOffset()
				}
			case depth == bodyDepth+1:
				childName, childStart = t.Name.Local, offset
			case t.Name.Space == nsW && isTracked(t.Name.Local):
				open[depth] = offset
			}

		case xml.EndElement:
			switch {
			case bodyDepth < 0:
			case depth == bodyDepth:
				layout.bodyEnd = offset
				return layout, nil
			case depth == bodyDepth+1:
				s := span{start: childStart, end: decoder.InputOffset()}
				if childName == "sectPr" && t.Name.Space == nsW {
					layout.sectPr = &s
				} else {
					layout.elements = append(layout.elements, BodyElement{Name: childName, span: s})
				}
			default:
				if start, ok := open[depth]; ok {
					delete(open, depth)
					s := span{start: start, end: decoder.InputOffset()}
					if t.Name.Local == "sectPr" {
						layout.sections = append(layout.sections, s)
					} else {
						layout.hdrFtrRef = append(layout.hdrFtrRef, s)
					}
				}
			}
			depth--
		}
	}

	return nil, errors.Errorf("%w: no w:body element", ooxml.ErrInvalidFormat)
}

func isTracked(local string) bool {
	return local == "sectPr" || local == "headerReference" || local == "footerReference"
}

// writeWithCuts writes data[s] leaving out every cut inside it. cuts
// must be sorted by start; cuts nested in an earlier cut are skipped.
func writeWithCuts(w *bytes.Buffer, data []byte, s span, cuts []span) {
	pos := s.start
	for _, c := range cuts {
		if c.start < pos || c.end > s.end {
			continue
		}
		w.Write(data[pos:c.start])
		pos = c.end
	}
	w.Write(data[pos:s.end])
}

func sortSpans(spans []span) {
	slices.SortFunc(spans, func(a, b span) int {
		return int(a.start - b.start)
	})
}
