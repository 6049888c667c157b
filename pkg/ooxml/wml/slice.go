package wml

import (
	"bytes"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
)

// Slice produces a new document whose body holds the elements src
// selects. Section breaks inside the slice are dropped when
// src.KeepSections is false; header and footer references are dropped
// from every kept section when src.KeepHeadersAndFooters is false. The
// final section of the body is always kept. Markup outside the removed
// pieces is copied byte for byte.
func Slice(src Source) (*Document, error) {
	if src.Document == nil {
		return nil, ooxml.NewArgumentError("document", "document cannot be nil")
	}
	if src.Start < 0 {
		return nil, ooxml.NewArgumentError("start", "start cannot be negative")
	}
	limit, bounded := src.Count.Value()
	if bounded && limit < 0 {
		return nil, ooxml.NewArgumentError("count", "count cannot be negative")
	}

	r, err := ooxml.OpenZip(src.Document.data)
	if err != nil {
		return nil, err
	}
	part, err := ooxml.ReadPart(r, ooxml.MainDocumentPart)
	if err != nil {
		return nil, err
	}
	layout, err := scanBody(part)
	if err != nil {
		return nil, ooxml.NewEditError("", "slice", err)
	}

	from := min(src.Start, len(layout.elements))
	to := len(layout.elements)
	if bounded && limit < to-from {
		to = from + limit
	}

	var cuts []span
	if !src.KeepSections {
		cuts = append(cuts, layout.sections...)
	}
	if !src.KeepHeadersAndFooters {
		cuts = append(cuts, layout.hdrFtrRef...)
	}
	sortSpans(cuts)

	var out bytes.Buffer
	out.Grow(len(part))
	out.Write(part[:layout.bodyStart])
	for _, el := range layout.elements[from:to] {
		writeWithCuts(&out, part, el.span, cuts)
	}
	if layout.sectPr != nil {
		writeWithCuts(&out, part, *layout.sectPr, cuts)
	}
	out.Write(part[layout.bodyEnd:])

	data, err := ooxml.ReplacePart(r, ooxml.MainDocumentPart, out.Bytes())
	if err != nil {
		return nil, ooxml.NewEditError("", "slice", err)
	}
	return &Document{name: src.Document.name, data: data}, nil
}
