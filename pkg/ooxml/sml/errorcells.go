package sml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"gitlab.com/tozd/go/errors"
)

// errorCell is an error constant such as #DIV/0! stored in a cell.
//
// excelize has no setter for cells of type "e", so such cells are written
// as text and their markup is replaced when the package is serialized.
type errorCell struct {
	value string
	style int
}

func (p *Package) setErrorCell(sheet, name string, cell errorCell) {
	if p.errorCells == nil {
		p.errorCells = make(map[string]map[string]errorCell)
	}
	if p.errorCells[sheet] == nil {
		p.errorCells[sheet] = make(map[string]errorCell)
	}
	p.errorCells[sheet][name] = cell
}

func (p *Package) clearErrorCell(sheet, name string) {
	delete(p.errorCells[sheet], name)
}

func (p *Package) isErrorCell(sheet, name string) bool {
	_, ok := p.errorCells[sheet][name]
	return ok
}

// patchErrorCells rewrites the recorded error cells inside data, a
// serialized copy of the package.
func (p *Package) patchErrorCells(data []byte) ([]byte, error) {
	for sheet, cells := range p.errorCells {
		if len(cells) == 0 {
			continue
		}
		snap, err := openSnapshot(data)
		if err != nil {
			return nil, err
		}
		part, ok := snap.sheets[sheet]
		if !ok {
			continue
		}
		sheetXML, err := ooxml.ReadPart(snap.r, part)
		if err != nil {
			return nil, err
		}
		patched, err := patchCells(sheetXML, cells)
		if err != nil {
			return nil, errors.Errorf("patching error cells of %q: %w", sheet, err)
		}
		if data, err = ooxml.ReplacePart(snap.r, part, patched); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// patchCells replaces the c elements of a worksheet part named in cells.
// Everything else is copied byte for byte.
func patchCells(data []byte, cells map[string]errorCell) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(data))
	decoder := xml.NewDecoder(bytes.NewReader(data))

	cursor, start := int64(0), int64(0)
	current := ""
	for {
		offset := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local != "c" {
				continue
			}
			for _, attr := range t.Attr {
				if attr.Name.Local != "r" {
					continue
				}
				if _, ok := cells[attr.Value]; ok {
					current, start = attr.Value, offset
				}
			}
		case xml.EndElement:
			if t.Name.Local != "c" || current == "" {
				continue
			}
			out.Write(data[cursor:start])
			writeErrorCell(&out, current, cells[current])
			cursor = decoder.InputOffset()
			current = ""
		}
	}
	out.Write(data[cursor:])
	return out.Bytes(), nil
}

func writeErrorCell(out *bytes.Buffer, name string, cell errorCell) {
	out.WriteString(`<c r="`)
	out.WriteString(name)
	out.WriteByte('"')
	if cell.style != 0 {
		out.WriteString(` s="`)
		out.WriteString(strconv.Itoa(cell.style))
		out.WriteByte('"')
	}
	out.WriteString(` t="e"><v>`)
	_ = xml.EscapeText(out, []byte(cell.value))
	out.WriteString(`</v></c>`)
}
