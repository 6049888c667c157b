package sml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"path"
	"strings"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// Relationship types, matched by suffix.
const (
	relTypeWorksheet = "worksheet"
	relTypeDrawing   = "drawing"
	relTypeChart     = "chart"
)

// snapshot is a serialized copy of an open package with its worksheet
// parts resolved by sheet name.
type snapshot struct {
	r      *zip.Reader
	sheets map[string]string // sheet name -> part name
}

// snapshot serializes the package so parts excelize does not expose can
// be read. The package itself is not changed.
func (p *Package) snapshot() (*snapshot, error) {
	buf, err := p.file.WriteToBuffer()
	if err != nil {
		return nil, errors.Errorf("serializing %s: %w", p.name, err)
	}
	return openSnapshot(buf.Bytes())
}

func openSnapshot(data []byte) (*snapshot, error) {
	r, err := ooxml.OpenZip(data)
	if err != nil {
		return nil, err
	}

	workbookXML, err := ooxml.ReadPart(r, ooxml.WorkbookPart)
	if err != nil {
		return nil, err
	}
	sheetsInfo := parseWorkbookSheets(workbookXML)

	sheets := make(map[string]string, len(sheetsInfo))
	for _, rel := range readRels(r, ooxml.WorkbookPart) {
		if name, ok := sheetsInfo[rel.id]; ok && rel.is(relTypeWorksheet) {
			sheets[name] = rel.target
		}
	}
	return &snapshot{r: r, sheets: sheets}, nil
}

// formulaCell is a cell that holds a formula element.
type formulaCell struct {
	cell string // A1 name
	text string // formula text without the leading '='
	// shared marks a member of a shared formula group. Only the group's
	// master stores text; follower cells get theirs derived from it.
	shared   bool
	follower bool
}

// formulaCells returns, per sheet name, the cells that carry a formula
// element. excelize only exposes cell values in bulk, and a formula whose
// cached value is empty would be invisible to GetRows, so the worksheet
// parts are scanned directly. Reading the parts also keeps the quoting of
// sheet names inside shared formulas intact.
func (p *Package) formulaCells() (map[string][]formulaCell, error) {
	snap, err := p.snapshot()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]formulaCell, len(snap.sheets))
	for sheetName, sheetPath := range snap.sheets {
		sheetXML, err := ooxml.ReadPart(snap.r, sheetPath)
		if err != nil {
			return nil, err
		}
		result[sheetName] = scanFormulaCells(sheetXML)
	}
	return result, nil
}

type sharedMaster struct {
	text     string
	row, col int
}

// scanFormulaCells lists every c element holding an f child, in document
// order. The text of a shared formula follower is its master's formula
// moved by the distance between the two cells. A follower whose master
// is missing keeps empty text.
func scanFormulaCells(data []byte) []formulaCell {
	var cells []formulaCell
	masters := make(map[string]sharedMaster)
	groups := make(map[int]string) // index into cells -> si of a follower
	current := ""
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "c":
				current = ""
				for _, attr := range t.Attr {
					if attr.Name.Local == "r" {
						current = attr.Value
					}
				}
			case "f":
				if current == "" {
					continue
				}
				var kind, si string
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "t":
						kind = attr.Value
					case "si":
						si = attr.Value
					}
				}
				var f struct {
					Text string `xml:",chardata"`
				}
				if err := decoder.DecodeElement(&f, &t); err != nil {
					return cells
				}

				fc := formulaCell{cell: current, text: f.Text, shared: kind == "shared"}
				if fc.shared {
					if f.Text == "" {
						fc.follower = true
						groups[len(cells)] = si
					} else if col, row, err := excelize.CellNameToCoordinates(current); err == nil {
						masters[si] = sharedMaster{text: f.Text, row: row, col: col}
					}
				}
				cells = append(cells, fc)
				current = ""
			}
		case xml.EndElement:
			if t.Name.Local == "c" {
				current = ""
			}
		}
	}

	for i, si := range groups {
		master, ok := masters[si]
		if !ok {
			continue
		}
		col, row, err := excelize.CellNameToCoordinates(cells[i].cell)
		if err != nil {
			continue
		}
		cells[i].text, _ = formula.ShiftReferences(master.text, row-master.row, col-master.col)
	}
	return cells
}

// resolvePart resolves a relationship target against the part that owns
// the relationship.
func resolvePart(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// relsPart returns the name of the relationship part of part.
func relsPart(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

type relationship struct {
	id, relType, target string
}

func (r relationship) is(relType string) bool {
	return strings.HasSuffix(r.relType, "/"+relType)
}

// readRels lists the internal relationships of part with resolved
// targets. A part without relationships yields none.
func readRels(r *zip.Reader, part string) []relationship {
	data, err := ooxml.ReadPart(r, relsPart(part))
	if err != nil {
		return nil
	}

	var rels []relationship
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var rel relationship
		external := false
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				rel.id = attr.Value
			case "Type":
				rel.relType = attr.Value
			case "Target":
				rel.target = attr.Value
			case "TargetMode":
				external = attr.Value == "External"
			}
		}
		if external || rel.target == "" {
			continue
		}
		rel.target = resolvePart(part, rel.target)
		rels = append(rels, rel)
	}
	return rels
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}
