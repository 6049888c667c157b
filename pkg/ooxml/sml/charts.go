package sml

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
)

// chartRanges returns, per worksheet, the range formulas that the series
// of the charts drawn on it read from: series names, categories and values.
func (p *Package) chartRanges() (map[string][]string, error) {
	snap, err := p.snapshot()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	for sheetName, sheetPath := range snap.sheets {
		for _, drawing := range readRels(snap.r, sheetPath) {
			if !drawing.is(relTypeDrawing) {
				continue
			}
			for _, chart := range readRels(snap.r, drawing.target) {
				if !chart.is(relTypeChart) {
					continue
				}
				data, err := ooxml.ReadPart(snap.r, chart.target)
				if err != nil {
					return nil, err
				}
				result[sheetName] = append(result[sheetName], scanChartFormulas(data)...)
			}
		}
	}
	return result, nil
}

// scanChartFormulas collects the text of every c:f element of a chart part.
func scanChartFormulas(data []byte) []string {
	var formulas []string
	var text strings.Builder
	inFormula := false
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "f" {
				inFormula = true
				text.Reset()
			}
		case xml.CharData:
			if inFormula {
				text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "f" && inFormula {
				inFormula = false
				if f := strings.TrimSpace(text.String()); f != "" {
					formulas = append(formulas, f)
				}
			}
		}
	}

	return formulas
}
