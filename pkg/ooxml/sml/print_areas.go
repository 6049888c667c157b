package sml

import (
	"strings"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
)

const printAreaName = "_xlnm.Print_Area"

// printAreas returns the print areas of every worksheet that has one,
// keyed by sheet name. Areas that do not parse are skipped.
func (p *Package) printAreas() map[string][]models.CellRange {
	result := make(map[string][]models.CellRange)

	for _, dn := range p.file.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		for _, part := range strings.Split(dn.RefersTo, ",") {
			sheet, area, err := formula.ParseRange(part)
			if err != nil {
				continue
			}
			if sheet == "" {
				sheet = dn.Scope
			}
			if sheet != "" {
				result[sheet] = append(result[sheet], area)
			}
		}
	}

	return result
}
