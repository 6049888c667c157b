package sml

import (
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// usedRange returns the bounds of a sheet's content. The stored
// dimension is combined with the bounds of the non-empty cells because
// writers do not always keep the dimension up to date. ok is false for
// an empty sheet.
func usedRange(f *excelize.File, sheetName string) (models.CellRange, bool, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.CellRange{}, false, errors.Errorf("reading rows of %q: %w", sheetName, err)
	}

	rng, ok := findDataBounds(rows)

	dim, err := f.GetSheetDimension(sheetName)
	if err != nil || dim == "" {
		return rng, ok, nil
	}
	_, dimRange, err := formula.ParseRange(dim)
	if err != nil {
		return rng, ok, nil
	}
	if !ok {
		// A blank sheet still reports A1.
		return dimRange, dimRange.Rows()*dimRange.Cols() > 1, nil
	}
	return union(rng, dimRange), true, nil
}

func union(a, b models.CellRange) models.CellRange {
	return models.CellRange{
		R1: min(a.R1, b.R1),
		C1: min(a.C1, b.C1),
		R2: max(a.R2, b.R2),
		C2: max(a.C2, b.C2),
	}
}

// findDataBounds finds the bounding box of non-empty cells, 1-based.
func findDataBounds(rows [][]string) (models.CellRange, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return models.CellRange{}, false
	}
	return models.CellRange{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// forEachFormula calls fn for every cell of the workbook that holds a
// formula, sheet by sheet in workbook order. Shared formula followers are
// passed with their derived text. Errors are reported as EditError for
// the sheet being walked.
func (p *Package) forEachFormula(operation string, fn func(sheet string, fc formulaCell) error) error {
	cells, err := p.formulaCells()
	if err != nil {
		return ooxml.NewEditError("", operation, err)
	}

	for _, sheet := range p.file.GetSheetList() {
		for _, fc := range cells[sheet] {
			if fc.text == "" {
				continue
			}
			if err := fn(sheet, fc); err != nil {
				return ooxml.NewEditError(sheet, operation, err)
			}
		}
	}
	return nil
}
