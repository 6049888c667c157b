package sml

import (
	"strconv"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// ReadRange reads the cells of rng on ws.
// It returns a slice of CellRow containing non-empty rows.
func (p *Package) ReadRange(ws *Worksheet, rng models.CellRange) ([]models.CellRow, error) {
	if err := validateRange(rng); err != nil {
		return nil, err
	}
	formulas, err := p.sheetFormulas(ws.Name)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for row := rng.R1; row <= rng.R2; row++ {
		cellMap := make(map[string]interface{})
		formulaMap := make(map[string]string)

		for col := rng.C1; col <= rng.C2; col++ {
			cellName, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			value, err := p.file.GetCellValue(ws.Name, cellName)
			if err != nil {
				return nil, errors.Errorf("reading %s!%s: %w", ws.Name, cellName, err)
			}
			text := formulas[cellName]
			if value == "" && text == "" {
				continue
			}

			colStr := strconv.Itoa(col) // 1-based column index as string
			cellMap[colStr] = parseValue(value)
			if text != "" {
				formulaMap[colStr] = text
			}
		}

		if len(cellMap) > 0 {
			cellRow := models.CellRow{
				R: row,
				C: cellMap,
			}
			if len(formulaMap) > 0 {
				cellRow.Formulas = formulaMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// sheetFormulas maps the cells of sheet that hold a formula to its text.
func (p *Package) sheetFormulas(sheet string) (map[string]string, error) {
	cells, err := p.formulaCells()
	if err != nil {
		return nil, err
	}
	return formulaTexts(cells[sheet]), nil
}

func formulaTexts(cells []formulaCell) map[string]string {
	formulas := make(map[string]string, len(cells))
	for _, fc := range cells {
		if fc.text != "" {
			formulas[fc.cell] = fc.text
		}
	}
	return formulas
}

// snapshotCell captures everything CopyCellRange needs to recreate a
// cell. formulas comes from sheetFormulas.
func (p *Package) snapshotCell(sheet string, row, col int, formulas map[string]string) (models.Cell, error) {
	cell := models.Cell{Row: row, Col: col}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return cell, errors.WithStack(err)
	}

	cell.Formula = formulas[name]
	if cell.Value, err = p.file.GetCellValue(sheet, name, excelize.Options{RawCellValue: true}); err != nil {
		return cell, errors.Errorf("reading value %s: %w", name, err)
	}
	if cell.StyleID, err = p.file.GetCellStyle(sheet, name); err != nil {
		return cell, errors.Errorf("reading style %s: %w", name, err)
	}
	typ, err := p.file.GetCellType(sheet, name)
	if err != nil {
		return cell, errors.Errorf("reading type %s: %w", name, err)
	}
	cell.Type = cellType(typ)
	if p.isErrorCell(sheet, name) {
		cell.Type = models.CellTypeError
	}
	if cell.Formula != "" {
		cell.Type = models.CellTypeFormula
	}
	return cell, nil
}

func cellType(t excelize.CellType) models.CellType {
	switch t {
	case excelize.CellTypeBool:
		return models.CellTypeBool
	case excelize.CellTypeDate:
		return models.CellTypeDate
	case excelize.CellTypeError:
		return models.CellTypeError
	case excelize.CellTypeFormula:
		return models.CellTypeFormula
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return models.CellTypeString
	}
	return models.CellTypeNumber
}

func validateRange(rng models.CellRange) error {
	if rng.R1 < 1 || rng.C1 < 1 || rng.R1 > rng.R2 || rng.C1 > rng.C2 ||
		rng.R2 > excelize.TotalRows || rng.C2 > excelize.MaxColumns {
		return errors.Errorf("%w: %s", ooxml.ErrInvalidRange, rng)
	}
	return nil
}
