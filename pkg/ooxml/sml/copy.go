package sml

import (
	"time"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// CopyCellRange copies the cells in rows startRow..endRow and columns
// startCol..endCol (1-based, inclusive) of ws so that the top-left cell
// lands on (toRow, toCol). Values, cell types and styles are copied;
// formulas are copied with their relative references moved by the same
// offset. Cells that are empty in the source leave the destination
// untouched. Source and destination may overlap. Shared formulas on ws
// are stored per cell before anything is written. It returns the number
// of cells written.
func (p *Package) CopyCellRange(ws *Worksheet, startRow, startCol, endRow, endCol, toRow, toCol int) (int, error) {
	src := models.CellRange{R1: startRow, C1: startCol, R2: endRow, C2: endCol}
	if err := validateRange(src); err != nil {
		return 0, ooxml.NewEditError(ws.Name, "copy_cell_range", err)
	}
	dRow, dCol := toRow-startRow, toCol-startCol
	if err := validateRange(src.Offset(dRow, dCol)); err != nil {
		return 0, ooxml.NewEditError(ws.Name, "copy_cell_range", err)
	}

	all, err := p.formulaCells()
	if err != nil {
		return 0, ooxml.NewEditError(ws.Name, "copy_cell_range", err)
	}
	if err := p.unshareFormulas(ws.Name, all[ws.Name]); err != nil {
		return 0, ooxml.NewEditError(ws.Name, "copy_cell_range", err)
	}
	formulas := formulaTexts(all[ws.Name])

	cells := make([]models.Cell, 0, src.Rows()*src.Cols())
	for row := src.R1; row <= src.R2; row++ {
		for col := src.C1; col <= src.C2; col++ {
			cell, err := p.snapshotCell(ws.Name, row, col, formulas)
			if err != nil {
				return 0, ooxml.NewEditError(ws.Name, "copy_cell_range", err)
			}
			if cell.IsEmpty() {
				continue
			}
			cells = append(cells, cell)
		}
	}

	for i, cell := range cells {
		if err := p.writeCell(ws.Name, cell, dRow, dCol); err != nil {
			return i, ooxml.NewEditError(ws.Name, "copy_cell_range", err)
		}
	}
	return len(cells), nil
}

// unshareFormulas stores every shared formula in cells as a plain formula
// on its own cell. excelize drops a whole shared group when a value is
// written over its master, so groups are dissolved before copying.
func (p *Package) unshareFormulas(sheet string, cells []formulaCell) error {
	var shared []formulaCell
	for _, fc := range cells {
		if fc.shared {
			shared = append(shared, fc)
		}
	}
	for _, fc := range shared {
		if err := p.file.SetCellFormula(sheet, fc.cell, ""); err != nil {
			return errors.Errorf("clearing shared formula %s: %w", fc.cell, err)
		}
	}
	for _, fc := range shared {
		if fc.text == "" {
			continue
		}
		if err := p.file.SetCellFormula(sheet, fc.cell, fc.text); err != nil {
			return errors.Errorf("writing formula %s: %w", fc.cell, err)
		}
	}
	return nil
}

// dateLayouts are the ISO 8601 forms found in cells of type "d".
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (p *Package) writeCell(sheet string, cell models.Cell, dRow, dCol int) error {
	name, err := excelize.CoordinatesToCellName(cell.Col+dCol, cell.Row+dRow)
	if err != nil {
		return errors.WithStack(err)
	}
	p.clearErrorCell(sheet, name)

	style := true
	switch cell.Type {
	case models.CellTypeString:
		err = p.file.SetCellStr(sheet, name, cell.Value)
	case models.CellTypeBool:
		err = p.file.SetCellBool(sheet, name, cell.Value == "1" || cell.Value == "TRUE")
	case models.CellTypeError:
		err = p.file.SetCellDefault(sheet, name, cell.Value)
		p.setErrorCell(sheet, name, errorCell{value: cell.Value, style: cell.StyleID})
	case models.CellTypeDate:
		if t, ok := parseDate(cell.Value); ok {
			// Stored as a serial number; excelize picks a date format
			// when the source cell had no style of its own.
			err = p.file.SetCellValue(sheet, name, t)
			style = cell.StyleID != 0
		} else {
			err = p.file.SetCellStr(sheet, name, cell.Value)
		}
	default:
		err = p.file.SetCellDefault(sheet, name, cell.Value)
	}
	if err != nil {
		return errors.Errorf("writing %s: %w", name, err)
	}

	if cell.Formula != "" {
		text, _ := formula.ShiftReferences(cell.Formula, dRow, dCol)
		if err := p.file.SetCellFormula(sheet, name, text); err != nil {
			return errors.Errorf("writing formula %s: %w", name, err)
		}
	}

	if !style {
		return nil
	}
	if err := p.file.SetCellStyle(sheet, name, name, cell.StyleID); err != nil {
		return errors.Errorf("writing style %s: %w", name, err)
	}
	return nil
}
