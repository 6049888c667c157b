package sml

import (
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// FormulaReplaceSheetName rewrites every formula in the workbook so that
// references to oldName point at newName, and does the same for defined
// names. newName may be given quoted ('Source 2') or bare. The sheet
// itself is not renamed. A shared formula is rewritten on its master
// cell only; the cells that share it follow, and count as changed when
// their own formula changes. It returns the number of cell formulas and
// defined names that changed.
func (p *Package) FormulaReplaceSheetName(oldName, newName string) (int, error) {
	if formula.UnquoteSheetName(oldName) == "" {
		return 0, ooxml.NewArgumentError("oldName", "sheet name cannot be empty")
	}
	if formula.UnquoteSheetName(newName) == "" {
		return 0, ooxml.NewArgumentError("newName", "sheet name cannot be empty")
	}

	changed := 0
	err := p.forEachFormula("formula_replace_sheet_name", func(sheet string, fc formulaCell) error {
		updated, ok := formula.ReplaceSheetName(fc.text, oldName, newName)
		if !ok {
			return nil
		}
		changed++
		if fc.follower {
			return nil
		}
		// An existing formula element keeps its t, ref and si attributes.
		if err := p.file.SetCellFormula(sheet, fc.cell, updated); err != nil {
			return errors.Errorf("writing formula %s: %w", fc.cell, err)
		}
		return nil
	})
	if err != nil {
		return changed, err
	}

	n, err := p.replaceInDefinedNames(oldName, newName)
	if err != nil {
		return changed, ooxml.NewEditError("", "defined_names", err)
	}
	return changed + n, nil
}

func (p *Package) replaceInDefinedNames(oldName, newName string) (int, error) {
	changed := 0
	for _, dn := range p.file.GetDefinedName() {
		updated, ok := formula.ReplaceSheetName(dn.RefersTo, oldName, newName)
		if !ok {
			continue
		}
		if err := p.file.DeleteDefinedName(&excelize.DefinedName{Name: dn.Name, Scope: dn.Scope}); err != nil {
			return changed, errors.Errorf("removing defined name %q: %w", dn.Name, err)
		}
		if err := p.file.SetDefinedName(&excelize.DefinedName{
			Name:     dn.Name,
			Comment:  dn.Comment,
			RefersTo: updated,
			Scope:    dn.Scope,
		}); err != nil {
			return changed, errors.Errorf("writing defined name %q: %w", dn.Name, err)
		}
		changed++
	}
	return changed, nil
}
