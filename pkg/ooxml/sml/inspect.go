package sml

import (
	"strings"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/formula"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
)

// Summarize describes every worksheet of the package: its used range,
// how many formulas it holds, which sheets those formulas and its charts
// reference, and its print areas.
func (p *Package) Summarize() (*models.WorkbookSummary, error) {
	sheets := make(map[string]models.SheetSummary)
	bounds := make(map[string]models.CellRange)
	seen := make(map[string]bool)

	err := p.forEachFormula("summarize", func(sheet string, fc formulaCell) error {
		summary := sheets[sheet]
		summary.FormulaCount++
		for _, ref := range formula.SheetRefs(fc.text) {
			key := sheet + "\x00" + strings.ToLower(ref)
			if seen[key] || strings.EqualFold(ref, sheet) {
				continue
			}
			seen[key] = true
			summary.SheetRefs = append(summary.SheetRefs, ref)
		}
		sheets[sheet] = summary

		_, rng, err := formula.ParseRange(fc.cell)
		if err != nil {
			return err
		}
		if b, ok := bounds[sheet]; ok {
			rng = union(b, rng)
		}
		bounds[sheet] = rng
		return nil
	})
	if err != nil {
		return nil, err
	}

	charts, err := p.chartRanges()
	if err != nil {
		return nil, err
	}
	printAreas := p.printAreas()

	for i, sheet := range p.file.GetSheetList() {
		summary := sheets[sheet]
		summary.Index = i

		for _, f := range charts[sheet] {
			for _, ref := range formula.SheetRefs(f) {
				if !containsFold(summary.ChartRefs, ref) {
					summary.ChartRefs = append(summary.ChartRefs, ref)
				}
			}
		}
		for name, areas := range printAreas {
			if strings.EqualFold(name, sheet) {
				summary.PrintAreas = append(summary.PrintAreas, areas...)
			}
		}

		rng, ok, err := usedRange(p.file, sheet)
		if err != nil {
			return nil, err
		}
		if b, found := bounds[sheet]; found {
			if ok {
				rng = union(rng, b)
			} else {
				rng, ok = b, true
			}
		}
		if ok {
			if summary.Dimension, err = formula.FormatRange(rng); err != nil {
				return nil, err
			}
		}
		sheets[sheet] = summary
	}

	var definedNames map[string]string
	for _, dn := range p.file.GetDefinedName() {
		if definedNames == nil {
			definedNames = make(map[string]string)
		}
		key := dn.Name
		if dn.Scope != "" && dn.Scope != "Workbook" {
			key = dn.Scope + "!" + dn.Name
		}
		definedNames[key] = dn.RefersTo
	}

	return &models.WorkbookSummary{
		BookName:     p.name,
		Sheets:       sheets,
		DefinedNames: definedNames,
	}, nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
