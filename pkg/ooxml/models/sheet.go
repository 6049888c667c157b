package models

// SheetSummary describes one worksheet of an inspected workbook.
type SheetSummary struct {
	// Index is the 0-based position of the sheet in the workbook.
	Index int `json:"index"`
	// Dimension is the used range in A1 notation (empty for a blank sheet).
	Dimension string `json:"dimension,omitempty"`
	// FormulaCount is the number of cells holding a formula.
	FormulaCount int `json:"formula_count"`
	// SheetRefs lists the other sheets referenced from formulas on this sheet.
	SheetRefs []string `json:"sheet_refs,omitempty"`
	// ChartRefs lists the sheets that chart series drawn on this sheet read from.
	ChartRefs []string `json:"chart_refs,omitempty"`
	// PrintAreas are the print ranges set for the sheet.
	PrintAreas []CellRange `json:"print_areas,omitempty"`
}
