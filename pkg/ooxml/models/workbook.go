package models

// WorkbookSummary represents a workbook-level overview with per-sheet data.
type WorkbookSummary struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to SheetSummary.
	Sheets map[string]SheetSummary `json:"sheets"`
	// DefinedNames maps defined name to its reference.
	DefinedNames map[string]string `json:"defined_names,omitempty"`
}
