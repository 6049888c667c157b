// Package models defines data structures shared by the package editors.
package models

// CellRow represents a single row of cells read from a worksheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string) to cell value.
	C map[string]interface{} `json:"c"`
	// Formulas maps column index to formula text without the leading '=' (optional).
	Formulas map[string]string `json:"formulas,omitempty"`
}

// Cell is a snapshot of one cell taken before it is written elsewhere.
type Cell struct {
	Row     int
	Col     int
	Value   string
	Formula string
	Type    CellType
	StyleID int
}

// CellType mirrors the stored type of a cell value.
type CellType string

const (
	CellTypeNumber  CellType = "n"
	CellTypeString  CellType = "s"
	CellTypeBool    CellType = "b"
	CellTypeError   CellType = "e"
	CellTypeDate    CellType = "d"
	CellTypeFormula CellType = "f"
)

// IsEmpty reports whether the cell carries neither value, formula nor style.
func (c Cell) IsEmpty() bool {
	return c.Value == "" && c.Formula == "" && c.StyleID == 0
}
