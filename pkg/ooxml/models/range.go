package models

import "fmt"

// CellRange represents inclusive cell coordinate bounds on one sheet.
type CellRange struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1" yaml:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1" yaml:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2" yaml:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2" yaml:"c2"`
}

// Rows returns the number of rows covered.
func (r CellRange) Rows() int {
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns covered.
func (r CellRange) Cols() int {
	return r.C2 - r.C1 + 1
}

// Contains reports whether the cell at (row, col) lies inside the range.
func (r CellRange) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}

// Offset returns the range moved by dRow rows and dCol columns.
func (r CellRange) Offset(dRow, dCol int) CellRange {
	return CellRange{R1: r.R1 + dRow, C1: r.C1 + dCol, R2: r.R2 + dRow, C2: r.C2 + dCol}
}

func (r CellRange) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", r.R1, r.C1, r.R2, r.C2)
}
