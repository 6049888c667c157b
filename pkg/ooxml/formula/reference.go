// Package formula rewrites cell references inside spreadsheet formula text.
package formula

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// RefError is the text Excel substitutes for a reference that no longer points at a cell.
const RefError = "#REF!"

// SplitSheetRef splits a range operand such as 'My Sheet'!$A$1:$B$2 into its
// sheet part (as written, quotes included) and its reference part.
// ok is false when the operand carries no sheet prefix.
func SplitSheetRef(operand string) (sheet, ref string, ok bool) {
	idx := strings.LastIndex(operand, "!")
	if idx <= 0 {
		return "", operand, false
	}
	return operand[:idx], operand[idx+1:], true
}

// UnquoteSheetName removes the single quotes around a sheet name and
// collapses doubled quotes inside it.
func UnquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// QuoteSheetName returns name in the form required inside a formula:
// unchanged when it is a plain identifier, single-quoted otherwise.
func QuoteSheetName(name string) string {
	if !needsQuoting(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		if i == 0 && (unicode.IsDigit(r) || r == '.') {
			return true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return true
		}
	}
	if c, ok := parseCellRef(name); ok && c.hasCol && c.hasRow {
		return true
	}
	return looksLikeR1C1(name)
}

func looksLikeR1C1(name string) bool {
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "R") {
		return false
	}
	rest := strings.TrimLeftFunc(upper[1:], unicode.IsDigit)
	if !strings.HasPrefix(rest, "C") {
		return upper == "R" || rest == ""
	}
	return strings.TrimLeftFunc(rest[1:], unicode.IsDigit) == ""
}

// cellRef is one side of an A1 reference. Whole-column and whole-row
// references leave hasRow or hasCol unset.
type cellRef struct {
	col, row       int
	colAbs, rowAbs bool
	hasCol, hasRow bool
}

func parseCellRef(s string) (cellRef, bool) {
	var r cellRef
	i := 0
	if i < len(s) && s[i] == '$' {
		r.colAbs = true
		i++
	}

	j := i
	for j < len(s) && isASCIILetter(s[j]) {
		j++
	}
	if j > i {
		if j-i > 3 {
			return r, false
		}
		col, err := excelize.ColumnNameToNumber(s[i:j])
		if err != nil {
			return r, false
		}
		r.col, r.hasCol = col, true
	} else if r.colAbs {
		// "$1" marks an absolute row, not a column.
		r.colAbs, r.rowAbs = false, true
	}
	i = j

	if i < len(s) && s[i] == '$' {
		if r.rowAbs {
			return r, false
		}
		r.rowAbs = true
		i++
	}

	k := i
	for k < len(s) && s[k] >= '0' && s[k] <= '9' {
		k++
	}
	if k > i {
		row, err := strconv.Atoi(s[i:k])
		if err != nil || row < 1 || row > excelize.TotalRows {
			return r, false
		}
		r.row, r.hasRow = row, true
	} else if r.rowAbs {
		return r, false
	}

	if k != len(s) || (!r.hasCol && !r.hasRow) {
		return r, false
	}
	return r, true
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func (r cellRef) String() string {
	var b strings.Builder
	if r.hasCol {
		if r.colAbs {
			b.WriteByte('$')
		}
		name, _ := excelize.ColumnNumberToName(r.col)
		b.WriteString(name)
	}
	if r.hasRow {
		if r.rowAbs {
			b.WriteByte('$')
		}
		b.WriteString(strconv.Itoa(r.row))
	}
	return b.String()
}

// shift moves the relative parts of r. ok is false when the result
// falls outside the sheet.
func (r cellRef) shift(dRow, dCol int) (cellRef, bool) {
	if r.hasCol && !r.colAbs {
		r.col += dCol
	}
	if r.hasRow && !r.rowAbs {
		r.row += dRow
	}
	if r.hasCol && (r.col < 1 || r.col > excelize.MaxColumns) {
		return r, false
	}
	if r.hasRow && (r.row < 1 || r.row > excelize.TotalRows) {
		return r, false
	}
	return r, true
}

// parseAreaRef parses "A1", "A1:B2", "A:C" or "1:3". A single cell must
// name both column and row; the two sides of a range must agree on
// which parts they carry.
func parseAreaRef(ref string) ([]cellRef, bool) {
	parts := strings.Split(ref, ":")
	switch len(parts) {
	case 1:
		c, ok := parseCellRef(parts[0])
		if !ok || !c.hasCol || !c.hasRow {
			return nil, false
		}
		return []cellRef{c}, true
	case 2:
		a, okA := parseCellRef(parts[0])
		b, okB := parseCellRef(parts[1])
		if !okA || !okB || a.hasCol != b.hasCol || a.hasRow != b.hasRow {
			return nil, false
		}
		return []cellRef{a, b}, true
	}
	return nil, false
}

// ParseRange parses a range such as Sheet1!$A$1:$E$7 or a single cell
// such as H4 into 1-based bounds. The returned sheet name is unquoted
// and empty when the reference has no sheet prefix.
func ParseRange(ref string) (string, models.CellRange, error) {
	sheet, area, hasSheet := SplitSheetRef(strings.TrimSpace(ref))
	if hasSheet {
		sheet = UnquoteSheetName(sheet)
	}

	refs, ok := parseAreaRef(area)
	if !ok || !refs[0].hasCol || !refs[0].hasRow {
		return "", models.CellRange{}, errors.Errorf("%w: %q", ooxml.ErrInvalidRange, ref)
	}
	first, last := refs[0], refs[len(refs)-1]

	rng := models.CellRange{
		R1: min(first.row, last.row),
		C1: min(first.col, last.col),
		R2: max(first.row, last.row),
		C2: max(first.col, last.col),
	}
	return sheet, rng, nil
}

// FormatRange renders bounds in A1 notation, e.g. A1:E7, or a single
// cell name when the range covers one cell.
func FormatRange(rng models.CellRange) (string, error) {
	start, err := excelize.CoordinatesToCellName(rng.C1, rng.R1)
	if err != nil {
		return "", errors.Errorf("%w: %v", ooxml.ErrInvalidRange, err)
	}
	if rng.R1 == rng.R2 && rng.C1 == rng.C2 {
		return start, nil
	}
	end, err := excelize.CoordinatesToCellName(rng.C2, rng.R2)
	if err != nil {
		return "", errors.Errorf("%w: %v", ooxml.ErrInvalidRange, err)
	}
	return start + ":" + end, nil
}
