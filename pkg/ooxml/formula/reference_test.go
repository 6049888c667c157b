package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
)

func TestQuoteSheetName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Source", "Source"},
		{"Source 2", "'Source 2'"},
		{"It's", "'It''s'"},
		{"2021", "'2021'"},
		{"A1", "'A1'"},
		{"R1C1", "'R1C1'"},
		{"Sum", "Sum"},
		{"Report", "Report"},
		{"Data.2", "Data.2"},
		{"Q1-Q2", "'Q1-Q2'"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, QuoteSheetName(tt.input), "QuoteSheetName(%q)", tt.input)
	}
}

func TestUnquoteSheetName(t *testing.T) {
	assert.Equal(t, "Source 2", UnquoteSheetName("'Source 2'"))
	assert.Equal(t, "It's", UnquoteSheetName("'It''s'"))
	assert.Equal(t, "Plain", UnquoteSheetName("Plain"))
	assert.Equal(t, "'", UnquoteSheetName("'"))
}

func TestSplitSheetRef(t *testing.T) {
	tests := []struct {
		operand string
		sheet   string
		ref     string
		ok      bool
	}{
		{"Sheet1!A1", "Sheet1", "A1", true},
		{"'My Sheet'!$A$1:$B$2", "'My Sheet'", "$A$1:$B$2", true},
		{"A1:B2", "", "A1:B2", false},
		{"!A1", "", "!A1", false},
	}

	for _, tt := range tests {
		sheet, ref, ok := SplitSheetRef(tt.operand)
		assert.Equal(t, tt.sheet, sheet, tt.operand)
		assert.Equal(t, tt.ref, ref, tt.operand)
		assert.Equal(t, tt.ok, ok, tt.operand)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		sheet string
		want  models.CellRange
	}{
		{"range", "A1:E7", "", models.CellRange{R1: 1, C1: 1, R2: 7, C2: 5}},
		{"absolute_inverted", "$E$7:$A$1", "", models.CellRange{R1: 1, C1: 1, R2: 7, C2: 5}},
		{"single_cell", "H4", "", models.CellRange{R1: 4, C1: 8, R2: 4, C2: 8}},
		{"quoted_sheet", "'Source 2'!B2:C3", "Source 2", models.CellRange{R1: 2, C1: 2, R2: 3, C2: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, rng, err := ParseRange(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.sheet, sheet)
			assert.Equal(t, tt.want, rng)
		})
	}
}

func TestParseRangeInvalid(t *testing.T) {
	for _, ref := range []string{"", "bad name", "A:A", "1:3", "A0", "A1:B2:C3"} {
		_, _, err := ParseRange(ref)
		assert.ErrorIs(t, err, ooxml.ErrInvalidRange, "ParseRange(%q)", ref)
	}
}

func TestFormatRange(t *testing.T) {
	s, err := FormatRange(models.CellRange{R1: 1, C1: 1, R2: 7, C2: 5})
	require.NoError(t, err)
	assert.Equal(t, "A1:E7", s)

	s, err = FormatRange(models.CellRange{R1: 4, C1: 8, R2: 4, C2: 8})
	require.NoError(t, err)
	assert.Equal(t, "H4", s)

	_, err = FormatRange(models.CellRange{})
	assert.ErrorIs(t, err, ooxml.ErrInvalidRange)
}

func TestCellRefShift(t *testing.T) {
	tests := []struct {
		ref    string
		dRow   int
		dCol   int
		want   string
		inside bool
	}{
		{"A1", 3, 7, "H4", true},
		{"$A1", 3, 7, "$A4", true},
		{"A$1", 3, 7, "H$1", true},
		{"$A$1", 3, 7, "$A$1", true},
		{"B2", -1, -1, "A1", true},
		{"A1", -1, 0, "", false},
		{"XFD1", 0, 1, "", false},
	}

	for _, tt := range tests {
		c, ok := parseCellRef(tt.ref)
		require.True(t, ok, tt.ref)
		shifted, inside := c.shift(tt.dRow, tt.dCol)
		assert.Equal(t, tt.inside, inside, tt.ref)
		if tt.inside {
			assert.Equal(t, tt.want, shifted.String(), tt.ref)
		}
	}
}
