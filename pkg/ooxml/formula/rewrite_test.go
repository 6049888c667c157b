package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceSheetName(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		oldName  string
		newName  string
		expected string
		changed  bool
	}{
		{"quoted_target", "Source!A1+1", "Source", "'Source 2'", "'Source 2'!A1+1", true},
		{"bare_target_gets_quoted", "Source!A1+1", "Source", "Source 2", "'Source 2'!A1+1", true},
		{"inside_function", "SUM(Source!A1:B2)*2", "Source", "'Source 2'", "SUM('Source 2'!A1:B2)*2", true},
		{"case_insensitive", "source!$C$3", "Source", "Target", "Target!$C$3", true},
		{"leading_equals", "=Source!A1", "Source", "Target", "=Target!A1", true},
		{"every_reference", "Source!A1+Source!B1", "Source", "Data", "Data!A1+Data!B1", true},
		{"other_sheet", "Other!A1+A2", "Source", "Target", "Other!A1+A2", false},
		{"prefix_is_not_a_match", "Sources!A1", "Source", "Target", "Sources!A1", false},
		{"text_literal", `"Source!A1"&B1`, "Source", "Target", `"Source!A1"&B1`, false},
		{"no_sheet_prefix", "A1*2", "A", "Target", "A1*2", false},
		{"keeps_spacing", "SUM( Source!A1 , 2 )", "Source", "Data", "SUM( Data!A1 , 2 )", true},
		{"apostrophe_in_name", "='It''s'!A1+'It''s'!B1", "It's", "Other", "=Other!A1+Other!B1", true},
		{"apostrophe_in_new_name", "Source!A1", "Source", "It's", "'It''s'!A1", true},
		{"both_corners_qualified", "=Source!A1:Source!B2", "Source", "Source 2", "='Source 2'!A1:'Source 2'!B2", true},
		{"one_corner_matches", "SUM(Source!A1:Other!B2)", "Source", "Data", "SUM(Data!A1:Other!B2)", true},
		{"unqualified_first_corner", "SUM(A1:Source!B2)", "Source", "Data", "SUM(A1:Data!B2)", true},
		{"three_d_reference", "SUM(Source:Other!A1)", "Other", "Last", "SUM(Source:Last!A1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ReplaceSheetName(tt.formula, tt.oldName, tt.newName)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestReplaceSheetNameQuotedSource(t *testing.T) {
	got, changed := ReplaceSheetName("'Source 2'!A1*2", "'Source 2'", "Plain")
	assert.True(t, changed)
	assert.Equal(t, "Plain!A1*2", got)
}

func TestShiftReferences(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		dRow     int
		dCol     int
		expected string
	}{
		{"relative", "A1+$B$2", 3, 7, "H4+$B$2"},
		{"range", "SUM(A1:B2)", 1, 1, "SUM(B2:C3)"},
		{"mixed", "$A1*B$1", 2, 2, "$A3*D$1"},
		{"other_sheet", "Sheet2!A$1", 2, 1, "Sheet2!B$1"},
		{"whole_column", "SUM(A:A)", 5, 2, "SUM(C:C)"},
		{"off_sheet", "A1+1", -1, 0, "#REF!+1"},
		{"text_untouched", `"A1"&A1`, 1, 0, `"A1"&A2`},
		{"both_corners_qualified", "Source!A1:Source!B2", 1, 2, "Source!C2:Source!D3"},
		{"both_corners_off_sheet", "Source!A1:Source!B2", -1, 0, "Source!#REF!"},
		{"apostrophe_sheet", "'It''s'!A1*2", 1, 0, "'It''s'!A2*2"},
		{"quoted_sheet_absolute_column", "'Source 2'!$A1*2", 4, 3, "'Source 2'!$A5*2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ShiftReferences(tt.formula, tt.dRow, tt.dCol)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestShiftReferencesZeroOffset(t *testing.T) {
	got, changed := ShiftReferences("A1+B2", 0, 0)
	assert.False(t, changed)
	assert.Equal(t, "A1+B2", got)
}

func TestSheetRefs(t *testing.T) {
	assert.Equal(t, []string{"Source", "Source 2"}, SheetRefs("Source!A1+'Source 2'!B1+source!C1"))
	assert.Equal(t, []string{"Source", "Other"}, SheetRefs("SUM(Source!A1:Other!B2)"))
	assert.Nil(t, SheetRefs("A1+B1"))
}

func TestSplitOperand(t *testing.T) {
	tests := []struct {
		operand  string
		expected []string
	}{
		{"A1:B2", []string{"A1:B2"}},
		{"Source!A1:B2", []string{"Source!A1:B2"}},
		{"Source!A1:Source!B2", []string{"Source!A1", "Source!B2"}},
		{"'Source 2'!A1:'Source 2'!B2", []string{"'Source 2'!A1", "'Source 2'!B2"}},
		{"A1:Source!B2", []string{"A1", "Source!B2"}},
		{"Sheet1:Sheet3!A1:B2", []string{"Sheet1:Sheet3!A1:B2"}},
		{"'A:B'!A1", []string{"'A:B'!A1"}},
		{"'It''s'!A1:'It''s'!B2", []string{"'It''s'!A1", "'It''s'!B2"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, splitOperand(tt.operand), tt.operand)
	}
}
