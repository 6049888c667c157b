package sml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchCells(t *testing.T) {
	data := []byte(`<worksheet><sheetData><row r="1">` +
		`<c r="A1" t="inlineStr"><is><t>#N/A</t></is></c>` +
		`<c r="B1"><v>2</v></c>` +
		`<c r="C1" s="2"/>` +
		`</row></sheetData></worksheet>`)

	got, err := patchCells(data, map[string]errorCell{
		"A1": {value: "#N/A"},
		"C1": {value: "#REF!", style: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, `<worksheet><sheetData><row r="1">`+
		`<c r="A1" t="e"><v>#N/A</v></c>`+
		`<c r="B1"><v>2</v></c>`+
		`<c r="C1" s="2" t="e"><v>#REF!</v></c>`+
		`</row></sheetData></worksheet>`, string(got))
}

func TestPatchCellsMalformed(t *testing.T) {
	_, err := patchCells([]byte(`<worksheet><c r="A1">`), map[string]errorCell{"A1": {value: "#N/A"}})
	assert.Error(t, err)
}
