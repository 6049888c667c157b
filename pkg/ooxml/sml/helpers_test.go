package sml

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestDocument builds a workbook in memory. Sheet1 is renamed to
// Source and a References sheet is added before build runs.
func newTestDocument(t *testing.T, build func(f *excelize.File)) *Document {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Source"))
	_, err := f.NewSheet("References")
	require.NoError(t, err)

	if build != nil {
		build(f)
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	doc, err := FromBytes("Formulas.xlsx", buf.Bytes())
	require.NoError(t, err)
	return doc
}

// openTestPackage opens doc and closes it when the test ends.
func openTestPackage(t *testing.T, doc *Document) *Package {
	t.Helper()

	p, err := doc.Open()
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

// reopen serializes p and opens the result, proving the edit survived a save.
func reopen(t *testing.T, p *Package) *Package {
	t.Helper()

	doc, err := p.Modified()
	require.NoError(t, err)
	return openTestPackage(t, doc)
}

// setSharedFormula stores text on master as a formula shared by every cell of ref.
func setSharedFormula(t *testing.T, f *excelize.File, sheet, master, ref, text string) {
	t.Helper()

	kind := excelize.STCellFormulaTypeShared
	require.NoError(t, f.SetCellFormula(sheet, master, text, excelize.FormulaOpts{Type: &kind, Ref: &ref}))
}
