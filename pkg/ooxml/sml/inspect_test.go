package sml

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml/models"
	"github.com/xuri/excelize/v2"
)

func TestSummarize(t *testing.T) {
	p := openTestPackage(t, formulaWorkbook(t))

	summary, err := p.Summarize()
	require.NoError(t, err)

	assert.Equal(t, "Formulas.xlsx", summary.BookName)
	require.Contains(t, summary.Sheets, "References")

	refs := summary.Sheets["References"]
	assert.Equal(t, 1, refs.Index)
	assert.Equal(t, 4, refs.FormulaCount)
	assert.Equal(t, []string{"Source", "Other"}, refs.SheetRefs)
	assert.Equal(t, "A1:C5", refs.Dimension)

	source := summary.Sheets["Source"]
	assert.Equal(t, 1, source.FormulaCount)
	assert.Equal(t, []string{"References"}, source.SheetRefs)

	assert.Equal(t, "Source!$A$1:$A$3", summary.DefinedNames["Inputs"])
}

func TestSummarizeChartsAndPrintAreas(t *testing.T) {
	doc := newTestDocument(t, func(f *excelize.File) {
		for i, v := range []int{3, 5, 8} {
			f.SetCellValue("Source", fmt.Sprintf("A%d", i+1), fmt.Sprintf("k%d", i))
			f.SetCellValue("Source", fmt.Sprintf("B%d", i+1), v)
		}
		require.NoError(t, f.AddChart("References", "E2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       "Source!$B$1",
				Categories: "Source!$A$1:$A$3",
				Values:     "Source!$B$1:$B$3",
			}},
		}))
		require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
			Name:     "_xlnm.Print_Area",
			RefersTo: "References!$A$1:$D$10",
			Scope:    "References",
		}))
	})
	p := openTestPackage(t, doc)

	summary, err := p.Summarize()
	require.NoError(t, err)

	refs := summary.Sheets["References"]
	assert.Equal(t, []string{"Source"}, refs.ChartRefs)
	assert.Equal(t, []models.CellRange{{R1: 1, C1: 1, R2: 10, C2: 4}}, refs.PrintAreas)
	assert.Zero(t, refs.FormulaCount)

	source := summary.Sheets["Source"]
	assert.Empty(t, source.ChartRefs)
	assert.Empty(t, source.PrintAreas)
}

func TestScanChartFormulas(t *testing.T) {
	data := []byte(`<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart><c:plotArea><c:barChart>
<c:ser><c:tx><c:strRef><c:f>Source!$B$1</c:f></c:strRef></c:tx>
<c:val><c:numRef><c:f> 'Source 2'!$B$1:$B$3 </c:f><c:numCache/></c:numRef></c:val></c:ser>
</c:barChart></c:plotArea></c:chart></c:chartSpace>`)

	assert.Equal(t, []string{"Source!$B$1", "'Source 2'!$B$1:$B$3"}, scanChartFormulas(data))
}
