package wml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/xuri/excelize/v2"
)

func TestFromFile(t *testing.T) {
	path := saveTestDocument(t, testBody)

	doc, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "doc.docx", doc.Name())

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.docx"))
	assert.ErrorIs(t, err, ooxml.ErrFileNotFound)
}

func TestFromBytesRejectsSpreadsheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = FromBytes("book.xlsx", buf.Bytes())
	assert.ErrorIs(t, err, ooxml.ErrInvalidFormat)
}

func TestBodyElements(t *testing.T) {
	elements, err := newTestDocument(t, testBody).BodyElements()
	require.NoError(t, err)

	names := make([]string, len(elements))
	for i, el := range elements {
		names[i] = el.Name
	}
	assert.Equal(t, []string{"p", "p", "tbl", "p", "p"}, names)
	assert.Equal(t, len(paraOne), elements[0].Size())
	assert.Equal(t, len(paraEmpty), elements[4].Size())
}

func TestBodyElementsWithoutBody(t *testing.T) {
	doc := &Document{name: "broken.docx", data: docxBytesRaw(t, `<w:document xmlns:w="`+nsW+`"/>`)}
	_, err := doc.BodyElements()
	assert.ErrorIs(t, err, ooxml.ErrInvalidFormat)
}

// docxBytesRaw builds a package whose main part is exactly content.
func docxBytesRaw(t *testing.T, content string) []byte {
	t.Helper()

	r, err := ooxml.OpenZip(docxBytes(t, ""))
	require.NoError(t, err)
	data, err := ooxml.ReplacePart(r, ooxml.MainDocumentPart, []byte(content))
	require.NoError(t, err)
	return data
}
