package wml

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	docHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`
	docTail = `</w:body></w:document>`

	paraOne   = `<w:p><w:r><w:t>one</w:t></w:r></w:p>`
	paraTwo   = `<w:p><w:pPr>` + innerSect + `</w:pPr><w:r><w:t>two</w:t></w:r></w:p>`
	innerSect = `<w:sectPr><w:headerReference w:type="default" r:id="rId7"/><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`
	table     = `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	paraFour  = `<w:p><w:r><w:t>four</w:t></w:r></w:p>`
	paraEmpty = `<w:p/>`
	finalSect = `<w:sectPr><w:headerReference w:type="default" r:id="rId8"/>` +
		`<w:footerReference w:type="default" r:id="rId9"/><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`

	testBody = paraOne + paraTwo + table + paraFour + paraEmpty + finalSect
)

// docxBytes builds a minimal word-processing package around body.
func docxBytes(t *testing.T, body string) []byte {
	t.Helper()

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`},
		{"word/document.xml", docHead + body + docTail},
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range parts {
		f, err := w.Create(part.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(part.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newTestDocument(t *testing.T, body string) *Document {
	t.Helper()

	doc, err := FromBytes("doc.docx", docxBytes(t, body))
	require.NoError(t, err)
	return doc
}

// saveTestDocument writes a test document into a temp dir and returns its path.
func saveTestDocument(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, newTestDocument(t, body).SaveAs(path))
	return path
}

// bodyOf returns the markup between the w:body tags of doc.
func bodyOf(t *testing.T, doc *Document) string {
	t.Helper()

	part, err := doc.mainPart()
	require.NoError(t, err)
	s := string(part)
	require.True(t, len(s) >= len(docHead)+len(docTail))
	require.Equal(t, docHead, s[:len(docHead)])
	require.Equal(t, docTail, s[len(s)-len(docTail):])
	return s[len(docHead) : len(s)-len(docTail)]
}
