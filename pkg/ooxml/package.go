// Package ooxml provides shared plumbing for editing Office Open XML packages.
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"io/fs"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Kind represents the family of an OOXML package.
type Kind string

const (
	// KindSpreadsheet is a SpreadsheetML package (.xlsx, .xlsm).
	KindSpreadsheet Kind = "spreadsheet"
	// KindWordprocessing is a WordprocessingML package (.docx, .docm).
	KindWordprocessing Kind = "wordprocessing"
)

// Main part names for each kind.
const (
	WorkbookPart     = "xl/workbook.xml"
	MainDocumentPart = "word/document.xml"
)

const relTypeOfficeDocument = "officeDocument"

// ReadFile reads a package from disk.
// A missing file is reported as ErrFileNotFound.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// OpenZip opens package bytes as a ZIP archive.
func OpenZip(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return r, nil
}

// Detect determines the kind of the package held in data.
// The root relationship part is consulted first; packages without one
// are classified by the presence of their main part.
func Detect(data []byte) (Kind, error) {
	r, err := OpenZip(data)
	if err != nil {
		return "", err
	}

	target := ""
	if rels, err := ReadPart(r, "_rels/.rels"); err == nil {
		target = findOfficeDocument(rels)
	}
	target = strings.TrimPrefix(target, "/")

	switch {
	case target == WorkbookPart || (target == "" && hasPart(r, WorkbookPart)):
		return KindSpreadsheet, nil
	case target == MainDocumentPart || (target == "" && hasPart(r, MainDocumentPart)):
		return KindWordprocessing, nil
	case strings.HasPrefix(target, "xl/"):
		return KindSpreadsheet, nil
	case strings.HasPrefix(target, "word/"):
		return KindWordprocessing, nil
	}
	return "", errors.Errorf("%w: no workbook or document part", ErrInvalidFormat)
}

// Expect verifies that data is a package of the given kind.
func Expect(data []byte, want Kind) error {
	got, err := Detect(data)
	if err != nil {
		return err
	}
	if got != want {
		return errors.Errorf("%w: expected %s package, got %s", ErrInvalidFormat, want, got)
	}
	return nil
}

// ReadPart returns the bytes of the named part.
func ReadPart(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, errors.Errorf("opening part %s: %w", name, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, errors.Errorf("%w: missing part %s", ErrInvalidFormat, name)
}

// ReplacePart copies the archive in r, substituting the content of the named part.
// Entry order, names and compression methods are kept.
func ReplacePart(r *zip.Reader, name string, content []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range r.File {
		hdr := f.FileHeader
		if f.Name != name {
			if err := w.Copy(f); err != nil {
				return nil, errors.Errorf("copying part %s: %w", f.Name, err)
			}
			continue
		}
		dst, err := w.CreateHeader(&zip.FileHeader{
			Name:     hdr.Name,
			Method:   hdr.Method,
			Modified: hdr.Modified,
		})
		if err != nil {
			return nil, errors.Errorf("creating part %s: %w", name, err)
		}
		if _, err := dst.Write(content); err != nil {
			return nil, errors.Errorf("writing part %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, errors.Errorf("finishing package: %w", err)
	}
	return buf.Bytes(), nil
}

func hasPart(r *zip.Reader, name string) bool {
	for _, f := range r.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

func findOfficeDocument(data []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var relType, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Type":
					relType = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if strings.HasSuffix(relType, "/"+relTypeOfficeDocument) {
				return target
			}
		}
	}

	return ""
}
