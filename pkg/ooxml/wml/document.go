// Package wml handles WordprocessingML packages: loading them, describing
// which slice of a document to take, and producing that slice.
package wml

import (
	"os"
	"path/filepath"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"gitlab.com/tozd/go/errors"
)

// Document is an in-memory word-processing package.
type Document struct {
	name string
	data []byte
}

// FromFile loads a word-processing package from disk.
func FromFile(path string) (*Document, error) {
	data, err := ooxml.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes wraps package bytes, verifying they hold a main document part.
func FromBytes(name string, data []byte) (*Document, error) {
	if err := ooxml.Expect(data, ooxml.KindWordprocessing); err != nil {
		return nil, errors.Errorf("loading %s: %w", name, err)
	}
	return &Document{name: name, data: data}, nil
}

// Name returns the file name the document was loaded from.
func (d *Document) Name() string {
	return d.name
}

// Bytes returns the package bytes. Callers must not modify them.
func (d *Document) Bytes() []byte {
	return d.data
}

// SaveAs writes the package to path. The parent directory must exist.
func (d *Document) SaveAs(path string) error {
	if err := os.WriteFile(path, d.data, 0644); err != nil {
		return errors.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// BodyElements lists the top-level children of the document body in
// order, leaving out the final section properties.
func (d *Document) BodyElements() ([]BodyElement, error) {
	part, err := d.mainPart()
	if err != nil {
		return nil, err
	}
	layout, err := scanBody(part)
	if err != nil {
		return nil, errors.Errorf("reading body of %s: %w", d.name, err)
	}
	return layout.elements, nil
}

func (d *Document) mainPart() ([]byte, error) {
	r, err := ooxml.OpenZip(d.data)
	if err != nil {
		return nil, err
	}
	return ooxml.ReadPart(r, ooxml.MainDocumentPart)
}
