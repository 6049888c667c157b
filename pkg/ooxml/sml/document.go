// Package sml edits SpreadsheetML packages through excelize.
package sml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"github.com/xuri/excelize/v2"
	"gitlab.com/tozd/go/errors"
)

// Document is an in-memory spreadsheet package. It is never mutated;
// edits go through a Package and come back as a new Document.
type Document struct {
	name string
	data []byte
}

// FromFile loads a spreadsheet package from disk.
func FromFile(path string) (*Document, error) {
	data, err := ooxml.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes wraps package bytes, verifying they hold a workbook.
func FromBytes(name string, data []byte) (*Document, error) {
	if err := ooxml.Expect(data, ooxml.KindSpreadsheet); err != nil {
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

// Open returns an editable package over a private copy of the document.
// The caller must Close it.
func (d *Document) Open() (*Package, error) {
	f, err := excelize.OpenReader(bytes.NewReader(d.data))
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", d.name, err)
	}
	return &Package{name: d.name, file: f}, nil
}

// Package is an open, editable spreadsheet package.
type Package struct {
	name   string
	file   *excelize.File
	closed bool
	// errorCells holds error constants written since Open, by sheet and
	// cell name. See patchErrorCells.
	errorCells map[string]map[string]errorCell
}

// Workbook exposes the underlying excelize file for operations this
// package does not wrap.
func (p *Package) Workbook() *excelize.File {
	return p.file
}

// Close releases the package. It is safe to call more than once.
func (p *Package) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.file.Close()
}

// Modified serializes the current state of the package into a new Document.
func (p *Package) Modified() (*Document, error) {
	buf, err := p.file.WriteToBuffer()
	if err != nil {
		return nil, errors.Errorf("serializing %s: %w", p.name, err)
	}
	data, err := p.patchErrorCells(buf.Bytes())
	if err != nil {
		return nil, errors.Errorf("serializing %s: %w", p.name, err)
	}
	return &Document{name: p.name, data: data}, nil
}

// Worksheet identifies one worksheet of a package.
type Worksheet struct {
	// Name is the sheet name as stored in the workbook.
	Name string
	// Index is the 0-based position of the sheet in the workbook.
	Index int
}

// Worksheets returns the worksheet names in workbook order.
func (p *Package) Worksheets() []string {
	return p.file.GetSheetList()
}

// Worksheet looks a worksheet up by name, ignoring case as Excel does.
func (p *Package) Worksheet(name string) (*Worksheet, error) {
	for i, sheet := range p.file.GetSheetList() {
		if strings.EqualFold(sheet, name) {
			return &Worksheet{Name: sheet, Index: i}, nil
		}
	}
	return nil, errors.Errorf("%w: %q", ooxml.ErrSheetNotFound, name)
}
