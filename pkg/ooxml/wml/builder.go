package wml

import "github.com/ukaji3/ooxmltools-go/pkg/ooxml"

// SourceBuilder assembles a Source. Setters return the builder so calls
// chain; the last value set for a field wins.
//
//	src, err := wml.NewSourceBuilder().Start(2).Count(3).KeepSections(false).BuildFile("doc.docx")
type SourceBuilder struct {
	document              *Document
	loadErr               error
	start                 int
	count                 Count
	keepHeadersAndFooters bool
	keepSections          bool
	insertID              string
}

// NewSourceBuilder creates a builder holding the defaults and no document.
func NewSourceBuilder() *SourceBuilder {
	return (&SourceBuilder{}).Defaults()
}

// NewSourceBuilderFromFile creates a builder whose document is loaded from path.
func NewSourceBuilderFromFile(path string) *SourceBuilder {
	return NewSourceBuilder().FileName(path)
}

// NewSourceBuilderFromDocument creates a builder over doc.
func NewSourceBuilderFromDocument(doc *Document) *SourceBuilder {
	return NewSourceBuilder().Document(doc)
}

// FileName loads the document at path, replacing any previous one. A load
// failure is returned by the next terminal call unless another document
// is set first.
func (b *SourceBuilder) FileName(path string) *SourceBuilder {
	b.document, b.loadErr = FromFile(path)
	return b
}

// Document sets the document, replacing any previous one.
func (b *SourceBuilder) Document(doc *Document) *SourceBuilder {
	b.document, b.loadErr = doc, nil
	return b
}

// Start sets the index of the first body element.
func (b *SourceBuilder) Start(start int) *SourceBuilder {
	b.start = start
	return b
}

// Count sets the number of body elements.
func (b *SourceBuilder) Count(count int) *SourceBuilder {
	b.count = Limit(count)
	return b
}

// KeepHeadersAndFooters sets whether header and footer references are kept.
func (b *SourceBuilder) KeepHeadersAndFooters(keep bool) *SourceBuilder {
	b.keepHeadersAndFooters = keep
	return b
}

// KeepSections sets whether section breaks inside the slice are kept.
func (b *SourceBuilder) KeepSections(keep bool) *SourceBuilder {
	b.keepSections = keep
	return b
}

// InsertID sets the id of the content control the slice replaces when merged.
func (b *SourceBuilder) InsertID(id string) *SourceBuilder {
	b.insertID = id
	return b
}

// Defaults restores every setting except the document.
func (b *SourceBuilder) Defaults() *SourceBuilder {
	b.start = 0
	b.count = Unbounded()
	b.keepHeadersAndFooters = true
	b.keepSections = true
	b.insertID = ""
	return b
}

// BuildFile loads path as the document and builds.
func (b *SourceBuilder) BuildFile(path string) (Source, error) {
	return b.FileName(path).Build()
}

// BuildDocument sets doc as the document and builds.
func (b *SourceBuilder) BuildDocument(doc *Document) (Source, error) {
	return b.Document(doc).Build()
}

// Build returns the Source described so far. It fails with an
// *ooxml.ArgumentError when no document has been set.
func (b *SourceBuilder) Build() (Source, error) {
	if b.loadErr != nil {
		return Source{}, b.loadErr
	}
	if b.document == nil {
		return Source{}, ooxml.NewArgumentError("document", "document cannot be nil")
	}

	return Source{
		Document:              b.document,
		Start:                 b.start,
		Count:                 b.count,
		KeepHeadersAndFooters: b.keepHeadersAndFooters,
		KeepSections:          b.keepSections,
		InsertID:              b.insertID,
	}, nil
}
