package wml

import "strconv"

// Count is the number of body elements a Source takes. The zero value
// is unbounded: every element from Start to the end of the body.
type Count struct {
	n       int
	bounded bool
}

// Unbounded returns a Count that takes every remaining element.
func Unbounded() Count {
	return Count{}
}

// Limit returns a Count of exactly n elements, or fewer when the body ends first.
func Limit(n int) Count {
	return Count{n: n, bounded: true}
}

// Value returns the limit. ok is false for an unbounded count.
func (c Count) Value() (n int, ok bool) {
	return c.n, c.bounded
}

// IsUnbounded reports whether c takes every remaining element.
func (c Count) IsUnbounded() bool {
	return !c.bounded
}

func (c Count) String() string {
	if !c.bounded {
		return "unbounded"
	}
	return strconv.Itoa(c.n)
}

// Source describes a slice of a word-processing document to be merged
// into or extracted as another document. Build one with SourceBuilder.
type Source struct {
	// Document is the package the slice is taken from. It is referenced, not owned.
	Document *Document
	// Start is the index of the first body element taken.
	Start int
	// Count is the number of body elements taken.
	Count Count
	// KeepHeadersAndFooters keeps header and footer references on the kept sections.
	KeepHeadersAndFooters bool
	// KeepSections keeps section breaks that sit inside the slice.
	KeepSections bool
	// InsertID names the content control in a target document that the
	// slice replaces when merged. Empty means append.
	InsertID string
}
