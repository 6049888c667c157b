package wml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
)

func TestSlice(t *testing.T) {
	tests := []struct {
		name     string
		build    func(b *SourceBuilder) *SourceBuilder
		expected string
	}{
		{
			name:     "defaults_keep_everything",
			build:    func(b *SourceBuilder) *SourceBuilder { return b },
			expected: testBody,
		},
		{
			name:     "start_and_count",
			build:    func(b *SourceBuilder) *SourceBuilder { return b.Start(1).Count(2) },
			expected: paraTwo + table + finalSect,
		},
		{
			name:     "count_past_end",
			build:    func(b *SourceBuilder) *SourceBuilder { return b.Start(3).Count(math.MaxInt) },
			expected: paraFour + paraEmpty + finalSect,
		},
		{
			name:     "start_past_end",
			build:    func(b *SourceBuilder) *SourceBuilder { return b.Start(10) },
			expected: finalSect,
		},
		{
			name:     "zero_count",
			build:    func(b *SourceBuilder) *SourceBuilder { return b.Count(0) },
			expected: finalSect,
		},
		{
			name:  "drop_sections",
			build: func(b *SourceBuilder) *SourceBuilder { return b.Start(1).Count(1).KeepSections(false) },
			expected: `<w:p><w:pPr></w:pPr><w:r><w:t>two</w:t></w:r></w:p>` + finalSect,
		},
		{
			name:  "drop_headers_and_footers",
			build: func(b *SourceBuilder) *SourceBuilder { return b.Start(1).Count(1).KeepHeadersAndFooters(false) },
			expected: `<w:p><w:pPr><w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr></w:pPr>` +
				`<w:r><w:t>two</w:t></w:r></w:p>` +
				`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`,
		},
		{
			name: "drop_both",
			build: func(b *SourceBuilder) *SourceBuilder {
				return b.Start(1).Count(1).KeepSections(false).KeepHeadersAndFooters(false)
			},
			expected: `<w:p><w:pPr></w:pPr><w:r><w:t>two</w:t></w:r></w:p>` +
				`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newTestDocument(t, testBody)
			src, err := tt.build(NewSourceBuilderFromDocument(doc)).Build()
			require.NoError(t, err)

			out, err := Slice(src)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, bodyOf(t, out))
			assert.Equal(t, testBody, bodyOf(t, doc), "the source document is not modified")
		})
	}
}

func TestSliceResultIsLoadable(t *testing.T) {
	src, err := NewSourceBuilderFromDocument(newTestDocument(t, testBody)).Start(2).Count(1).Build()
	require.NoError(t, err)

	out, err := Slice(src)
	require.NoError(t, err)

	reloaded, err := FromBytes(out.Name(), out.Bytes())
	require.NoError(t, err)
	elements, err := reloaded.BodyElements()
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, "tbl", elements[0].Name)
}

func TestSliceInvalidArguments(t *testing.T) {
	doc := newTestDocument(t, testBody)

	_, err := Slice(Source{Document: doc, Start: -1})
	assert.ErrorIs(t, err, ooxml.ErrArgument)

	_, err = Slice(Source{Document: doc, Count: Limit(-2)})
	assert.ErrorIs(t, err, ooxml.ErrArgument)

	_, err = Slice(Source{})
	assert.ErrorIs(t, err, ooxml.ErrArgument)
}
