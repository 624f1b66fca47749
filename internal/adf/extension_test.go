package adf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

func TestFindExtensions(t *testing.T) {
	nodes := []Node{
		Paragraph(Text("intro")),
		BodiedExtension("info", "Status Box", Paragraph(Text("ok"))),
		Expand("Details",
			BodiedExtension("excerpt", "Summary", Paragraph(Text("nested"))),
		),
	}

	refs, err := FindExtensions(nodes)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, []int{1}, refs[0].Path)
	assert.Equal(t, "info", refs[0].Key)
	assert.Equal(t, "Status Box", refs[0].Title)

	assert.Equal(t, []int{2, 0}, refs[1].Path)
	assert.Equal(t, "excerpt", refs[1].Key)
	assert.Equal(t, "Summary", refs[1].Title)
}

func TestFindExtensionsMissingKey(t *testing.T) {
	nodes := []Node{{
		Type:  TypeBodiedExtension,
		Attrs: map[string]any{"layout": "default"},
	}}

	_, err := FindExtensions(nodes)
	assert.ErrorIs(t, err, domain.ErrMalformedTree)
}

func TestExtractExtension(t *testing.T) {
	body := []Node{Paragraph(Text("inside"))}
	nodes := []Node{BodiedExtension("info", "Box", body...)}

	got, err := ExtractExtension(nodes, "Box")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestExtractExtensionNotFound(t *testing.T) {
	nodes := []Node{BodiedExtension("info", "Box")}

	_, err := ExtractExtension(nodes, "Other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceExtensionPreservesWrapper(t *testing.T) {
	nodes := []Node{
		Paragraph(Text("before")),
		Expand("Wrapper",
			BodiedExtension("info", "Box", Paragraph(Text("old"))),
		),
		Paragraph(Text("after")),
	}
	wrapperAttrs := nodes[1].Content[0].Attrs

	out, err := ReplaceExtension(nodes, "Box", []Node{Paragraph(Text("new"))})
	require.NoError(t, err)

	replaced := out[1].Content[0]
	assert.Equal(t, wrapperAttrs, replaced.Attrs)
	require.Len(t, replaced.Content, 1)
	assert.Equal(t, "new", PlainText(replaced.Content[0]))

	// Siblings and ancestors are carried over, and the input is untouched.
	assert.Equal(t, "before", PlainText(out[0]))
	assert.Equal(t, "after", PlainText(out[2]))
	assert.Equal(t, "old", PlainText(nodes[1].Content[0].Content[0]))
}

func TestReplaceExtensionEmptyBody(t *testing.T) {
	nodes := []Node{BodiedExtension("info", "Box", Paragraph(Text("old")))}

	out, err := ReplaceExtension(nodes, "Box", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, TypeBodiedExtension, out[0].Type)
	assert.Empty(t, out[0].Content)

	// An emptied body still serialises as an array, not null.
	data, err := json.Marshal(out[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":[]`)
}

func TestReplaceExtensionNotFound(t *testing.T) {
	_, err := ReplaceExtension([]Node{Paragraph(Text("x"))}, "Box", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
