package adf

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// Node kind names as they appear on the wire.
const (
	TypeDoc             = "doc"
	TypeText            = "text"
	TypeParagraph       = "paragraph"
	TypeHeading         = "heading"
	TypeBulletList      = "bulletList"
	TypeOrderedList     = "orderedList"
	TypeListItem        = "listItem"
	TypeTable           = "table"
	TypeTableRow        = "tableRow"
	TypeTableHeader     = "tableHeader"
	TypeTableCell       = "tableCell"
	TypePanel           = "panel"
	TypeBlockquote      = "blockquote"
	TypeCodeBlock       = "codeBlock"
	TypeRule            = "rule"
	TypeHardBreak       = "hardBreak"
	TypeStatus          = "status"
	TypeInlineCard      = "inlineCard"
	TypeExpand          = "expand"
	TypeExtension       = "extension"
	TypeBodiedExtension = "bodiedExtension"
)

// Mark type names.
const (
	MarkStrong    = "strong"
	MarkEm        = "em"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkLink      = "link"
	MarkTextColor = "textColor"
)

// Mark is an inline formatting annotation on a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is one node of the ADF content tree. The kind lives in Type; fields
// not meaningful for a kind stay empty. Node kinds this package does not
// recognise round-trip through the JSON codec unchanged: the standard fields
// are captured here and anything else is carried in an opaque sidecar, so
// serialisation never drops data it does not understand.
type Node struct {
	Type    string
	Text    string
	Marks   []Mark
	Attrs   map[string]any
	Content []Node

	// extra holds fields outside the standard ADF shape, preserved verbatim.
	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a node, keeping unrecognised fields in the opaque
// sidecar rather than discarding them.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = Node{}
	for key, value := range raw {
		var err error
		switch key {
		case "type":
			err = json.Unmarshal(value, &n.Type)
		case "text":
			err = json.Unmarshal(value, &n.Text)
		case "marks":
			err = json.Unmarshal(value, &n.Marks)
		case "attrs":
			err = json.Unmarshal(value, &n.Attrs)
		case "content":
			err = json.Unmarshal(value, &n.Content)
		default:
			if n.extra == nil {
				n.extra = make(map[string]json.RawMessage)
			}
			n.extra[key] = value
		}
		if err != nil {
			return fmt.Errorf("node field %q: %w", key, err)
		}
	}

	if n.Type == "" {
		return fmt.Errorf("%w: node without type", domain.ErrMalformedTree)
	}
	return nil
}

// MarshalJSON encodes the node including any preserved opaque fields. Keys
// are emitted in lexical order, so equality is insensitive to the field
// ordering of the input.
func (n Node) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 5+len(n.extra))
	for key, value := range n.extra {
		m[key] = value
	}
	m["type"] = n.Type
	if n.Text != "" || n.Type == TypeText {
		m["text"] = n.Text
	}
	if len(n.Marks) > 0 {
		m["marks"] = n.Marks
	}
	if n.Attrs != nil {
		m["attrs"] = n.Attrs
	}
	if n.Content != nil {
		m["content"] = n.Content
	}
	return json.Marshal(m)
}

// Doc is the root ADF document container.
type Doc struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Content []Node `json:"content"`
}

// NewDoc wraps a node sequence in a version-1 document root.
func NewDoc(nodes []Node) *Doc {
	if nodes == nil {
		nodes = []Node{}
	}
	return &Doc{Type: TypeDoc, Version: 1, Content: nodes}
}

// ParseDocument decodes an ADF document from raw JSON. Unknown document
// shapes are rejected; unknown node kinds inside the tree are preserved.
func ParseDocument(data []byte) (*Doc, error) {
	var doc Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedTree, err)
	}
	if doc.Type != TypeDoc {
		return nil, fmt.Errorf("%w: root type %q, want %q", domain.ErrMalformedTree, doc.Type, TypeDoc)
	}
	return &doc, nil
}

// ValidateDocument reports whether raw JSON is a structurally valid ADF
// document. Used by the sync engine before a fetched body is written.
func ValidateDocument(data []byte) error {
	_, err := ParseDocument(data)
	return err
}

// Marshal encodes a document as indented JSON with a trailing newline,
// the format the on-disk cache uses.
func (d *Doc) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// PlainText concatenates the text content of a node's inline children.
func PlainText(n Node) string {
	if n.Type == TypeText {
		return n.Text
	}
	var out string
	for _, child := range n.Content {
		out += PlainText(child)
	}
	return out
}
