package adf

import "github.com/google/uuid"

// Builder functions construct well-formed nodes from typed arguments.
// All builders are pure; none touch shared state.

// Text creates a text node with the given marks.
func Text(s string, marks ...Mark) Node {
	n := Node{Type: TypeText, Text: s}
	if len(marks) > 0 {
		n.Marks = marks
	}
	return n
}

// Strong returns a bold mark.
func Strong() Mark { return Mark{Type: MarkStrong} }

// Em returns an italic mark.
func Em() Mark { return Mark{Type: MarkEm} }

// Strike returns a strikethrough mark.
func Strike() Mark { return Mark{Type: MarkStrike} }

// Code returns an inline-code mark.
func Code() Mark { return Mark{Type: MarkCode} }

// Link returns a hyperlink mark.
func Link(href string) Mark {
	return Mark{Type: MarkLink, Attrs: map[string]any{"href": href}}
}

// TextColor returns a text colour mark.
func TextColor(color string) Mark {
	return Mark{Type: MarkTextColor, Attrs: map[string]any{"color": color}}
}

// Bold is shorthand for a bold text node.
func Bold(s string) Node { return Text(s, Strong()) }

// Italic is shorthand for an italic text node.
func Italic(s string) Node { return Text(s, Em()) }

// LinkText is shorthand for a linked text node.
func LinkText(label, href string) Node { return Text(label, Link(href)) }

// Paragraph creates a paragraph from inline nodes.
func Paragraph(inline ...Node) Node {
	return Node{Type: TypeParagraph, Content: content(inline)}
}

// Heading creates a heading node at the given level (1-6) with plain text.
func Heading(level int, text string) Node {
	return HeadingNodes(level, Text(text))
}

// HeadingNodes creates a heading node with explicit inline children.
func HeadingNodes(level int, inline ...Node) Node {
	return Node{
		Type:    TypeHeading,
		Attrs:   map[string]any{"level": level},
		Content: content(inline),
	}
}

// StatusBadge creates a status lozenge.
// Colours: neutral, purple, blue, green, yellow, red.
func StatusBadge(label, color string) Node {
	return Node{Type: TypeStatus, Attrs: map[string]any{
		"text":    label,
		"color":   color,
		"localId": uuid.NewString(),
		"style":   "",
	}}
}

// HardBreak creates a hard line break.
func HardBreak() Node { return Node{Type: TypeHardBreak} }

// Rule creates a horizontal rule.
func Rule() Node { return Node{Type: TypeRule} }

// ListItem creates a list item from block nodes.
func ListItem(blocks ...Node) Node {
	return Node{Type: TypeListItem, Content: content(blocks)}
}

// TextItem is shorthand for a list item holding one plain paragraph.
func TextItem(s string) Node { return ListItem(Paragraph(Text(s))) }

// BulletList creates a bullet list from listItem nodes.
func BulletList(items ...Node) Node {
	return Node{Type: TypeBulletList, Content: content(items)}
}

// OrderedList creates a numbered list from listItem nodes.
func OrderedList(items ...Node) Node {
	return Node{
		Type:    TypeOrderedList,
		Attrs:   map[string]any{"order": 1},
		Content: content(items),
	}
}

// Table creates a table with one header row followed by data rows.
func Table(headers []string, rows [][]string) Node {
	cell := func(value string, header bool) Node {
		kind := TypeTableCell
		if header {
			kind = TypeTableHeader
		}
		return Node{Type: kind, Attrs: map[string]any{}, Content: []Node{Paragraph(Text(value))}}
	}

	tableRows := make([]Node, 0, len(rows)+1)
	headerCells := make([]Node, len(headers))
	for i, h := range headers {
		headerCells[i] = cell(h, true)
	}
	tableRows = append(tableRows, Node{Type: TypeTableRow, Content: headerCells})

	for _, row := range rows {
		cells := make([]Node, len(row))
		for i, value := range row {
			cells[i] = cell(value, false)
		}
		tableRows = append(tableRows, Node{Type: TypeTableRow, Content: cells})
	}

	return Node{Type: TypeTable, Attrs: map[string]any{
		"isNumberColumnEnabled": false,
		"layout":                "default",
		"localId":               uuid.NewString(),
	}, Content: tableRows}
}

// Panel creates a panel. Types: info, note, warning, success, error.
func Panel(panelType string, blocks ...Node) Node {
	return Node{
		Type:    TypePanel,
		Attrs:   map[string]any{"panelType": panelType},
		Content: content(blocks),
	}
}

// CodeBlock creates a code block with an optional language.
func CodeBlock(code, language string) Node {
	return Node{
		Type:    TypeCodeBlock,
		Attrs:   map[string]any{"language": language},
		Content: []Node{Text(code)},
	}
}

// Blockquote creates a block quote from block nodes.
func Blockquote(blocks ...Node) Node {
	return Node{Type: TypeBlockquote, Content: content(blocks)}
}

// Expand creates a collapsible section with a title.
func Expand(title string, blocks ...Node) Node {
	return Node{
		Type:    TypeExpand,
		Attrs:   map[string]any{"title": title},
		Content: content(blocks),
	}
}

// BodiedExtension creates a macro extension block wrapping an editable body.
// The macro and instance identifiers are freshly generated.
func BodiedExtension(key, title string, body ...Node) Node {
	return Node{
		Type: TypeBodiedExtension,
		Attrs: map[string]any{
			"extensionType": "com.atlassian.confluence.macro.core",
			"extensionKey":  key,
			"layout":        "default",
			"localId":       uuid.NewString(),
			"parameters": map[string]any{
				"macroMetadata": map[string]any{
					"macroId": map[string]any{"value": uuid.NewString()},
					"title":   title,
				},
			},
		},
		Content: content(body),
	}
}

// content normalises a variadic node slice so empty bodies serialise as [].
func content(nodes []Node) []Node {
	if nodes == nil {
		return []Node{}
	}
	return nodes
}
