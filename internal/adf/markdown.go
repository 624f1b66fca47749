package adf

import (
	"fmt"
	"strings"
)

// Markdown renders a node sequence as readable markdown text. The projection
// is structural and lossy: extensions render as labelled markers, unknown
// kinds render their nested content. Identical trees always produce
// identical text. The output is for preview only and is never parsed back.
func Markdown(nodes []Node) string {
	blocks := renderBlocks(nodes, "")
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func renderBlocks(nodes []Node, indent string) []string {
	var blocks []string
	for _, n := range nodes {
		if b := renderBlock(n, indent); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func renderBlock(n Node, indent string) string {
	switch n.Type {
	case TypeHeading:
		return indent + strings.Repeat("#", headingLevel(n)) + " " + renderInline(n.Content)

	case TypeParagraph:
		return indent + renderInline(n.Content)

	case TypeBulletList:
		return renderList(n.Content, indent, func(int) string { return "- " })

	case TypeOrderedList:
		return renderList(n.Content, indent, func(i int) string { return fmt.Sprintf("%d. ", i+1) })

	case TypeCodeBlock:
		lang, _ := n.Attrs["language"].(string)
		return indent + "```" + lang + "\n" + PlainText(n) + "\n" + indent + "```"

	case TypeBlockquote:
		return prefixLines(strings.Join(renderBlocks(n.Content, ""), "\n\n"), indent+"> ")

	case TypePanel:
		panelType, _ := n.Attrs["panelType"].(string)
		body := strings.Join(renderBlocks(n.Content, ""), "\n\n")
		return prefixLines("**"+panelType+":**\n"+body, indent+"> ")

	case TypeTable:
		return renderTable(n, indent)

	case TypeRule:
		return indent + "---"

	case TypeExpand:
		title, _ := n.Attrs["title"].(string)
		parts := append([]string{indent + "[expand: " + title + "]"}, renderBlocks(n.Content, indent)...)
		return strings.Join(parts, "\n\n")

	case TypeExtension, TypeBodiedExtension:
		key, _ := n.Attrs["extensionKey"].(string)
		marker := indent + "[macro " + key
		if title := extensionTitle(n); title != "" {
			marker += ": " + title
		}
		marker += "]"
		parts := append([]string{marker}, renderBlocks(n.Content, indent)...)
		return strings.Join(parts, "\n\n")

	default:
		// Unknown block kinds: project whatever content they carry.
		if len(n.Content) > 0 {
			return strings.Join(renderBlocks(n.Content, indent), "\n\n")
		}
		if inline := renderInline([]Node{n}); inline != "" {
			return indent + inline
		}
		return ""
	}
}

func renderList(items []Node, indent string, marker func(int) string) string {
	var lines []string
	for i, item := range items {
		m := marker(i)
		itemBlocks := renderBlocks(item.Content, "")
		body := strings.Join(itemBlocks, "\n")
		for j, line := range strings.Split(body, "\n") {
			if j == 0 {
				lines = append(lines, indent+m+line)
			} else {
				lines = append(lines, indent+strings.Repeat(" ", len(m))+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func renderTable(n Node, indent string) string {
	var lines []string
	for i, row := range n.Content {
		if row.Type != TypeTableRow {
			continue
		}
		cells := make([]string, 0, len(row.Content))
		for _, cell := range row.Content {
			text := strings.Join(renderBlocks(cell.Content, ""), " ")
			cells = append(cells, strings.ReplaceAll(text, "\n", " "))
		}
		lines = append(lines, indent+"| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			lines = append(lines, indent+"| "+strings.Join(seps, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func renderInline(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Type {
		case TypeText:
			b.WriteString(renderMarks(n))
		case TypeHardBreak:
			b.WriteString("\n")
		case TypeStatus:
			label, _ := n.Attrs["text"].(string)
			b.WriteString("[" + label + "]")
		case TypeInlineCard:
			if url, ok := n.Attrs["url"].(string); ok {
				b.WriteString("<" + url + ">")
			} else {
				b.WriteString("[card]")
			}
		default:
			b.WriteString(renderInline(n.Content))
		}
	}
	return b.String()
}

// renderMarks wraps text in inline markup. Marks apply in a fixed order so
// rendering stays deterministic regardless of mark ordering on the node.
func renderMarks(n Node) string {
	var strong, em, strike, code bool
	var href string
	for _, m := range n.Marks {
		switch m.Type {
		case MarkStrong:
			strong = true
		case MarkEm:
			em = true
		case MarkStrike:
			strike = true
		case MarkCode:
			code = true
		case MarkLink:
			href, _ = m.Attrs["href"].(string)
		}
	}

	text := n.Text
	if code {
		text = "`" + text + "`"
	}
	if em {
		text = "*" + text + "*"
	}
	if strong {
		text = "**" + text + "**"
	}
	if strike {
		text = "~~" + text + "~~"
	}
	if href != "" {
		text = "[" + text + "](" + href + ")"
	}
	return text
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
