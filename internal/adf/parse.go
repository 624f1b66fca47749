package adf

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse builds ADF nodes from markdown text. It covers headings,
// paragraphs, bold/italic/code/link spans, bullet and ordered lists, fenced
// code blocks, blockquotes, and rules; anything else is approximated as a
// plain paragraph. This is a one-directional authoring aid and is NOT the
// inverse of Markdown: a render/parse round trip does not reproduce the
// original tree.
func Parse(source string) []Node {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var nodes []Node
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		nodes = append(nodes, parseBlock(c, src)...)
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return nodes
}

func parseBlock(n ast.Node, src []byte) []Node {
	switch block := n.(type) {
	case *ast.Heading:
		return []Node{HeadingNodes(block.Level, parseInlines(block, src, nil)...)}

	case *ast.Paragraph, *ast.TextBlock:
		return []Node{Paragraph(parseInlines(n, src, nil)...)}

	case *ast.List:
		items := make([]Node, 0, block.ChildCount())
		for item := block.FirstChild(); item != nil; item = item.NextSibling() {
			var blocks []Node
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				blocks = append(blocks, parseBlock(c, src)...)
			}
			items = append(items, ListItem(blocks...))
		}
		if block.IsOrdered() {
			return []Node{OrderedList(items...)}
		}
		return []Node{BulletList(items...)}

	case *ast.FencedCodeBlock:
		return []Node{CodeBlock(blockLines(block, src), string(block.Language(src)))}

	case *ast.CodeBlock:
		return []Node{CodeBlock(blockLines(block, src), "")}

	case *ast.Blockquote:
		var blocks []Node
		for c := block.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = append(blocks, parseBlock(c, src)...)
		}
		return []Node{Blockquote(blocks...)}

	case *ast.ThematicBreak:
		return []Node{Rule()}

	default:
		// Best effort: flatten anything unsupported into a plain paragraph.
		if plain := strings.TrimSpace(string(n.Text(src))); plain != "" {
			return []Node{Paragraph(Text(plain))}
		}
		return nil
	}
}

// parseInlines converts the inline children of a block, carrying the set of
// marks accumulated from enclosing spans.
func parseInlines(parent ast.Node, src []byte, marks []Mark) []Node {
	var nodes []Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch inline := c.(type) {
		case *ast.Text:
			if value := string(inline.Value(src)); value != "" {
				nodes = append(nodes, Text(value, marks...))
			}
			if inline.HardLineBreak() {
				nodes = append(nodes, HardBreak())
			} else if inline.SoftLineBreak() {
				nodes = append(nodes, Text(" ", marks...))
			}

		case *ast.Emphasis:
			mark := Em()
			if inline.Level >= 2 {
				mark = Strong()
			}
			nodes = append(nodes, parseInlines(inline, src, appendMark(marks, mark))...)

		case *ast.CodeSpan:
			if value := string(inline.Text(src)); value != "" {
				nodes = append(nodes, Text(value, appendMark(marks, Code())...))
			}

		case *ast.Link:
			nodes = append(nodes, parseInlines(inline, src, appendMark(marks, Link(string(inline.Destination))))...)

		case *ast.AutoLink:
			url := string(inline.URL(src))
			nodes = append(nodes, Text(url, appendMark(marks, Link(url))...))

		default:
			if value := string(c.Text(src)); value != "" {
				nodes = append(nodes, Text(value, marks...))
			}
		}
	}
	return nodes
}

// appendMark copies the mark set before extending it so sibling spans never
// share a backing array.
func appendMark(marks []Mark, m Mark) []Mark {
	out := make([]Mark, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, m)
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
