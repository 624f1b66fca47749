package adf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// Section is a derived view of one heading-delimited range over a flat node
// sequence. Start is the index of the heading node; End is exclusive and is
// the index of the next heading at any level, or the sequence length.
// Sections are computed on demand and never persisted.
type Section struct {
	Heading string
	Level   int
	Start   int
	End     int
}

// Body returns the index range of the section interior (heading excluded).
func (s Section) Body() (start, end int) { return s.Start + 1, s.End }

// FindSections scans top-level nodes for headings in document order. Every
// heading opens a section; a section ends at the very next heading
// regardless of level. Nodes before the first heading belong to no section.
// An empty sequence yields an empty result.
func FindSections(nodes []Node) []Section {
	var sections []Section
	for i, n := range nodes {
		if n.Type != TypeHeading {
			continue
		}
		if len(sections) > 0 {
			sections[len(sections)-1].End = i
		}
		sections = append(sections, Section{
			Heading: strings.TrimSpace(PlainText(n)),
			Level:   headingLevel(n),
			Start:   i,
			End:     len(nodes),
		})
	}
	return sections
}

// findSection locates the first section whose heading text matches exactly.
// Matching is case-sensitive; repeated headings resolve to the first.
func findSection(nodes []Node, heading string) (Section, error) {
	for _, s := range FindSections(nodes) {
		if s.Heading == heading {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("section %q: %w", heading, domain.ErrNotFound)
}

// ExtractSection returns the interior nodes of the first section matching
// the heading text. The heading node itself is excluded: replacement
// operations decide whether to keep or regenerate it.
func ExtractSection(nodes []Node, heading string) ([]Node, error) {
	s, err := findSection(nodes, heading)
	if err != nil {
		return nil, err
	}
	start, end := s.Body()
	return slices.Clone(nodes[start:end]), nil
}

// ReplaceSection returns a new sequence with the section interior replaced
// by newNodes. The heading node and everything outside the section are
// carried over untouched, so ReplaceSection followed by ExtractSection
// yields newNodes exactly.
func ReplaceSection(nodes []Node, heading string, newNodes []Node) ([]Node, error) {
	s, err := findSection(nodes, heading)
	if err != nil {
		return nil, err
	}
	start, end := s.Body()
	out := make([]Node, 0, len(nodes)-(end-start)+len(newNodes))
	out = append(out, nodes[:start]...)
	out = append(out, newNodes...)
	out = append(out, nodes[end:]...)
	return out, nil
}

// InsertAfter returns a new sequence with newNodes inserted immediately
// after the section's end boundary, following any trailing content of the
// section rather than the heading itself.
func InsertAfter(nodes []Node, heading string, newNodes []Node) ([]Node, error) {
	s, err := findSection(nodes, heading)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(nodes)+len(newNodes))
	out = append(out, nodes[:s.End]...)
	out = append(out, newNodes...)
	out = append(out, nodes[s.End:]...)
	return out, nil
}

// headingLevel reads the level attribute, defaulting to 1.
func headingLevel(n Node) int {
	switch v := n.Attrs["level"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 1
	}
}
