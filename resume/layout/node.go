// Package layout maps the résumé aggregate to presentational trees, one
// variant per template. Every renderer is a total, pure function of its input.
package layout

import (
	"strings"

	"resume-builder/resume/model"
)

// Kind is the structural type of a node; the HTML writer maps each kind to an element.
type Kind string

const (
	KindDocument  Kind = "document"
	KindSection   Kind = "section"
	KindBlock     Kind = "block"
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindSpan      Kind = "span"
	KindList      Kind = "list"
	KindItem      Kind = "item"
	KindTag       Kind = "tag"
	KindRule      Kind = "rule"
)

// Section keys identify the content section a node belongs to.
const (
	KeyContact    = "contact"
	KeySummary    = "summary"
	KeyExperience = "experience"
	KeyEducation  = "education"
	KeySkills     = "skills"
)

// Node is one element of a presentational tree.
type Node struct {
	Kind     Kind
	Key      string
	Role     string
	Class    string
	Level    int
	Text     string
	Children []*Node
}

// Renderer produces the presentational tree for one template.
type Renderer interface {
	Template() model.Template
	Render(data model.ResumeData) *Node
}

// For returns the renderer for t; unknown selectors fall back to Standard.
func For(t model.Template) Renderer {
	switch t {
	case model.TemplateClassic:
		return Executive{}
	case model.TemplateModern:
		return Modern{}
	case model.TemplateMinimal:
		return Minimalist{}
	default:
		return Standard{}
	}
}

// Render renders data with its own template selector.
func Render(data model.ResumeData) *Node {
	return For(data.Template).Render(data.Normalize())
}

// Find returns every node in the tree that matches pred, in document order.
func Find(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if pred(n) {
			out = append(out, n)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(root)
	return out
}

// ByRole matches nodes with the given role.
func ByRole(role string) func(*Node) bool {
	return func(n *Node) bool { return n.Role == role }
}

// SectionKeys lists the keys of the section nodes in document order.
func SectionKeys(root *Node) []string {
	var keys []string
	for _, n := range Find(root, func(n *Node) bool { return n.Kind == KindSection }) {
		keys = append(keys, n.Key)
	}
	return keys
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *Node) string {
	var b strings.Builder
	for _, m := range Find(n, func(*Node) bool { return true }) {
		b.WriteString(m.Text)
	}
	return b.String()
}

func el(kind Kind, role, class string, children ...*Node) *Node {
	return &Node{Kind: kind, Role: role, Class: class, Children: compact(children)}
}

func txt(kind Kind, role, class, text string) *Node {
	return &Node{Kind: kind, Role: role, Class: class, Text: text}
}

func section(key, class string, children ...*Node) *Node {
	return &Node{Kind: KindSection, Key: key, Role: "section", Class: class, Children: compact(children)}
}

func heading(level int, role, class, text string) *Node {
	return &Node{Kind: KindHeading, Level: level, Role: role, Class: class, Text: text}
}

// compact drops nil children so optional fragments can be written inline.
func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func dateRange(start, end, sep, ongoing string) string {
	if end == "" {
		end = ongoing
	}
	return start + " " + sep + " " + end
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func bullets(class string, highlights []string) *Node {
	visible := model.VisibleHighlights(highlights)
	if len(visible) == 0 {
		return nil
	}
	list := el(KindList, "bullets", class)
	for _, h := range visible {
		list.Children = append(list.Children, txt(KindItem, "bullet", "", h))
	}
	return list
}
