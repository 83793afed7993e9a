package layout

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/flosch/pongo2/v6"

	"resume-builder/resume/model"
)

var tagByKind = map[Kind]string{
	KindDocument:  "article",
	KindSection:   "section",
	KindBlock:     "div",
	KindParagraph: "p",
	KindSpan:      "span",
	KindList:      "ul",
	KindItem:      "li",
	KindTag:       "span",
	KindRule:      "hr",
}

// WriteHTML serializes the tree as an escaped HTML fragment.
func WriteHTML(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, root)
	return bw.Flush()
}

// HTML is WriteHTML into a string.
func HTML(root *Node) string {
	var buf bytes.Buffer
	_ = WriteHTML(&buf, root)
	return buf.String()
}

func writeNode(w *bufio.Writer, n *Node) {
	if n == nil {
		return
	}
	tag := elementName(n)
	w.WriteString("<" + tag)
	if n.Class != "" {
		w.WriteString(` class="` + html.EscapeString(n.Class) + `"`)
	}
	if n.Role != "" {
		w.WriteString(` data-role="` + html.EscapeString(n.Role) + `"`)
	}
	if n.Kind == KindSection && n.Key != "" {
		w.WriteString(` data-section="` + html.EscapeString(n.Key) + `"`)
	}
	if n.Kind == KindRule {
		w.WriteString(">")
		return
	}
	w.WriteString(">")
	w.WriteString(html.EscapeString(n.Text))
	for _, child := range n.Children {
		writeNode(w, child)
	}
	w.WriteString("</" + tag + ">")
}

func elementName(n *Node) string {
	if n.Kind == KindHeading {
		level := n.Level
		if level < 1 || level > 6 {
			level = 2
		}
		return "h" + strconv.Itoa(level)
	}
	if tag, ok := tagByKind[n.Kind]; ok {
		return tag
	}
	return "div"
}

//go:embed page.html
var pageSource string

//go:embed page.css
var pageCSS string

var pageTemplate = pongo2.Must(pongo2.FromString(pageSource))

// PageOptions controls the full-page wrapper.
type PageOptions struct {
	// Print hides interactive chrome and pins the sheet to A4 width.
	Print bool
	// Template overrides the aggregate's own selector when non-empty.
	Template model.Template
}

// Page renders data into a complete HTML document with embedded styles.
func Page(data model.ResumeData, opts PageOptions) ([]byte, error) {
	data = data.Normalize()
	if opts.Template != "" {
		data.Template = opts.Template
	}
	r := For(data.Template)
	out, err := pageTemplate.ExecuteBytes(pongo2.Context{
		"title":    pageTitle(data.Contact.FullName),
		"template": string(r.Template()),
		"label":    r.Template().Label(),
		"print":    opts.Print,
		"css":      pageCSS,
		"body":     HTML(r.Render(data)),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out, nil
}

func pageTitle(name string) string {
	if name == "" {
		return "Resume"
	}
	return name + " - Resume"
}
