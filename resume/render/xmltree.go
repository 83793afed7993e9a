package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
const relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

type xmlNode struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
	IsText   bool
}

// w builds a prefixed WordprocessingML element. The prefix is declared on the
// document root, so names are written literally.
func w(local string, attrs ...string) *xmlNode {
	node := &xmlNode{Name: xml.Name{Local: "w:" + local}}
	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attr = append(node.Attr, xml.Attr{Name: xml.Name{Local: "w:" + attrs[i]}, Value: attrs[i+1]})
	}
	return node
}

func (n *xmlNode) add(children ...*xmlNode) *xmlNode {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func textNode(text string) *xmlNode {
	return &xmlNode{IsText: true, Text: text}
}

func parseXMLDocument(xmlText string) (*xmlNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	var stack []*xmlNode
	var root *xmlNode

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &xmlNode{Name: t.Name, Attr: t.Attr}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 || len(t) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &xmlNode{IsText: true, Text: string(t)})
		}
	}

	if root == nil {
		return nil, errors.New("document.xml has no root element")
	}
	return root, nil
}

func encodeXMLDocument(rootStart, rootEnd string, children []*xmlNode) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(rootStart)

	encoder := xml.NewEncoder(&buf)
	for _, child := range children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return "", err
		}
	}
	if err := encoder.Flush(); err != nil {
		return "", err
	}

	buf.WriteString(rootEnd)
	return buf.String(), nil
}

func encodeXMLNode(encoder *xml.Encoder, node *xmlNode) error {
	if node.IsText {
		return encoder.EncodeToken(xml.CharData([]byte(node.Text)))
	}
	start := xml.StartElement{Name: node.Name, Attr: node.Attr}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := encodeXMLNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}

// walkXMLTree visits node and its descendants in document order. A false
// return from visit skips that node's children; the walk continues with
// its siblings.
func walkXMLTree(node *xmlNode, visit func(*xmlNode) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range node.Children {
		walkXMLTree(child, visit)
	}
}

func isElement(node *xmlNode, local string) bool {
	if node == nil || node.IsText {
		return false
	}
	if node.Name.Local != local {
		return false
	}
	return node.Name.Space == "" || node.Name.Space == wmlNamespace
}

// paragraphText concatenates run text in document order; w:tab becomes a tab character.
func paragraphText(p *xmlNode) string {
	var builder strings.Builder
	walkXMLTree(p, func(n *xmlNode) bool {
		switch {
		case isElement(n, "t"):
			for _, child := range n.Children {
				if child.IsText {
					builder.WriteString(child.Text)
				}
			}
			return false
		case isElement(n, "tab"):
			builder.WriteByte('\t')
		case isElement(n, "pPr"):
			return false
		}
		return true
	})
	return builder.String()
}
