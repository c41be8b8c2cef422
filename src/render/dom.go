// Package render builds golang.org/x/net/html trees. Views describe their
// output with these helpers; hosts serialize the trees as HTML or text.
package render

import (
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Attr = html.Attribute

func A(key, val string) Attr {
	return html.Attribute{Key: key, Val: val}
}

func Class(val string) Attr {
	return A("class", val)
}

// El builds an element node. Nil children are skipped so optional parts can
// be written inline.
func El(tag string, attrs []Attr, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	for _, child := range children {
		if child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

func Attrs(attrs ...Attr) []Attr {
	return attrs
}

func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func Document(title string, body *html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(El("html", Attrs(A("lang", "en")),
		El("head", nil,
			El("meta", Attrs(A("charset", "utf-8"))),
			El("title", nil, Text(title)),
		),
		El("body", nil, body),
	))
	return doc
}

func Write(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

func String(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// InnerText returns the visible text of a tree.
func InnerText(n *html.Node) string {
	return htmlquery.InnerText(n)
}

func AttrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func HasClass(n *html.Node, class string) bool {
	val, ok := AttrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(val) {
		if c == class {
			return true
		}
	}
	return false
}
