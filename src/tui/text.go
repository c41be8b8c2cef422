package tui

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/BielosX/wombat/pokedex/src/render"
)

// textWriter turns a view tree into terminal text. Every pokemon-box
// becomes exactly one line, so the list cursor maps to a line index.
type textWriter struct {
	sb       strings.Builder
	styles   Styles
	selected int
	boxes    int
}

func renderText(n *html.Node, styles Styles, selected int) string {
	w := &textWriter{styles: styles, selected: selected}
	w.node(n)
	return strings.TrimRight(w.sb.String(), "\n")
}

func (w *textWriter) newline() {
	s := w.sb.String()
	if len(s) > 0 && !strings.HasSuffix(s, "\n") {
		w.sb.WriteString("\n")
	}
}

func (w *textWriter) blankLine() {
	w.newline()
	if s := w.sb.String(); len(s) > 0 && !strings.HasSuffix(s, "\n\n") {
		w.sb.WriteString("\n")
	}
}

func (w *textWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

func (w *textWriter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.sb.WriteString(n.Data)
		return
	case html.DocumentNode:
		w.children(n)
		return
	case html.ElementNode:
	default:
		return
	}

	switch {
	case n.Data == "a" && render.HasClass(n, "pokemon-box"):
		w.box(n)
	case n.Data == "div" && render.HasClass(n, "pokemon-header"):
		w.newline()
		var parts []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parts = append(parts, strings.TrimSpace(htmlquery.InnerText(c)))
		}
		w.sb.WriteString(w.styles.Title.Render(strings.Join(parts, " ")))
		w.newline()
	case n.Data == "img":
		w.newline()
		w.sb.WriteString(w.styles.Image.Render(imageLabel(n)))
		w.newline()
	case n.Data == "button":
		w.newline()
		w.sb.WriteString(w.styles.Help.Render("[b] " + htmlquery.InnerText(n)))
		w.newline()
	case n.Data == "h1":
		w.newline()
		w.sb.WriteString(w.styles.Title.Render(htmlquery.InnerText(n)))
		w.newline()
	case n.Data == "h2":
		w.blankLine()
		w.sb.WriteString(w.styles.Section.Render(htmlquery.InnerText(n)))
		w.newline()
	case n.Data == "p":
		w.newline()
		text := htmlquery.InnerText(n)
		if render.HasClass(n, "error") {
			text = w.styles.Error.Render(text)
		}
		w.sb.WriteString(text)
		w.newline()
	case n.Data == "li":
		w.newline()
		w.sb.WriteString("• " + htmlquery.InnerText(n))
		w.newline()
	case n.Data == "tr":
		w.newline()
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cells = append(cells, htmlquery.InnerText(c))
		}
		if len(cells) == 2 {
			w.sb.WriteString(padRight(cells[0], 18) + cells[1])
		} else {
			w.sb.WriteString(strings.Join(cells, " "))
		}
		w.newline()
	default:
		w.children(n)
	}
}

func (w *textWriter) box(n *html.Node) {
	w.newline()
	label := ""
	image := ""
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.Data == "img":
			image = imageLabel(c)
		default:
			label += htmlquery.InnerText(c)
		}
	}
	prefix := "  "
	line := label
	if w.boxes == w.selected {
		prefix = "> "
		line = w.styles.Selected.Render(label)
	}
	w.sb.WriteString(prefix + line + " " + w.styles.Image.Render(image))
	w.boxes++
	w.newline()
}

func imageLabel(n *html.Node) string {
	if src, ok := render.AttrValue(n, "src"); ok && src != "" {
		return "[" + src + "]"
	}
	return "[no image]"
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

func boxLinks(n *html.Node) []string {
	var links []string
	for _, a := range htmlquery.Find(n, "//a[contains(@class,'pokemon-box')]") {
		links = append(links, htmlquery.SelectAttr(a, "href"))
	}
	return links
}
