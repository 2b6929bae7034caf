package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText reduces an HTML snippet to its visible text with collapsed whitespace.
// Input without markup is only whitespace-normalized.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return collapseSpaces(html.UnescapeString(s))
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return collapseSpaces(s)
	}

	return collapseSpaces(visibleText(doc))
}

// visibleText extracts text nodes, skipping scripts and styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
