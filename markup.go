package menuval

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ignoredTags never contribute text to a cell.
var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// PlainText strips HTML markup that menu systems sometimes export into cells.
// Entities are decoded and block boundaries become spaces. Text without a '<'
// is returned with only its entities decoded.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		if strings.Contains(s, "&") {
			return html.UnescapeString(s)
		}
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			// Skip elements marked as not part of the menu text
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" || attr.Key == "hidden" {
					return
				}
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			walk(n)
		}
	})

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// CleanItem applies PlainText to both fields of an item and trims them.
func CleanItem(item MenuItem) MenuItem {
	return MenuItem{
		Name:        strings.TrimSpace(PlainText(item.Name)),
		Description: strings.TrimSpace(PlainText(item.Description)),
	}
}
