package processor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/menuval"
	"golang.org/x/net/html"
)

// DefaultIgnoredTags never contribute text to an item.
var DefaultIgnoredTags = []string{"script", "style", "noscript", "template", "head"}

// Selectors for card-style menu exports.
const (
	itemSelector        = ".menu-item, [data-menu-item]"
	nameSelector        = ".item-name, .name, [data-item-name]"
	descriptionSelector = ".item-description, .description, .desc, [data-description]"
)

// HTMLProcessor reads menu items from an HTML export. It takes the first
// <table> whose header row has an item-name column; failing that, it reads
// card markup (.menu-item elements with .item-name and .description children).
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates an HTML item reader with the default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return NewHTMLProcessorWithIgnoredTags(DefaultIgnoredTags)
}

// NewHTMLProcessorWithIgnoredTags creates an HTML item reader with custom ignored tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool, len(tags))
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{ignoredTags: ignored}
}

// Extract parses data as HTML and returns the items it finds.
func (p *HTMLProcessor) Extract(data []byte) ([]menuval.MenuItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, &ProcessorError{Message: "failed to parse HTML", Cause: err, ContentType: p.ContentType()}
	}

	var (
		items []menuval.MenuItem
		found bool
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := p.tableRows(table)
		if len(rows) == 0 {
			return true
		}
		if name, _ := columns(rows[0]); name < 0 {
			return true
		}
		items, _ = itemsFromRows(rows, p.ContentType())
		found = true
		return false
	})
	if found {
		return items, nil
	}

	cards := doc.Find(itemSelector)
	if cards.Length() == 0 {
		return nil, &ProcessorError{Message: "no menu table or menu items found", ContentType: p.ContentType()}
	}
	cards.Each(func(_ int, card *goquery.Selection) {
		items = append(items, menuval.MenuItem{
			Name:        p.text(card.Find(nameSelector).First()),
			Description: p.text(card.Find(descriptionSelector).First()),
		})
	})
	return items, nil
}

// tableRows returns the text of every non-empty row of table, header included.
// Rows of nested tables are not included.
func (p *HTMLProcessor) tableRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		var (
			row   []string
			blank = true
		)
		tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
			t := p.text(td)
			if t != "" {
				blank = false
			}
			row = append(row, t)
		})
		if !blank {
			rows = append(rows, row)
		}
	})
	return rows
}

// text joins the visible text under sel, skipping ignored tags and
// elements marked data-no-translate.
func (p *HTMLProcessor) text(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
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
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

var _ ItemReader = (*HTMLProcessor)(nil)
