// Package goquery provides a goquery-based implementation of
// spicedocs.Parser for extracting structured fields from the
// documentation's HTML pages.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/spicedocs"
)

// Ensure Parser implements spicedocs.Parser at compile time.
var _ spicedocs.Parser = (*Parser)(nil)

// Parser extracts the title, visible text, canonical URL and anchors from
// an HTML page. The NAIF documentation is hand-written HTML from several
// decades, so extraction is deliberately lenient: missing elements produce
// empty fields, never errors.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse processes raw HTML and returns the extracted content.
func (p *Parser) Parse(html []byte) (*spicedocs.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, spicedocs.Errorf(spicedocs.EINVALID, "failed to parse HTML: %v", err)
	}

	content := &spicedocs.PageContent{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		content.CanonicalURL = strings.TrimSpace(href)
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		content.Links = append(content.Links, spicedocs.Link{
			Href: href,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	// Visible text: drop script/style subtrees, then collapse all
	// whitespace runs to single spaces.
	doc.Find("script, style").Remove()
	content.Text = strings.Join(strings.Fields(doc.Text()), " ")

	return content, nil
}
