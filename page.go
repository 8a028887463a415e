package spicedocs

import "context"

// Link is one anchor extracted from a page.
type Link struct {
	// Href is the anchor's href attribute, unresolved.
	Href string

	// Text is the anchor's trimmed visible text.
	Text string
}

// PageContent holds the structured fields extracted from one HTML page.
type PageContent struct {
	// Title is the <title> element's text, or "" if absent.
	Title string

	// Text is the page's visible text with script and style content
	// removed and whitespace collapsed to single spaces.
	Text string

	// CanonicalURL is the href of a <link rel="canonical"> element,
	// or "" if absent.
	CanonicalURL string

	// Links are the page's anchors in document order.
	Links []Link
}

// Parser extracts structured content from loosely-structured HTML.
// Implementations degrade gracefully: malformed markup yields whatever
// fields could be extracted rather than an error.
type Parser interface {
	Parse(html []byte) (*PageContent, error)
}

// Fetcher retrieves page bodies over the network. Failures carry
// application error codes the crawler's retry policy dispatches on:
// ENOTFOUND for 404, EUNAVAILABLE for 5xx and transport errors,
// EINTERNAL for anything else.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
