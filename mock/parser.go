package mock

import (
	"github.com/fwojciec/spicedocs"
)

var _ spicedocs.Parser = (*Parser)(nil)

// Parser is a mock implementation of spicedocs.Parser.
type Parser struct {
	ParseFn func(html []byte) (*spicedocs.PageContent, error)
}

func (p *Parser) Parse(html []byte) (*spicedocs.PageContent, error) {
	return p.ParseFn(html)
}
