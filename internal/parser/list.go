package parser

import (
	"github.com/quill-lang/quill/internal/lexer"
)

// parseList parses a comma-separated list of at least one element, keeping
// source order. Parameter, type, field, variant and expression lists all go
// through here; callers handle empty lists by checking the closing token
// first.
func parseList[T any](p *Parser, parse func() (T, error)) ([]T, error) {
	var items []T
	for {
		item, err := parse()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.match(lexer.TokenComma) {
			return items, nil
		}
	}
}
