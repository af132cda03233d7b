// Package names resolves index symbols to display names. A lookup miss is an
// expected, common case: callers consume ErrNotFound with an explicit
// fallback to the raw symbol.
package names

import (
	"context"
	"errors"
)

// ErrNotFound signals that the directory has no entry for a symbol.
var ErrNotFound = errors.New("index name not found")

// Resolver looks up the display name for an index symbol.
type Resolver interface {
	Resolve(ctx context.Context, symbol string) (string, error)
}

// Static is an in-memory directory.
type Static struct {
	names map[string]string
}

// NewStatic creates a directory over a fixed table. The map is not copied.
func NewStatic(table map[string]string) *Static {
	return &Static{names: table}
}

// MainIndexes returns a static directory seeded with the main CN market
// indexes.
func MainIndexes() *Static {
	return NewStatic(map[string]string{
		"000001": "上证指数",
		"000016": "上证50",
		"000300": "沪深300",
		"000905": "中证500",
		"399001": "深证成指",
		"399005": "中小板指",
		"399006": "创业板指",
	})
}

// Resolve returns the display name for symbol, or ErrNotFound.
func (s *Static) Resolve(ctx context.Context, symbol string) (string, error) {
	if name, ok := s.names[symbol]; ok {
		return name, nil
	}
	return "", ErrNotFound
}
