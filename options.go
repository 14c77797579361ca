package grindlog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/farcloser/grindlog/internal/rank"
	"github.com/farcloser/grindlog/internal/render"
)

// Order re-exports the rank table direction.
type Order = rank.Order

const (
	OrderAscending  = rank.Ascending
	OrderDescending = rank.Descending
)

// ParseOrder parses "ascending" or "descending".
func ParseOrder(s string) (Order, error) {
	return rank.ParseOrder(s)
}

// Options configures report rendering.
type Options struct {
	// Title of the document (default: "Valgrind_report").
	Title string
	// Order of the ranked lists; ties are always broken by value.
	Order Order
}

// DefaultOptions returns the options matching the historical report layout.
func DefaultOptions() Options {
	return Options{
		Title: render.DefaultTitle,
		Order: OrderAscending,
	}
}

// InputFormat selects the decoder used by Load.
type InputFormat int

const (
	InputAuto InputFormat = iota
	InputXML
	InputSnapshot
)

func (f InputFormat) String() string {
	switch f {
	case InputAuto:
		return "auto"
	case InputXML:
		return "xml"
	case InputSnapshot:
		return "msgpack"
	}

	return "unknown"
}

// ParseInputFormat parses "auto", "xml" or "msgpack".
func ParseInputFormat(s string) (InputFormat, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return InputAuto, nil
	case "xml":
		return InputXML, nil
	case "msgpack", "mp", "snapshot":
		return InputSnapshot, nil
	}

	return 0, fmt.Errorf("%q: %w", s, errUnknownInputFormat)
}

// resolve turns InputAuto into a concrete format from the file extension.
func (f InputFormat) resolve(path string) InputFormat {
	if f != InputAuto {
		return f
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return InputSnapshot
	default:
		return InputXML
	}
}
