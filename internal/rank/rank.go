// Package rank orders dimension values by how many errors mention them.
package rank

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var errUnknownOrder = errors.New("unknown order (valid: ascending, descending)")

// Order is the count direction of a table.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}

	return "unknown"
}

// ParseOrder parses "ascending"/"asc" or "descending"/"desc". The empty string means Ascending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "ascending", "asc":
		return Ascending, nil
	case "descending", "desc":
		return Descending, nil
	}

	return 0, fmt.Errorf("%q: %w", s, errUnknownOrder)
}

// Entry is one ranked value.
type Entry struct {
	Count int
	Value string
}

// Table sorts counts by count in the given order. Equal counts are ordered by value, ascending, in both orders.
func Table(counts map[string]int, order Order) []Entry {
	entries := make([]Entry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, Entry{Count: count, Value: value})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		byCount := cmp.Compare(a.Count, b.Count)
		if order == Descending {
			byCount = -byCount
		}

		if byCount != 0 {
			return byCount
		}

		return strings.Compare(a.Value, b.Value)
	})

	return entries
}

// Top returns at most n entries of a table; n <= 0 keeps them all.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}

	return entries[:n]
}
