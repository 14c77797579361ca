package index

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/farcloser/grindlog/internal/types"
)

// Index is the identity map and occurrence count map of one dimension over a collection.
type Index struct {
	dim    Dimension
	ids    map[string]int
	order  []string
	counts map[string]int
}

// Build scans the collection once.
// Ids are handed out in first-encounter order; counts are numbers of distinct errors, not raw mentions.
func Build(coll *types.Collection, dim Dimension) *Index {
	idx := &Index{
		dim:    dim,
		ids:    map[string]int{},
		counts: map[string]int{},
	}

	for err := range coll.Errors() {
		touched := map[string]struct{}{}

		for value := range dim.Values(err) {
			if _, ok := idx.ids[value]; !ok {
				idx.ids[value] = len(idx.order)
				idx.order = append(idx.order, value)
			}

			if _, ok := touched[value]; ok {
				continue
			}

			touched[value] = struct{}{}
			idx.counts[value]++
		}
	}

	return idx
}

// Dimension returns the dimension the index was built for.
func (idx *Index) Dimension() Dimension {
	return idx.dim
}

// Len returns the number of distinct values.
func (idx *Index) Len() int {
	return len(idx.order)
}

// ID returns the identity of an indexed value.
// Asking for a value that was never indexed is a programming error and panics.
func (idx *Index) ID(value string) int {
	id, ok := idx.ids[value]
	if !ok {
		panic(fmt.Sprintf("index: %s %q was never indexed", idx.dim.Singular, value))
	}

	return id
}

// Anchor returns the document anchor name of an indexed value.
func (idx *Index) Anchor(value string) string {
	return idx.dim.Tag + "_" + strconv.Itoa(idx.ID(value))
}

// Count returns the number of errors mentioning the value.
func (idx *Index) Count(value string) int {
	return idx.counts[value]
}

// Values returns the indexed values in id order.
func (idx *Index) Values() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)

	return out
}

// Counts returns a copy of the occurrence count map.
func (idx *Index) Counts() map[string]int {
	return maps.Clone(idx.counts)
}
