// Package leakstat aggregates the leak payloads of a collection per error kind.
package leakstat

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/grindlog/internal/types"
)

// KindLeaks summarizes the errors of one kind that carry extra info.
type KindLeaks struct {
	Kind        string
	Errors      int
	TotalBytes  float64
	MeanBytes   float64
	StdDevBytes float64 // sample standard deviation, 0 with a single error
	MaxBytes    float64
	TotalBlocks float64
}

// Summarize returns one entry per kind, largest total first; equal totals are ordered by kind.
// Errors without extra info are ignored.
func Summarize(coll *types.Collection) []KindLeaks {
	bytesPerKind := map[string][]float64{}
	blocksPerKind := map[string][]float64{}

	for err := range coll.Errors() {
		extra, ok := err.Extra()
		if !ok {
			continue
		}

		bytesPerKind[err.Kind()] = append(bytesPerKind[err.Kind()], float64(extra.LeakedBytes))
		blocksPerKind[err.Kind()] = append(blocksPerKind[err.Kind()], float64(extra.LeakedBlocks))
	}

	out := make([]KindLeaks, 0, len(bytesPerKind))

	for kind, leaked := range bytesPerKind {
		summary := KindLeaks{
			Kind:        kind,
			Errors:      len(leaked),
			TotalBytes:  floats.Sum(leaked),
			MaxBytes:    floats.Max(leaked),
			TotalBlocks: floats.Sum(blocksPerKind[kind]),
		}

		if len(leaked) > 1 {
			summary.MeanBytes, summary.StdDevBytes = stat.MeanStdDev(leaked, nil)
		} else {
			summary.MeanBytes = leaked[0]
		}

		out = append(out, summary)
	}

	slices.SortFunc(out, func(a, b KindLeaks) int {
		if byTotal := cmp.Compare(b.TotalBytes, a.TotalBytes); byTotal != 0 {
			return byTotal
		}

		return cmp.Compare(a.Kind, b.Kind)
	})

	return out
}
