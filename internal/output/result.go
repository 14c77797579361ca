// Package output provides the summary serialization shared by the summary printers.
package output

import (
	"fmt"

	"github.com/farcloser/grindlog/internal/index"
	"github.com/farcloser/grindlog/internal/leakstat"
	"github.com/farcloser/grindlog/internal/rank"
	"github.com/farcloser/grindlog/internal/types"
)

// SummaryToMap converts a collection into the canonical summary structure.
// Each dimension lists at most top values (all of them when top <= 0), most frequent first.
func SummaryToMap(coll *types.Collection, top int) map[string]any {
	threads := map[uint64]struct{}{}
	occurrences := uint64(0)

	for err := range coll.Errors() {
		threads[err.ThreadID()] = struct{}{}

		if count, ok := coll.Occurrences(err.Unique()); ok {
			occurrences += uint64(count)
		} else {
			occurrences++
		}
	}

	meta := map[string]any{
		"summary": map[string]any{
			"errors":      coll.Len(),
			"threads":     len(threads),
			"occurrences": occurrences,
		},
	}

	for _, dim := range index.Dimensions() {
		idx := index.Build(coll, dim)
		table := rank.Top(rank.Table(idx.Counts(), rank.Descending), top)

		entries := make([]any, 0, len(table))
		for _, entry := range table {
			entries = append(entries, fmt.Sprintf("%s: %d", displayValue(entry.Value), entry.Count))
		}

		meta[dim.Plural] = entries
	}

	if leaks := leakstat.Summarize(coll); len(leaks) > 0 {
		meta["leaks"] = LeaksToMap(leaks)
	}

	return meta
}

// LeaksToMap converts per-kind leak statistics, keyed by kind.
func LeaksToMap(leaks []leakstat.KindLeaks) map[string]any {
	out := make(map[string]any, len(leaks))

	for _, leak := range leaks {
		out[displayValue(leak.Kind)] = map[string]any{
			"errors":       leak.Errors,
			"total_bytes":  leak.TotalBytes,
			"mean_bytes":   leak.MeanBytes,
			"stddev_bytes": leak.StdDevBytes,
			"max_bytes":    leak.MaxBytes,
			"total_blocks": leak.TotalBlocks,
		}
	}

	return out
}

func displayValue(value string) string {
	if value == "" {
		return "(empty)"
	}

	return value
}
