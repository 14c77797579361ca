// Package index assigns stable ids to the distinct values of a report dimension
// and counts how many errors mention each of them.
package index

import (
	"iter"

	"github.com/farcloser/grindlog/internal/types"
)

// Dimension describes one cross-reference axis of the report.
// Exactly one of ErrorValue and FrameValue is set.
type Dimension struct {
	// Tag prefixes anchor names: "<Tag>_<id>".
	Tag string
	// Plural is the human name used in section titles ("kinds", "files").
	Plural string
	// Singular is the human name used in block titles ("kind", "file").
	Singular string

	ErrorValue func(*types.Error) string
	FrameValue func(types.Frame) string
}

//nolint:gochecknoglobals // dimension descriptors, effectively const
var (
	Kind = Dimension{
		Tag:        "Kind",
		Plural:     "kinds",
		Singular:   "kind",
		ErrorValue: (*types.Error).Kind,
	}
	File = Dimension{
		Tag:        "File",
		Plural:     "files",
		Singular:   "file",
		FrameValue: func(f types.Frame) string { return f.File },
	}
	Object = Dimension{
		Tag:        "Object",
		Plural:     "objects",
		Singular:   "object",
		FrameValue: func(f types.Frame) string { return f.Object },
	}
	Function = Dimension{
		Tag:        "Function",
		Plural:     "functions",
		Singular:   "function",
		FrameValue: func(f types.Frame) string { return f.Function },
	}
	Directory = Dimension{
		Tag:        "Directory",
		Plural:     "directories",
		Singular:   "directory",
		FrameValue: func(f types.Frame) string { return f.Directory },
	}
)

// Dimensions returns every dimension in report order.
func Dimensions() []Dimension {
	return []Dimension{Kind, File, Object, Function, Directory}
}

// FrameKeyed reports whether values are read from stack frames rather than from the error itself.
func (d Dimension) FrameKeyed() bool {
	return d.FrameValue != nil
}

// Values yields the dimension values an error mentions, in traversal order, duplicates included.
// Frame values that are empty are absent data and never yielded; the error-level value always is.
func (d Dimension) Values(err *types.Error) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !d.FrameKeyed() {
			yield(d.ErrorValue(err))

			return
		}

		for frame := range err.Frames() {
			value := d.FrameValue(frame)
			if value == "" {
				continue
			}

			if !yield(value) {
				return
			}
		}
	}
}

// Mentions reports whether the error (or, for frame dimensions, any frame of its stack) has the value.
func (d Dimension) Mentions(err *types.Error, value string) bool {
	for candidate := range d.Values(err) {
		if candidate == value {
			return true
		}
	}

	return false
}
