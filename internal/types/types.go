// Package types holds the error model of one memcheck log.
package types

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrDuplicateUnique is returned when two errors of the same collection share a unique id.
var ErrDuplicateUnique = errors.New("duplicate error unique id")

// Frame is one call-stack entry. Empty strings and a zero Line mean the information is absent.
type Frame struct {
	IP        uint64
	Object    string
	Function  string
	Directory string
	File      string
	Line      uint32
}

// ExtraInfo is the optional "xwhat" payload attached to some error kinds (leak summaries).
type ExtraInfo struct {
	Text         string
	LeakedBytes  uint32
	LeakedBlocks uint32
}

// ErrorFields carries everything needed to build an Error.
type ErrorFields struct {
	Unique   uint64
	ThreadID uint64
	Kind     string
	What     string
	AuxWhat  string
	Extra    *ExtraInfo
	Stack    []Frame
}

// Error is one diagnostic event. It cannot be modified once built.
type Error struct {
	unique   uint64
	threadID uint64
	kind     string
	what     string
	auxWhat  string
	extra    *ExtraInfo
	stack    []Frame
}

// NewError builds an Error. The stack and extra info are copied, so later changes to fields do not leak in.
func NewError(fields ErrorFields) *Error {
	err := &Error{
		unique:   fields.Unique,
		threadID: fields.ThreadID,
		kind:     fields.Kind,
		what:     fields.What,
		auxWhat:  fields.AuxWhat,
	}

	if len(fields.Stack) > 0 {
		err.stack = slices.Clone(fields.Stack)
	}

	if fields.Extra != nil {
		extra := *fields.Extra
		err.extra = &extra
	}

	return err
}

// Unique returns the producer-assigned id.
func (e *Error) Unique() uint64 { return e.unique }

// ThreadID returns the id of the thread the error was reported on.
func (e *Error) ThreadID() uint64 { return e.threadID }

// Kind returns the error classification, e.g. "Leak_DefinitelyLost".
func (e *Error) Kind() string { return e.kind }

// What returns the primary description.
func (e *Error) What() string { return e.what }

// AuxWhat returns the auxiliary description.
func (e *Error) AuxWhat() string { return e.auxWhat }

// Extra returns the extra info and whether the error carries one.
func (e *Error) Extra() (ExtraInfo, bool) {
	if e.extra == nil {
		return ExtraInfo{}, false
	}

	return *e.extra, true
}

// Depth returns the number of frames in the stack.
func (e *Error) Depth() int { return len(e.stack) }

// Frames yields the stack in its original order.
func (e *Error) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, frame := range e.stack {
			if !yield(frame) {
				return
			}
		}
	}
}

// Collection is the ordered set of errors of one report.
type Collection struct {
	errors      []*Error
	uniques     map[uint64]struct{}
	occurrences map[uint64]uint32
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{
		uniques:     map[uint64]struct{}{},
		occurrences: map[uint64]uint32{},
	}
}

// Append adds an error at the end of the collection.
func (c *Collection) Append(err *Error) error {
	if _, ok := c.uniques[err.unique]; ok {
		return fmt.Errorf("%d: %w", err.unique, ErrDuplicateUnique)
	}

	c.uniques[err.unique] = struct{}{}
	c.errors = append(c.errors, err)

	return nil
}

// Len returns the number of errors.
func (c *Collection) Len() int { return len(c.errors) }

// Errors yields every error in insertion order.
func (c *Collection) Errors() iter.Seq[*Error] {
	return func(yield func(*Error) bool) {
		for _, err := range c.errors {
			if !yield(err) {
				return
			}
		}
	}
}

// SetOccurrences records how many times the producer saw the error with the given unique id.
func (c *Collection) SetOccurrences(unique uint64, count uint32) {
	c.occurrences[unique] = count
}

// Occurrences returns the recorded occurrence count of an error, if any.
func (c *Collection) Occurrences(unique uint64) (uint32, bool) {
	count, ok := c.occurrences[unique]

	return count, ok
}
