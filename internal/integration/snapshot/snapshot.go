// Package snapshot stores a parsed collection in msgpack, so large logs are parsed once and rendered many times.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/farcloser/primordium/fault"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/farcloser/grindlog/internal/types"
)

// Current schema version - increment when payload changes.
const schemaVersion uint16 = 1

var errSchema = errors.New("unsupported snapshot schema")

type payload struct {
	Schema      uint16
	Errors      []errorRecord
	Occurrences map[uint64]uint32
}

type errorRecord struct {
	Unique   uint64
	ThreadID uint64
	Kind     string
	What     string
	AuxWhat  string
	Extra    *types.ExtraInfo
	Stack    []types.Frame
}

// Write encodes the collection.
func Write(writer io.Writer, coll *types.Collection) error {
	data := payload{
		Schema:      schemaVersion,
		Errors:      make([]errorRecord, 0, coll.Len()),
		Occurrences: map[uint64]uint32{},
	}

	for err := range coll.Errors() {
		record := errorRecord{
			Unique:   err.Unique(),
			ThreadID: err.ThreadID(),
			Kind:     err.Kind(),
			What:     err.What(),
			AuxWhat:  err.AuxWhat(),
			Stack:    slices.AppendSeq(make([]types.Frame, 0, err.Depth()), err.Frames()),
		}

		if extra, ok := err.Extra(); ok {
			record.Extra = &extra
		}

		if count, ok := coll.Occurrences(err.Unique()); ok {
			data.Occurrences[err.Unique()] = count
		}

		data.Errors = append(data.Errors, record)
	}

	if err := msgpack.NewEncoder(writer).Encode(&data); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return nil
}

// Read decodes a collection written by Write.
func Read(reader io.Reader) (*types.Collection, error) {
	var data payload

	if err := msgpack.NewDecoder(reader).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	if data.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", errSchema, data.Schema, schemaVersion)
	}

	coll := types.NewCollection()

	for _, record := range data.Errors {
		err := coll.Append(types.NewError(types.ErrorFields{
			Unique:   record.Unique,
			ThreadID: record.ThreadID,
			Kind:     record.Kind,
			What:     record.What,
			AuxWhat:  record.AuxWhat,
			Extra:    record.Extra,
			Stack:    record.Stack,
		}))
		if err != nil {
			return nil, err
		}
	}

	for unique, count := range data.Occurrences {
		coll.SetOccurrences(unique, count)
	}

	return coll, nil
}
