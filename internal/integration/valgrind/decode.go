package valgrind

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/grindlog/internal/types"
)

var (
	errMalformed  = errors.New("malformed valgrind XML")
	errBadNumber  = errors.New("invalid number")
	errNotAReport = errors.New("root element is not <valgrindoutput>")
)

// Memcheck XML protocol (version 4), reduced to what the report needs.
type xmlOutput struct {
	XMLName     xml.Name   `xml:"valgrindoutput"`
	Errors      []xmlError `xml:"error"`
	ErrorCounts []xmlPair  `xml:"errorcounts>pair"`
}

type xmlError struct {
	Unique  string     `xml:"unique"`
	TID     string     `xml:"tid"`
	Kind    string     `xml:"kind"`
	What    string     `xml:"what"`
	AuxWhat []string   `xml:"auxwhat"`
	XWhat   *xmlXWhat  `xml:"xwhat"`
	Stacks  []xmlStack `xml:"stack"`
}

type xmlXWhat struct {
	Text         string `xml:"text"`
	LeakedBytes  string `xml:"leakedbytes"`
	LeakedBlocks string `xml:"leakedblocks"`
}

type xmlStack struct {
	Frames []xmlFrame `xml:"frame"`
}

type xmlFrame struct {
	IP   string `xml:"ip"`
	Obj  string `xml:"obj"`
	Fn   string `xml:"fn"`
	Dir  string `xml:"dir"`
	File string `xml:"file"`
	Line string `xml:"line"`
}

type xmlPair struct {
	Count  string `xml:"count"`
	Unique string `xml:"unique"`
}

// Decode reads a memcheck XML log into a collection.
// Errors keep document order; frames of every <stack> of an error are appended in document order.
func Decode(reader io.Reader) (*types.Collection, error) {
	slog.Debug("valgrind.Decode", "stage", "start")

	var doc xmlOutput

	if err := xml.NewDecoder(reader).Decode(&doc); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", errMalformed, err)
		}

		var unmarshalErr xml.UnmarshalError
		if errors.As(err, &unmarshalErr) {
			return nil, fmt.Errorf("%w: %w", errNotAReport, err)
		}

		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	coll := types.NewCollection()

	for position, raw := range doc.Errors {
		fields, err := raw.fields()
		if err != nil {
			return nil, fmt.Errorf("error #%d: %w", position+1, err)
		}

		if err = coll.Append(types.NewError(fields)); err != nil {
			return nil, err
		}
	}

	for _, pair := range doc.ErrorCounts {
		unique, err := parseUint64("unique", pair.Unique)
		if err != nil {
			return nil, fmt.Errorf("errorcounts: %w", err)
		}

		count, err := parseUint32("count", pair.Count)
		if err != nil {
			return nil, fmt.Errorf("errorcounts: %w", err)
		}

		coll.SetOccurrences(unique, count)
	}

	slog.Debug("valgrind.Decode", "stage", "done", "errors", coll.Len())

	return coll, nil
}

func (raw xmlError) fields() (types.ErrorFields, error) {
	var (
		fields types.ErrorFields
		err    error
	)

	if fields.Unique, err = parseUint64("unique", raw.Unique); err != nil {
		return fields, err
	}

	if fields.ThreadID, err = parseUint64("tid", raw.TID); err != nil {
		return fields, err
	}

	fields.Kind = strings.TrimSpace(raw.Kind)
	fields.What = strings.TrimSpace(raw.What)

	// Later auxwhat elements supersede earlier ones.
	if n := len(raw.AuxWhat); n > 0 {
		fields.AuxWhat = strings.TrimSpace(raw.AuxWhat[n-1])
	}

	if raw.XWhat != nil {
		extra := types.ExtraInfo{Text: strings.TrimSpace(raw.XWhat.Text)}

		if extra.LeakedBytes, err = parseUint32("leakedbytes", raw.XWhat.LeakedBytes); err != nil {
			return fields, err
		}

		if extra.LeakedBlocks, err = parseUint32("leakedblocks", raw.XWhat.LeakedBlocks); err != nil {
			return fields, err
		}

		fields.Extra = &extra
	}

	for _, stack := range raw.Stacks {
		for _, rawFrame := range stack.Frames {
			frame, err := rawFrame.frame()
			if err != nil {
				return fields, err
			}

			fields.Stack = append(fields.Stack, frame)
		}
	}

	return fields, nil
}

func (raw xmlFrame) frame() (types.Frame, error) {
	ip, err := parseUint64("ip", raw.IP)
	if err != nil {
		return types.Frame{}, err
	}

	line, err := parseUint32("line", raw.Line)
	if err != nil {
		return types.Frame{}, err
	}

	return types.Frame{
		IP:        ip,
		Object:    strings.TrimSpace(raw.Obj),
		Function:  strings.TrimSpace(raw.Fn),
		Directory: strings.TrimSpace(raw.Dir),
		File:      strings.TrimSpace(raw.File),
		Line:      line,
	}, nil
}

// parseUint64 accepts decimal, 0x-prefixed hex and 0-prefixed octal. An absent field is zero.
func parseUint64(field, raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	if strings.ContainsRune(raw, '_') || hasRadixPrefix(raw, "0b", "0o") {
		return 0, fmt.Errorf("%s %q: %w", field, raw, errBadNumber)
	}

	value, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w: %w", field, raw, errBadNumber, err)
	}

	return value, nil
}

func parseUint32(field, raw string) (uint32, error) {
	wide, err := parseUint64(field, raw)
	if err != nil {
		return 0, err
	}

	value, err := safecast.Conv[uint32](wide)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w: %w", field, raw, errBadNumber, err)
	}

	return value, nil
}

func hasRadixPrefix(raw string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if len(raw) >= len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
			return true
		}
	}

	return false
}
