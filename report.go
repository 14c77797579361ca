//nolint:wrapcheck
package grindlog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/grindlog/internal/integration/snapshot"
	"github.com/farcloser/grindlog/internal/integration/valgrind"
	"github.com/farcloser/grindlog/internal/render"
	"github.com/farcloser/grindlog/internal/types"
)

/*
Usage:

coll, err := grindlog.Load("memcheck.xml", grindlog.InputAuto)
if err != nil {
    return err
}

// Historical layout, least frequent values first
err = grindlog.RenderFile("report.html", coll, grindlog.DefaultOptions())

// Most frequent first, custom title
opts := grindlog.DefaultOptions()
opts.Order = grindlog.OrderDescending
opts.Title = "nightly"
err = grindlog.Render(os.Stdout, coll, opts)
*/

// StdoutPath makes RenderFile write to standard output, and Load read from standard input.
const StdoutPath = "-"

var (
	errUnknownInputFormat = errors.New("unknown input format (valid: auto, xml, msgpack)")
	errCreateOutput       = errors.New("cannot create report")
)

// Load reads a log file. InputAuto selects the decoder from the extension: .mp/.msgpack are snapshots, anything
// else is memcheck XML. The path "-" reads standard input.
func Load(path string, format InputFormat) (*types.Collection, error) {
	if path == StdoutPath {
		return Decode(os.Stdin, format.resolve(path))
	}

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified logs
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	return Decode(file, format.resolve(path))
}

// Decode reads a log from reader. InputAuto is treated as XML.
func Decode(reader io.Reader, format InputFormat) (*types.Collection, error) {
	switch format {
	case InputSnapshot:
		return snapshot.Read(reader)
	case InputAuto, InputXML:
		return valgrind.Decode(reader)
	}

	return nil, fmt.Errorf("%d: %w", format, errUnknownInputFormat)
}

// Render writes the HTML report of coll to out.
func Render(out io.Writer, coll *types.Collection, opts Options) error {
	return render.Render(out, coll, render.Options{Title: opts.Title, Order: opts.Order})
}

// RenderFile renders the report in memory, then moves it into place at path.
// On failure nothing is left at path.
func RenderFile(path string, coll *types.Collection, opts Options) error {
	var buf bytes.Buffer

	if err := Render(&buf, coll, opts); err != nil {
		return err
	}

	if path == StdoutPath {
		_, err := os.Stdout.Write(buf.Bytes())

		return err
	}

	return writeAtomic(path, buf.Bytes())
}

// WriteSnapshot stores coll at path in the msgpack snapshot format.
func WriteSnapshot(path string, coll *types.Collection) error {
	var buf bytes.Buffer

	if err := snapshot.Write(&buf, coll); err != nil {
		return err
	}

	return writeAtomic(path, buf.Bytes())
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w %q: %w", errCreateOutput, path, err)
	}

	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Error("removing temporary report", "file", tmp.Name(), "error", err)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("%w %q: %w", errCreateOutput, path, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w %q: %w", errCreateOutput, path, err)
	}

	//nolint:gosec // reports are meant to be shared
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w %q: %w", errCreateOutput, path, err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w %q: %w", errCreateOutput, path, err)
	}

	return nil
}
