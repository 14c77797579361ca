package valgrind

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/grindlog/internal/integration/binary"
)

var errNoLog = errors.New("valgrind did not produce an XML log")

// RunOptions configures a memcheck run.
type RunOptions struct {
	// Binary overrides the valgrind executable looked up on PATH.
	Binary string
	// Timeout bounds the whole run; zero means DefaultTimeout.
	Timeout time.Duration
	// Args are extra valgrind arguments inserted before the program.
	Args []string
	// Stdout receives the program output. Nil discards it.
	Stdout io.Writer
}

// Run executes program under memcheck and writes the XML log to xmlPath.
// A program exiting non-zero is not a failure as long as the log was written.
func Run(ctx context.Context, xmlPath, program string, programArgs []string, opts RunOptions) error {
	slog.Debug("valgrind.Run", "program", program, "stage", "start")

	binName := opts.Binary
	if binName == "" {
		binName = name
	}

	valgrindPath, found := binary.Available(binName)
	if !found {
		return fmt.Errorf("%w: %s", fault.ErrMissingRequirements, binName)
	}

	// A log left by an earlier run must not pass for the output of this one.
	if err := os.Remove(xmlPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: removing previous log %q: %w", fault.ErrCommandFailure, xmlPath, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := make([]string, 0, len(opts.Args)+len(programArgs)+3)
	args = append(args, "--xml=yes", "--xml-file="+xmlPath)
	args = append(args, opts.Args...)
	args = append(args, program)
	args = append(args, programArgs...)

	//nolint:gosec // running a user-specified program is the point of this command
	cmd := exec.CommandContext(ctx, valgrindPath, args...)

	cmd.Stdout = opts.Stdout

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		slog.Debug("valgrind.Run", "program", program, "stage", "timeout")

		return fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && logWritten(xmlPath) {
		slog.Debug("valgrind.Run", "program", program, "stage", "done", "exit code", exitErr.ExitCode())

		return nil
	}

	slog.Debug("valgrind.Run", "program", program, "stage", "error")

	if !logWritten(xmlPath) {
		return fmt.Errorf("%w: %w: %s: %w", fault.ErrCommandFailure, errNoLog, stderr.String(), err)
	}

	return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
}

func logWritten(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Size() > 0
}
