// Package binary locates external tools.
package binary

import (
	"os/exec"
	"path/filepath"
)

// Available resolves binName to an absolute executable path.
// Names containing a path separator are checked as given; bare names are looked up in PATH.
func Available(binName string) (string, bool) {
	if binName == "" {
		return "", false
	}

	path, err := exec.LookPath(binName)
	if err != nil {
		return "", false
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	return path, true
}
