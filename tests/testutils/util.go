// Package testutils provides test infrastructure for grindlog integration tests.
package testutils

import (
	"path/filepath"
	"runtime"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"
)

func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed

	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// Setup creates a test case configured to run the grindlog binary.
func Setup() *test.Case {
	return agar.Setup(filepath.Join(projectRoot(), "bin", "grindlog"))
}

// Fixture returns the absolute path of a file under tests/testdata.
func Fixture(name string) string {
	return filepath.Join(projectRoot(), "tests", "testdata", name)
}
