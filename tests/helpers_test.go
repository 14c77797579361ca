package tests_test

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectNotContains returns a comparator verifying the output does not contain a substring.
func expectNotContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("unexpected substring %q found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectInOrder returns a comparator verifying the substrings appear in the output in the given order.
func expectInOrder(substrs ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		rest := stdout

		for _, substr := range substrs {
			pos := strings.Index(rest, substr)
			if pos < 0 {
				testing.Log(fmt.Sprintf("expected %q (in order %q) not found in output:\n%s", substr, substrs, stdout))
				testing.Fail()

				return
			}

			rest = rest[pos+len(substr):]
		}
	}
}

var (
	hrefPattern = regexp.MustCompile(`href="#([^"]+)"`)
	idPattern   = regexp.MustCompile(`id="([^"]+)"`)
)

// expectResolvedAnchors returns a comparator verifying every internal link targets an anchor defined exactly once.
func expectResolvedAnchors() test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		defined := map[string]int{}
		for _, match := range idPattern.FindAllStringSubmatch(stdout, -1) {
			defined[match[1]]++
		}

		for _, match := range hrefPattern.FindAllStringSubmatch(stdout, -1) {
			if defined[match[1]] != 1 {
				testing.Log(fmt.Sprintf("link #%s targets %d anchors, expected exactly one", match[1], defined[match[1]]))
				testing.Fail()
			}
		}
	}
}
