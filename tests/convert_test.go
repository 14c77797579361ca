package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/grindlog/tests/testutils"
)

func TestConvertCLI(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "convert without arguments fails",
			Command:     test.Command("convert"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "convert malformed log fails",
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("convert", "-o", data.Temp().Path("bad.mp"), testutils.Fixture("truncated.xml"))
			},
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "snapshot renders like the log it came from",
			Setup: func(data test.Data, helpers test.Helpers) {
				snapshot := data.Temp().Path("memcheck.mp")
				data.Labels().Set("snapshot", snapshot)
				helpers.Ensure("convert", "-o", snapshot, testutils.Fixture("memcheck.xml"))
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command("render", "-o", "-", data.Labels().Get("snapshot"))
			},
			Expected: test.Expects(expect.ExitCodeSuccess, nil, expect.All(
				expectContains(`<li><a href="#Kind_2">Leak_DefinitelyLost</a> : 2</li>`),
				expectContains("<li>Leaked blocks : <b>4</b></li>"),
				expectResolvedAnchors(),
			)),
		},
	}

	testCase.Run(t)
}
