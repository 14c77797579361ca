//nolint:wrapcheck
package main

import (
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/grindlog/internal/output"
	"github.com/farcloser/grindlog/internal/types"
)

func outputSummary(logPath string, coll *types.Collection, top int, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: logPath,
		Meta:   output.SummaryToMap(coll, top),
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}
