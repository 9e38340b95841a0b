package main

import (
	"fmt"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/markdown"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	scan, err := deps.Dispatcher.Run(deps.Ctx, pagescope.ActionID(c.Action), c.URL, pagescope.Options{Selector: c.Selector})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagescope.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved scan %s\n", scan.ScanID)
	if scan.Data != nil {
		for _, s := range scan.Data.Stats {
			fmt.Fprintf(deps.Stdout, "  %s: %s\n", s.Label, s.Value)
		}
	}

	if c.Show {
		fmt.Fprintln(deps.Stdout)
		return markdown.NewWriter(deps.Stdout).WriteScan(scan)
	}
	return nil
}
