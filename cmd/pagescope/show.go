package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/markdown"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	scan, err := deps.Scans.FindScanByID(deps.Ctx, c.ID)
	if err != nil {
		if pagescope.ErrorCode(err) == pagescope.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: scan %q not found. Use 'pagescope list' to see stored scans.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagescope.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "csv":
		if scan.Data != nil {
			_, err = io.WriteString(deps.Stdout, scan.Data.CSVContent)
		}
	case "markdown":
		err = markdown.NewWriter(deps.Stdout).WriteScan(scan)
	default:
		err = scan.WriteJSON(deps.Stdout)
	}
	return err
}
