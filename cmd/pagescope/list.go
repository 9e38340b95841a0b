package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagescope"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := pagescope.ScanFilter{Limit: c.Limit}
	if c.Action != "" {
		id := pagescope.ActionID(c.Action)
		if _, ok := pagescope.LookupAction(id); !ok {
			fmt.Fprintf(deps.Stderr, "error: unknown action %q. Use 'pagescope actions' to see available actions.\n", c.Action)
			return pagescope.Errorf(pagescope.EINVALID, "unknown action %q", c.Action)
		}
		filter.ActionID = &id
	}
	if c.URL != "" {
		filter.PageURL = &c.URL
	}

	scans, err := deps.Scans.FindScans(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagescope.ErrorMessage(err))
		return err
	}

	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans found. Use 'pagescope run' to create one.")
		return nil
	}

	for _, s := range scans {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", s.ScanID, s.CreatedAt.UTC().Format(time.RFC3339), s.ActionID, s.PageURL)
	}
	return nil
}
