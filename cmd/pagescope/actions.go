package main

import (
	"fmt"

	"github.com/fwojciec/pagescope"
)

// Run executes the actions command.
func (c *ActionsCmd) Run(deps *Dependencies) error {
	for _, a := range pagescope.Actions() {
		fmt.Fprintf(deps.Stdout, "%-12s %s\n", a.ID, a.Label)
	}
	return nil
}
