package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Scans      pagescope.ScanService
	Dispatcher *extract.Dispatcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"Database path (overrides PAGESCOPE_DB and config)" type:"path"`
	Config  string `help:"Config file path (default: .pagescope.yaml in cwd or home)" type:"path"`
	Verbose bool   `short:"v" help:"Log loader, extractor and store activity to stderr"`

	Run     RunCmd     `cmd:"" help:"Run an extraction action against a page"`
	Show    ShowCmd    `cmd:"" help:"Show a stored scan"`
	List    ListCmd    `cmd:"" help:"List stored scans, newest first"`
	Actions ActionsCmd `cmd:"" help:"List available actions"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Action   string        `arg:"" help:"Action ID (see 'pagescope actions')"`
	URL      string        `arg:"" help:"Page URL"`
	Selector string        `short:"s" help:"CSS selector for the dom-query action"`
	Static   bool          `help:"Fetch raw HTML over HTTP instead of rendering in Chrome"`
	Timeout  time.Duration `help:"Page load timeout (default 30s)"`
	Show     bool          `help:"Print the stored scan as Markdown"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Scan ID"`
	Format string `short:"f" enum:"json,csv,markdown" default:"json" help:"Output format (json, csv, markdown)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Action string `short:"a" help:"Only list scans for this action"`
	URL    string `help:"Only list scans for this page URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of scans to list"`
}

// ActionsCmd is the "actions" subcommand.
type ActionsCmd struct{}
