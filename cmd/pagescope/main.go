package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagescope"
	"github.com/fwojciec/pagescope/extract"
	"github.com/fwojciec/pagescope/goquery"
	pshttp "github.com/fwojciec/pagescope/http"
	"github.com/fwojciec/pagescope/rod"
	pslog "github.com/fwojciec/pagescope/slog"
	"github.com/fwojciec/pagescope/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when no flag, environment or config value is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Loader, when set, is used by the run command instead of launching
	// a browser or building an HTTP loader.
	Loader pagescope.Loader

	ScanService pagescope.ScanService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagescope"),
		kong.Description("Extract structured data from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagescope --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	command := strings.Fields(kongCtx.Command())[0]
	if command == "actions" {
		return kongCtx.Run(deps)
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pagescope.ErrorMessage(err))
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath, err := ResolveDBPath(cli.DB, cfg, m.DBPath)
	if err != nil {
		return err
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGESCOPE_DB or pass --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.ScanService = pslog.NewLoggingScanService(sqlite.NewScanService(m.DB), logger)
	deps.Scans = m.ScanService

	if command == "run" {
		d := extract.NewDispatcher(nil, goquery.NewParser(), m.ScanService)
		d.Extractors = pslog.WrapExtractors(d.Extractors, logger)

		// Reject bad input before a browser is launched.
		if err := d.Validate(pagescope.ActionID(cli.Run.Action), cli.Run.URL); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pagescope.ErrorMessage(err))
			return err
		}

		loader := m.Loader
		if loader == nil {
			loader, err = newLoader(&cli.Run, cfg, logger)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer loader.Close()
		}
		d.Loader = pslog.NewLoggingLoader(loader, logger)
		deps.Dispatcher = d
	}

	return kongCtx.Run(deps)
}

// newLoader builds the page loader for the run command. Flags take
// precedence over config values.
func newLoader(c *RunCmd, cfg *Config, logger *slog.Logger) (pagescope.Loader, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}

	if c.Static || cfg.Static {
		opts := []pshttp.Option{pshttp.WithLogger(logger)}
		if timeout > 0 {
			opts = append(opts, pshttp.WithTimeout(timeout))
		}
		if cfg.UserAgent != "" {
			opts = append(opts, pshttp.WithUserAgent(cfg.UserAgent))
		}
		return pshttp.NewLoader(opts...), nil
	}

	var opts []rod.Option
	if timeout > 0 {
		opts = append(opts, rod.WithTimeout(timeout))
	}
	if cfg.Settle > 0 {
		opts = append(opts, rod.WithSettle(cfg.Settle))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, rod.WithUserAgent(cfg.UserAgent))
	}
	return rod.NewLoader(opts...)
}
