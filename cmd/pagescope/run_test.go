package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagescope"
	main "github.com/fwojciec/pagescope/cmd/pagescope"
	"github.com/fwojciec/pagescope/extract"
	"github.com/fwojciec/pagescope/goquery"
	"github.com/fwojciec/pagescope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runPage = `<html><head><title>Contact us</title></head>
<body><p>Write to <a href="mailto:hello@example.com">hello@example.com</a>.</p>
<ul class="nav"><li><a class="nav" href="/a">A</a></li><li><a class="nav" href="/b">B</a></li></ul>
</body></html>`

func newRunDeps(stored *[]*pagescope.StoredScan) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	loader := &mock.Loader{
		LoadFn: func(_ context.Context, url string) (*pagescope.Snapshot, error) {
			return &pagescope.Snapshot{URL: url, HTML: runPage}, nil
		},
	}
	scans := &mock.ScanService{
		CreateScanFn: func(_ context.Context, scan *pagescope.StoredScan) error {
			*stored = append(*stored, scan)
			return nil
		},
	}
	d := extract.NewDispatcher(loader, goquery.NewParser(), scans)
	d.NewID = func(time.Time) string { return "1773500966000-abcd1234" }

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Scans:      scans,
		Dispatcher: d,
	}, stdout, stderr
}

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores scan and prints id and stats", func(t *testing.T) {
		t.Parallel()

		var stored []*pagescope.StoredScan
		deps, stdout, _ := newRunDeps(&stored)

		cmd := &main.RunCmd{Action: "contacts", URL: "https://example.com/contact"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, pagescope.ActionContacts, stored[0].ActionID)
		output := stdout.String()
		assert.Contains(t, output, "Saved scan 1773500966000-abcd1234")
		assert.Contains(t, output, "Emails: 1")
	})

	t.Run("passes selector to dom query", func(t *testing.T) {
		t.Parallel()

		var stored []*pagescope.StoredScan
		deps, _, _ := newRunDeps(&stored)

		cmd := &main.RunCmd{Action: "dom-query", URL: "https://example.com/", Selector: "a.nav"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.Len(t, stored, 1)
		require.NotNil(t, stored[0].Data.DOMQuery)
		assert.Equal(t, 2, stored[0].Data.DOMQuery.TotalMatches)
	})

	t.Run("renders markdown with --show", func(t *testing.T) {
		t.Parallel()

		var stored []*pagescope.StoredScan
		deps, stdout, _ := newRunDeps(&stored)

		cmd := &main.RunCmd{Action: "links", URL: "https://example.com/", Show: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Extract all links")
	})

	t.Run("reports user-facing error", func(t *testing.T) {
		t.Parallel()

		var stored []*pagescope.StoredScan
		deps, _, stderr := newRunDeps(&stored)

		cmd := &main.RunCmd{Action: "dom-query", URL: "https://example.com/"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, pagescope.EINVALID, pagescope.ErrorCode(err))
		assert.Equal(t, "error: A CSS selector is required.\n", stderr.String())
		assert.Empty(t, stored)
	})

	t.Run("rejects non web pages", func(t *testing.T) {
		t.Parallel()

		var stored []*pagescope.StoredScan
		deps, _, stderr := newRunDeps(&stored)

		cmd := &main.RunCmd{Action: "links", URL: "chrome://settings"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "This action currently supports normal web pages only.")
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		t.Parallel()

		var stored []*pagescope.StoredScan
		deps, _, stderr := newRunDeps(&stored)

		cmd := &main.RunCmd{Action: "palette", URL: "https://example.com/"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Unsupported action.")
	})
}
