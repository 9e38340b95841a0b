package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pagescope"
	main "github.com/fwojciec/pagescope/cmd/pagescope"
	"github.com/fwojciec/pagescope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists scans with id, time, action and url", func(t *testing.T) {
		t.Parallel()

		scans := &mock.ScanService{
			FindScansFn: func(_ context.Context, _ pagescope.ScanFilter) ([]*pagescope.StoredScan, error) {
				return []*pagescope.StoredScan{
					{
						ScanID:    "1773500966000-abcd1234",
						CreatedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
						ActionID:  pagescope.ActionSEO,
						PageURL:   "https://example.com/",
					},
					{
						ScanID:    "1773400000000-ffff0000",
						CreatedAt: time.Date(2026, 3, 13, 11, 6, 40, 0, time.UTC),
						ActionID:  pagescope.ActionLinks,
						PageURL:   "https://go.dev/doc",
					},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scans: scans}

		err := (&main.ListCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "1773500966000-abcd1234  2026-03-14T15:09:26Z  seo  https://example.com/")
		assert.Contains(t, output, "1773400000000-ffff0000")
		assert.Contains(t, output, "https://go.dev/doc")
	})

	t.Run("passes filter", func(t *testing.T) {
		t.Parallel()

		var got pagescope.ScanFilter
		scans := &mock.ScanService{
			FindScansFn: func(_ context.Context, filter pagescope.ScanFilter) ([]*pagescope.StoredScan, error) {
				got = filter
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Scans: scans}

		err := (&main.ListCmd{Action: "tables", URL: "https://example.com/", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.ActionID)
		assert.Equal(t, pagescope.ActionTables, *got.ActionID)
		require.NotNil(t, got.PageURL)
		assert.Equal(t, "https://example.com/", *got.PageURL)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("shows helpful message when no scans exist", func(t *testing.T) {
		t.Parallel()

		scans := &mock.ScanService{
			FindScansFn: func(_ context.Context, _ pagescope.ScanFilter) ([]*pagescope.StoredScan, error) {
				return []*pagescope.StoredScan{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scans: scans}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No scans found")
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Scans: &mock.ScanService{}}

		err := (&main.ListCmd{Action: "palette"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, pagescope.EINVALID, pagescope.ErrorCode(err))
		assert.Contains(t, stderr.String(), `unknown action "palette"`)
	})

	t.Run("returns error on store failure", func(t *testing.T) {
		t.Parallel()

		scans := &mock.ScanService{
			FindScansFn: func(_ context.Context, _ pagescope.ScanFilter) ([]*pagescope.StoredScan, error) {
				return nil, errors.New("database error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Scans: scans}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
