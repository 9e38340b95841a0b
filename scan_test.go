package pagescope_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/pagescope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredScan_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *pagescope.StoredScan {
		return &pagescope.StoredScan{
			ScanID:   "1700000000000-abcdefgh",
			ActionID: pagescope.ActionLinks,
			PageURL:  "https://example.com/",
			Data:     &pagescope.Result{},
		}
	}

	t.Run("accepts complete scan", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		for name, mutate := range map[string]func(s *pagescope.StoredScan){
			"id":     func(s *pagescope.StoredScan) { s.ScanID = "" },
			"action": func(s *pagescope.StoredScan) { s.ActionID = "" },
			"url":    func(s *pagescope.StoredScan) { s.PageURL = "" },
			"data":   func(s *pagescope.StoredScan) { s.Data = nil },
		} {
			scan := valid()
			mutate(scan)

			err := scan.Validate()

			require.Error(t, err, name)
			assert.Equal(t, pagescope.EINVALID, pagescope.ErrorCode(err), name)
		}
	})
}

func TestStoredScan_WriteJSON(t *testing.T) {
	t.Parallel()

	scan := &pagescope.StoredScan{
		ScanID:      "1700000000000-abcdefgh",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		PageURL:     "https://example.com/?a=1&b=2",
		PageTitle:   "Example",
		ActionID:    pagescope.ActionSEO,
		ActionLabel: "SEO snapshot",
		Data: &pagescope.Result{
			Stats: []pagescope.Stat{pagescope.NewStat("SEO Issues", 2)},
			SEO:   &pagescope.SEO{Issues: []string{"Missing <title>."}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, scan.WriteJSON(&buf))

	out := buf.String()
	assert.Contains(t, out, "\n  \"scanId\": \"1700000000000-abcdefgh\"")
	assert.Contains(t, out, "https://example.com/?a=1&b=2")
	assert.Contains(t, out, "Missing <title>.")
	assert.NotContains(t, out, "\"images\"")

	var decoded pagescope.StoredScan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, scan.ScanID, decoded.ScanID)
	assert.Equal(t, "2", decoded.Data.Stats[0].Value)
}

func TestStoredScan_WriteJSON_EmptyResult(t *testing.T) {
	t.Parallel()

	for action, key := range map[pagescope.ActionID]string{
		pagescope.ActionTables:  `"tables": []`,
		pagescope.ActionPrivacy: `"domains": []`,
		pagescope.ActionLinks:   `"links": []`,
	} {
		scan := &pagescope.StoredScan{
			ScanID:      "1700000000000-abcdefgh",
			CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			PageURL:     "https://example.com/",
			ActionID:    action,
			ActionLabel: string(action),
			Data: &pagescope.Result{
				Stats: []pagescope.Stat{pagescope.NewStat("Found", 0)},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, scan.WriteJSON(&buf), action)

		out := buf.String()
		assert.Contains(t, out, key, action)
		assert.NotContains(t, out, `"images"`, action)
		assert.Empty(t, scan.Data.Action, "WriteJSON must not modify the scan")
	}
}
