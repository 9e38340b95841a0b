package pagescope_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/pagescope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes empty payload of the producing action", func(t *testing.T) {
		t.Parallel()

		for action, want := range map[pagescope.ActionID]string{
			pagescope.ActionImages:      `"images":[]`,
			pagescope.ActionLinks:       `"links":[]`,
			pagescope.ActionContacts:    `"contacts":{"emails":[],"phones":[]}`,
			pagescope.ActionTables:      `"tables":[]`,
			pagescope.ActionReadability: `"readability":{"title":"","paragraphs":[]}`,
			pagescope.ActionPerformance: `"hints":[]`,
			pagescope.ActionPrivacy:     `"domains":[]`,
		} {
			data, err := json.Marshal(&pagescope.Result{Action: action})

			require.NoError(t, err, action)
			assert.Contains(t, string(data), want, action)
		}
	})

	t.Run("omits payloads of other actions", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(&pagescope.Result{Action: pagescope.ActionTables, Tables: []*pagescope.Table{}})

		require.NoError(t, err)
		assert.JSONEq(t, `{"stats":null,"csvContent":"","tables":[]}`, string(data))
	})

	t.Run("keeps set payload without action", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(pagescope.Result{
			Stats: []pagescope.Stat{pagescope.NewStat("Total", 1)},
			Hints: []*pagescope.Hint{{Severity: pagescope.SeverityLow, Label: "ok", Detail: "<none>"}},
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"stats": [{"label": "Total", "value": "1"}],
			"csvContent": "",
			"hints": [{"severity": "low", "label": "ok", "detail": "<none>"}]
		}`, string(data))
	})
}

func TestResult_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("restores action from payload key", func(t *testing.T) {
		t.Parallel()

		var r pagescope.Result
		require.NoError(t, json.Unmarshal([]byte(`{"stats":[],"csvContent":"","domains":[]}`), &r))

		assert.Equal(t, pagescope.ActionPrivacy, r.Action)
		assert.NotNil(t, r.Domains)
		assert.Empty(t, r.Domains)
	})

	t.Run("round trips empty result", func(t *testing.T) {
		t.Parallel()

		in := &pagescope.Result{Action: pagescope.ActionDOMQuery}
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out pagescope.Result
		require.NoError(t, json.Unmarshal(data, &out))

		assert.Equal(t, pagescope.ActionDOMQuery, out.Action)
		require.NotNil(t, out.DOMQuery)
		assert.Empty(t, out.DOMQuery.Matches)
	})

	t.Run("leaves action empty without payload", func(t *testing.T) {
		t.Parallel()

		var r pagescope.Result
		require.NoError(t, json.Unmarshal([]byte(`{"stats":null,"csvContent":"a"}`), &r))

		assert.Empty(t, r.Action)
		assert.Equal(t, "a", r.CSVContent)
	})
}
