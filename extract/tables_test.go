package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/pagescope/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables_Extract(t *testing.T) {
	t.Parallel()

	t.Run("pads rows and builds sections", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<body>
<table><caption> Prices </caption><tr><th>Item</th><th>Cost</th></tr><tr><td>Tea</td><td>  2 </td><td>extra</td></tr><tr></tr></table>
<table><tr><td>solo</td></tr></table>
<table></table>
</body>`)

		result := run(t, extract.NewTables(), doc)

		require.Len(t, result.Tables, 3)

		prices := result.Tables[0]
		assert.Equal(t, 0, prices.Index)
		assert.Equal(t, "Prices", prices.Caption)
		assert.Equal(t, 2, prices.RowCount)
		assert.Equal(t, 3, prices.ColCount)
		assert.Equal(t, [][]string{{"Item", "Cost", ""}, {"Tea", "2", "extra"}}, prices.Rows)
		assert.Equal(t, prices.Rows, prices.PreviewRows)

		assert.Equal(t, "Table 2", result.Tables[1].Caption)
		assert.Equal(t, "Table 3", result.Tables[2].Caption)
		assert.Equal(t, 0, result.Tables[2].RowCount)
		assert.Empty(t, result.Tables[2].CSV)

		assert.Equal(t, "# Prices\n\"Item\",\"Cost\",\"\"\n\"Tea\",\"2\",\"extra\"\n\n# Table 2\n\"solo\"\n", result.CSVContent)
		assert.Equal(t, stats("Tables Found", "3", "Total Rows", "3"), result.Stats)
	})

	t.Run("caps columns and preview rows", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<table>")
		for r := 0; r < 12; r++ {
			b.WriteString("<tr>")
			for c := 0; c < 30; c++ {
				fmt.Fprintf(&b, "<td>%d-%d</td>", r, c)
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</table>")

		result := run(t, extract.NewTables(), parse(t, b.String()))

		require.Len(t, result.Tables, 1)
		table := result.Tables[0]
		assert.Equal(t, 24, table.ColCount)
		assert.Equal(t, 12, table.RowCount)
		assert.Len(t, table.PreviewRows, 10)
		for _, row := range table.Rows {
			assert.Len(t, row, 24)
		}
		assert.Equal(t, "0-23", table.Rows[0][23])
	})

	t.Run("returns empty export without tables", func(t *testing.T) {
		t.Parallel()

		result := run(t, extract.NewTables(), parse(t, "<p>none</p>"))

		assert.Empty(t, result.Tables)
		assert.Empty(t, result.CSVContent)
		assert.Equal(t, stats("Tables Found", "0", "Total Rows", "0"), result.Stats)
	})
}
