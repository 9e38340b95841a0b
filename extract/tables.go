package extract

import (
	"strconv"
	"strings"

	"github.com/fwojciec/pagescope"
)

// maxPreviewRows is the number of rows kept in Table.PreviewRows.
const maxPreviewRows = 10

// Ensure Tables implements pagescope.Extractor.
var _ pagescope.Extractor = (*Tables)(nil)

// Tables converts every table element into a padded text grid.
type Tables struct{}

// NewTables creates a new Tables extractor.
func NewTables() *Tables {
	return &Tables{}
}

// Extract implements pagescope.Extractor.
func (x *Tables) Extract(doc pagescope.DocumentView, _ pagescope.Options) (*pagescope.Result, error) {
	tables := []*pagescope.Table{}
	var totalRows int
	var sections []string

	for i, el := range query(doc, "table") {
		t := extractTable(el, i)
		tables = append(tables, t)
		totalRows += t.RowCount
		if t.CSV != "" {
			sections = append(sections, "# "+t.Caption+"\n"+strings.TrimRight(t.CSV, " \t\r\n"))
		}
	}

	var csv string
	if len(sections) > 0 {
		csv = strings.Join(sections, "\n\n") + "\n"
	}

	return &pagescope.Result{
		Action: pagescope.ActionTables,
		Stats: []pagescope.Stat{
			pagescope.NewStat("Tables Found", len(tables)),
			pagescope.NewStat("Total Rows", totalRows),
		},
		CSVContent: csv,
		Tables:     tables,
	}, nil
}

func extractTable(el pagescope.Element, index int) *pagescope.Table {
	var caption string
	if c := first(el, "caption"); c != nil {
		caption = strings.TrimSpace(c.TextContent())
	}
	if caption == "" {
		caption = "Table " + strconv.Itoa(index+1)
	}

	var rows [][]string
	maxCols := 0
	for _, tr := range query(el, "tr") {
		var cells []string
		for _, cell := range query(tr, "th, td") {
			cells = append(cells, pagescope.CollapseSpace(cell.TextContent()))
		}
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, cells)
		maxCols = max(maxCols, len(cells))
	}

	width := min(maxCols, pagescope.MaxTableColumns)
	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		out := make([]string, width)
		copy(out, row)
		padded = append(padded, out)
	}

	var csv string
	if len(padded) > 0 {
		csv = pagescope.ToCSV(padded)
	}

	return &pagescope.Table{
		Index:       index,
		Caption:     caption,
		RowCount:    len(padded),
		ColCount:    width,
		Rows:        padded,
		PreviewRows: padded[:min(len(padded), maxPreviewRows)],
		CSV:         csv,
	}
}
