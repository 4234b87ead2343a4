package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderIndexedTable renders list rows behind the @N addresses that set,
// queue rm and favorite accept, one address per row in display order.
func renderIndexedTable(headers []string, rows [][]string) string {
	tw := newTableWriter()

	header := make(table.Row, 0, len(headers)+1)
	header = append(header, "#")
	for _, h := range headers {
		header = append(header, h)
	}
	tw.AppendHeader(header)

	for i, row := range rows {
		r := make(table.Row, 0, len(row)+1)
		r = append(r, "@"+strconv.Itoa(i))
		for _, cell := range row {
			r = append(r, cell)
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{{
		Number:      1,
		Align:       text.AlignRight,
		AlignHeader: text.AlignLeft,
	}})
	return tw.Render()
}

// renderPairs renders label/value rows without a header, the shape status,
// config show and timer status use.
func renderPairs(rows [][]string) string {
	tw := newTableWriter()
	for _, row := range rows {
		r := make(table.Row, 0, len(row))
		for _, cell := range row {
			r = append(r, cell)
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}
