package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/probedock/probedock-demo-go/framework"
)

// printSummary renders the end-of-run totals and lists every failed test.
func printSummary(out io.Writer, results framework.Results, elapsed time.Duration) {
	passed, failed, skipped := 0, len(results.Failures), 0
	for _, r := range results.Tests {
		if r.Skipped {
			skipped++
		} else if r.Failure == nil {
			passed++
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Test Results (%s)", elapsed.Round(time.Millisecond)))
	t.AppendHeader(table.Row{"Tests", "Passed", "Failed", "Skipped", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})
	t.AppendRow(table.Row{len(results.Tests), passed, failed, skipped, statusString(results.OK())})
	t.Render()

	if results.OK() {
		return
	}

	ft := table.NewWriter()
	ft.SetOutputMirror(out)
	ft.SetTitle("Failed Tests")
	ft.AppendHeader(table.Row{"Test", "Duration", "Error"})
	ft.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Error", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})
	for _, f := range results.Failures {
		ft.AppendRow(table.Row{f.TestID.String(), f.Duration.Round(time.Millisecond), f.Failure.Error()})
	}
	ft.Render()
}

func statusString(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func failedTestIDs(results framework.Results) []framework.TestID {
	ids := make([]framework.TestID, 0, len(results.Failures))
	for _, f := range results.Failures {
		ids = append(ids, f.TestID)
	}
	return ids
}
