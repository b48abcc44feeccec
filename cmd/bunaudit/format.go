package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bunaudit/bunaudit"
)

var (
	colorHigh = color.New(color.FgRed, color.Bold).SprintFunc()
	colorWarn = color.New(color.FgYellow).SprintFunc()
	colorInfo = color.New(color.FgCyan).SprintFunc()
)

func colorSeverity(s bunaudit.Severity) string {
	switch s {
	case bunaudit.High:
		return colorHigh(s.String())
	case bunaudit.Warn:
		return colorWarn(s.String())
	default:
		return colorInfo(s.String())
	}
}

// writeTable renders report as a human-readable table for path to w.
func writeTable(w io.Writer, path string, report *bunaudit.Report) {
	fmt.Fprintf(w, "%s\n", path)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "severity", "kind", "package", "version", "detail"})
	for _, iss := range report.Issues {
		t.AppendRow(table.Row{iss.ID, colorSeverity(iss.Severity), iss.Kind, iss.Package, iss.Version, iss.Detail})
	}
	t.Render()
	s := report.Summary
	fmt.Fprintf(w, "packages=%d issues=%d (high=%d warn=%d info=%d) exit_code=%d\n\n",
		s.TotalPackages, s.IssuesTotal, s.HighCount, s.WarnCount, s.InfoCount, s.ExitCode)
}
