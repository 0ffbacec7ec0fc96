// Package ui renders terminal output for timespan.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"
)

// PrintTable renders rows (the first row is the header) as a boxed table.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// FormatDuration renders a duration for humans, trimmed to two units.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0 seconds"
	}

	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).String()
}
