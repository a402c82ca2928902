package cmd

import (
	"errors"
	"os"

	"github.com/olekukonko/tablewriter"

	"bastionctl/pkg/clierr"
)

// exitWithError terminates the process with an exit code derived from the
// failure category, so scripts can tell auth problems from missing hardware.
func exitWithError(err error) {
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		cliErr = clierr.FromAPI(err)
	}
	os.Exit(clierr.ExitCode(cliErr))
}

// renderTable prints rows as a left-aligned table on stdout.
func renderTable(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)       // Align all columns to the left
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT) // Align headers to the left
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// yesNo renders a boolean for table cells.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
