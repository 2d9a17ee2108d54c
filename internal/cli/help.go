package cli

import "fmt"

// cmdHelp shows help information.
func (h *Handler) cmdHelp(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()

	if len(args) > 0 {
		h.showCommandHelp(ctx, args[0])
		return
	}

	fmt.Fprintln(ctx.Out, `tablelab - terminal notebook for relational data

USAGE:
  tablelab <database> <command> [arguments] [options]
  ssh host command <database> [arguments] [options]

CATALOG COMMANDS:
  ls, list                           List discovered databases
  info <database>                    Show database information
  tables <database>                  List tables with row counts
  schema <database> <table>          Show table schema

DATA COMMANDS:
  preview <database> <table>         Show a row sample
  count <database> <table>           Count rows in a table
  export <database> <table>          Export all rows (csv or json)

ANALYSIS COMMANDS:
  describe <database> <table>        Per-column summary statistics
  pie <database> <table> <column>    Value distribution pie chart
  box <database> <table> <cat> <val> Box plots of a numeric column by category

HISTORY COMMANDS:
  sessions                           List recorded sessions
  history                            View the analysis log

UTILITY COMMANDS:
  help [command]                     Show help
  version                            Show version

COMMON OPTIONS:
  --format=json                      Output in JSON format
  --format=csv                       Output in CSV format
  --limit=N                          Limit number of rows
  --width=N                          Chart width in columns

Run 'help <command>' for detailed help on a specific command.`)
}

// showCommandHelp shows help for a specific command.
func (h *Handler) showCommandHelp(ctx *CommandContext, command string) {
	help := map[string]string{
		"ls": `ls, list - List discovered databases

USAGE:
  ls [--format=json]`,

		"preview": `preview - Show a row sample from a table

USAGE:
  preview <database> <table> [options]

OPTIONS:
  --limit=N        Sample size (default from config)
  --format=json    Output as JSON
  --format=csv     Output as CSV

EXAMPLES:
  preview flights SFLIGHT
  preview flights SFLIGHT --limit=5 --format=json`,

		"describe": `describe - Per-column summary statistics

USAGE:
  describe <database> <table> [--format=json]

Shows non-null, null and distinct counts for every column, plus
min/mean/max for numeric columns.`,

		"pie": `pie - Value distribution pie chart

USAGE:
  pie <database> <table> <column> [--width=N]

Counts the distinct values of the column (NULLs are skipped) and
renders a proportional segment bar with a legend.

EXAMPLE:
  pie flights SFLIGHT CARRID`,

		"box": `box - Box plots of a numeric column by category

USAGE:
  box <database> <table> <category> <value> [--width=N]

Groups rows by the category column and renders one box-and-whisker
row per group on a shared scale. The value column must be numeric.

EXAMPLE:
  box flights SFLIGHT CARRID PRICE`,

		"export": `export - Export all rows of a table

USAGE:
  export <database> <table> [--format=csv|json]

Data is written to stdout. Redirect to a file:
  tablelab flights.db export flights SFLIGHT --format=csv > sflight.csv`,

		"history": `history - View the analysis log

USAGE:
  history [options]

OPTIONS:
  --session=ID     Filter by session
  --action=NAME    Filter by action (preview, describe, pie, box, export)
  --db=PATH        Filter by database path
  --since=1h       Only entries newer than the given duration
  --limit=N        Limit entries (default: 50)
  --format=json    Output as JSON`,
	}

	if text, ok := help[command]; ok {
		fmt.Fprintln(ctx.Out, text)
	} else {
		fmt.Fprintf(ctx.Out, "No detailed help available for '%s'\n", command)
	}
}

// cmdVersion shows version information.
func (h *Handler) cmdVersion(ctx *CommandContext) {
	if ctx.GetFlag("format") == "json" {
		printJSON(ctx.Out, map[string]string{"version": h.version})
		return
	}
	fmt.Fprintf(ctx.Out, "tablelab %s\n", h.version)
}
