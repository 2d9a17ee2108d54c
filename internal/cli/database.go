package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/tablelab/tablelab/internal/database"
)

// cmdList lists discovered databases.
func (h *Handler) cmdList(ctx *CommandContext) {
	format := ctx.GetFlag("format")
	sources := h.dbManager.ListSources()

	if format == "json" {
		printJSON(ctx.Out, sources)
		return
	}

	if len(sources) == 0 {
		fmt.Fprintln(ctx.Out, "No databases found.")
		return
	}

	rows := make([][]string, 0, len(sources))
	for _, src := range sources {
		rows = append(rows, []string{
			src.Alias,
			src.Path,
			humanize.Bytes(uint64(src.Size)),
		})
	}
	renderTable(ctx.Out, []string{"ALIAS", "PATH", "SIZE"}, rows)
}

// cmdInfo shows information about a specific database.
func (h *Handler) cmdInfo(ctx *CommandContext) {
	dbName, ok := ctx.RequireArg(0, "database")
	if !ok {
		return
	}

	src := h.dbManager.Lookup(dbName)
	if src == nil {
		fmt.Fprintf(ctx.Err, "Database not found: %s\n", dbName)
		ctx.Exit(1)
		return
	}

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	catalog := database.NewCatalog(conn)
	tables, err := catalog.ListTables()
	if err != nil {
		fmt.Fprintf(ctx.Err, "Failed to list tables: %v\n", err)
		ctx.Exit(1)
		return
	}

	format := ctx.GetFlag("format")
	if format == "json" {
		printJSON(ctx.Out, map[string]any{
			"alias":       src.Alias,
			"path":        src.Path,
			"description": src.Description,
			"size":        src.Size,
			"mod_time":    src.ModTime,
			"tables":      len(tables),
		})
		return
	}

	fmt.Fprintf(ctx.Out, "Alias:\t%s\n", src.Alias)
	fmt.Fprintf(ctx.Out, "Path:\t%s\n", src.Path)
	if src.Description != "" {
		fmt.Fprintf(ctx.Out, "Description:\t%s\n", src.Description)
	}
	fmt.Fprintf(ctx.Out, "Size:\t%s\n", humanize.Bytes(uint64(src.Size)))
	fmt.Fprintf(ctx.Out, "Tables:\t%d\n", len(tables))
}

// cmdTables lists tables with their column and row counts.
func (h *Handler) cmdTables(ctx *CommandContext) {
	dbName, ok := ctx.RequireArg(0, "database")
	if !ok {
		return
	}

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	catalog := database.NewCatalog(conn)
	tables, err := catalog.ListTables()
	if err != nil {
		fmt.Fprintf(ctx.Err, "Failed to list tables: %v\n", err)
		ctx.Exit(1)
		return
	}

	format := ctx.GetFlag("format")
	if format == "json" {
		result := make([]map[string]any, 0, len(tables))
		for _, name := range tables {
			info, _ := catalog.GetTableInfo(name)
			if info != nil {
				result = append(result, map[string]any{
					"name":    info.Name,
					"columns": len(info.Columns),
					"rows":    info.RowCount,
				})
			}
		}
		printJSON(ctx.Out, result)
		return
	}

	if len(tables) == 0 {
		fmt.Fprintln(ctx.Out, "No tables found.")
		return
	}

	rows := make([][]string, 0, len(tables))
	for _, name := range tables {
		info, err := catalog.GetTableInfo(name)
		if err != nil {
			rows = append(rows, []string{name, "?", "?"})
			continue
		}
		rows = append(rows, []string{
			info.Name,
			fmt.Sprintf("%d", len(info.Columns)),
			humanize.Comma(info.RowCount),
		})
	}
	renderTable(ctx.Out, []string{"TABLE", "COLUMNS", "ROWS"}, rows)
}

// cmdSchema shows the column definitions of a table.
func (h *Handler) cmdSchema(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 2 {
		fmt.Fprintln(ctx.Err, "Usage: schema <database> <table>")
		ctx.Exit(1)
		return
	}

	dbName := args[0]
	tableName := args[1]

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	catalog := database.NewCatalog(conn)
	info, err := catalog.GetTableInfo(tableName)
	if err != nil {
		fmt.Fprintf(ctx.Err, "Failed to get table info: %v\n", err)
		ctx.Exit(1)
		return
	}

	format := ctx.GetFlag("format")
	if format == "json" {
		printJSON(ctx.Out, info)
		return
	}

	fmt.Fprintf(ctx.Out, "Table: %s\n", info.Name)
	fmt.Fprintf(ctx.Out, "Rows: %s\n\n", humanize.Comma(info.RowCount))

	rows := make([][]string, 0, len(info.Columns))
	for _, col := range info.Columns {
		nullable := "YES"
		if col.NotNull {
			nullable = "NO"
		}
		defaultVal := ""
		if col.DefaultValue.Valid {
			defaultVal = col.DefaultValue.String
		}
		pk := ""
		if col.PrimaryKey > 0 {
			pk = fmt.Sprintf("%d", col.PrimaryKey)
		}
		rows = append(rows, []string{col.Name, col.Type, nullable, defaultVal, pk})
	}
	renderTable(ctx.Out, []string{"NAME", "TYPE", "NULLABLE", "DEFAULT", "PK"}, rows)
}
