package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// cmdSessions lists recorded sessions.
func (h *Handler) cmdSessions(ctx *CommandContext) {
	if h.historyStore == nil {
		fmt.Fprintln(ctx.Err, "History is not enabled.")
		ctx.Exit(1)
		return
	}

	limit := 50
	if flag := ctx.GetFlag("limit"); flag != "" {
		if n, err := strconv.Atoi(flag); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := h.historyStore.ListSessions(ctx.HasFlag("active"), limit)
	if err != nil {
		fmt.Fprintf(ctx.Err, "Failed to list sessions: %v\n", err)
		ctx.Exit(1)
		return
	}

	if ctx.GetFlag("format") == "json" {
		printJSON(ctx.Out, sessions)
		return
	}

	if len(sessions) == 0 {
		fmt.Fprintln(ctx.Out, "No sessions found.")
		return
	}

	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		active := ""
		if s.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{
			s.Name,
			s.RemoteAddr,
			humanize.Time(s.CreatedAt),
			humanize.Time(s.LastActiveAt),
			active,
		})
	}
	renderTable(ctx.Out, []string{"NAME", "REMOTE", "STARTED", "LAST ACTIVE", "ACTIVE"}, rows)
}

// cmdHistory lists analysis log entries.
func (h *Handler) cmdHistory(ctx *CommandContext) {
	if h.historyStore == nil {
		fmt.Fprintln(ctx.Err, "History is not enabled.")
		ctx.Exit(1)
		return
	}

	limit := 50
	if flag := ctx.GetFlag("limit"); flag != "" {
		if n, err := strconv.Atoi(flag); err == nil && n > 0 {
			limit = n
		}
	}

	var since time.Time
	if flag := ctx.GetFlag("since"); flag != "" {
		if d, err := time.ParseDuration(flag); err == nil {
			since = time.Now().Add(-d)
		}
	}

	records, err := h.historyStore.ListAnalysisLog(
		ctx.GetFlag("session"), ctx.GetFlag("action"), ctx.GetFlag("db"), since, limit)
	if err != nil {
		fmt.Fprintf(ctx.Err, "Failed to list history: %v\n", err)
		ctx.Exit(1)
		return
	}

	if ctx.GetFlag("format") == "json" {
		printJSON(ctx.Out, records)
		return
	}

	if len(records) == 0 {
		fmt.Fprintln(ctx.Out, "No history found.")
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := "ok"
		if r.Error != "" {
			status = r.Error
		}
		rows = append(rows, []string{
			humanize.Time(r.CreatedAt),
			r.Action,
			r.TableName,
			r.Columns,
			fmt.Sprintf("%dms", r.DurationMs),
			status,
		})
	}
	renderTable(ctx.Out, []string{"WHEN", "ACTION", "TABLE", "COLUMNS", "TOOK", "STATUS"}, rows)
}
