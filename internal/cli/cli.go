// Package cli implements the command-line interface for both SSH and local modes.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/history"
	"github.com/tablelab/tablelab/internal/server"
)

// Handler handles CLI commands over SSH or locally.
type Handler struct {
	dbManager    *database.Manager
	historyStore *history.Store
	previewRows  int
	version      string
}

// NewHandler creates a new CLI handler.
func NewHandler(dbManager *database.Manager, historyStore *history.Store, previewRows int, version string) *Handler {
	return &Handler{
		dbManager:    dbManager,
		historyStore: historyStore,
		previewRows:  previewRows,
		version:      version,
	}
}

// LocalContext wraps command execution for local (non-SSH) mode.
type LocalContext struct {
	Args []string
	Out  io.Writer
	Err  io.Writer
}

// NewLocalContext creates a context for local CLI execution.
func NewLocalContext(args []string, out, errOut io.Writer) *LocalContext {
	return &LocalContext{
		Args: args,
		Out:  out,
		Err:  errOut,
	}
}

// HandleLocal processes a CLI command in local mode (no SSH session).
func (h *Handler) HandleLocal(lctx *LocalContext) error {
	if len(lctx.Args) == 0 {
		fmt.Fprintln(lctx.Out, "No command specified. Run 'help' for usage.")
		return nil
	}

	ctx := &CommandContext{
		Session:      nil, // No SSH session in local mode
		SessionInfo:  nil,
		DBManager:    h.dbManager,
		HistoryStore: h.historyStore,
		Args:         lctx.Args[1:],
		Out:          lctx.Out,
		Err:          lctx.Err,
		exitCode:     0,
	}

	h.routeCommand(lctx.Args[0], ctx)

	if ctx.exitCode != 0 {
		return fmt.Errorf("command failed with exit code %d", ctx.exitCode)
	}
	return nil
}

// Handle processes an SSH session with a CLI command.
func (h *Handler) Handle(s ssh.Session) {
	cmd := s.Command()
	if len(cmd) == 0 {
		fmt.Fprintln(s, "No command specified. Run 'help' for usage.")
		return
	}

	session := server.GetSessionFromSSH(s)

	ctx := &CommandContext{
		Session:      s,
		SessionInfo:  session,
		DBManager:    h.dbManager,
		HistoryStore: h.historyStore,
		Args:         cmd[1:],
		Out:          s,
		Err:          s.Stderr(),
		exitCode:     0,
	}

	h.routeCommand(cmd[0], ctx)

	if ctx.exitCode != 0 {
		s.Exit(ctx.exitCode)
	}
}

// routeCommand routes a command to its handler.
func (h *Handler) routeCommand(cmd string, ctx *CommandContext) {
	switch cmd {
	// Catalog commands
	case "ls", "list":
		h.cmdList(ctx)
	case "info":
		h.cmdInfo(ctx)
	case "tables":
		h.cmdTables(ctx)
	case "schema":
		h.cmdSchema(ctx)

	// Data commands
	case "preview":
		h.cmdPreview(ctx)
	case "count":
		h.cmdCount(ctx)
	case "export":
		h.cmdExport(ctx)

	// Analysis commands
	case "describe":
		h.cmdDescribe(ctx)
	case "pie":
		h.cmdPie(ctx)
	case "box":
		h.cmdBox(ctx)

	// Admin commands
	case "sessions":
		h.cmdSessions(ctx)
	case "history":
		h.cmdHistory(ctx)

	// Utility commands
	case "help":
		h.cmdHelp(ctx)
	case "version":
		h.cmdVersion(ctx)

	default:
		fmt.Fprintf(ctx.Err, "Unknown command: %s\n", cmd)
		fmt.Fprintln(ctx.Err, "Run 'help' for usage.")
		ctx.Exit(1)
	}
}

// CommandContext provides context for command execution.
type CommandContext struct {
	Session      ssh.Session // nil in local mode
	SessionInfo  *server.Session
	DBManager    *database.Manager
	HistoryStore *history.Store
	Args         []string
	Out          io.Writer
	Err          io.Writer
	exitCode     int
}

// Exit sets the exit code (used instead of calling Session.Exit directly).
func (c *CommandContext) Exit(code int) {
	c.exitCode = code
}

// GetSessionID returns the session ID or empty string.
func (c *CommandContext) GetSessionID() string {
	if c.SessionInfo != nil {
		return c.SessionInfo.ID
	}
	return ""
}

// RequireArg ensures an argument is provided.
func (c *CommandContext) RequireArg(index int, name string) (string, bool) {
	if index >= len(c.Args) {
		fmt.Fprintf(c.Err, "Missing required argument: %s\n", name)
		c.Exit(1)
		return "", false
	}
	return c.Args[index], true
}

// GetFlag returns a flag value from args (e.g., --format=json).
func (c *CommandContext) GetFlag(name string) string {
	prefix := "--" + name + "="
	shortPrefix := "-" + name + "="
	for _, arg := range c.Args {
		if strings.HasPrefix(arg, prefix) {
			return strings.TrimPrefix(arg, prefix)
		}
		if strings.HasPrefix(arg, shortPrefix) {
			return strings.TrimPrefix(arg, shortPrefix)
		}
	}
	return ""
}

// HasFlag checks if a boolean flag is present.
func (c *CommandContext) HasFlag(name string) bool {
	flag := "--" + name
	shortFlag := "-" + name
	for _, arg := range c.Args {
		if arg == flag || arg == shortFlag {
			return true
		}
	}
	return false
}

// GetPositionalArgs returns args that are not flags.
func (c *CommandContext) GetPositionalArgs() []string {
	var result []string
	for _, arg := range c.Args {
		if !strings.HasPrefix(arg, "-") {
			result = append(result, arg)
		}
	}
	return result
}

// openConnection resolves a database by path or alias and opens it.
func (c *CommandContext) openConnection(pathOrAlias string) (*database.Connection, bool) {
	conn, err := c.DBManager.OpenConnection(pathOrAlias)
	if err != nil {
		fmt.Fprintf(c.Err, "Failed to open database: %v\n", err)
		c.Exit(1)
		return nil, false
	}
	return conn, true
}

// recordAnalysis logs an analysis step to the history store.
func (c *CommandContext) recordAnalysis(action, dbPath, table, columns string, start time.Time, err error) {
	if c.HistoryStore == nil {
		return
	}

	errStr := ""
	if err != nil {
		errStr = err.Error()
	}

	c.HistoryStore.RecordAnalysis(&history.AnalysisRecord{
		SessionID:    c.GetSessionID(),
		Action:       action,
		DatabasePath: dbPath,
		TableName:    table,
		Columns:      columns,
		DurationMs:   time.Since(start).Milliseconds(),
		Error:        errStr,
	})
}
