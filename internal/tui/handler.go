package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/tablelab/tablelab/internal/database"
)

// Handler returns a bubbletea middleware handler for SSH sessions.
// Sessions may name a database alias on the command line; otherwise the
// first discovered database is opened.
func Handler(manager *database.Manager, previewLimit int) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, ok := s.Pty()
		if !ok {
			// Routing middleware only sends PTY sessions here.
			return nil, nil
		}

		alias := ""
		if args := s.Command(); len(args) > 0 {
			alias = args[0]
		}

		source := manager.Lookup(alias)
		if source == nil {
			sources := manager.ListSources()
			if len(sources) == 0 {
				return nil, nil
			}
			source = sources[0]
		}

		conn, err := manager.OpenConnection(source.Path)
		if err != nil {
			return nil, nil
		}

		app := NewApp(conn, source.Alias, previewLimit, pty.Window.Width, pty.Window.Height)

		return app, []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
	}
}
