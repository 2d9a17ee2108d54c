// Package server shares a notebook over SSH. Sessions are anonymous and
// strictly read-only; no authentication is performed.
package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/tablelab/tablelab/internal/config"
	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/history"
)

// Server is the SSH server for tablelab.
type Server struct {
	config       *config.Config
	dbManager    *database.Manager
	historyStore *history.Store
	sessionMgr   *SessionManager
	sshServer    *ssh.Server
	tuiHandler   bubbletea.Handler
	cliHandler   func(ssh.Session)
}

// NewServer creates a new SSH server.
func NewServer(cfg *config.Config, dbManager *database.Manager, historyStore *history.Store) *Server {
	return &Server{
		config:       cfg,
		dbManager:    dbManager,
		historyStore: historyStore,
		sessionMgr:   NewSessionManager(historyStore),
	}
}

// SetTUIHandler sets the Bubble Tea handler for interactive sessions.
func (s *Server) SetTUIHandler(handler bubbletea.Handler) {
	s.tuiHandler = handler
}

// SetCLIHandler sets the handler for CLI commands.
func (s *Server) SetCLIHandler(handler func(ssh.Session)) {
	s.cliHandler = handler
}

// build creates the underlying ssh.Server from the current configuration.
func (s *Server) build() (*ssh.Server, error) {
	keyDir := filepath.Dir(s.config.Serve.HostKeyPath)
	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create host key directory: %w", err)
	}

	// Order matters: last middleware wraps first
	middleware := []wish.Middleware{
		s.routingMiddleware(),
		SessionMiddleware(s.sessionMgr),
		DatabaseMiddleware(s.dbManager),
		HistoryMiddleware(s.historyStore),
		LoggingMiddleware(),
	}

	opts := []ssh.Option{
		wish.WithAddress(s.config.Serve.Listen),
		wish.WithHostKeyPath(s.config.Serve.HostKeyPath),
		wish.WithMiddleware(middleware...),
	}

	if s.config.GetIdleTimeout() > 0 {
		opts = append(opts, wish.WithIdleTimeout(s.config.GetIdleTimeout()))
	}
	if s.config.GetMaxTimeout() > 0 {
		opts = append(opts, wish.WithMaxTimeout(s.config.GetMaxTimeout()))
	}

	return wish.NewServer(opts...)
}

// Start starts the SSH server and blocks until an interrupt signal.
func (s *Server) Start() error {
	server, err := s.build()
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.sshServer = server

	log.Printf("Starting SSH server on %s", s.config.Serve.Listen)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
			log.Printf("SSH server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down SSH server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}

// ListenAndServe starts the server without signal handling (for embedding).
func (s *Server) ListenAndServe() error {
	server, err := s.build()
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.sshServer = server

	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.sshServer != nil {
		return s.sshServer.Shutdown(ctx)
	}
	return nil
}

// GetAddr returns the server's listen address string.
func (s *Server) GetAddr() string {
	if s.sshServer != nil {
		return s.sshServer.Addr
	}
	return ""
}

// routingMiddleware routes requests to either the TUI or CLI handler.
func (s *Server) routingMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			cmd := sess.Command()

			// An explicit command means a one-shot CLI invocation. A
			// bare PTY session gets the notebook TUI.
			if len(cmd) > 0 && s.cliHandler != nil {
				s.cliHandler(sess)
				return
			}

			_, _, hasPty := sess.Pty()
			if !hasPty {
				wish.Fatalln(sess, "PTY required for interactive mode. Use -t flag or provide a command.")
				return
			}

			if s.tuiHandler != nil {
				btMiddleware := bubbletea.Middleware(s.tuiHandler)
				btMiddleware(next)(sess)
			} else {
				wish.Fatalln(sess, "TUI not available")
			}
		}
	}
}

// GetSessionManager returns the session manager.
func (s *Server) GetSessionManager() *SessionManager {
	return s.sessionMgr
}
