package history

import "time"

// Session represents a notebook session, local or remote.
type Session struct {
	ID           string
	Name         string // Generated display name
	RemoteAddr   string // Empty for local sessions
	CreatedAt    time.Time
	LastActiveAt time.Time
	IsActive     bool
}

// AnalysisRecord represents one analysis step in the log.
type AnalysisRecord struct {
	ID           int64
	SessionID    string
	Action       string
	DatabasePath string
	TableName    string
	Columns      string // Comma-separated columns the action operated on
	DurationMs   int64
	Error        string
	CreatedAt    time.Time
}

// NewSession creates a session record with a generated name.
func NewSession(id, name, remoteAddr string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Name:         name,
		RemoteAddr:   remoteAddr,
		CreatedAt:    now,
		LastActiveAt: now,
		IsActive:     true,
	}
}

// Touch updates the last active time.
func (s *Session) Touch() {
	s.LastActiveAt = time.Now()
}

// Analysis action constants.
const (
	ActionSelect   = "select"
	ActionPreview  = "preview"
	ActionDescribe = "describe"
	ActionPie      = "pie"
	ActionBox      = "box"
	ActionExport   = "export"
)
