package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the session and analysis history database.
type Store struct {
	db            *sql.DB
	nameGenerator *NameGenerator
}

// NewStore creates a new history store under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{
		db:            db,
		nameGenerator: NewNameGenerator(),
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT,
		remote_addr TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_active_at DATETIME,
		is_active INTEGER DEFAULT 1
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_is_active ON sessions(is_active);

	CREATE TABLE IF NOT EXISTS analysis_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT REFERENCES sessions(id),
		action TEXT,
		database_path TEXT,
		table_name TEXT,
		columns TEXT,
		duration_ms INTEGER,
		error TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_analysis_log_session_id ON analysis_log(session_id);
	CREATE INDEX IF NOT EXISTS idx_analysis_log_action ON analysis_log(action);
	CREATE INDEX IF NOT EXISTS idx_analysis_log_database_path ON analysis_log(database_path);
	CREATE INDEX IF NOT EXISTS idx_analysis_log_created_at ON analysis_log(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// GenerateSessionName generates a new friendly session name.
func (s *Store) GenerateSessionName() string {
	return s.nameGenerator.Generate()
}

// CreateSession creates a new session record.
func (s *Store) CreateSession(session *Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, name, remote_addr, created_at, last_active_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, session.ID, session.Name, nullString(session.RemoteAddr),
		session.CreatedAt, session.LastActiveAt, session.IsActive)

	return err
}

// UpdateSessionActivity updates the last active time for a session.
func (s *Store) UpdateSessionActivity(sessionID string) error {
	_, err := s.db.Exec(`
		UPDATE sessions SET last_active_at = ? WHERE id = ?
	`, time.Now(), sessionID)
	return err
}

// EndSession marks a session as inactive.
func (s *Store) EndSession(sessionID string) error {
	_, err := s.db.Exec(`
		UPDATE sessions SET is_active = 0, last_active_at = ? WHERE id = ?
	`, time.Now(), sessionID)
	return err
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(sessionID string) (*Session, error) {
	row := s.db.QueryRow(`
		SELECT id, name, remote_addr, created_at, last_active_at, is_active
		FROM sessions WHERE id = ?
	`, sessionID)

	session, err := scanSession(row.Scan)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions lists sessions, most recently active first.
func (s *Store) ListSessions(activeOnly bool, limit int) ([]*Session, error) {
	query := `
		SELECT id, name, remote_addr, created_at, last_active_at, is_active
		FROM sessions
	`
	args := make([]any, 0)

	if activeOnly {
		query += " WHERE is_active = 1"
	}

	query += " ORDER BY last_active_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// RecordAnalysis records an analysis step.
func (s *Store) RecordAnalysis(record *AnalysisRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO analysis_log (session_id, action, database_path, table_name, columns, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.SessionID, record.Action, record.DatabasePath, nullString(record.TableName),
		nullString(record.Columns), record.DurationMs, nullString(record.Error), record.CreatedAt)

	return err
}

// ListAnalysisLog lists analysis log entries with optional filters.
func (s *Store) ListAnalysisLog(sessionID, action, databasePath string, since time.Time, limit int) ([]*AnalysisRecord, error) {
	query := "SELECT id, session_id, action, database_path, table_name, columns, duration_ms, error, created_at FROM analysis_log WHERE 1=1"
	args := make([]any, 0)

	if sessionID != "" {
		query += " AND session_id = ?"
		args = append(args, sessionID)
	}

	if action != "" {
		query += " AND action = ?"
		args = append(args, action)
	}

	if databasePath != "" {
		query += " AND database_path = ?"
		args = append(args, databasePath)
	}

	if !since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, since)
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*AnalysisRecord
	for rows.Next() {
		var record AnalysisRecord
		var tableName, columns, errStr sql.NullString

		err := rows.Scan(&record.ID, &record.SessionID, &record.Action, &record.DatabasePath,
			&tableName, &columns, &record.DurationMs, &errStr, &record.CreatedAt)
		if err != nil {
			return nil, err
		}

		record.TableName = tableName.String
		record.Columns = columns.String
		record.Error = errStr.String
		records = append(records, &record)
	}

	return records, rows.Err()
}

// scanSession scans a session row from either sql.Row or sql.Rows.
func scanSession(scan func(...any) error) (*Session, error) {
	var session Session
	var remoteAddr sql.NullString
	var isActive int

	err := scan(&session.ID, &session.Name, &remoteAddr,
		&session.CreatedAt, &session.LastActiveAt, &isActive)
	if err != nil {
		return nil, err
	}

	session.RemoteAddr = remoteAddr.String
	session.IsActive = isActive == 1

	return &session, nil
}

// nullString converts an empty string to sql.NullString.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
