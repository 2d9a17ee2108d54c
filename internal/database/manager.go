package database

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tablelab/tablelab/internal/config"
)

// Manager owns discovery and the pool of open source connections.
// Everything it hands out is read-only.
type Manager struct {
	discovery   *Discovery
	connections map[string]*Connection
	mu          sync.Mutex
}

// NewManager creates a manager for the configured sources.
func NewManager(cfg *config.Config) (*Manager, error) {
	discovery, err := NewDiscovery(cfg.Databases)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery: %w", err)
	}

	return &Manager{
		discovery:   discovery,
		connections: make(map[string]*Connection),
	}, nil
}

// Start starts discovery.
func (m *Manager) Start() error {
	return m.discovery.Start()
}

// Stop stops discovery and closes all open connections.
func (m *Manager) Stop() {
	m.discovery.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, conn := range m.connections {
		conn.Close()
	}
	m.connections = make(map[string]*Connection)
}

// Discovery returns the discovery service.
func (m *Manager) Discovery() *Discovery {
	return m.discovery
}

// ListSources returns all discovered source databases sorted by alias.
func (m *Manager) ListSources() []*SourceDB {
	dbs := m.discovery.Databases()
	sort.Slice(dbs, func(i, j int) bool { return dbs[i].Alias < dbs[j].Alias })
	return dbs
}

// Lookup returns a discovered source database by path or alias.
func (m *Manager) Lookup(pathOrAlias string) *SourceDB {
	return m.discovery.Lookup(pathOrAlias)
}

// OpenConnection opens or returns an existing read-only connection to
// a source database.
func (m *Manager) OpenConnection(pathOrAlias string) (*Connection, error) {
	db := m.discovery.Lookup(pathOrAlias)
	if db == nil {
		return nil, fmt.Errorf("database not found: %s", pathOrAlias)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, ok := m.connections[db.Path]; ok {
		return conn, nil
	}

	conn, err := OpenReadOnly(db.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	m.connections[db.Path] = conn
	return conn, nil
}

// CloseConnection closes a connection to a source database.
func (m *Manager) CloseConnection(pathOrAlias string) error {
	db := m.discovery.Lookup(pathOrAlias)
	if db == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, ok := m.connections[db.Path]; ok {
		delete(m.connections, db.Path)
		return conn.Close()
	}
	return nil
}

// Refresh rescans the configured sources.
func (m *Manager) Refresh() error {
	return m.discovery.Refresh()
}

// OnSourceChange registers a callback for source database changes.
func (m *Manager) OnSourceChange(callback func(added, removed []*SourceDB)) {
	m.discovery.OnChange(callback)
}
