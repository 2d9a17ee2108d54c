package database

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/tablelab/tablelab/internal/config"
)

// SourceDB is a source database file found by discovery.
type SourceDB struct {
	Path        string
	Alias       string
	Description string
	Size        int64
	ModTime     int64
}

// Discovery resolves configured sources (files, directories, globs)
// into source databases and watches them for changes.
type Discovery struct {
	sources   []config.DatabaseSource
	databases map[string]*SourceDB
	watcher   *fsnotify.Watcher
	callbacks []func(added, removed []*SourceDB)
	stop      chan struct{}
	mu        sync.RWMutex
}

// NewDiscovery creates a discovery service for the given sources.
func NewDiscovery(sources []config.DatabaseSource) (*Discovery, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Discovery{
		sources:   sources,
		databases: make(map[string]*SourceDB),
		watcher:   watcher,
		stop:      make(chan struct{}),
	}, nil
}

// OnChange registers a callback for when source databases appear or disappear.
func (d *Discovery) OnChange(callback func(added, removed []*SourceDB)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callbacks = append(d.callbacks, callback)
}

// Start runs the initial scan and begins watching.
func (d *Discovery) Start() error {
	if err := d.scan(); err != nil {
		return err
	}
	go d.watch()
	return nil
}

// Stop stops the discovery service.
func (d *Discovery) Stop() {
	close(d.stop)
	d.watcher.Close()
}

// Databases returns all discovered source databases, unordered.
func (d *Discovery) Databases() []*SourceDB {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]*SourceDB, 0, len(d.databases))
	for _, db := range d.databases {
		result = append(result, db)
	}
	return result
}

// Lookup returns a source database by path or alias.
func (d *Discovery) Lookup(pathOrAlias string) *SourceDB {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if db, ok := d.databases[pathOrAlias]; ok {
		return db
	}
	for _, db := range d.databases {
		if db.Alias == pathOrAlias {
			return db
		}
	}
	return nil
}

// Refresh forces a rescan of all sources.
func (d *Discovery) Refresh() error {
	return d.scan()
}

// UpdateSources replaces the configured sources and rescans.
// Called when the config file is hot-reloaded.
func (d *Discovery) UpdateSources(sources []config.DatabaseSource) error {
	d.mu.Lock()
	d.sources = sources
	d.mu.Unlock()

	return d.scan()
}

// scan resolves every source and diffs the result against the
// previously known set.
func (d *Discovery) scan() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := make(map[string]*SourceDB)
	watchDirs := make(map[string]bool)

	for i := range d.sources {
		source := &d.sources[i]
		dbs, dirs, err := resolveSource(source)
		if err != nil {
			log.Printf("warning: failed to resolve source %s: %v", source.Path, err)
			continue
		}
		for _, db := range dbs {
			found[db.Path] = db
		}
		for _, dir := range dirs {
			watchDirs[dir] = true
		}
	}

	var added, removed []*SourceDB
	for path, db := range found {
		if _, ok := d.databases[path]; !ok {
			added = append(added, db)
		}
	}
	for path, db := range d.databases {
		if _, ok := found[path]; !ok {
			removed = append(removed, db)
		}
	}

	d.databases = found

	for dir := range watchDirs {
		d.watcher.Add(dir)
	}

	// Notify outside the lock
	if len(added) > 0 || len(removed) > 0 {
		go d.notify(added, removed)
	}

	return nil
}

// resolveSource expands one configured source into database files plus
// the directories to watch for it.
func resolveSource(source *config.DatabaseSource) ([]*SourceDB, []string, error) {
	path := source.Path

	// Glob pattern
	if strings.ContainsAny(path, "*?[") {
		matches, err := doublestar.FilepathGlob(path)
		if err != nil {
			return nil, nil, err
		}

		var dbs []*SourceDB
		for _, match := range matches {
			if !isSQLiteFile(match) {
				continue
			}
			db, err := newSourceDB(match, source)
			if err != nil {
				log.Printf("warning: failed to stat %s: %v", match, err)
				continue
			}
			dbs = append(dbs, db)
		}

		var dirs []string
		if dir := filepath.Dir(strings.Split(path, "*")[0]); dir != "" && dir != "." {
			dirs = append(dirs, dir)
		}
		return dbs, dirs, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}

	// Directory
	if info.IsDir() {
		var dbs []*SourceDB
		filepath.WalkDir(path, func(filePath string, entry os.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			if entry.IsDir() && filePath != path && !source.Recursive {
				return filepath.SkipDir
			}
			if !entry.IsDir() && isSQLiteFile(filePath) {
				if db, err := newSourceDB(filePath, source); err == nil {
					dbs = append(dbs, db)
				}
			}
			return nil
		})
		return dbs, []string{path}, nil
	}

	// Single file
	if !isSQLiteFile(path) {
		return nil, nil, nil
	}
	db, err := newSourceDB(path, source)
	if err != nil {
		return nil, nil, err
	}
	return []*SourceDB{db}, []string{filepath.Dir(path)}, nil
}

// newSourceDB builds a SourceDB record, deriving an alias from the
// filename when the source doesn't pin one.
func newSourceDB(path string, source *config.DatabaseSource) (*SourceDB, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	alias := source.Alias
	switch {
	case alias == "":
		alias = base
	case strings.Contains(alias, "*"):
		alias = strings.ReplaceAll(alias, "*", base)
	}

	return &SourceDB{
		Path:        absPath,
		Alias:       alias,
		Description: source.Description,
		Size:        info.Size(),
		ModTime:     info.ModTime().Unix(),
	}, nil
}

// isSQLiteFile checks if a file looks like a SQLite database.
func isSQLiteFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3", ".db3":
		return true
	}
	return false
}

// watch rescans when database files appear or disappear.
func (d *Discovery) watch() {
	for {
		select {
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if isSQLiteFile(event.Name) {
					d.scan()
				}
			}

		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("discovery watcher error: %v", err)

		case <-d.stop:
			return
		}
	}
}

func (d *Discovery) notify(added, removed []*SourceDB) {
	d.mu.RLock()
	callbacks := make([]func(added, removed []*SourceDB), len(d.callbacks))
	copy(callbacks, d.callbacks)
	d.mu.RUnlock()

	for _, cb := range callbacks {
		cb(added, removed)
	}
}
