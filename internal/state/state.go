// Package state persists the playback session in a local sqlite database.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tflash"
	dbFileName   = "tflash.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db     *sql.DB
	logger *log.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Session
}

// Open opens the database under the XDG data directory.
func Open(logger *log.Logger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, errors.Wrap(err, "resolve database path")
	}
	return OpenPath(dbPath, logger)
}

// OpenPath opens (creating if needed) the database at path.
// ":memory:" gives a throwaway database.
func OpenPath(path string, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.Default()
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "create data directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	// sqlite serializes writers anyway; one connection also keeps :memory: alive
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init schema")
	}

	return &Manager{db: db, logger: logger.WithPrefix("state")}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		if err := saveSession(m.db, *pending); err != nil {
			m.logger.Warn("flush session", "err", err)
		}
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// Load returns the saved session, or nil when nothing was saved yet.
func (m *Manager) Load() (*Session, error) {
	return loadSession(m.db)
}

// Save writes s immediately, superseding any pending debounced save.
func (m *Manager) Save(s Session) error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.saveMu.Unlock()

	return saveSession(m.db, s)
}

// SaveDebounced schedules s to be written once no newer session arrived
// for saveDebounce.
func (m *Manager) SaveDebounced(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := saveSession(m.db, *pending); err != nil {
				m.logger.Warn("save session", "err", err)
			}
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
