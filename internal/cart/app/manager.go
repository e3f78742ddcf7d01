package app

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("unknown checkout session")

// Manager owns one Engine per terminal session. Sessions are created
// explicitly, keyed by an opaque uuid, and live until the process exits;
// a small store has at most a handful of terminals.
type Manager struct {
	catalog CatalogReader

	mu       sync.RWMutex
	sessions map[string]*Engine
}

func NewManager(catalog CatalogReader) *Manager {
	return &Manager{
		catalog:  catalog,
		sessions: make(map[string]*Engine),
	}
}

// Open creates a fresh session and returns its id.
func (m *Manager) Open() string {
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = NewEngine(m.catalog)
	return id
}

func (m *Manager) Get(sessionID string) (*Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Close drops a session entirely (terminal logout).
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
