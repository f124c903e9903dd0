package cartstore

import "sync"

// Manager hands out one Store per session id, creating and restoring it
// on first access. Stores live for the life of the process.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store

	// OnCreate, when set, runs once for every newly created store,
	// before it is handed out. Used to attach process-wide subscribers.
	OnCreate func(sessionID string, s *Store)
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage, stores: map[string]*Store{}}
}

func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := NewStore(m.storage, "cart:"+sessionID)
	if m.OnCreate != nil {
		m.OnCreate(sessionID, s)
	}
	m.stores[sessionID] = s
	return s
}
