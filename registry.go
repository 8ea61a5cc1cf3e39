package sioclient

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ManagerOptions configures a Manager at construction time. It exists
// mainly to carry a shared Bus across sessions; left zero-valued, a
// Manager builds its own Bus.
type ManagerOptions struct {
	Bus *Bus
}

// Manager is a fixed-capacity table of sessions addressed by ClientID,
// the direct descendant of the original's process-global
// sio_client_map. spec.md §9 flags that global table as a design smell
// to refactor into an injected context: Manager is that injected
// context — a value a host program constructs, owns, and can run more
// than one of in the same process without the two interfering.
type Manager struct {
	mu    sync.RWMutex
	slots []*Session
	bus   *Bus
}

// NewManager returns a Manager with room for capacity concurrent
// sessions — the Go equivalent of the original's compile-time
// SIO_MAX_PARALLEL_SOCKETS define, expressed as a runtime parameter
// since Go has no preprocessor.
func NewManager(capacity int, opts ManagerOptions) *Manager {
	bus := opts.Bus
	if bus == nil {
		bus = NewBus()
	}
	return &Manager{
		slots: make([]*Session, capacity),
		bus:   bus,
	}
}

// Events returns the Manager's event bus, shared by every session it
// owns.
func (m *Manager) Events() *Bus { return m.bus }

// Init validates cfg, allocates the lowest free slot, and returns the
// new session's ClientID. No network activity occurs.
func (m *Manager) Init(cfg Config) (ClientID, error) {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return -1, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	slot := -1
	for i, s := range m.slots {
		if s == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		return -1, newErr(KindCapacity, "Init", fmt.Sprintf("no free slot (capacity %d)", len(m.slots)))
	}

	m.slots[slot] = newSession(ClientID(slot), cfg, m.bus)
	return ClientID(slot), nil
}

// Destroy tears down the session at id. It is a no-op if the slot is
// already empty, and refuses (KindState) if the session's poll loop is
// still running — the caller must Close it first, matching spec.md
// §4.3.
func (m *Manager) Destroy(id ClientID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.getLocked(id)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	running := s.pollingRunning
	s.mu.Unlock()
	if running {
		return newErr(KindState, "Destroy", "poll loop still running, close the session first")
	}

	m.slots[id] = nil
	return nil
}

// IsInitialized bounds-checks id and reports whether its slot holds a
// session.
func (m *Manager) IsInitialized(id ClientID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getLocked(id) != nil
}

// getLocked returns the session at id, or nil if id is out of range or
// the slot is empty. Caller must hold m.mu (read or write).
func (m *Manager) getLocked(id ClientID) *Session {
	if id < 0 || int(id) >= len(m.slots) {
		return nil
	}
	return m.slots[id]
}

// GetAndLock bounds-checks id, acquires the session's own mutex, and
// returns it locked. Callers must pair every successful call with
// Unlock.
func (m *Manager) GetAndLock(id ClientID) (*Session, error) {
	m.mu.RLock()
	s := m.getLocked(id)
	m.mu.RUnlock()
	if s == nil {
		return nil, newErr(KindState, "GetAndLock", "client is not initialized")
	}
	s.mu.Lock()
	return s, nil
}

// Unlock releases a session previously returned by GetAndLock.
func (m *Manager) Unlock(s *Session) {
	s.mu.Unlock()
}

// IsLocked is a diagnostic, non-blocking probe: it reports whether the
// session's mutex is currently held by someone else. Like the original,
// this is inherently racy and meant for logging/debugging only.
func (m *Manager) IsLocked(id ClientID) bool {
	m.mu.RLock()
	s := m.getLocked(id)
	m.mu.RUnlock()
	if s == nil {
		return false
	}
	locked := !s.mu.TryLock()
	if !locked {
		s.mu.Unlock()
	}
	return locked
}

// CloseAll closes every currently-connected session concurrently,
// joining their errors. It is a supplemental operation absent from the
// original (which has no coordinated multi-session shutdown); see
// SPEC_FULL.md §4.3.
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.RLock()
	ids := make([]ClientID, 0, len(m.slots))
	for i, s := range m.slots {
		if s != nil {
			ids = append(ids, ClientID(i))
		}
	}
	m.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := m.Close(id); err != nil {
				return fmt.Errorf("client %d: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}
