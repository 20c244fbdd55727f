// Package session holds the per-login state of the dashboard: who is logged
// in and the cart they are building. Sessions live in process memory only;
// the cart is never persisted until an order is submitted.
package session

import (
	"sync"
	"time"

	"dinepos/internal/models"

	"github.com/google/uuid"
)

type Session struct {
	ID        uuid.UUID
	UserID    int64
	Username  string
	FullName  string
	Cart      models.Cart
	CreatedAt time.Time
	LastSeen  time.Time
}

// Manager owns all active sessions. Cart mutations go through the manager so
// that concurrent requests on the same session stay consistent.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

// Create starts a session for a freshly authenticated user with an empty cart.
func (m *Manager) Create(user *models.User) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		CreatedAt: now,
		LastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.LastSeen = time.Now()
	return s, true
}

// Destroy removes the session. The cart goes with it.
func (m *Manager) Destroy(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// AddToCart appends a line to the session's cart. Duplicate items are kept
// as separate lines.
func (m *Manager) AddToCart(id uuid.UUID, itemID int64, name string, unitPrice float64, quantity int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.Cart.Add(itemID, name, unitPrice, quantity)
	s.LastSeen = time.Now()
	return true
}

func (m *Manager) ClearCart(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false
	}
	s.Cart.Clear()
	s.LastSeen = time.Now()
	return true
}

// CartSnapshot returns a copy of the cart lines and the running total.
func (m *Manager) CartSnapshot(id uuid.UUID) ([]models.CartLine, float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, 0, false
	}
	lines := make([]models.CartLine, len(s.Cart.Lines))
	copy(lines, s.Cart.Lines)
	return lines, s.Cart.Total(), true
}

// PurgeExpired drops sessions idle for longer than the manager TTL and
// returns how many were removed.
func (m *Manager) PurgeExpired() int {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	var purged int
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			purged++
		}
	}
	return purged
}

// Count reports the number of live sessions, used by health reporting.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
