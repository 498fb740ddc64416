package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

const (
	// SessionTTL faolsiz admin sessiyasi shu vaqtdan keyin tugaydi
	SessionTTL = 24 * time.Hour

	// maxLoggedActions xotirada saqlanadigan admin harakatlari
	maxLoggedActions = 500
)

type memoryAdminRepository struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[int64]entity.AdminSession
	actions  []entity.AdminAction
}

// NewMemoryAdminRepository in-memory admin sessiyalari va harakatlar jurnali
func NewMemoryAdminRepository() repository.AdminRepository {
	return &memoryAdminRepository{
		now:      time.Now,
		sessions: make(map[int64]entity.AdminSession),
	}
}

// activeSession muddati o'tgan sessiyani o'chiradi. mu ushlangan bo'lishi kerak.
func (m *memoryAdminRepository) activeSession(userID int64) (entity.AdminSession, bool) {
	session, ok := m.sessions[userID]
	if !ok {
		return entity.AdminSession{}, false
	}
	if m.now().Sub(session.LastActivity) > SessionTTL {
		delete(m.sessions, userID)
		return entity.AdminSession{}, false
	}
	return session, true
}

// CreateSession login paytida sessiya ochadi, eskisini almashtiradi
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = m.now()
	m.sessions[session.UserID] = session
	return nil
}

// GetSession faol sessiya
func (m *memoryAdminRepository) GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.activeSession(userID)
	if !ok {
		return nil, fmt.Errorf("session not found for user %d", userID)
	}
	return &session, nil
}

// DeleteSession logout
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsAdmin sessiya faol bo'lsa true, har bir tekshiruv faollik vaqtini yangilaydi
func (m *memoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.activeSession(userID)
	if !ok {
		return false, nil
	}
	session.LastActivity = m.now()
	m.sessions[userID] = session
	return session.IsAdmin, nil
}

// LogAction jurnal oxiriga qo'shadi, eng eskilari tashlanadi
func (m *memoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	if over := len(m.actions) - maxLoggedActions; over > 0 {
		m.actions = append([]entity.AdminAction(nil), m.actions[over:]...)
	}
	return nil
}

// ListActions yangilari birinchi
func (m *memoryAdminRepository) ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.actions)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]entity.AdminAction, 0, n)
	for i := len(m.actions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.actions[i])
	}
	return out, nil
}
