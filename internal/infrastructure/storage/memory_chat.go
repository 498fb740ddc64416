package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

type memoryChatRepository struct {
	mu      sync.RWMutex
	byUser  map[int64][]entity.Message
	maxSize int
}

// NewMemoryChatRepository in-memory konsyerj tarixi, har foydalanuvchi uchun maxContextSize ta xabar
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		byUser:  make(map[int64][]entity.Message),
		maxSize: maxContextSize,
	}
}

func cloneMessages(in []entity.Message) []entity.Message {
	out := make([]entity.Message, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

// SaveMessage savol-javobni qo'shadi, eng eskilari kesiladi
func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := append(m.byUser[message.UserID], message.Clone())
	if m.maxSize > 0 && len(msgs) > m.maxSize {
		msgs = append([]entity.Message(nil), msgs[len(msgs)-m.maxSize:]...)
	}
	m.byUser[message.UserID] = msgs
	return nil
}

// GetHistory oxirgi limit ta xabar, eski->yangi
func (m *memoryChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.byUser[userID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return cloneMessages(msgs), nil
}

// GetAllMessages hamma foydalanuvchilar, yangilari birinchi
func (m *memoryChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	var all []entity.Message
	for _, msgs := range m.byUser {
		all = append(all, cloneMessages(msgs)...)
	}
	m.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ClearHistory foydalanuvchi tarixini tozalash
func (m *memoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byUser, userID)
	return nil
}

// ClearAll barcha suhbatlarni tozalash
func (m *memoryChatRepository) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.byUser)
	return nil
}
