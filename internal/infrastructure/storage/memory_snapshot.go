package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

// MemorySnapshotRepository xotiradagi snapshot ombori (test va vaqtinchalik ishga tushirish uchun)
type MemorySnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[entity.Collection]entity.Snapshot
	saves     map[entity.Collection]int
	failWith  map[entity.Collection]error
	failTimes map[entity.Collection]int
	delay     time.Duration
}

var _ repository.SnapshotRepository = (*MemorySnapshotRepository)(nil)

// NewMemorySnapshotRepository in-memory snapshot repository yaratish
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{
		snapshots: make(map[entity.Collection]entity.Snapshot),
		saves:     make(map[entity.Collection]int),
		failWith:  make(map[entity.Collection]error),
		failTimes: make(map[entity.Collection]int),
	}
}

// Load kolleksiya snapshotini olish
func (m *MemorySnapshotRepository) Load(ctx context.Context, collection entity.Collection) (*entity.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, exists := m.snapshots[collection]
	if !exists {
		return nil, repository.ErrSnapshotNotFound
	}
	snap.Payload = append([]byte(nil), snap.Payload...)
	return &snap, nil
}

// Save kolleksiyani to'liq qayta yozish
func (m *MemorySnapshotRepository) Save(ctx context.Context, snapshot entity.Snapshot) error {
	m.mu.RLock()
	delay := m.delay
	m.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failWith[snapshot.Collection]; err != nil {
		if m.failTimes[snapshot.Collection] != 0 {
			if m.failTimes[snapshot.Collection] > 0 {
				m.failTimes[snapshot.Collection]--
			}
			return err
		}
	}

	snapshot.Payload = append([]byte(nil), snapshot.Payload...)
	m.snapshots[snapshot.Collection] = snapshot
	m.saves[snapshot.Collection]++
	return nil
}

// FailSaves keyingi n ta Save chaqiruvini xato bilan tugatadi (n < 0 bo'lsa doimiy)
func (m *MemorySnapshotRepository) FailSaves(collection entity.Collection, n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failWith[collection] = err
	m.failTimes[collection] = n
}

// SetDelay har bir Save oldidan kutish (sekin backend imitatsiyasi)
func (m *MemorySnapshotRepository) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.delay = d
}

// SaveCount kolleksiya necha marta muvaffaqiyatli saqlangani
func (m *MemorySnapshotRepository) SaveCount(collection entity.Collection) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves[collection]
}

// Put snapshotni to'g'ridan-to'g'ri joylash (testlarda oldindan to'ldirish uchun)
func (m *MemorySnapshotRepository) Put(snapshot entity.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[snapshot.Collection] = snapshot
}
