package usecase

import (
	"context"
	"sync"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// collection bitta kanonik kolleksiya. commitMu bir vaqtda faqat bitta
// yozuvni o'tkazadi (qolganlari navbatda kutadi), mu esa o'qish uchun.
type collection[T any] struct {
	name     entity.Collection
	commitMu sync.Mutex
	mu       sync.RWMutex
	value    T
}

func newCollection[T any](name entity.Collection, value T) *collection[T] {
	return &collection[T]{name: name, value: value}
}

func (c *collection[T]) get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.value
}

// commit mutate dan yangi qiymatni oladi, uni persist qiladi va faqat
// muvaffaqiyatli saqlangandan keyin xotiraga qo'yadi. mutate joriy qiymatni
// o'zgartirmasligi kerak.
func (c *collection[T]) commit(ctx context.Context, persist func(context.Context, entity.Collection, any) error, mutate func(current T) (T, error)) error {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	next, err := mutate(c.get())
	if err != nil {
		return err
	}

	if err := persist(ctx, c.name, next); err != nil {
		return err
	}

	c.mu.Lock()
	c.value = next
	c.mu.Unlock()
	return nil
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

// upsertByID yangi slice qaytaradi: mavjud element o'z joyida almashtiriladi, aks holda oxiriga qo'shiladi
func upsertByID[T any](items []T, item T, idOf func(T) string) []T {
	next := make([]T, len(items), len(items)+1)
	copy(next, items)
	if i := indexByID(items, idOf(item), idOf); i >= 0 {
		next[i] = item
		return next
	}
	return append(next, item)
}

// removeByID yangi slice qaytaradi, topilmasa false
func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	i := indexByID(items, id, idOf)
	if i < 0 {
		return items, false
	}
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	next = append(next, items[i+1:]...)
	return next, true
}
