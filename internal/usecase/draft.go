package usecase

import (
	"context"
	"sync"
)

// DraftState tahrirlash buferining holati
type DraftState int

const (
	DraftIdle DraftState = iota
	DraftEditing
	DraftCommitting
)

func (s DraftState) String() string {
	switch s {
	case DraftEditing:
		return "editing"
	case DraftCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// DraftKind bufer qaysi turdagi yozuvni tahrirlayapti
type DraftKind string

const (
	DraftNone    DraftKind = ""
	DraftVehicle DraftKind = "vehicle"
	DraftEvent   DraftKind = "event"
	DraftContent DraftKind = "content"
)

type draftEntry[T any] struct {
	value T
	state DraftState
	isNew bool
}

// draftBook har bir admin uchun bittadan saqlanmagan nusxa. Kanonik
// kolleksiyaga faqat Commit orqali yoziladi.
type draftBook[T any] struct {
	mu     sync.Mutex
	clone  func(T) T
	drafts map[int64]*draftEntry[T]
}

func newDraftBook[T any](clone func(T) T) *draftBook[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &draftBook[T]{
		clone:  clone,
		drafts: make(map[int64]*draftEntry[T]),
	}
}

// Begin yangi bufer ochadi, tashlab ketilgan eski bufer almashtiriladi
func (b *draftBook[T]) Begin(userID int64, value T, isNew bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d, ok := b.drafts[userID]; ok && d.state == DraftCommitting {
		return ErrCommitInProgress
	}
	b.drafts[userID] = &draftEntry[T]{value: b.clone(value), state: DraftEditing, isNew: isNew}
	return nil
}

// Get buferning nusxasi va holati
func (b *draftBook[T]) Get(userID int64) (T, DraftState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drafts[userID]
	if !ok {
		var zero T
		return zero, DraftIdle, false
	}
	return b.clone(d.value), d.state, d.isNew
}

// State buferning joriy holati
func (b *draftBook[T]) State(userID int64) DraftState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d, ok := b.drafts[userID]; ok {
		return d.state
	}
	return DraftIdle
}

// Update bufer nusxasiga fn ni qo'llaydi, xato bo'lsa bufer o'zgarmaydi
func (b *draftBook[T]) Update(userID int64, fn func(*T) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drafts[userID]
	if !ok {
		return ErrNoDraft
	}
	if d.state == DraftCommitting {
		return ErrCommitInProgress
	}

	next := b.clone(d.value)
	if err := fn(&next); err != nil {
		return err
	}
	d.value = next
	return nil
}

// Commit buferni save orqali saqlaydi. Muvaffaqiyatda bufer yopiladi,
// xatoda Editing holatiga qaytadi.
func (b *draftBook[T]) Commit(ctx context.Context, userID int64, save func(context.Context, T) error) (T, error) {
	var zero T

	b.mu.Lock()
	d, ok := b.drafts[userID]
	if !ok {
		b.mu.Unlock()
		return zero, ErrNoDraft
	}
	if d.state == DraftCommitting {
		b.mu.Unlock()
		return zero, ErrCommitInProgress
	}
	d.state = DraftCommitting
	value := b.clone(d.value)
	b.mu.Unlock()

	err := save(ctx, value)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		d.state = DraftEditing
		return zero, err
	}
	if b.drafts[userID] == d {
		delete(b.drafts, userID)
	}
	return value, nil
}

// Cancel buferni tashlab yuborish
func (b *draftBook[T]) Cancel(userID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.drafts[userID]
	if !ok {
		return ErrNoDraft
	}
	if d.state == DraftCommitting {
		return ErrCommitInProgress
	}
	delete(b.drafts, userID)
	return nil
}

// activeKinds har bir admin oxirgi ochgan bufer turi
type activeKinds struct {
	mu    sync.Mutex
	kinds map[int64]DraftKind
}

func newActiveKinds() *activeKinds {
	return &activeKinds{kinds: make(map[int64]DraftKind)}
}

func (a *activeKinds) get(userID int64) DraftKind {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.kinds[userID]
}

func (a *activeKinds) set(userID int64, kind DraftKind) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.kinds[userID] = kind
}

// clear faqat hali shu tur faol bo'lsa tozalaydi
func (a *activeKinds) clear(userID int64, kind DraftKind) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.kinds[userID] == kind {
		delete(a.kinds, userID)
	}
}
