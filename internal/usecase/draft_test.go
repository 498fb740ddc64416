package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

func TestDraftBook_Lifecycle(t *testing.T) {
	book := newDraftBook(entity.Vehicle.Clone)
	ctx := context.Background()

	assert.Equal(t, DraftIdle, book.State(1))
	assert.ErrorIs(t, book.Update(1, func(*entity.Vehicle) error { return nil }), ErrNoDraft)

	require.NoError(t, book.Begin(1, entity.Vehicle{ID: "v1", Images: []string{"a.jpg"}}, true))
	assert.Equal(t, DraftEditing, book.State(1))

	require.NoError(t, book.Update(1, func(v *entity.Vehicle) error {
		v.Make = "Ford"
		v.Images[0] = "b.jpg"
		return nil
	}))

	var saved entity.Vehicle
	got, err := book.Commit(ctx, 1, func(_ context.Context, v entity.Vehicle) error {
		saved = v
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Ford", got.Make)
	assert.Equal(t, "Ford", saved.Make)
	assert.Equal(t, []string{"b.jpg"}, saved.Images)
	assert.Equal(t, DraftIdle, book.State(1))
}

func TestDraftBook_FailedUpdateLeavesDraft(t *testing.T) {
	book := newDraftBook(entity.Vehicle.Clone)
	require.NoError(t, book.Begin(1, entity.Vehicle{ID: "v1", Make: "Ford"}, false))

	err := book.Update(1, func(v *entity.Vehicle) error {
		v.Make = "Chevrolet"
		return ErrInvalidField
	})
	assert.ErrorIs(t, err, ErrInvalidField)

	v, state, isNew := book.Get(1)
	assert.Equal(t, "Ford", v.Make)
	assert.Equal(t, DraftEditing, state)
	assert.False(t, isNew)
}

func TestDraftBook_FailedCommitReturnsToEditing(t *testing.T) {
	book := newDraftBook[entity.Event](nil)
	require.NoError(t, book.Begin(1, entity.Event{ID: "e1"}, true))

	boom := errors.New("boom")
	_, err := book.Commit(context.Background(), 1, func(context.Context, entity.Event) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, DraftEditing, book.State(1))

	_, err = book.Commit(context.Background(), 1, func(context.Context, entity.Event) error { return nil })
	assert.NoError(t, err)
}

func TestDraftBook_SecondCommitWhileCommitting(t *testing.T) {
	book := newDraftBook[entity.Event](nil)
	require.NoError(t, book.Begin(1, entity.Event{ID: "e1"}, true))

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := book.Commit(context.Background(), 1, func(context.Context, entity.Event) error {
			close(started)
			<-release
			return nil
		})
		done <- err
	}()

	<-started
	assert.Equal(t, DraftCommitting, book.State(1))

	_, err := book.Commit(context.Background(), 1, func(context.Context, entity.Event) error { return nil })
	assert.ErrorIs(t, err, ErrCommitInProgress)
	assert.ErrorIs(t, book.Update(1, func(*entity.Event) error { return nil }), ErrCommitInProgress)
	assert.ErrorIs(t, book.Cancel(1), ErrCommitInProgress)
	assert.ErrorIs(t, book.Begin(1, entity.Event{ID: "e2"}, true), ErrCommitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, DraftIdle, book.State(1))
}

func TestDraftBook_CancelAndPerUser(t *testing.T) {
	book := newDraftBook[entity.Event](nil)
	require.NoError(t, book.Begin(1, entity.Event{ID: "e1"}, true))
	require.NoError(t, book.Begin(2, entity.Event{ID: "e2"}, true))

	require.NoError(t, book.Cancel(1))
	assert.Equal(t, DraftIdle, book.State(1))
	assert.Equal(t, DraftEditing, book.State(2))
	assert.ErrorIs(t, book.Cancel(1), ErrNoDraft)
}
