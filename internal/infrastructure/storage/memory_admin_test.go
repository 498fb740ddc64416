package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

func TestMemoryAdmin_SessionLifecycle(t *testing.T) {
	repo := NewMemoryAdminRepository()
	ctx := context.Background()

	ok, err := repo.IsAdmin(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.CreateSession(ctx, entity.AdminSession{UserID: 42, Username: "admin1", IsAdmin: true, LoginTime: time.Now()}))

	ok, err = repo.IsAdmin(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	session, err := repo.GetSession(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "admin1", session.Username)

	require.NoError(t, repo.DeleteSession(ctx, 42))
	ok, err = repo.IsAdmin(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAdmin_ExpiredSession(t *testing.T) {
	repo := NewMemoryAdminRepository().(*memoryAdminRepository)
	ctx := context.Background()

	clock := time.Now()
	repo.now = func() time.Time { return clock }

	require.NoError(t, repo.CreateSession(ctx, entity.AdminSession{UserID: 9, IsAdmin: true}))

	// faollik sessiyani uzaytiradi
	clock = clock.Add(SessionTTL - time.Minute)
	ok, err := repo.IsAdmin(ctx, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	clock = clock.Add(SessionTTL + time.Minute)
	ok, err = repo.IsAdmin(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetSession(ctx, 9)
	assert.Error(t, err)
}

func TestMemoryAdmin_ListActionsNewestFirst(t *testing.T) {
	repo := NewMemoryAdminRepository()
	ctx := context.Background()

	for _, name := range []string{"login", "save_vehicle", "delete_category"} {
		require.NoError(t, repo.LogAction(ctx, entity.AdminAction{ID: name, Action: name}))
	}

	actions, err := repo.ListActions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, "delete_category", actions[0].Action)
	assert.Equal(t, "save_vehicle", actions[1].Action)
}

func TestMemoryAdmin_ActionLogIsCapped(t *testing.T) {
	repo := NewMemoryAdminRepository()
	ctx := context.Background()

	for i := 0; i < maxLoggedActions+10; i++ {
		require.NoError(t, repo.LogAction(ctx, entity.AdminAction{ID: fmt.Sprint(i), Action: "save_vehicle"}))
	}

	actions, err := repo.ListActions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, actions, maxLoggedActions)
	assert.Equal(t, fmt.Sprint(maxLoggedActions+9), actions[0].ID)
	assert.Equal(t, "10", actions[len(actions)-1].ID)
}
