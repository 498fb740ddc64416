package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

func chatRepositories(t *testing.T, maxSize int) map[string]repository.ChatRepository {
	t.Helper()

	sqliteRepo, closeFn, err := NewSQLiteChatRepository(":memory:", maxSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	return map[string]repository.ChatRepository{
		"memory": NewMemoryChatRepository(maxSize),
		"sqlite": sqliteRepo,
	}
}

func TestChatRepository_HistoryIsCappedAndOrdered(t *testing.T) {
	for name, repo := range chatRepositories(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour)

			for i := 0; i < 5; i++ {
				require.NoError(t, repo.SaveMessage(ctx, entity.Message{
					ID:        fmt.Sprintf("m%d", i),
					UserID:    7,
					Username:  "rider",
					Text:      fmt.Sprintf("q%d", i),
					Response:  fmt.Sprintf("a%d", i),
					Timestamp: base.Add(time.Duration(i) * time.Minute),
				}))
			}

			history, err := repo.GetHistory(ctx, 7, 0)
			require.NoError(t, err)
			require.Len(t, history, 3)
			assert.Equal(t, "q2", history[0].Text)
			assert.Equal(t, "q4", history[2].Text)

			last, err := repo.GetHistory(ctx, 7, 1)
			require.NoError(t, err)
			require.Len(t, last, 1)
			assert.Equal(t, "q4", last[0].Text)

			require.NoError(t, repo.ClearHistory(ctx, 7))
			history, err = repo.GetHistory(ctx, 7, 0)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestChatRepository_AllMessagesNewestFirst(t *testing.T) {
	for name, repo := range chatRepositories(t, 10) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour)

			require.NoError(t, repo.SaveMessage(ctx, entity.Message{ID: "a", UserID: 1, Text: "old", Timestamp: base, VehicleIDs: []string{"c1", "c3"}}))
			require.NoError(t, repo.SaveMessage(ctx, entity.Message{ID: "b", UserID: 2, Text: "new", Timestamp: base.Add(time.Minute)}))

			all, err := repo.GetAllMessages(ctx, 1)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "new", all[0].Text)

			history, err := repo.GetHistory(ctx, 1, 0)
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, []string{"c1", "c3"}, history[0].VehicleIDs)

			require.NoError(t, repo.ClearAll(ctx))
			all, err = repo.GetAllMessages(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}
