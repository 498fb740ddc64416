package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

// fakeRedis faqat Get/Set ni xotirada bajaradi
type fakeRedis struct {
	redis.Cmdable
	data   map[string]string
	setErr error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func TestRedisSnapshot_SaveLoad(t *testing.T) {
	fake := &fakeRedis{data: make(map[string]string)}
	repo := NewRedisSnapshotRepository(fake)
	ctx := context.Background()

	_, err := repo.Load(ctx, entity.CollectionEvents)
	assert.True(t, errors.Is(err, repository.ErrSnapshotNotFound))

	require.NoError(t, repo.Save(ctx, entity.Snapshot{
		Collection: entity.CollectionEvents,
		Version:    entity.SnapshotVersion,
		Payload:    []byte(`[{"id":"e1"}]`),
		SavedAt:    time.Now(),
	}))
	assert.Contains(t, fake.data, "rmc:snapshot:events")

	snap, err := repo.Load(ctx, entity.CollectionEvents)
	require.NoError(t, err)
	assert.Equal(t, entity.SnapshotVersion, snap.Version)
	assert.JSONEq(t, `[{"id":"e1"}]`, string(snap.Payload))
}

func TestRedisSnapshot_Errors(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{"rmc:snapshot:content": "{not json"}}
	repo := NewRedisSnapshotRepository(fake)
	ctx := context.Background()

	_, err := repo.Load(ctx, entity.CollectionContent)
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrSnapshotNotFound))

	fake.setErr = errors.New("READONLY")
	err = repo.Save(ctx, entity.Snapshot{Collection: entity.CollectionContent, Payload: []byte(`{}`)})
	assert.ErrorContains(t, err, "READONLY")
}
