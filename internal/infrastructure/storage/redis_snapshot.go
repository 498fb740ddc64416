package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

const redisSnapshotPrefix = "rmc:snapshot:"

type redisSnapshotRepository struct {
	client redis.Cmdable
}

// NewRedisSnapshotRepository Redis asosidagi snapshot repository, har bir kolleksiya bitta kalit
func NewRedisSnapshotRepository(client redis.Cmdable) repository.SnapshotRepository {
	return &redisSnapshotRepository{client: client}
}

func redisSnapshotKey(collection entity.Collection) string {
	return redisSnapshotPrefix + string(collection)
}

// Load kolleksiya snapshotini olish
func (r *redisSnapshotRepository) Load(ctx context.Context, collection entity.Collection) (*entity.Snapshot, error) {
	raw, err := r.client.Get(ctx, redisSnapshotKey(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snap entity.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	return &snap, nil
}

// Save kolleksiyani to'liq qayta yozish
func (r *redisSnapshotRepository) Save(ctx context.Context, snapshot entity.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := r.client.Set(ctx, redisSnapshotKey(snapshot.Collection), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
