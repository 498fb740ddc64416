package repository

import (
	"context"
	"errors"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// ErrSnapshotNotFound kolleksiya hali saqlanmagan
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository kolleksiyalarni to'liq saqlash va yuklash porti
type SnapshotRepository interface {
	// Load kolleksiyaning oxirgi snapshotini olish (yo'q bo'lsa ErrSnapshotNotFound)
	Load(ctx context.Context, collection entity.Collection) (*entity.Snapshot, error)

	// Save kolleksiyani to'liq qayta yozish
	Save(ctx context.Context, snapshot entity.Snapshot) error
}
