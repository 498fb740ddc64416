package repository

import (
	"context"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// InventoryImporter Excel fayllardan mashinalarni o'qish uchun interface
type InventoryImporter interface {
	// ParseVehicles Excel fayldan mashinalarni o'qish
	ParseVehicles(ctx context.Context, filePath string) ([]entity.Vehicle, error)

	// ParseVehiclesFromBytes byte array dan parse qilish
	ParseVehiclesFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Vehicle, error)
}
