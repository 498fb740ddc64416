package usecase

import (
	"fmt"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/comparison"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// CompareUseCase ikki mashinani radar o'qlari bo'yicha solishtirish
type CompareUseCase interface {
	// Compare ID lar bo'yicha solishtirish
	Compare(idA, idB string) (*entity.Comparison, error)

	// CompareVehicles tayyor yozuvlar bo'yicha solishtirish
	CompareVehicles(a, b entity.Vehicle) entity.Comparison
}

type compareUseCase struct {
	inventory InventoryUseCase
}

// NewCompareUseCase yangi compare use case yaratish
func NewCompareUseCase(inventory InventoryUseCase) CompareUseCase {
	return &compareUseCase{inventory: inventory}
}

// Compare ikkala ID topilishi kerak
func (u *compareUseCase) Compare(idA, idB string) (*entity.Comparison, error) {
	a, err := u.inventory.GetVehicle(idA)
	if err != nil {
		return nil, fmt.Errorf("failed to compare: %w", err)
	}
	b, err := u.inventory.GetVehicle(idB)
	if err != nil {
		return nil, fmt.Errorf("failed to compare: %w", err)
	}

	result := u.CompareVehicles(*a, *b)
	return &result, nil
}

// CompareVehicles natija o'qlari Speed, Power, Accel, Economy tartibida
func (u *compareUseCase) CompareVehicles(a, b entity.Vehicle) entity.Comparison {
	return entity.Comparison{
		VehicleA: a,
		VehicleB: b,
		Axes:     comparison.Compare(a.Specs, b.Specs),
	}
}
