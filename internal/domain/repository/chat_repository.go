package repository

import (
	"context"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// ChatRepository konsyerj suhbatlari tarixi
type ChatRepository interface {
	// SaveMessage savol-javobni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory foydalanuvchi tarixi, eski->yangi tartibda
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// GetAllMessages barcha foydalanuvchilar xabarlari, yangilari birinchi
	GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error)

	// ClearHistory foydalanuvchi tarixini tozalash
	ClearHistory(ctx context.Context, userID int64) error

	// ClearAll barcha tarixlarni o'chirish
	ClearAll(ctx context.Context) error
}
