package repository

import (
	"context"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

// ChunkHandler oqimdagi har bir matn bo'lagini qabul qiladi
type ChunkHandler func(chunk string) error

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// GenerateResponse foydalanuvchi xabariga javob yaratish
	GenerateResponse(ctx context.Context, message entity.Message, history []entity.Message) (string, error)

	// StreamResponse javobni bo'laklab qaytarish, to'liq matnni ham qaytaradi
	StreamResponse(ctx context.Context, message entity.Message, history []entity.Message, onChunk ChunkHandler) (string, error)
}
