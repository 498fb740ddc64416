package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

const (
	chatTimeout         = 30 * time.Second
	defaultHistoryLimit = 10
)

// ChatUseCase konsyerj suhbati
type ChatUseCase interface {
	// ProcessMessage to'liq javobni qaytaradi
	ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error)

	// StreamMessage javobni bo'laklab onChunk ga beradi
	StreamMessage(ctx context.Context, userID int64, username, text string, onChunk repository.ChunkHandler) (string, error)

	ClearHistory(ctx context.Context, userID int64) error
	GetHistory(ctx context.Context, userID int64) ([]entity.Message, error)
	GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error)
}

type chatUseCase struct {
	aiRepo       repository.AIRepository
	chatRepo     repository.ChatRepository
	inventory    InventoryUseCase
	historyLimit int
}

// NewChatUseCase yangi ChatUseCase yaratish. aiRepo nil bo'lsa konsyerj o'chirilgan.
func NewChatUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	inventory InventoryUseCase,
	historyLimit int,
) ChatUseCase {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &chatUseCase{
		aiRepo:       aiRepo,
		chatRepo:     chatRepo,
		inventory:    inventory,
		historyLimit: historyLimit,
	}
}

// ProcessMessage foydalanuvchi xabarini qayta ishlash
func (u *chatUseCase) ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error) {
	return u.StreamMessage(ctx, userID, username, text, nil)
}

// StreamMessage onChunk nil bo'lsa oddiy so'rov yuboriladi
func (u *chatUseCase) StreamMessage(ctx context.Context, userID int64, username, text string, onChunk repository.ChunkHandler) (string, error) {
	if u.aiRepo == nil {
		return "", ErrConciergeDisabled
	}

	// AI so'rovlari osilib qolmasligi uchun timeout
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	history, err := u.chatRepo.GetHistory(ctx, userID, u.historyLimit)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	enriched, vehicleIDs := u.enrich(text)
	prompt := entity.Message{
		UserID:   userID,
		Username: username,
		Text:     enriched,
	}

	logx.Debug().Int64("user_id", userID).Int("history", len(history)).Int("prompt_len", len(prompt.Text)).Msg("konsyerjga so'rov")

	var response string
	if onChunk != nil {
		response, err = u.aiRepo.StreamResponse(ctx, prompt, history, onChunk)
	} else {
		response, err = u.aiRepo.GenerateResponse(ctx, prompt, history)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	// tarixga asl matn yoziladi, boyitilgani emas
	message := entity.Message{
		ID:         uuid.New().String(),
		UserID:     userID,
		Username:   username,
		Text:       text,
		Response:   response,
		Timestamp:  time.Now(),
		VehicleIDs: vehicleIDs,
	}

	if err := u.chatRepo.SaveMessage(ctx, message); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}

	return response, nil
}

// enrich savolga salondagi mashinalar ro'yxatini qo'shadi va ularning ID larini qaytaradi
func (u *chatUseCase) enrich(text string) (string, []string) {
	if u.inventory == nil {
		return text, nil
	}

	vehicles := u.inventory.SearchVehicles(text)
	if len(vehicles) == 0 {
		vehicles = u.inventory.ListVehicles()
	}
	if len(vehicles) == 0 {
		return text, nil
	}

	ids := make([]string, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}
	return fmt.Sprintf("Customer: %s\n\nCURRENT SHOWROOM INVENTORY:\n%s\nAnswer the customer:", text, buildInventoryContext(vehicles)), ids
}

// buildInventoryContext mashinalardan qisqa kontekst yaratish
func buildInventoryContext(vehicles []entity.Vehicle) string {
	var sb strings.Builder
	for i, v := range vehicles {
		fmt.Fprintf(&sb, "%d. %s [%s] - $%d\n", i+1, v.Title(), v.Category, v.Price)
		fmt.Fprintf(&sb, "   %d hp, %d mph top speed, 0-60 in %.1fs, %s, %d miles\n",
			v.Specs.Horsepower, v.Specs.TopSpeedMph, v.Specs.ZeroToSixty, v.Specs.Engine, v.Specs.Mileage)
		if len(v.Features) > 0 {
			fmt.Fprintf(&sb, "   Features: %s\n", strings.Join(v.Features, ", "))
		}
	}
	return sb.String()
}

// ClearHistory foydalanuvchi tarixini tozalash
func (u *chatUseCase) ClearHistory(ctx context.Context, userID int64) error {
	return u.chatRepo.ClearHistory(ctx, userID)
}

// GetHistory foydalanuvchi tarixini olish
func (u *chatUseCase) GetHistory(ctx context.Context, userID int64) ([]entity.Message, error) {
	return u.chatRepo.GetHistory(ctx, userID, 0)
}

// GetAllMessages barcha foydalanuvchi xabarlarini olish (admin uchun)
func (u *chatUseCase) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	return u.chatRepo.GetAllMessages(ctx, limit)
}
