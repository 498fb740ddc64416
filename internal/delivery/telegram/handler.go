package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rocket-motor-showroom/internal/usecase"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

const (
	maxUploadSize     = 5 * 1024 * 1024
	pendingActionTTL  = 10 * time.Minute
	streamEditEvery   = time.Second
	downloadTimeout   = 30 * time.Second
	callbackHeroPrev  = "hero:prev"
	callbackHeroNext  = "hero:next"
	callbackConfirm   = "confirm:"
	callbackCancel    = "cancel:"
	pendingKindCar    = "car"
	pendingKindEvent  = "event"
	pendingKindCat    = "category"
	streamPlaceholder = "…"
)

// pendingAction tasdiqlash tugmasini kutayotgan o'chirish
type pendingAction struct {
	UserID    int64
	Kind      string
	Target    string
	Label     string
	CreatedAt time.Time
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot          *tgbotapi.BotAPI
	chatUseCase  usecase.ChatUseCase
	adminUseCase usecase.AdminUseCase
	inventory    usecase.InventoryUseCase
	compare      usecase.CompareUseCase
	carousel     *usecase.Carousel
	httpClient   *http.Client

	pendingMu sync.Mutex
	pending   map[string]pendingAction
	seq       atomic.Uint64
}

// NewBotHandler yangi bot handler yaratish. carousel nil bo'lishi mumkin.
func NewBotHandler(
	token string,
	chatUseCase usecase.ChatUseCase,
	adminUseCase usecase.AdminUseCase,
	inventory usecase.InventoryUseCase,
	compare usecase.CompareUseCase,
	carousel *usecase.Carousel,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:          bot,
		chatUseCase:  chatUseCase,
		adminUseCase: adminUseCase,
		inventory:    inventory,
		compare:      compare,
		carousel:     carousel,
		httpClient:   &http.Client{Timeout: downloadTimeout},
		pending:      make(map[string]pendingAction),
	}, nil
}

// Start botni ishga tushirish, kontekst tugaganda nil qaytaradi
func (h *BotHandler) Start(ctx context.Context) error {
	logx.Info().Str("bot", h.bot.Self.UserName).Msg("bot ishga tushdi")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			logx.Info().Msg("bot to'xtatilmoqda")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	userID := message.From.ID
	username := message.From.UserName
	if username == "" {
		username = message.From.FirstName
	}

	// Fayl yuborilgan bo'lsa
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	// Oddiy xabarlar konsyerjga
	if text := strings.TrimSpace(message.Text); text != "" {
		h.handleConcierge(ctx, userID, username, text, message.Chat.ID)
	}
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.handleStartCommand(ctx, message)
	case "help":
		h.sendMessage(message.Chat.ID, helpMessage())
	case "inventory":
		h.handleInventoryCommand(ctx, message)
	case "categories":
		h.handleCategoriesCommand(ctx, message)
	case "car":
		h.handleCarCommand(ctx, message)
	case "compare":
		h.handleCompareCommand(ctx, message)
	case "events":
		h.sendMessage(message.Chat.ID, formatEvents(h.inventory.ListEvents()))
	case "contact":
		h.sendMessage(message.Chat.ID, formatContact(h.inventory.Content().Contact))
	case "services":
		h.sendMessage(message.Chat.ID, formatServices(h.inventory.Content().Services))
	case "clear":
		h.handleClearCommand(ctx, message)
	case "history":
		h.handleHistoryCommand(ctx, message)

	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "newcar":
		h.handleStartDraft(ctx, message, usecase.DraftVehicle, "")
	case "editcar":
		h.handleStartDraft(ctx, message, usecase.DraftVehicle, message.CommandArguments())
	case "newevent":
		h.handleStartDraft(ctx, message, usecase.DraftEvent, "")
	case "editevent":
		h.handleStartDraft(ctx, message, usecase.DraftEvent, message.CommandArguments())
	case "set":
		h.handleSetCommand(ctx, message)
	case "setcontent":
		h.handleSetContentCommand(ctx, message)
	case "slide":
		h.handleSlideCommand(ctx, message)
	case "draft":
		h.handleDraftCommand(ctx, message)
	case "save":
		h.handleSaveCommand(ctx, message)
	case "cancel":
		h.handleCancelCommand(ctx, message)
	case "delcar":
		h.handleDeleteRequest(ctx, message, pendingKindCar)
	case "delevent":
		h.handleDeleteRequest(ctx, message, pendingKindEvent)
	case "delcat":
		h.handleDeleteRequest(ctx, message, pendingKindCat)
	case "addcat":
		h.handleAddCategoryCommand(ctx, message)
	case "stats":
		h.handleStatsCommand(ctx, message)
	case "clean":
		h.handleCleanCommand(ctx, message)
	case "messages":
		h.handleMessagesCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Unknown command. See /help.")
	}
}

// handleCallback inline tugmalarni qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	// spinnerni to'xtatish
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logx.Debug().Err(err).Msg("callback javobida xatolik")
	}

	switch data := cq.Data; {
	case data == callbackHeroPrev || data == callbackHeroNext:
		h.handleHeroNavigation(chatID, messageID, data == callbackHeroNext)
	case strings.HasPrefix(data, callbackConfirm):
		h.handleConfirmDelete(ctx, cq.From.ID, chatID, messageID, strings.TrimPrefix(data, callbackConfirm))
	case strings.HasPrefix(data, callbackCancel):
		if _, ok := h.popPending(cq.From.ID, strings.TrimPrefix(data, callbackCancel)); ok {
			h.editMessage(chatID, messageID, "Cancelled. Nothing was deleted.")
		}
	default:
		logx.Debug().Str("data", data).Msg("noma'lum callback")
	}
}

// handleConcierge javobni oqim bilan bitta xabarni tahrirlab ko'rsatadi
func (h *BotHandler) handleConcierge(ctx context.Context, userID int64, username, text string, chatID int64) {
	// "typing" indikatori
	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		logx.Debug().Err(err).Msg("typing yuborilmadi")
	}

	placeholder, err := h.sendMessageWithResp(chatID, streamPlaceholder)
	if err != nil {
		return
	}

	stream := &streamEditor{
		every: streamEditEvery,
		edit: func(partial string) {
			h.editMessage(chatID, placeholder.MessageID, partial)
		},
	}

	response, err := h.chatUseCase.StreamMessage(ctx, userID, username, text, stream.onChunk)
	if err != nil {
		logx.Warn().Err(err).Int64("user_id", userID).Msg("konsyerj javob bera olmadi")
		h.editMessage(chatID, placeholder.MessageID, friendlyError(err))
		return
	}

	h.editMessage(chatID, placeholder.MessageID, response)
}

// streamEditor bo'laklarni yig'ib, xabarni ko'pi bilan har every da yangilaydi
type streamEditor struct {
	every time.Duration
	edit  func(partial string)

	mu   sync.Mutex
	buf  strings.Builder
	last time.Time
}

func (s *streamEditor) onChunk(chunk string) error {
	s.mu.Lock()
	s.buf.WriteString(chunk)
	now := time.Now()
	if now.Sub(s.last) < s.every {
		s.mu.Unlock()
		return nil
	}
	s.last = now
	partial := s.buf.String()
	s.mu.Unlock()

	s.edit(partial + " " + streamPlaceholder)
	return nil
}

// handleDocumentMessage xlsx fayl orqali import
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if !h.requireAdmin(ctx, userID, chatID) {
		return
	}

	doc := message.Document
	if doc.FileSize > maxUploadSize {
		h.sendMessage(chatID, "❌ The file must be smaller than 5 MB.")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "❌ Only Excel (.xlsx) files can be imported.")
		return
	}

	h.sendMessage(chatID, "⏳ Importing vehicles...")

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		logx.Error().Err(err).Str("file", doc.FileName).Msg("faylni yuklab bo'lmadi")
		h.sendMessage(chatID, "❌ Could not download the file.")
		return
	}

	count, err := h.adminUseCase.ImportInventory(ctx, userID, data, doc.FileName)
	if err != nil {
		logx.Warn().Err(err).Str("file", doc.FileName).Msg("import xatosi")
		h.sendMessage(chatID, "❌ Import failed: "+friendlyError(err))
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Imported %d vehicles from %s.\n\n/inventory - view the showroom", count, doc.FileName))
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadSize+1))
}

// savePending o'chirishni tasdiqlash uchun saqlab, token qaytaradi
func (h *BotHandler) savePending(action pendingAction) string {
	token := strconv.FormatUint(h.seq.Add(1), 36)

	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()

	// eskirganlarini tozalash
	for k, p := range h.pending {
		if time.Since(p.CreatedAt) > pendingActionTTL {
			delete(h.pending, k)
		}
	}
	h.pending[token] = action
	return token
}

// popPending faqat so'rovni boshlagan foydalanuvchi uchun qaytaradi
func (h *BotHandler) popPending(userID int64, token string) (pendingAction, bool) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()

	p, ok := h.pending[token]
	if !ok || p.UserID != userID {
		return pendingAction{}, false
	}
	delete(h.pending, token)
	if time.Since(p.CreatedAt) > pendingActionTTL {
		return pendingAction{}, false
	}
	return p, true
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncateString(text, maxMessageRunes))
	if _, err := h.bot.Send(msg); err != nil {
		logx.Warn().Err(err).Int64("chat_id", chatID).Msg("xabar yuborishda xatolik")
	}
}

// sendMessageWithResp yuborilgan xabarni qaytarish
func (h *BotHandler) sendMessageWithResp(chatID int64, text string) (*tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := h.bot.Send(msg)
	if err != nil {
		logx.Warn().Err(err).Int64("chat_id", chatID).Msg("xabar yuborishda xatolik")
		return nil, err
	}
	return &sent, nil
}

// editMessage xabar matnini almashtirish
func (h *BotHandler) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, truncateString(text, maxMessageRunes))
	if _, err := h.bot.Send(edit); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		logx.Warn().Err(err).Int64("chat_id", chatID).Msg("xabarni tahrirlashda xatolik")
	}
}

// GetBotUsername bot username ni olish
func (h *BotHandler) GetBotUsername() string {
	return h.bot.Self.UserName
}
