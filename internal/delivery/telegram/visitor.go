package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

func heroKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️", callbackHeroPrev),
			tgbotapi.NewInlineKeyboardButtonData("▶️", callbackHeroNext),
		),
	)
}

// currentSlide karusel bo'lmasa birinchi slayd
func (h *BotHandler) currentSlide() (entity.HeroSlide, int, int, bool) {
	if h.carousel != nil {
		return h.carousel.Current()
	}
	slides := h.inventory.HeroSlides()
	if len(slides) == 0 {
		return entity.HeroSlide{}, 0, 0, false
	}
	return slides[0], 0, len(slides), true
}

// handleStartCommand salom xabari va joriy slayd
func (h *BotHandler) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	h.sendMessage(chatID, welcomeMessage(h.inventory.Content()))

	slide, idx, total, ok := h.currentSlide()
	if !ok {
		return
	}

	msg := tgbotapi.NewMessage(chatID, formatSlide(slide, idx, total))
	if h.carousel != nil && total > 1 {
		msg.ReplyMarkup = heroKeyboard()
	}
	if _, err := h.bot.Send(msg); err != nil {
		logx.Warn().Err(err).Msg("slaydni yuborishda xatolik")
	}
}

// handleHeroNavigation qo'lda oldinga/orqaga, taymer qaytadan boshlanadi
func (h *BotHandler) handleHeroNavigation(chatID int64, messageID int, forward bool) {
	if h.carousel == nil {
		return
	}
	if forward {
		h.carousel.Next()
	} else {
		h.carousel.Prev()
	}

	slide, idx, total, ok := h.carousel.Current()
	if !ok {
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, formatSlide(slide, idx, total), heroKeyboard())
	if _, err := h.bot.Send(edit); err != nil {
		logx.Debug().Err(err).Msg("slaydni yangilab bo'lmadi")
	}
}

// resolveCategory foydalanuvchi yozgan nomni mavjud kategoriyaga moslash
func resolveCategory(arg string, categories []string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.EqualFold(arg, entity.AllCategory) {
		return entity.AllCategory
	}
	for _, c := range categories {
		if strings.EqualFold(c, arg) {
			return c
		}
	}
	return arg
}

// handleInventoryCommand /inventory [kategoriya]
func (h *BotHandler) handleInventoryCommand(ctx context.Context, message *tgbotapi.Message) {
	category := resolveCategory(message.CommandArguments(), h.inventory.Categories())
	h.sendMessage(message.Chat.ID, formatVehicleList(category, h.inventory.FilterByCategory(category)))
}

func categoryCounts(vehicles []entity.Vehicle) map[string]int {
	counts := map[string]int{entity.AllCategory: len(vehicles)}
	for _, v := range vehicles {
		counts[v.Category]++
	}
	return counts
}

func (h *BotHandler) handleCategoriesCommand(ctx context.Context, message *tgbotapi.Message) {
	counts := categoryCounts(h.inventory.ListVehicles())
	h.sendMessage(message.Chat.ID, formatCategories(h.inventory.Categories(), counts))
}

// handleCarCommand /car <id>
func (h *BotHandler) handleCarCommand(ctx context.Context, message *tgbotapi.Message) {
	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		h.sendMessage(message.Chat.ID, "Usage: /car <id>. Find ids with /inventory.")
		return
	}

	vehicle, err := h.inventory.GetVehicle(id)
	if err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, formatVehicle(*vehicle))
}

// handleCompareCommand /compare <idA> <idB>
func (h *BotHandler) handleCompareCommand(ctx context.Context, message *tgbotapi.Message) {
	ids := strings.Fields(message.CommandArguments())
	if len(ids) != 2 {
		h.sendMessage(message.Chat.ID, "Usage: /compare <id> <id>")
		return
	}

	result, err := h.compare.Compare(ids[0], ids[1])
	if err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, formatComparison(*result))
}

// handleClearCommand tarixni tozalash
func (h *BotHandler) handleClearCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.chatUseCase.ClearHistory(ctx, message.From.ID); err != nil {
		logx.Warn().Err(err).Msg("tarixni tozalab bo'lmadi")
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Conversation cleared. Let's start fresh!")
}

// handleHistoryCommand tarixni ko'rsatish
func (h *BotHandler) handleHistoryCommand(ctx context.Context, message *tgbotapi.Message) {
	history, err := h.chatUseCase.GetHistory(ctx, message.From.ID)
	if err != nil {
		logx.Warn().Err(err).Msg("tarixni olib bo'lmadi")
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}

	if len(history) == 0 {
		h.sendMessage(message.Chat.ID, "Your conversation history is empty.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Conversation history\n\n")
	for i, msg := range history {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, msg.Text)
		if msg.Response != "" {
			fmt.Fprintf(&sb, "↳ %s\n\n", truncateString(msg.Response, 300))
		}
	}

	h.sendMessage(message.Chat.ID, sb.String())
}
