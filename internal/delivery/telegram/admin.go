package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rocket-motor-showroom/internal/usecase"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

const (
	recentActionsLimit  = 5
	recentMessagesLimit = 10
)

// requireAdmin admin bo'lmasa xabar yuborib false qaytaradi
func (h *BotHandler) requireAdmin(ctx context.Context, userID, chatID int64) bool {
	isAdmin, err := h.adminUseCase.IsAdmin(ctx, userID)
	if err != nil {
		logx.Warn().Err(err).Int64("user_id", userID).Msg("admin tekshiruvida xatolik")
	}
	if !isAdmin {
		h.sendMessage(chatID, friendlyError(usecase.ErrNotAdmin))
		return false
	}
	return true
}

// handleAdminCommand /admin <user> <password>
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	// Parolli xabarni o'chirish (xavfsizlik uchun)
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, message.MessageID)); err != nil {
		logx.Debug().Err(err).Msg("parolli xabarni o'chirib bo'lmadi")
	}

	args := strings.Fields(message.CommandArguments())
	if len(args) != 2 {
		h.sendMessage(chatID, "Usage: /admin <user> <password>")
		return
	}

	ok, err := h.adminUseCase.Login(ctx, userID, args[0], args[1])
	if err != nil {
		logx.Error().Err(err).Int64("user_id", userID).Msg("login xatosi")
		h.sendMessage(chatID, friendlyError(err))
		return
	}
	if !ok {
		h.sendMessage(chatID, "❌ Wrong username or password.")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Welcome, %s. Admin commands are listed in /help.", args[0]))
}

func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message.From.ID, message.Chat.ID) {
		return
	}
	if err := h.adminUseCase.Logout(ctx, message.From.ID); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, "👋 Logged out. Open drafts were discarded.")
}

// handleStartDraft /newcar, /editcar, /newevent, /editevent
func (h *BotHandler) handleStartDraft(ctx context.Context, message *tgbotapi.Message, kind usecase.DraftKind, id string) {
	userID := message.From.ID
	id = strings.TrimSpace(id)

	var err error
	switch kind {
	case usecase.DraftVehicle:
		_, err = h.adminUseCase.StartVehicleDraft(ctx, userID, id)
	case usecase.DraftEvent:
		_, err = h.adminUseCase.StartEventDraft(ctx, userID, id)
	}
	if err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}

	h.sendDraft(ctx, userID, message.Chat.ID)
}

// handleSetCommand /set <field> <value>
func (h *BotHandler) handleSetCommand(ctx context.Context, message *tgbotapi.Message) {
	field, value, ok := splitFieldValue(message.CommandArguments())
	if !ok {
		h.sendMessage(message.Chat.ID, "Usage: /set <field> <value>. See /draft for fields.")
		return
	}
	if err := h.adminUseCase.SetDraftField(ctx, message.From.ID, field, value); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, fmt.Sprintf("✏️ %s updated. /draft to review, /save to publish.", field))
}

// ensureContentDraft kontent buferi ochiq bo'lmasa ochadi
func (h *BotHandler) ensureContentDraft(ctx context.Context, userID int64) error {
	view, err := h.adminUseCase.ActiveDraft(ctx, userID)
	if err == nil && view.Kind == usecase.DraftContent {
		return nil
	}
	if err != nil && !errors.Is(err, usecase.ErrNoDraft) {
		return err
	}
	_, err = h.adminUseCase.StartContentDraft(ctx, userID)
	return err
}

func (h *BotHandler) applyContentField(ctx context.Context, message *tgbotapi.Message, field, value string) {
	userID := message.From.ID
	if err := h.ensureContentDraft(ctx, userID); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	if err := h.adminUseCase.SetDraftField(ctx, userID, field, value); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, fmt.Sprintf("✏️ %s updated in the content draft. /draft to review, /save to publish.", field))
}

// handleSetContentCommand /setcontent <field> <value>
func (h *BotHandler) handleSetContentCommand(ctx context.Context, message *tgbotapi.Message) {
	field, value, ok := splitFieldValue(message.CommandArguments())
	if !ok {
		h.sendMessage(message.Chat.ID, "Usage: /setcontent <field> <value>\nFields: "+strings.Join(usecase.ContentFields, ", "))
		return
	}
	h.applyContentField(ctx, message, field, value)
}

// handleSlideCommand /slide add <image|title|subtitle> yoki /slide del <id>
func (h *BotHandler) handleSlideCommand(ctx context.Context, message *tgbotapi.Message) {
	op, value, _ := splitFieldValue(message.CommandArguments())
	switch strings.ToLower(op) {
	case "add":
		h.applyContentField(ctx, message, "slide.add", value)
	case "del", "remove":
		h.applyContentField(ctx, message, "slide.remove", value)
	default:
		h.sendMessage(message.Chat.ID, "Usage: /slide add <image|title|subtitle> or /slide del <id>")
	}
}

func (h *BotHandler) handleDraftCommand(ctx context.Context, message *tgbotapi.Message) {
	h.sendDraft(ctx, message.From.ID, message.Chat.ID)
}

func (h *BotHandler) sendDraft(ctx context.Context, userID, chatID int64) {
	view, err := h.adminUseCase.ActiveDraft(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, friendlyError(err))
		return
	}
	h.sendMessage(chatID, formatDraft(view)+"\n\n/set <field> <value> · /save · /cancel")
}

// handleSaveCommand buferni saqlash
func (h *BotHandler) handleSaveCommand(ctx context.Context, message *tgbotapi.Message) {
	view, err := h.adminUseCase.CommitDraft(ctx, message.From.ID)
	if err != nil {
		logx.Warn().Err(err).Int64("user_id", message.From.ID).Msg("buferni saqlab bo'lmadi")
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}

	switch {
	case view.Vehicle != nil:
		h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Saved %s (/car %s).", view.Vehicle.Title(), view.Vehicle.ID))
	case view.Event != nil:
		h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Saved event %q.", view.Event.Title))
	default:
		h.sendMessage(message.Chat.ID, "✅ Site content saved.")
	}
}

func (h *BotHandler) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message.From.ID, message.Chat.ID) {
		return
	}
	if err := h.adminUseCase.CancelDraft(ctx, message.From.ID); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, "🗑 Draft discarded.")
}

// deleteLabel o'chiriladigan yozuv mavjudligini tekshirib, nomini qaytaradi
func (h *BotHandler) deleteLabel(kind, target string) (string, error) {
	switch kind {
	case pendingKindCar:
		v, err := h.inventory.GetVehicle(target)
		if err != nil {
			return "", err
		}
		return v.Title(), nil
	case pendingKindEvent:
		e, err := h.inventory.GetEvent(target)
		if err != nil {
			return "", err
		}
		return e.Title, nil
	case pendingKindCat:
		for _, c := range h.inventory.Categories() {
			if c == target {
				return "category " + c, nil
			}
		}
		return "", fmt.Errorf("%w: %s", usecase.ErrCategoryNotFound, target)
	}
	return "", fmt.Errorf("unknown delete kind %q", kind)
}

// handleDeleteRequest /delcar, /delevent, /delcat tasdiqlash tugmasi bilan
func (h *BotHandler) handleDeleteRequest(ctx context.Context, message *tgbotapi.Message, kind string) {
	userID := message.From.ID
	chatID := message.Chat.ID
	if !h.requireAdmin(ctx, userID, chatID) {
		return
	}

	target := strings.TrimSpace(message.CommandArguments())
	if target == "" {
		h.sendMessage(chatID, fmt.Sprintf("Usage: /%s <%s>", message.Command(), map[string]string{
			pendingKindCar: "id", pendingKindEvent: "id", pendingKindCat: "name",
		}[kind]))
		return
	}

	label, err := h.deleteLabel(kind, target)
	if err != nil {
		h.sendMessage(chatID, friendlyError(err))
		return
	}

	token := h.savePending(pendingAction{
		UserID:    userID,
		Kind:      kind,
		Target:    target,
		Label:     label,
		CreatedAt: time.Now(),
	})

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Delete %s? This cannot be undone.", label))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Confirm", callbackConfirm+token),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackCancel+token),
		),
	)
	if _, err := h.bot.Send(msg); err != nil {
		logx.Warn().Err(err).Msg("tasdiqlash xabarini yuborib bo'lmadi")
	}
}

// handleConfirmDelete "Confirm" tugmasi bosilganda
func (h *BotHandler) handleConfirmDelete(ctx context.Context, userID, chatID int64, messageID int, token string) {
	action, ok := h.popPending(userID, token)
	if !ok {
		h.editMessage(chatID, messageID, "This request has expired. Nothing was deleted.")
		return
	}

	var err error
	switch action.Kind {
	case pendingKindCar:
		err = h.adminUseCase.DeleteVehicle(ctx, userID, action.Target)
	case pendingKindEvent:
		err = h.adminUseCase.DeleteEvent(ctx, userID, action.Target)
	case pendingKindCat:
		err = h.adminUseCase.DeleteCategory(ctx, userID, action.Target)
	}
	if err != nil {
		logx.Warn().Err(err).Str("kind", action.Kind).Str("target", action.Target).Msg("o'chirib bo'lmadi")
		h.editMessage(chatID, messageID, friendlyError(err))
		return
	}

	h.editMessage(chatID, messageID, fmt.Sprintf("🗑 Deleted %s.", action.Label))
}

// handleAddCategoryCommand /addcat <name>
func (h *BotHandler) handleAddCategoryCommand(ctx context.Context, message *tgbotapi.Message) {
	name := strings.TrimSpace(message.CommandArguments())
	if err := h.adminUseCase.AddCategory(ctx, message.From.ID, name); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Category %q added.", name))
}

// handleStatsCommand ombor statistikasi va oxirgi harakatlar
func (h *BotHandler) handleStatsCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	if !h.requireAdmin(ctx, userID, message.Chat.ID) {
		return
	}

	stats, err := h.adminUseCase.InventoryStats(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}

	var sb strings.Builder
	sb.WriteString(stats)

	actions, err := h.adminUseCase.RecentActions(ctx, userID, recentActionsLimit)
	if err == nil && len(actions) > 0 {
		sb.WriteString("\n🕘 Recent actions:\n")
		for _, a := range actions {
			fmt.Fprintf(&sb, "  • %s %s: %s\n", a.Timestamp.Format("Jan 2 15:04"), a.Action, truncateString(a.Details, 60))
		}
	}

	h.sendMessage(message.Chat.ID, sb.String())
}

// handleCleanCommand barcha suhbatlarni tozalash
func (h *BotHandler) handleCleanCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.adminUseCase.CleanChats(ctx, message.From.ID); err != nil {
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	h.sendMessage(message.Chat.ID, "✅ All concierge conversations were cleared.")
}

// handleMessagesCommand oxirgi konsyerj savollari (barcha foydalanuvchilar)
func (h *BotHandler) handleMessagesCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message.From.ID, message.Chat.ID) {
		return
	}

	messages, err := h.chatUseCase.GetAllMessages(ctx, recentMessagesLimit)
	if err != nil {
		logx.Warn().Err(err).Msg("xabarlarni olib bo'lmadi")
		h.sendMessage(message.Chat.ID, friendlyError(err))
		return
	}
	if len(messages) == 0 {
		h.sendMessage(message.Chat.ID, "No concierge conversations yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("💬 Latest concierge questions\n\n")
	for _, m := range messages {
		name := m.Username
		if name == "" {
			name = fmt.Sprintf("user %d", m.UserID)
		}
		fmt.Fprintf(&sb, "%s · %s\n%s\n\n", m.Timestamp.Format("Jan 2 15:04"), name, truncateString(m.Text, 200))
	}
	h.sendMessage(message.Chat.ID, sb.String())
}
