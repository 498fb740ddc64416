package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

// DefaultAdminCredentials ADMIN_CREDENTIALS berilmaganda ishlatiladi
var DefaultAdminCredentials = []entity.AdminCredential{
	{Username: "admin1", Password: "rocket1"},
	{Username: "admin2", Password: "rocket2"},
}

// DraftView admin ko'radigan bufer holati
type DraftView struct {
	Kind    DraftKind
	State   DraftState
	IsNew   bool
	Vehicle *entity.Vehicle
	Event   *entity.Event
	Content *entity.SiteContent
}

// AdminUseCase admin bilan bog'liq business logic
type AdminUseCase interface {
	// Login admin login qilish
	Login(ctx context.Context, userID int64, username, password string) (bool, error)

	// Logout admin logout qilish
	Logout(ctx context.Context, userID int64) error

	// IsAdmin admin ekanligini tekshirish
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// Authenticate sessiyasiz tekshirish (HTTP Basic auth uchun)
	Authenticate(username, password string) bool

	// StartVehicleDraft id bo'sh bo'lsa yangi mashina, aks holda tahrirlash
	StartVehicleDraft(ctx context.Context, userID int64, id string) (entity.Vehicle, error)

	// StartEventDraft id bo'sh bo'lsa yangi tadbir
	StartEventDraft(ctx context.Context, userID int64, id string) (entity.Event, error)

	// StartContentDraft sayt kontentini tahrirlash
	StartContentDraft(ctx context.Context, userID int64) (entity.SiteContent, error)

	// SetDraftField faol buferdagi maydonni o'rnatish
	SetDraftField(ctx context.Context, userID int64, field, value string) error

	// ActiveDraft faol bufer
	ActiveDraft(ctx context.Context, userID int64) (DraftView, error)

	// CommitDraft faol buferni saqlash
	CommitDraft(ctx context.Context, userID int64) (DraftView, error)

	// CancelDraft faol buferni bekor qilish
	CancelDraft(ctx context.Context, userID int64) error

	// DeleteVehicle tasdiqlangandan keyin mashinani o'chirish
	DeleteVehicle(ctx context.Context, userID int64, id string) error

	// DeleteEvent tasdiqlangandan keyin tadbirni o'chirish
	DeleteEvent(ctx context.Context, userID int64, id string) error

	// AddCategory kategoriya qo'shish
	AddCategory(ctx context.Context, userID int64, name string) error

	// DeleteCategory kategoriyani o'chirish
	DeleteCategory(ctx context.Context, userID int64, name string) error

	// ImportInventory Excel fayldan mashinalarni yuklash
	ImportInventory(ctx context.Context, userID int64, fileData []byte, filename string) (int, error)

	// InventoryStats inventar haqida qisqa ma'lumot
	InventoryStats(ctx context.Context) (string, error)

	// RecentActions oxirgi admin harakatlari
	RecentActions(ctx context.Context, userID int64, limit int) ([]entity.AdminAction, error)

	// CleanChats barcha konsyerj suhbatlarini tozalash
	CleanChats(ctx context.Context, userID int64) error

	// RecordAction tashqi yuzalar (HTTP) uchun harakatni loglash
	RecordAction(ctx context.Context, userID int64, action, details string)
}

type adminUseCase struct {
	adminRepo   repository.AdminRepository
	inventory   InventoryUseCase
	importer    repository.InventoryImporter
	chatRepo    repository.ChatRepository
	credentials []entity.AdminCredential

	vehicleDrafts *draftBook[entity.Vehicle]
	eventDrafts   *draftBook[entity.Event]
	contentDrafts *draftBook[entity.SiteContent]
	active        *activeKinds
}

// NewAdminUseCase yangi AdminUseCase yaratish
func NewAdminUseCase(
	adminRepo repository.AdminRepository,
	inventory InventoryUseCase,
	importer repository.InventoryImporter,
	chatRepo repository.ChatRepository,
	credentials []entity.AdminCredential,
) AdminUseCase {
	if len(credentials) == 0 {
		credentials = DefaultAdminCredentials
	}
	return &adminUseCase{
		adminRepo:     adminRepo,
		inventory:     inventory,
		importer:      importer,
		chatRepo:      chatRepo,
		credentials:   credentials,
		vehicleDrafts: newDraftBook(entity.Vehicle.Clone),
		eventDrafts:   newDraftBook[entity.Event](nil),
		contentDrafts: newDraftBook(entity.SiteContent.Clone),
		active:        newActiveKinds(),
	}
}

// Authenticate login/parol juftligini ro'yxat bilan solishtirish
func (u *adminUseCase) Authenticate(username, password string) bool {
	ok := false
	for _, c := range u.credentials {
		userMatch := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
		if userMatch && passMatch {
			ok = true
		}
	}
	return ok
}

// Login admin login qilish
func (u *adminUseCase) Login(ctx context.Context, userID int64, username, password string) (bool, error) {
	if !u.Authenticate(username, password) {
		logx.Warn().Int64("user_id", userID).Str("username", username).Msg("admin login rad etildi")
		return false, nil
	}

	now := time.Now()
	session := entity.AdminSession{
		UserID:       userID,
		Username:     username,
		IsAdmin:      true,
		LoginTime:    now,
		LastActivity: now,
	}

	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.RecordAction(ctx, userID, "login", fmt.Sprintf("Admin %s logged in", username))
	return true, nil
}

// Logout admin logout qilish, ochiq buferlar tashlanadi
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	_ = u.CancelDraft(ctx, userID)
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin admin ekanligini tekshirish
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

func (u *adminUseCase) requireAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	return nil
}

// StartVehicleDraft mashina buferini ochish
func (u *adminUseCase) StartVehicleDraft(ctx context.Context, userID int64, id string) (entity.Vehicle, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return entity.Vehicle{}, err
	}

	isNew := strings.TrimSpace(id) == ""
	var draft entity.Vehicle
	if isNew {
		draft = u.inventory.NewVehicleDraft()
	} else {
		v, err := u.inventory.EditVehicleDraft(id)
		if err != nil {
			return entity.Vehicle{}, err
		}
		draft = v
	}

	if err := u.switchDraft(ctx, userID, DraftVehicle); err != nil {
		return entity.Vehicle{}, err
	}
	if err := u.vehicleDrafts.Begin(userID, draft, isNew); err != nil {
		return entity.Vehicle{}, err
	}
	return draft, nil
}

// StartEventDraft tadbir buferini ochish
func (u *adminUseCase) StartEventDraft(ctx context.Context, userID int64, id string) (entity.Event, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return entity.Event{}, err
	}

	isNew := strings.TrimSpace(id) == ""
	var draft entity.Event
	if isNew {
		draft = u.inventory.NewEventDraft()
	} else {
		ev, err := u.inventory.EditEventDraft(id)
		if err != nil {
			return entity.Event{}, err
		}
		draft = ev
	}

	if err := u.switchDraft(ctx, userID, DraftEvent); err != nil {
		return entity.Event{}, err
	}
	if err := u.eventDrafts.Begin(userID, draft, isNew); err != nil {
		return entity.Event{}, err
	}
	return draft, nil
}

// StartContentDraft kontent buferini ochish
func (u *adminUseCase) StartContentDraft(ctx context.Context, userID int64) (entity.SiteContent, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return entity.SiteContent{}, err
	}

	draft := u.inventory.Content()
	if err := u.switchDraft(ctx, userID, DraftContent); err != nil {
		return entity.SiteContent{}, err
	}
	if err := u.contentDrafts.Begin(userID, draft, false); err != nil {
		return entity.SiteContent{}, err
	}
	return draft, nil
}

// switchDraft boshqa turdagi eski buferni yopadi. Saqlanayotgan bufer bo'lsa xato.
func (u *adminUseCase) switchDraft(ctx context.Context, userID int64, kind DraftKind) error {
	prev := u.active.get(userID)
	if prev != DraftNone && prev != kind {
		if err := u.cancelKind(userID, prev); err != nil && !errors.Is(err, ErrNoDraft) {
			return err
		}
	}
	u.active.set(userID, kind)
	return nil
}

func (u *adminUseCase) cancelKind(userID int64, kind DraftKind) error {
	switch kind {
	case DraftVehicle:
		return u.vehicleDrafts.Cancel(userID)
	case DraftEvent:
		return u.eventDrafts.Cancel(userID)
	case DraftContent:
		return u.contentDrafts.Cancel(userID)
	}
	return ErrNoDraft
}

// SetDraftField faol buferdagi maydonni o'rnatish
func (u *adminUseCase) SetDraftField(ctx context.Context, userID int64, field, value string) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}

	switch u.active.get(userID) {
	case DraftVehicle:
		return u.vehicleDrafts.Update(userID, func(v *entity.Vehicle) error {
			return ApplyVehicleField(v, field, value)
		})
	case DraftEvent:
		return u.eventDrafts.Update(userID, func(e *entity.Event) error {
			return ApplyEventField(e, field, value)
		})
	case DraftContent:
		return u.contentDrafts.Update(userID, func(c *entity.SiteContent) error {
			return ApplyContentField(c, field, value)
		})
	}
	return ErrNoDraft
}

// ActiveDraft faol buferni ko'rish
func (u *adminUseCase) ActiveDraft(ctx context.Context, userID int64) (DraftView, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return DraftView{}, err
	}

	kind := u.active.get(userID)
	view := DraftView{Kind: kind}
	switch kind {
	case DraftVehicle:
		v, state, isNew := u.vehicleDrafts.Get(userID)
		if state == DraftIdle {
			return DraftView{}, ErrNoDraft
		}
		view.State, view.IsNew, view.Vehicle = state, isNew, &v
	case DraftEvent:
		e, state, isNew := u.eventDrafts.Get(userID)
		if state == DraftIdle {
			return DraftView{}, ErrNoDraft
		}
		view.State, view.IsNew, view.Event = state, isNew, &e
	case DraftContent:
		c, state, _ := u.contentDrafts.Get(userID)
		if state == DraftIdle {
			return DraftView{}, ErrNoDraft
		}
		view.State, view.Content = state, &c
	default:
		return DraftView{}, ErrNoDraft
	}
	return view, nil
}

// CommitDraft faol buferni kanonik kolleksiyaga yozish
func (u *adminUseCase) CommitDraft(ctx context.Context, userID int64) (DraftView, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return DraftView{}, err
	}

	kind := u.active.get(userID)
	view := DraftView{Kind: kind, State: DraftIdle}
	switch kind {
	case DraftVehicle:
		_, _, isNew := u.vehicleDrafts.Get(userID)
		v, err := u.vehicleDrafts.Commit(ctx, userID, u.inventory.SaveVehicle)
		if err != nil {
			return DraftView{}, err
		}
		view.IsNew, view.Vehicle = isNew, &v
		u.RecordAction(ctx, userID, "save_vehicle", fmt.Sprintf("%s (%s)", v.Title(), v.ID))
	case DraftEvent:
		_, _, isNew := u.eventDrafts.Get(userID)
		e, err := u.eventDrafts.Commit(ctx, userID, u.inventory.SaveEvent)
		if err != nil {
			return DraftView{}, err
		}
		view.IsNew, view.Event = isNew, &e
		u.RecordAction(ctx, userID, "save_event", fmt.Sprintf("%s (%s)", e.Title, e.ID))
	case DraftContent:
		c, err := u.contentDrafts.Commit(ctx, userID, u.inventory.SaveContent)
		if err != nil {
			return DraftView{}, err
		}
		view.Content = &c
		u.RecordAction(ctx, userID, "save_content", "Site content updated")
	default:
		return DraftView{}, ErrNoDraft
	}

	u.active.clear(userID, kind)
	return view, nil
}

// CancelDraft faol buferni bekor qilish
func (u *adminUseCase) CancelDraft(ctx context.Context, userID int64) error {
	kind := u.active.get(userID)
	if kind == DraftNone {
		return ErrNoDraft
	}
	if err := u.cancelKind(userID, kind); err != nil {
		return err
	}
	u.active.clear(userID, kind)
	return nil
}

// DeleteVehicle mashinani o'chirish
func (u *adminUseCase) DeleteVehicle(ctx context.Context, userID int64, id string) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}
	if err := u.inventory.DeleteVehicle(ctx, id); err != nil {
		return err
	}
	u.RecordAction(ctx, userID, "delete_vehicle", id)
	return nil
}

// DeleteEvent tadbirni o'chirish
func (u *adminUseCase) DeleteEvent(ctx context.Context, userID int64, id string) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}
	if err := u.inventory.DeleteEvent(ctx, id); err != nil {
		return err
	}
	u.RecordAction(ctx, userID, "delete_event", id)
	return nil
}

// AddCategory kategoriya qo'shish
func (u *adminUseCase) AddCategory(ctx context.Context, userID int64, name string) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}
	if err := u.inventory.AddCategory(ctx, name); err != nil {
		return err
	}
	u.RecordAction(ctx, userID, "add_category", name)
	return nil
}

// DeleteCategory kategoriyani o'chirish
func (u *adminUseCase) DeleteCategory(ctx context.Context, userID int64, name string) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}
	if err := u.inventory.DeleteCategory(ctx, name); err != nil {
		return err
	}
	u.RecordAction(ctx, userID, "delete_category", name)
	return nil
}

// ImportInventory Excel fayldan mashinalarni yuklash
func (u *adminUseCase) ImportInventory(ctx context.Context, userID int64, fileData []byte, filename string) (int, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return 0, err
	}

	vehicles, err := u.importer.ParseVehiclesFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}
	if len(vehicles) == 0 {
		return 0, ErrEmptyImport
	}

	n, err := u.inventory.ImportVehicles(ctx, vehicles)
	if err != nil {
		return 0, fmt.Errorf("failed to import vehicles: %w", err)
	}

	u.RecordAction(ctx, userID, "import_inventory", fmt.Sprintf("Imported %d vehicles from %s", n, filename))
	return n, nil
}

// InventoryStats kategoriyalar bo'yicha mashinalar soni
func (u *adminUseCase) InventoryStats(ctx context.Context) (string, error) {
	vehicles := u.inventory.ListVehicles()
	categories := u.inventory.Categories()

	counts := make(map[string]int)
	total := 0
	for _, v := range vehicles {
		counts[v.Category]++
		total += v.Price
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚗 Vehicles: %d\n", len(vehicles))
	fmt.Fprintf(&b, "💰 Stock value: $%d\n", total)
	fmt.Fprintf(&b, "📅 Events: %d\n\n", len(u.inventory.ListEvents()))
	b.WriteString("📂 Categories:\n")

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
		fmt.Fprintf(&b, "  • %s: %d\n", c, counts[c])
	}

	// ro'yxatda yo'q kategoriyadagi mashinalar
	var orphans []string
	for c := range counts {
		if !known[c] {
			orphans = append(orphans, c)
		}
	}
	sort.Strings(orphans)
	for _, c := range orphans {
		fmt.Fprintf(&b, "  • %s (unlisted): %d\n", c, counts[c])
	}

	return b.String(), nil
}

// RecentActions oxirgi admin harakatlari
func (u *adminUseCase) RecentActions(ctx context.Context, userID int64, limit int) ([]entity.AdminAction, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return u.adminRepo.ListActions(ctx, limit)
}

// CleanChats barcha suhbat tarixlarini tozalash
func (u *adminUseCase) CleanChats(ctx context.Context, userID int64) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}
	if err := u.chatRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}
	u.RecordAction(ctx, userID, "clean_chats", "Cleared concierge chat histories")
	return nil
}

// RecordAction harakatni loglash, xato faqat logga yoziladi
func (u *adminUseCase) RecordAction(ctx context.Context, userID int64, action, details string) {
	entry := entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := u.adminRepo.LogAction(ctx, entry); err != nil {
		logx.Warn().Err(err).Str("action", action).Msg("admin harakatini loglab bo'lmadi")
		return
	}
	logx.Info().Int64("user_id", userID).Str("action", action).Str("details", details).Msg("admin harakati")
}
