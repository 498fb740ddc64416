package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/defaults"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

// featuredSlideLimit karusel slaydlari sozlanmagan bo'lsa nechta mashina ko'rsatiladi
const featuredSlideLimit = 5

// InventoryConfig saqlash siyosati
type InventoryConfig struct {
	SaveTimeout  time.Duration
	SaveRetries  int
	RetryBackoff time.Duration
}

// DefaultInventoryConfig standart qiymatlar
func DefaultInventoryConfig() InventoryConfig {
	return InventoryConfig{
		SaveTimeout:  5 * time.Second,
		SaveRetries:  2,
		RetryBackoff: 200 * time.Millisecond,
	}
}

// InventoryUseCase mashinalar, kategoriyalar, sayt kontenti va tadbirlarning
// kanonik holati. O'qish metodlari nusxa qaytaradi.
type InventoryUseCase interface {
	// ListVehicles barcha mashinalar, qo'shilish tartibida
	ListVehicles() []entity.Vehicle

	// GetVehicle ID bo'yicha mashina
	GetVehicle(id string) (*entity.Vehicle, error)

	// FilterByCategory "All" bo'lsa hammasi, aks holda aniq moslik
	FilterByCategory(category string) []entity.Vehicle

	// SearchVehicles erkin matn bo'yicha qidirish
	SearchVehicles(query string) []entity.Vehicle

	// NewVehicleDraft yangi ID bilan bo'sh shablon
	NewVehicleDraft() entity.Vehicle

	// EditVehicleDraft mavjud mashinaning nusxasi
	EditVehicleDraft(id string) (entity.Vehicle, error)

	// SaveVehicle ID mos kelsa joyida almashtirish, aks holda qo'shish
	SaveVehicle(ctx context.Context, vehicle entity.Vehicle) error

	// DeleteVehicle mashinani o'chirish (tasdiqlash chaqiruvchi tomonda)
	DeleteVehicle(ctx context.Context, id string) error

	// ImportVehicles ko'p mashinani bitta saqlash bilan qo'shish yoki yangilash
	ImportVehicles(ctx context.Context, vehicles []entity.Vehicle) (int, error)

	// Categories kategoriyalar ro'yxati
	Categories() []string

	// AddCategory yangi kategoriya qo'shish
	AddCategory(ctx context.Context, name string) error

	// DeleteCategory kategoriyani o'chirish, mashinalarga tegmaydi
	DeleteCategory(ctx context.Context, name string) error

	// Content sayt kontenti
	Content() entity.SiteContent

	// SaveContent kontentni to'liq almashtirish
	SaveContent(ctx context.Context, content entity.SiteContent) error

	// HeroSlides karusel slaydlari
	HeroSlides() []entity.HeroSlide

	// ListEvents barcha tadbirlar
	ListEvents() []entity.Event

	// GetEvent ID bo'yicha tadbir
	GetEvent(id string) (*entity.Event, error)

	// NewEventDraft yangi ID bilan bo'sh tadbir
	NewEventDraft() entity.Event

	// EditEventDraft mavjud tadbir nusxasi
	EditEventDraft(id string) (entity.Event, error)

	// SaveEvent tadbirni saqlash
	SaveEvent(ctx context.Context, event entity.Event) error

	// DeleteEvent tadbirni o'chirish
	DeleteEvent(ctx context.Context, id string) error
}

type inventoryUseCase struct {
	snapshots repository.SnapshotRepository
	cfg       InventoryConfig
	now       func() time.Time
	newID     func() string

	vehicles   *collection[[]entity.Vehicle]
	categories *collection[[]string]
	content    *collection[entity.SiteContent]
	events     *collection[[]entity.Event]
}

func vehicleID(v entity.Vehicle) string { return v.ID }
func eventID(e entity.Event) string     { return e.ID }

// NewInventoryUseCase har bir kolleksiyani snapshotdan yuklaydi, topilmasa standart ma'lumotlar ishlatiladi
func NewInventoryUseCase(ctx context.Context, snapshots repository.SnapshotRepository, cfg InventoryConfig) (InventoryUseCase, error) {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = DefaultInventoryConfig().SaveTimeout
	}
	if cfg.SaveRetries < 0 {
		cfg.SaveRetries = 0
	}

	seed, err := defaults.Load()
	if err != nil {
		return nil, err
	}

	u := &inventoryUseCase{
		snapshots: snapshots,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}

	vehicles := seed.Vehicles
	if err := u.load(ctx, entity.CollectionVehicles, &vehicles); err != nil {
		return nil, err
	}
	categories := seed.Categories
	if err := u.load(ctx, entity.CollectionCategories, &categories); err != nil {
		return nil, err
	}
	content := seed.Content
	if err := u.load(ctx, entity.CollectionContent, &content); err != nil {
		return nil, err
	}
	events := seed.Events
	if err := u.load(ctx, entity.CollectionEvents, &events); err != nil {
		return nil, err
	}

	u.vehicles = newCollection(entity.CollectionVehicles, vehicles)
	u.categories = newCollection(entity.CollectionCategories, categories)
	u.content = newCollection(entity.CollectionContent, content)
	u.events = newCollection(entity.CollectionEvents, events)

	return u, nil
}

// load snapshot bo'lsa target ga yozadi, bo'lmasa target dagi standart qiymat qoladi
func (u *inventoryUseCase) load(ctx context.Context, name entity.Collection, target any) error {
	snap, err := u.snapshots.Load(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			logx.Info().Str("collection", string(name)).Msg("snapshot topilmadi, standart ma'lumotlar ishlatiladi")
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	if snap.Version > entity.SnapshotVersion {
		return fmt.Errorf("%w: %s v%d", ErrUnsupportedSnapshot, name, snap.Version)
	}

	if err := json.Unmarshal(snap.Payload, target); err != nil {
		return fmt.Errorf("failed to decode %s snapshot: %w", name, err)
	}

	logx.Debug().Str("collection", string(name)).Int("version", snap.Version).Msg("snapshot yuklandi")
	return nil
}

// persist kolleksiyani timeout va qayta urinishlar bilan saqlash
func (u *inventoryUseCase) persist(ctx context.Context, name entity.Collection, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistence, name, err)
	}

	snap := entity.Snapshot{
		Collection: name,
		Version:    entity.SnapshotVersion,
		Payload:    payload,
		SavedAt:    u.now(),
	}

	var lastErr error
	for attempt := 0; attempt <= u.cfg.SaveRetries; attempt++ {
		if attempt > 0 {
			logx.Warn().Err(lastErr).Str("collection", string(name)).Int("attempt", attempt).Msg("saqlash qayta urinilmoqda")
			select {
			case <-time.After(u.cfg.RetryBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				return fmt.Errorf("%w: %s: %w", ErrPersistence, name, ctx.Err())
			}
		}

		saveCtx, cancel := context.WithTimeout(ctx, u.cfg.SaveTimeout)
		lastErr = u.snapshots.Save(saveCtx, snap)
		cancel()

		if lastErr == nil {
			logx.Debug().Str("collection", string(name)).Int("bytes", len(payload)).Msg("kolleksiya saqlandi")
			return nil
		}
		if ctx.Err() != nil {
			break
		}
	}

	logx.Error().Err(lastErr).Str("collection", string(name)).Msg("kolleksiyani saqlab bo'lmadi")
	return fmt.Errorf("%w: %s: %w", ErrPersistence, name, lastErr)
}

func cloneVehicles(items []entity.Vehicle) []entity.Vehicle {
	out := make([]entity.Vehicle, len(items))
	for i, v := range items {
		out[i] = v.Clone()
	}
	return out
}

// ListVehicles barcha mashinalar
func (u *inventoryUseCase) ListVehicles() []entity.Vehicle {
	return cloneVehicles(u.vehicles.get())
}

// GetVehicle ID bo'yicha mashina
func (u *inventoryUseCase) GetVehicle(id string) (*entity.Vehicle, error) {
	items := u.vehicles.get()
	i := indexByID(items, id, vehicleID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
	}
	v := items[i].Clone()
	return &v, nil
}

// FilterByCategory kategoriya bo'yicha filtrlash, tartib saqlanadi
func (u *inventoryUseCase) FilterByCategory(category string) []entity.Vehicle {
	items := u.vehicles.get()
	if category == entity.AllCategory {
		return cloneVehicles(items)
	}

	results := make([]entity.Vehicle, 0)
	for _, v := range items {
		if v.Category == category {
			results = append(results, v.Clone())
		}
	}
	return results
}

// SearchVehicles erkin matn bo'yicha qidirish
func (u *inventoryUseCase) SearchVehicles(query string) []entity.Vehicle {
	return searchVehicles(u.vehicles.get(), query)
}

// NewVehicleDraft yangi mashina shabloni
func (u *inventoryUseCase) NewVehicleDraft() entity.Vehicle {
	category := ""
	if cats := u.categories.get(); len(cats) > 0 {
		category = cats[0]
	}
	return entity.Vehicle{
		ID:       u.newID(),
		Year:     u.now().Year(),
		Category: category,
		Images:   []string{""},
		Features: []string{},
	}
}

// EditVehicleDraft mavjud mashinaning tahrirlash uchun nusxasi
func (u *inventoryUseCase) EditVehicleDraft(id string) (entity.Vehicle, error) {
	v, err := u.GetVehicle(id)
	if err != nil {
		return entity.Vehicle{}, err
	}
	return *v, nil
}

// SaveVehicle mashinani saqlash
func (u *inventoryUseCase) SaveVehicle(ctx context.Context, vehicle entity.Vehicle) error {
	vehicle.ID = strings.TrimSpace(vehicle.ID)
	if vehicle.ID == "" {
		return fmt.Errorf("%w: vehicle id is required", ErrInvalidField)
	}
	vehicle = vehicle.Clone()

	return u.vehicles.commit(ctx, u.persist, func(current []entity.Vehicle) ([]entity.Vehicle, error) {
		return upsertByID(current, vehicle, vehicleID), nil
	})
}

// DeleteVehicle mashinani o'chirish
func (u *inventoryUseCase) DeleteVehicle(ctx context.Context, id string) error {
	return u.vehicles.commit(ctx, u.persist, func(current []entity.Vehicle) ([]entity.Vehicle, error) {
		next, ok := removeByID(current, id, vehicleID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
		}
		return next, nil
	})
}

// ImportVehicles ID mos kelganlar almashtiriladi, qolganlari oxiriga qo'shiladi
func (u *inventoryUseCase) ImportVehicles(ctx context.Context, vehicles []entity.Vehicle) (int, error) {
	if len(vehicles) == 0 {
		return 0, ErrEmptyImport
	}

	batch := make([]entity.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		v.ID = strings.TrimSpace(v.ID)
		if v.ID == "" {
			v.ID = u.newID()
		}
		batch = append(batch, v.Clone())
	}

	err := u.vehicles.commit(ctx, u.persist, func(current []entity.Vehicle) ([]entity.Vehicle, error) {
		next := current
		for _, v := range batch {
			next = upsertByID(next, v, vehicleID)
		}
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

// Categories kategoriyalar ro'yxati
func (u *inventoryUseCase) Categories() []string {
	return append([]string(nil), u.categories.get()...)
}

// AddCategory yangi kategoriya qo'shish
func (u *inventoryUseCase) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == entity.AllCategory {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, name)
	}

	return u.categories.commit(ctx, u.persist, func(current []string) ([]string, error) {
		for _, c := range current {
			if c == name {
				return nil, fmt.Errorf("%w: %s", ErrCategoryExists, name)
			}
		}
		next := make([]string, len(current), len(current)+1)
		copy(next, current)
		return append(next, name), nil
	})
}

// DeleteCategory kategoriyani o'chirish. Shu kategoriyadagi mashinalar o'zgarmaydi.
func (u *inventoryUseCase) DeleteCategory(ctx context.Context, name string) error {
	return u.categories.commit(ctx, u.persist, func(current []string) ([]string, error) {
		next, ok := removeByID(current, name, func(c string) string { return c })
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
		}
		return next, nil
	})
}

// Content sayt kontenti
func (u *inventoryUseCase) Content() entity.SiteContent {
	return u.content.get().Clone()
}

// SaveContent kontentni to'liq almashtirish (maydon darajasida birlashtirish yo'q)
func (u *inventoryUseCase) SaveContent(ctx context.Context, content entity.SiteContent) error {
	content = content.Clone()
	return u.content.commit(ctx, u.persist, func(entity.SiteContent) (entity.SiteContent, error) {
		return content, nil
	})
}

// HeroSlides sozlangan slaydlar, bo'lmasa birinchi mashinalar
func (u *inventoryUseCase) HeroSlides() []entity.HeroSlide {
	if slides := u.content.get().Hero.Slides; len(slides) > 0 {
		return append([]entity.HeroSlide(nil), slides...)
	}

	vehicles := u.vehicles.get()
	if len(vehicles) > featuredSlideLimit {
		vehicles = vehicles[:featuredSlideLimit]
	}
	slides := make([]entity.HeroSlide, 0, len(vehicles))
	for _, v := range vehicles {
		image := ""
		if len(v.Images) > 0 {
			image = v.Images[0]
		}
		slides = append(slides, entity.HeroSlide{
			ID:       v.ID,
			Image:    image,
			Title:    v.Title(),
			Subtitle: "Featured Vehicle",
		})
	}
	return slides
}

// ListEvents barcha tadbirlar
func (u *inventoryUseCase) ListEvents() []entity.Event {
	return append([]entity.Event(nil), u.events.get()...)
}

// GetEvent ID bo'yicha tadbir
func (u *inventoryUseCase) GetEvent(id string) (*entity.Event, error) {
	items := u.events.get()
	i := indexByID(items, id, eventID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	ev := items[i]
	return &ev, nil
}

// NewEventDraft yangi tadbir shabloni
func (u *inventoryUseCase) NewEventDraft() entity.Event {
	return entity.Event{ID: u.newID()}
}

// EditEventDraft mavjud tadbir nusxasi
func (u *inventoryUseCase) EditEventDraft(id string) (entity.Event, error) {
	ev, err := u.GetEvent(id)
	if err != nil {
		return entity.Event{}, err
	}
	return *ev, nil
}

// SaveEvent tadbirni saqlash
func (u *inventoryUseCase) SaveEvent(ctx context.Context, event entity.Event) error {
	event.ID = strings.TrimSpace(event.ID)
	if event.ID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidField)
	}

	return u.events.commit(ctx, u.persist, func(current []entity.Event) ([]entity.Event, error) {
		return upsertByID(current, event, eventID), nil
	})
}

// DeleteEvent tadbirni o'chirish
func (u *inventoryUseCase) DeleteEvent(ctx context.Context, id string) error {
	return u.events.commit(ctx, u.persist, func(current []entity.Event) ([]entity.Event, error) {
		next, ok := removeByID(current, id, eventID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		return next, nil
	})
}
