package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/infrastructure/storage"
)

type stubImporter struct {
	vehicles []entity.Vehicle
	err      error
}

func (s *stubImporter) ParseVehicles(ctx context.Context, filePath string) ([]entity.Vehicle, error) {
	return s.vehicles, s.err
}

func (s *stubImporter) ParseVehiclesFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Vehicle, error) {
	return s.vehicles, s.err
}

type adminFixture struct {
	admin     AdminUseCase
	inventory InventoryUseCase
	snapshots *storage.MemorySnapshotRepository
	importer  *stubImporter
}

func newAdminFixture(t *testing.T) adminFixture {
	t.Helper()
	inv, snaps := newTestInventory(t)
	imp := &stubImporter{}
	admin := NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		inv,
		imp,
		storage.NewMemoryChatRepository(10),
		nil,
	)
	return adminFixture{admin: admin, inventory: inv, snapshots: snaps, importer: imp}
}

func (f adminFixture) login(t *testing.T, userID int64) {
	t.Helper()
	ok, err := f.admin.Login(context.Background(), userID, "admin1", "rocket1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAdmin_LoginAllowList(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	ok, err := f.admin.Login(ctx, 1, "admin1", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.admin.Login(ctx, 1, "admin2", "rocket2")
	require.NoError(t, err)
	assert.True(t, ok)

	isAdmin, err := f.admin.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, f.admin.Logout(ctx, 1))
	isAdmin, err = f.admin.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	assert.True(t, f.admin.Authenticate("admin1", "rocket1"))
	assert.False(t, f.admin.Authenticate("admin1", "rocket2"))
	assert.False(t, f.admin.Authenticate("", ""))
}

func TestAdmin_CustomCredentials(t *testing.T) {
	inv, _ := newTestInventory(t)
	admin := NewAdminUseCase(storage.NewMemoryAdminRepository(), inv, &stubImporter{}, storage.NewMemoryChatRepository(10),
		[]entity.AdminCredential{{Username: "owner", Password: "s3cret"}})

	assert.True(t, admin.Authenticate("owner", "s3cret"))
	assert.False(t, admin.Authenticate("admin1", "rocket1"))
}

func TestAdmin_RequiresSession(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	_, err := f.admin.StartVehicleDraft(ctx, 7, "")
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.ErrorIs(t, f.admin.DeleteVehicle(ctx, 7, "c1"), ErrNotAdmin)
	assert.ErrorIs(t, f.admin.AddCategory(ctx, 7, "Motorcycle"), ErrNotAdmin)
	assert.Len(t, f.inventory.ListVehicles(), 6)
}

func TestAdmin_NewVehicleDraftFlow(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	draft, err := f.admin.StartVehicleDraft(ctx, 1, "")
	require.NoError(t, err)

	require.NoError(t, f.admin.SetDraftField(ctx, 1, "make", "Plymouth"))
	require.NoError(t, f.admin.SetDraftField(ctx, 1, "model", "Road Runner"))
	require.NoError(t, f.admin.SetDraftField(ctx, 1, "category", "Muscle"))
	assert.ErrorIs(t, f.admin.SetDraftField(ctx, 1, "year", "soon"), ErrInvalidField)

	// saqlanmaguncha kanonik kolleksiya o'zgarmaydi
	_, err = f.inventory.GetVehicle(draft.ID)
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	view, err := f.admin.ActiveDraft(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, DraftVehicle, view.Kind)
	assert.Equal(t, DraftEditing, view.State)
	assert.True(t, view.IsNew)
	assert.Equal(t, "Plymouth", view.Vehicle.Make)

	view, err = f.admin.CommitDraft(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Road Runner", view.Vehicle.Model)

	got, err := f.inventory.GetVehicle(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Muscle", got.Category)

	_, err = f.admin.ActiveDraft(ctx, 1)
	assert.ErrorIs(t, err, ErrNoDraft)

	actions, err := f.admin.RecentActions(ctx, 1, 5)
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	assert.Equal(t, "save_vehicle", actions[0].Action)
}

func TestAdmin_CommitFailureKeepsDraft(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	_, err := f.admin.StartVehicleDraft(ctx, 1, "c1")
	require.NoError(t, err)
	require.NoError(t, f.admin.SetDraftField(ctx, 1, "price", "1"))

	f.snapshots.FailSaves(entity.CollectionVehicles, -1, errors.New("offline"))
	_, err = f.admin.CommitDraft(ctx, 1)
	assert.ErrorIs(t, err, ErrPersistence)

	view, err := f.admin.ActiveDraft(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, DraftEditing, view.State)
	assert.Equal(t, 1, view.Vehicle.Price)

	got, err := f.inventory.GetVehicle("c1")
	require.NoError(t, err)
	assert.NotEqual(t, 1, got.Price)

	f.snapshots.FailSaves(entity.CollectionVehicles, 0, nil)
	_, err = f.admin.CommitDraft(ctx, 1)
	require.NoError(t, err)
	got, err = f.inventory.GetVehicle("c1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Price)
}

func TestAdmin_SwitchingDraftKindDropsPrevious(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	_, err := f.admin.StartVehicleDraft(ctx, 1, "")
	require.NoError(t, err)
	_, err = f.admin.StartEventDraft(ctx, 1, "")
	require.NoError(t, err)
	require.NoError(t, f.admin.SetDraftField(ctx, 1, "title", "Cars & Coffee"))

	view, err := f.admin.ActiveDraft(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, DraftEvent, view.Kind)

	require.NoError(t, f.admin.CancelDraft(ctx, 1))
	assert.ErrorIs(t, f.admin.CancelDraft(ctx, 1), ErrNoDraft)
	assert.ErrorIs(t, f.admin.SetDraftField(ctx, 1, "title", "x"), ErrNoDraft)
}

func TestAdmin_ContentDraft(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	_, err := f.admin.StartContentDraft(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.admin.SetDraftField(ctx, 1, "contact.email", "hello@rocket.test"))
	require.NoError(t, f.admin.SetDraftField(ctx, 1, "slide.add", "a.jpg|Title|Sub"))

	_, err = f.admin.CommitDraft(ctx, 1)
	require.NoError(t, err)

	content := f.inventory.Content()
	assert.Equal(t, "hello@rocket.test", content.Contact.Email)
	require.Len(t, f.inventory.HeroSlides(), 1)
	assert.Equal(t, "Title", f.inventory.HeroSlides()[0].Title)
}

func TestAdmin_DeletesAndCategories(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	require.NoError(t, f.admin.DeleteVehicle(ctx, 1, "c1"))
	assert.ErrorIs(t, f.admin.DeleteVehicle(ctx, 1, "c1"), ErrVehicleNotFound)

	require.NoError(t, f.admin.AddCategory(ctx, 1, "Motorcycle"))
	require.NoError(t, f.admin.DeleteCategory(ctx, 1, "Motorcycle"))
	assert.ErrorIs(t, f.admin.DeleteCategory(ctx, 1, "Motorcycle"), ErrCategoryNotFound)

	events := f.inventory.ListEvents()
	require.NotEmpty(t, events)
	require.NoError(t, f.admin.DeleteEvent(ctx, 1, events[0].ID))
	assert.Len(t, f.inventory.ListEvents(), len(events)-1)
}

func TestAdmin_ImportInventory(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	f.importer.vehicles = []entity.Vehicle{{Make: "Datsun", Model: "240Z", Year: 1971, Category: "Vintage Sport"}}
	n, err := f.admin.ImportInventory(ctx, 1, []byte("xlsx"), "stock.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, f.inventory.ListVehicles(), 7)

	f.importer.vehicles = nil
	_, err = f.admin.ImportInventory(ctx, 1, []byte("xlsx"), "empty.xlsx")
	assert.ErrorIs(t, err, ErrEmptyImport)

	f.importer.err = errors.New("corrupt")
	_, err = f.admin.ImportInventory(ctx, 1, []byte("xlsx"), "bad.xlsx")
	assert.Error(t, err)
}

func TestAdmin_InventoryStats(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()
	f.login(t, 1)

	require.NoError(t, f.inventory.SaveVehicle(ctx, entity.Vehicle{ID: "x1", Category: "Hovercraft"}))

	stats, err := f.admin.InventoryStats(ctx)
	require.NoError(t, err)
	assert.Contains(t, stats, "Vehicles: 7")
	assert.Contains(t, stats, "Classic 4x4")
	assert.Contains(t, stats, "Hovercraft (unlisted): 1")
}
