package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/infrastructure/storage"
	"github.com/yourusername/rocket-motor-showroom/internal/usecase"
)

type stubImporter struct {
	vehicles []entity.Vehicle
	err      error
	got      []byte
}

func (s *stubImporter) ParseVehicles(ctx context.Context, filePath string) ([]entity.Vehicle, error) {
	return s.vehicles, s.err
}

func (s *stubImporter) ParseVehiclesFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Vehicle, error) {
	s.got = data
	return s.vehicles, s.err
}

type fixture struct {
	server    *Server
	inventory usecase.InventoryUseCase
	snapshots *storage.MemorySnapshotRepository
	importer  *stubImporter
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	snaps := storage.NewMemorySnapshotRepository()
	inv, err := usecase.NewInventoryUseCase(context.Background(), snaps, usecase.InventoryConfig{
		SaveTimeout: time.Second,
	})
	require.NoError(t, err)

	imp := &stubImporter{}
	admin := usecase.NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		inv,
		imp,
		storage.NewMemoryChatRepository(10),
		nil,
	)
	srv := NewServer(inv, usecase.NewCompareUseCase(inv), admin, imp, nil)
	return fixture{server: srv, inventory: inv, snapshots: snaps, importer: imp}
}

func (f fixture) do(t *testing.T, method, target string, body []byte, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if admin {
		req.SetBasicAuth("admin1", "rocket1")
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestVehicles_FilterByCategory(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/vehicles", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, decode[[]entity.Vehicle](t, rec), 6)

	rec = f.do(t, http.MethodGet, "/api/vehicles?category=Muscle", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	muscle := decode[[]entity.Vehicle](t, rec)
	require.Len(t, muscle, 1)
	assert.Equal(t, "c5", muscle[0].ID)

	rec = f.do(t, http.MethodGet, "/api/vehicles?category=Hovercraft", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestVehicle_NotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/vehicles/c1", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 85000, decode[entity.Vehicle](t, rec).Price)

	rec = f.do(t, http.MethodGet, "/api/vehicles/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "vehicle not found", decode[errorResponse](t, rec).Error)

	rec = f.do(t, http.MethodGet, "/api/events/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompare(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/compare?a=c1&b=c3", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	cmp := decode[entity.Comparison](t, rec)
	assert.Len(t, cmp.Axes, 4)

	rec = f.do(t, http.MethodGet, "/api/compare?a=c1", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/compare?a=c1&b=zzz", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHero_FallsBackToVehicles(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/hero", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	hero := decode[heroResponse](t, rec)
	assert.Equal(t, 5, hero.Total)
	assert.Len(t, hero.Slides, 5)
	require.NotNil(t, hero.Slide)
	assert.Equal(t, "Featured Vehicle", hero.Slide.Subtitle)
}

func TestAdmin_RequiresBasicAuth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/categories", []byte(`{"name":"Rally"}`), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	assert.NotContains(t, f.inventory.Categories(), "Rally")
}

func TestAdmin_Categories(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/admin/categories", []byte(`{"name":"Rally"}`), true)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, decode[[]string](t, rec), "Rally")

	rec = f.do(t, http.MethodPost, "/api/admin/categories", []byte(`{"name":"Rally"}`), true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/admin/categories", []byte(`{"name":"All"}`), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/admin/categories", []byte(`{"nom":`), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/admin/categories/Rally", nil, true)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Contains(t, f.inventory.Categories(), "Rally")

	rec = f.do(t, http.MethodDelete, "/api/admin/categories/Rally?confirm=true", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, f.inventory.Categories(), "Rally")
}

func TestAdmin_SaveAndDeleteVehicle(t *testing.T) {
	f := newFixture(t)

	body, err := json.Marshal(entity.Vehicle{
		Make:     "Ford",
		Model:    "Mustang Fastback",
		Year:     1967,
		Price:    120000,
		Category: "Muscle",
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/admin/vehicles", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decode[entity.Vehicle](t, rec)
	require.NotEmpty(t, saved.ID)
	assert.Len(t, f.inventory.FilterByCategory("Muscle"), 2)

	rec = f.do(t, http.MethodDelete, "/api/admin/vehicles/"+saved.ID, nil, true)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/admin/vehicles/"+saved.ID+"?confirm=true", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/admin/vehicles/"+saved.ID+"?confirm=true", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_SaveVehicleTrimsID(t *testing.T) {
	f := newFixture(t)

	body, err := json.Marshal(entity.Vehicle{ID: "  m67 ", Make: "Ford", Model: "Mustang", Year: 1967})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/admin/vehicles", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "m67", decode[entity.Vehicle](t, rec).ID)

	rec = f.do(t, http.MethodGet, "/api/vehicles/m67", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mustang", decode[entity.Vehicle](t, rec).Model)
}

func TestAdmin_SaveVehicleWithInlineImage(t *testing.T) {
	f := newFixture(t)

	image := "data:image/jpeg;base64," + strings.Repeat("A", 3<<20)
	body, err := json.Marshal(entity.Vehicle{ID: "c7", Make: "Jeep", Model: "CJ-5", Images: []string{image}})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/admin/vehicles", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	saved, err := f.inventory.GetVehicle("c7")
	require.NoError(t, err)
	require.Len(t, saved.Images, 1)
	assert.Len(t, saved.Images[0], len(image))

	// kategoriya nomi kichik so'rov bo'lib qoladi
	huge, err := json.Marshal(map[string]string{"name": strings.Repeat("x", 2<<20)})
	require.NoError(t, err)
	rec = f.do(t, http.MethodPost, "/api/admin/categories", huge, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_PersistenceFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	f.snapshots.FailSaves(entity.CollectionVehicles, -1, errors.New("disk full"))

	rec := f.do(t, http.MethodDelete, "/api/admin/vehicles/c1?confirm=true", nil, true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, usecase.ErrPersistence.Error(), decode[errorResponse](t, rec).Error)

	_, err := f.inventory.GetVehicle("c1")
	assert.NoError(t, err)
}

func TestAdmin_Events(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/api/admin/events", []byte(`{"title":"Cars and Coffee","date":"2026-11-01"}`), true)
	require.Equal(t, http.StatusOK, rec.Code)
	ev := decode[entity.Event](t, rec)
	require.NotEmpty(t, ev.ID)

	rec = f.do(t, http.MethodGet, "/api/events", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entity.Event](t, rec), 3)

	rec = f.do(t, http.MethodDelete, "/api/admin/events/"+ev.ID+"?confirm=true", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdmin_Content(t *testing.T) {
	f := newFixture(t)

	content := f.inventory.Content()
	content.Contact.Phone1 = "555-0100"
	body, err := json.Marshal(content)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/admin/content", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "555-0100", f.inventory.Content().Contact.Phone1)

	rec = f.do(t, http.MethodGet, "/api/content", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "555-0100"))
}

func TestAdmin_Import(t *testing.T) {
	f := newFixture(t)
	f.importer.vehicles = []entity.Vehicle{
		{Make: "Toyota", Model: "FJ40", Year: 1978, Price: 65000, Category: "Classic 4x4"},
		{Make: "Chevrolet", Model: "C10", Year: 1972, Price: 42000, Category: "Truck"},
	}

	rec := f.do(t, http.MethodPost, "/api/admin/import", []byte("xlsx-bytes"), true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[importResponse](t, rec).Imported)
	assert.Equal(t, []byte("xlsx-bytes"), f.importer.got)
	assert.Len(t, f.inventory.ListVehicles(), 8)

	f.importer.vehicles, f.importer.err = nil, errors.New("not a zip file")
	rec = f.do(t, http.MethodPost, "/api/admin/import", []byte("junk"), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, f.inventory.ListVehicles(), 8)
}
