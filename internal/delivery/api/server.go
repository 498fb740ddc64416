package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	"github.com/yourusername/rocket-motor-showroom/internal/usecase"
	"github.com/yourusername/rocket-motor-showroom/pkg/errx"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

const (
	maxJSONBody   = 1 << 20
	maxImportBody = 10 << 20

	// maxRecordBody mashina, kontent va tadbir yozuvlari uchun, rasmlar data URI bo'lishi mumkin
	maxRecordBody = 32 << 20

	// httpActorID HTTP orqali qilingan admin harakatlari uchun
	httpActorID int64 = 0
)

// errorMappings domen xatolarini HTTP statuslarga bog'lash
var errorMappings = []errx.Mapping{
	{Target: usecase.ErrVehicleNotFound, Status: http.StatusNotFound},
	{Target: usecase.ErrEventNotFound, Status: http.StatusNotFound},
	{Target: usecase.ErrCategoryNotFound, Status: http.StatusNotFound},
	{Target: usecase.ErrSlideNotFound, Status: http.StatusNotFound},
	{Target: usecase.ErrCategoryExists, Status: http.StatusConflict},
	{Target: usecase.ErrCommitInProgress, Status: http.StatusConflict},
	{Target: usecase.ErrInvalidCategory, Status: http.StatusBadRequest},
	{Target: usecase.ErrInvalidField, Status: http.StatusBadRequest},
	{Target: usecase.ErrEmptyImport, Status: http.StatusBadRequest},
	{Target: usecase.ErrPersistence, Status: http.StatusBadGateway},
}

// Server salonning JSON API si
type Server struct {
	Router *mux.Router

	inventory usecase.InventoryUseCase
	compare   usecase.CompareUseCase
	admin     usecase.AdminUseCase
	importer  repository.InventoryImporter
	carousel  *usecase.Carousel
}

// NewServer marshrutlarni ro'yxatdan o'tkazadi. carousel nil bo'lishi mumkin.
func NewServer(
	inventory usecase.InventoryUseCase,
	compare usecase.CompareUseCase,
	admin usecase.AdminUseCase,
	importer repository.InventoryImporter,
	carousel *usecase.Carousel,
) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		inventory: inventory,
		compare:   compare,
		admin:     admin,
		importer:  importer,
		carousel:  carousel,
	}
	s.Router.StrictSlash(true)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.Router.PathPrefix("/api").Subrouter()
	r.Use(requestLogMiddleware, contentTypeApplicationJsonMiddleware)

	r.HandleFunc("/vehicles", s.VehiclesHandler).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}", s.VehicleHandler).Methods(http.MethodGet)
	r.HandleFunc("/categories", s.CategoriesHandler).Methods(http.MethodGet)
	r.HandleFunc("/content", s.ContentHandler).Methods(http.MethodGet)
	r.HandleFunc("/events", s.EventsHandler).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}", s.EventHandler).Methods(http.MethodGet)
	r.HandleFunc("/hero", s.HeroHandler).Methods(http.MethodGet)
	r.HandleFunc("/compare", s.CompareHandler).Methods(http.MethodGet)

	a := r.PathPrefix("/admin").Subrouter()
	a.Use(s.basicAuthMiddleware)
	a.HandleFunc("/vehicles", s.SaveVehicleHandler).Methods(http.MethodPut)
	a.HandleFunc("/vehicles/{id}", s.DeleteVehicleHandler).Methods(http.MethodDelete)
	a.HandleFunc("/categories", s.AddCategoryHandler).Methods(http.MethodPost)
	a.HandleFunc("/categories/{name}", s.DeleteCategoryHandler).Methods(http.MethodDelete)
	a.HandleFunc("/content", s.SaveContentHandler).Methods(http.MethodPut)
	a.HandleFunc("/events", s.SaveEventHandler).Methods(http.MethodPut)
	a.HandleFunc("/events/{id}", s.DeleteEventHandler).Methods(http.MethodDelete)
	a.HandleFunc("/import", s.ImportHandler).Methods(http.MethodPost)
}

// ServeHTTP http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// Run kontekst tugaguncha tinglaydi, keyin serverni to'xtatadi
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Handler:      s.Router,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", addr).Msg("HTTP server ishga tushdi")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logx.Info().Msg("HTTP server to'xtatildi")
		return nil
	}
}

func contentTypeApplicationJsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logx.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("http so'rov")
	})
}

type adminUserKey struct{}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !s.admin.Authenticate(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="showroom-admin"`)
			writeError(w, errx.New(usecase.ErrNotAdmin, http.StatusUnauthorized, "admin credentials required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminUserKey{}, user)))
	})
}

func adminUser(r *http.Request) string {
	user, _ := r.Context().Value(adminUserKey{}).(string)
	return user
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logx.Error().Err(err).Msg("cannot marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	appErr := errx.Wrap(err, errorMappings...)
	if appErr.Status >= http.StatusInternalServerError {
		logx.Error().Err(err).Int("status", appErr.Status).Msg("API xatosi")
	}
	writeJSON(w, appErr.Status, errorResponse{Error: appErr.Message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errx.New(err, http.StatusBadRequest, "invalid request body")
	}
	return nil
}

// requireConfirm o'chirishlar ?confirm=true talab qiladi
func requireConfirm(r *http.Request) error {
	if r.URL.Query().Get("confirm") != "true" {
		return errx.New(nil, http.StatusPreconditionRequired, "add confirm=true to delete")
	}
	return nil
}

// VehiclesHandler kategoriya bo'yicha ro'yxat
func (s *Server) VehiclesHandler(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = entity.AllCategory
	}
	writeJSON(w, http.StatusOK, s.inventory.FilterByCategory(category))
}

func (s *Server) VehicleHandler(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.inventory.GetVehicle(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.inventory.Categories())
}

func (s *Server) ContentHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.inventory.Content())
}

func (s *Server) EventsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.inventory.ListEvents())
}

func (s *Server) EventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := s.inventory.GetEvent(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type heroResponse struct {
	Slide  *entity.HeroSlide  `json:"slide"`
	Index  int                `json:"index"`
	Total  int                `json:"total"`
	Slides []entity.HeroSlide `json:"slides"`
	Hero   entity.HeroContent `json:"hero"`
}

// HeroHandler joriy karusel slaydi
func (s *Server) HeroHandler(w http.ResponseWriter, r *http.Request) {
	content := s.inventory.Content()
	resp := heroResponse{
		Slides: s.inventory.HeroSlides(),
		Hero:   content.Hero,
	}
	resp.Hero.Slides = nil

	if s.carousel != nil {
		if slide, idx, total, ok := s.carousel.Current(); ok {
			resp.Slide, resp.Index, resp.Total = &slide, idx, total
		}
	} else if len(resp.Slides) > 0 {
		resp.Slide, resp.Total = &resp.Slides[0], len(resp.Slides)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompareHandler ?a=<id>&b=<id>
func (s *Server) CompareHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, b := q.Get("a"), q.Get("b")
	if a == "" || b == "" {
		writeError(w, errx.New(nil, http.StatusBadRequest, "query parameters a and b are required"))
		return
	}
	result, err := s.compare.Compare(a, b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SaveVehicleHandler ID bo'sh bo'lsa yangi ID beriladi
func (s *Server) SaveVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var vehicle entity.Vehicle
	if err := decodeJSON(w, r, maxRecordBody, &vehicle); err != nil {
		writeError(w, err)
		return
	}
	vehicle.ID = strings.TrimSpace(vehicle.ID)
	if vehicle.ID == "" {
		vehicle.ID = s.inventory.NewVehicleDraft().ID
	}
	if err := s.inventory.SaveVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "save_vehicle", adminUser(r)+": "+vehicle.ID)
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	if err := requireConfirm(r); err != nil {
		writeError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.inventory.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "delete_vehicle", adminUser(r)+": "+id)
	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) AddCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.inventory.AddCategory(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "add_category", adminUser(r)+": "+req.Name)
	writeJSON(w, http.StatusCreated, s.inventory.Categories())
}

func (s *Server) DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := requireConfirm(r); err != nil {
		writeError(w, err)
		return
	}
	name := mux.Vars(r)["name"]
	if err := s.inventory.DeleteCategory(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "delete_category", adminUser(r)+": "+name)
	w.WriteHeader(http.StatusNoContent)
}

// SaveContentHandler kontent to'liq almashtiriladi
func (s *Server) SaveContentHandler(w http.ResponseWriter, r *http.Request) {
	var content entity.SiteContent
	if err := decodeJSON(w, r, maxRecordBody, &content); err != nil {
		writeError(w, err)
		return
	}
	if err := s.inventory.SaveContent(r.Context(), content); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "save_content", adminUser(r))
	writeJSON(w, http.StatusOK, s.inventory.Content())
}

func (s *Server) SaveEventHandler(w http.ResponseWriter, r *http.Request) {
	var event entity.Event
	if err := decodeJSON(w, r, maxRecordBody, &event); err != nil {
		writeError(w, err)
		return
	}
	event.ID = strings.TrimSpace(event.ID)
	if event.ID == "" {
		event.ID = s.inventory.NewEventDraft().ID
	}
	if err := s.inventory.SaveEvent(r.Context(), event); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "save_event", adminUser(r)+": "+event.ID)
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	if err := requireConfirm(r); err != nil {
		writeError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	if err := s.inventory.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "delete_event", adminUser(r)+": "+id)
	w.WriteHeader(http.StatusNoContent)
}

type importResponse struct {
	Imported int `json:"imported"`
}

// ImportHandler so'rov tanasi xlsx fayl
func (s *Server) ImportHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBody))
	if err != nil {
		writeError(w, errx.New(err, http.StatusRequestEntityTooLarge, "import file too large"))
		return
	}

	vehicles, err := s.importer.ParseVehiclesFromBytes(r.Context(), data, "upload.xlsx")
	if err != nil {
		writeError(w, errx.New(err, http.StatusBadRequest, "cannot read xlsx file"))
		return
	}
	n, err := s.inventory.ImportVehicles(r.Context(), vehicles)
	if err != nil {
		writeError(w, err)
		return
	}
	s.admin.RecordAction(r.Context(), httpActorID, "import_inventory", adminUser(r))
	writeJSON(w, http.StatusOK, importResponse{Imported: n})
}
