package handler

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iurnickita/entitlementsupport/internal/actions"
	"github.com/iurnickita/entitlementsupport/internal/auth"
	"github.com/iurnickita/entitlementsupport/internal/handler/config"
	"github.com/iurnickita/entitlementsupport/internal/journal"
	"github.com/iurnickita/entitlementsupport/internal/logger"
	"github.com/iurnickita/entitlementsupport/internal/model"
	"github.com/iurnickita/entitlementsupport/internal/state"
	"github.com/iurnickita/entitlementsupport/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

var views = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Store is the part of the state store the panel needs.
type Store interface {
	Dispatch(action state.Action)
	Run(thunk store.Thunk) (<-chan struct{}, error)
	GetState() state.State
}

func Serve(ctx context.Context, cfg config.Config, auth auth.Auth, store Store, creators *actions.Creators, journal journal.Journal, logLevel zap.AtomicLevel, zaplog *zap.Logger) error {
	h := newHandler(auth, store, creators, journal, cfg.SubmitWait, logLevel, zaplog)
	router := h.newRouter()

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zaplog.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zaplog.Info("entitlement support panel started", zap.String("address", cfg.ServerAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type handler struct {
	auth       auth.Auth
	store      Store
	creators   *actions.Creators
	journal    journal.Journal
	submitWait time.Duration
	logLevel   zap.AtomicLevel
	zaplog     *zap.Logger
}

func newHandler(auth auth.Auth, store Store, creators *actions.Creators, journal journal.Journal, submitWait time.Duration, logLevel zap.AtomicLevel, zaplog *zap.Logger) *handler {
	return &handler{
		auth:       auth,
		store:      store,
		creators:   creators,
		journal:    journal,
		submitWait: submitWait,
		logLevel:   logLevel,
		zaplog:     zaplog,
	}
}

func (h *handler) newRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(logger.RequestLogMdlw(h.zaplog))
	router.Use(compress)

	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(h.auth.Middleware)

		r.Get("/", h.GetMain)
		r.Get("/api/state", h.GetState)
		r.Get("/api/entitlements/{uuid}/support", h.GetSupportHistory)
		r.Method(http.MethodGet, "/debug/loglevel", h.logLevel)
		r.Method(http.MethodPut, "/debug/loglevel", h.logLevel)
		r.Post("/search", h.PostSearch)
		r.Post("/modal/create", h.PostOpenCreation)
		r.Post("/modal/reissue", h.PostOpenReissue)
		r.Post("/modal/close", h.PostCloseModal)
		r.Post("/entitlements/reissue", h.PostReissue)
		r.Post("/entitlements/create", h.PostCreate)
	})

	return router
}

func compress(h http.Handler) http.Handler {
	return gzhttp.GzipHandler(h)
}

func (h *handler) GetMain(w http.ResponseWriter, r *http.Request) {
	s := h.store.GetState()
	page := mapPage(s)

	// история поддержки для открытого на перевыпуск права
	if active := s.Modal.ActiveEntitlement; s.Modal.ModalOpen && active != nil {
		details, err := h.journal.List(r.Context(), active.UUID)
		if err != nil {
			h.zaplog.Warn("support history unavailable",
				zap.String("entitlement", active.UUID),
				zap.Error(err),
			)
		}
		page.Modal.History = mapHistory(details)
	}

	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, "main", page); err != nil {
		h.zaplog.Error("render main page", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *handler) GetState(w http.ResponseWriter, r *http.Request) {
	responseJSON, err := json.Marshal(h.store.GetState())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseJSON)
}

func (h *handler) GetSupportHistory(w http.ResponseWriter, r *http.Request) {
	details, err := h.journal.List(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		h.zaplog.Error("list support history", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if details == nil {
		details = []model.SupportDetail{}
	}

	responseJSON, err := json.Marshal(details)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseJSON)
}

func (h *handler) PostSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.run(w, r, h.creators.FetchEntitlements(
		r.PostForm.Get("email"),
		r.PostForm.Get("username"),
		r.PostForm.Get("course_key"),
	))
}

func (h *handler) PostOpenCreation(w http.ResponseWriter, r *http.Request) {
	h.store.Dispatch(h.creators.OpenEntitlementCreationModal())
	redirectMain(w, r)
}

func (h *handler) PostOpenReissue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entitlement, ok := h.store.GetState().Entitlements.Find(r.PostForm.Get("uuid"))
	if !ok {
		http.Error(w, "entitlement not found", http.StatusNotFound)
		return
	}
	h.store.Dispatch(h.creators.OpenEntitlementReissueModal(entitlement))
	redirectMain(w, r)
}

func (h *handler) PostCloseModal(w http.ResponseWriter, r *http.Request) {
	if h.store.GetState().Modal.ActiveEntitlement != nil {
		h.store.Dispatch(actions.CloseEntitlementReissueModal())
	} else {
		h.store.Dispatch(actions.CloseEntitlementCreationModal())
	}
	redirectMain(w, r)
}

func (h *handler) PostReissue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// перевыпуск только для открытого в окне права
	modal := h.store.GetState().Modal
	active := modal.ActiveEntitlement
	if !modal.ModalOpen || active == nil || active.UUID != r.PostForm.Get("uuid") {
		http.Error(w, "entitlement is not open for re-issue", http.StatusConflict)
		return
	}

	h.run(w, r, h.creators.UpdateEntitlement(actions.Reissue{
		Session:         modal.Session,
		Reason:          r.PostForm.Get("reason"),
		EntitlementUUID: active.UUID,
		Comments:        r.PostForm.Get("comments"),
		User:            active.User,
		SupportUser:     auth.SupportUser(r.Context()),
	}))
}

func (h *handler) PostCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	modal := h.store.GetState().Modal
	if !modal.ModalOpen || modal.ActiveEntitlement != nil {
		http.Error(w, "creation form is not open", http.StatusConflict)
		return
	}

	h.run(w, r, h.creators.CreateEntitlement(actions.Creation{
		Session:     modal.Session,
		CourseUUID:  r.PostForm.Get("course_uuid"),
		User:        r.PostForm.Get("user"),
		Mode:        r.PostForm.Get("mode"),
		Reason:      r.PostForm.Get("reason"),
		Comments:    r.PostForm.Get("comments"),
		SupportUser: auth.SupportUser(r.Context()),
	}))
}

// run starts thunk and gives it submitWait to finish, so a fast API answer is
// already on the page the browser is redirected to.
func (h *handler) run(w http.ResponseWriter, r *http.Request, thunk store.Thunk) {
	done, err := h.store.Run(thunk)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	timer := time.NewTimer(h.submitWait)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	case <-r.Context().Done():
	}
	redirectMain(w, r)
}

func redirectMain(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
