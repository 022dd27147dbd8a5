package project

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"portfolio-api/internal/httpx"
	"portfolio-api/internal/project/entity"
	projectrepo "portfolio-api/internal/project/repo"
)

// Handler exposes the /projects endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts public reads and admin-gated writes. adminOnly is the
// composed RequireAuth+RequireRole chain supplied by the router.
func (h *Handler) Routes(adminOnly ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/featured", h.Featured)
	r.Get("/category/{category}", h.ByCategory)
	r.Get("/{id}", h.Get)

	r.Group(func(ar chi.Router) {
		ar.Use(adminOnly...)
		ar.Post("/", h.Create)
		ar.Put("/{id}", h.Update)
		ar.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := projectrepo.Filter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true"
		f.Featured = &featured
	}

	projects, err := h.svc.List(r.Context(), f)
	if err != nil {
		h.logger.Errorw("list projects failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.List(w, len(projects), projects)
}

func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Featured(r.Context())
	if err != nil {
		h.logger.Errorw("list featured projects failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.List(w, len(projects), projects)
}

func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	projects, err := h.svc.ByCategory(r.Context(), category)
	if err != nil {
		h.logger.Errorw("list projects by category failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.List(w, len(projects), projects)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Errorw("get project failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p entity.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.svc.Create(r.Context(), &p); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.Created(w, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p entity.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := h.svc.Update(r.Context(), &p); err != nil {
		h.writeError(w, err)
		return
	}
	// return the stored row so timestamps are current
	updated, err := h.svc.Get(r.Context(), p.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpx.OK(w, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Project deleted successfully")
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		httpx.Error(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Project not found")
	default:
		h.logger.Errorw("project operation failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
