package blog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"portfolio-api/internal/blog/entity"
	blogrepo "portfolio-api/internal/blog/repo"
	"portfolio-api/internal/httpx"
)

// Handler exposes the /blog endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts public reads (including the view bump) and admin writes.
func (h *Handler) Routes(adminOnly ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/tag/{tag}", h.ByTag)
	r.Get("/{slug}", h.GetBySlug)
	r.Patch("/{slug}/view", h.IncrementViews)

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
	published := publishedFilter(q)
	f := blogrepo.Filter{
		Category:  q.Get("category"),
		Tag:       q.Get("tag"),
		Search:    q.Get("search"),
		Published: &published,
	}

	posts, err := h.svc.List(r.Context(), f)
	if err != nil {
		h.logger.Errorw("list blogs failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.List(w, len(posts), posts)
}

// publishedFilter interprets the ?published param: absent defaults to
// published-only, and anything but "true" selects drafts.
func publishedFilter(q url.Values) bool {
	return !q.Has("published") || q.Get("published") == "true"
}

func (h *Handler) ByTag(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ByTag(r.Context(), chi.URLParam(r, "tag"))
	if err != nil {
		h.logger.Errorw("list blogs by tag failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.List(w, len(posts), posts)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Blog not found")
			return
		}
		h.logger.Errorw("get blog failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.OK(w, p)
}

func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.IncrementViews(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Blog not found")
			return
		}
		h.logger.Errorw("increment views failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.OK(w, map[string]int64{"views": views})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p entity.Post
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
	var p entity.Post
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := h.svc.Update(r.Context(), &p); err != nil {
		h.writeError(w, err)
		return
	}
	updated, err := h.svc.GetByID(r.Context(), p.ID)
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
	httpx.Message(w, http.StatusOK, "Blog deleted")
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		httpx.Error(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, ErrDuplicateSlug):
		httpx.Error(w, http.StatusConflict, "A post with this slug already exists")
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Blog not found")
	default:
		h.logger.Errorw("blog operation failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
