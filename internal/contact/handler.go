package contact

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"portfolio-api/internal/httpx"
)

// Handler exposes the /contact endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the public validated submit and the admin triage endpoints.
func (h *Handler) Routes(adminOnly ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Submit)

	r.Group(func(ar chi.Router) {
		ar.Use(adminOnly...)
		ar.Get("/", h.List)
		ar.Patch("/{id}/status", h.UpdateStatus)
		ar.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var in SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// the validator short-circuits before anything is persisted
	if errs := ValidateSubmission(&in); len(errs) > 0 {
		httpx.FieldErrors(w, errs)
		return
	}

	c, err := h.svc.Submit(r.Context(), in, clientIP(r), r.UserAgent())
	if err != nil {
		h.logger.Errorw("contact submit failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.CreatedMessage(w, "Thank you for your message! I will get back to you soon.", map[string]string{
		"id":    c.ID,
		"name":  c.Name,
		"email": c.Email,
	})
}

// clientIP strips the port from RemoteAddr; chi's RealIP has already
// substituted forwarding headers when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.logger.Errorw("list contacts failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.List(w, len(subs), subs)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			httpx.Error(w, http.StatusBadRequest, "Status must be one of: new, read, responded")
		case errors.Is(err, ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "Contact not found")
		default:
			h.logger.Errorw("update contact status failed", "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.OK(w, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Contact not found")
			return
		}
		h.logger.Errorw("delete contact failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.Message(w, http.StatusOK, "Contact deleted successfully")
}
