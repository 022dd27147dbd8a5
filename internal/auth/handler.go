package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"portfolio-api/internal/httpx"
	"portfolio-api/internal/middleware"
)

// Handler exposes the /auth endpoints.
type Handler struct {
	svc    *UserService
	tokens *TokenService
	logger *zap.SugaredLogger
}

func NewHandler(svc *UserService, tokens *TokenService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// Routes mounts register/login publicly and me/password behind the auth gate.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(h.tokens))
		pr.Get("/me", h.Me)
		pr.Patch("/password", h.ChangePassword)
	})
	return r
}

// identityResponse is the body returned by register and login: identity
// fields plus the freshly issued token, never the password.
type identityResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateRegistration(req); msg != "" {
		httpx.Error(w, http.StatusBadRequest, msg)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			httpx.Error(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.logger.Errorw("register failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.Created(w, identityResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.logger.Debugw("login rejected", "email", req.Email)
			httpx.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Errorw("login failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.logger.Errorw("token issue failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.OK(w, identityResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserID(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	u, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorw("profile lookup failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	httpx.OK(w, u)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserID(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.NewPassword) < 8 {
		httpx.Error(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	if err := h.svc.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrBadCredentials):
			httpx.Error(w, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, ErrNotFound):
			httpx.Error(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Errorw("password change failed", "err", err)
			httpx.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	httpx.Message(w, http.StatusOK, "Password updated successfully")
}

func validateRegistration(req registerRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		return "Valid email is required"
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}
