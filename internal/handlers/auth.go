package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/models"
	"github.com/crucial707/forum-web/internal/validation"
)

// Messages returned by the placeholder auth endpoints.
const (
	MsgRegistered     = "registered successfully"
	MsgLoggedIn       = "logged in"
	MsgLoggedOut      = "logged out successfully"
	MsgFieldsRequired = "username, email and password are required"
	MsgEmailTaken     = "email is already registered"
)

// ==========================
// Auth Handler
// ==========================

// AuthHandler serves placeholder register/login/logout endpoints. Nothing is
// hashed or stored beyond the emails registered during this process.
type AuthHandler struct {
	// ReservedEmails are always reported as taken.
	ReservedEmails []string
	Now            func() time.Time
	Log            *slog.Logger

	mu     sync.Mutex
	nextID int
	taken  map[string]bool
}

func NewAuthHandler(reserved []string, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{ReservedEmails: reserved, Now: time.Now, Log: log}
}

func (h *AuthHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *AuthHandler) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}

// claim marks email as registered and returns the new user id, or false when
// the email is reserved or already taken.
func (h *AuthHandler) claim(email string) (int, bool) {
	key := strings.ToLower(email)
	for _, r := range h.ReservedEmails {
		if strings.EqualFold(r, key) {
			return 0, false
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.taken == nil {
		h.taken = make(map[string]bool)
		h.nextID = 100
	}
	if h.taken[key] {
		return 0, false
	}
	h.taken[key] = true
	h.nextID++
	return h.nextID, true
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		JSONError(w, MsgFieldsRequired, http.StatusBadRequest)
		return
	}
	if !validation.IsEmail(input.Email) {
		JSONError(w, validation.MsgEmailInvalid, http.StatusBadRequest)
		return
	}
	if msg := validation.NewPassword(input.Password); msg != "" {
		JSONError(w, msg, http.StatusBadRequest)
		return
	}

	id, ok := h.claim(input.Email)
	if !ok {
		JSONError(w, MsgEmailTaken, http.StatusConflict)
		return
	}

	ts := h.now().UTC()
	user := models.User{
		ID:        id,
		Username:  input.Username,
		Email:     input.Email,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	h.logger().InfoContext(r.Context(), "placeholder register", "user_id", id, "email", input.Email)
	writeJSON(w, http.StatusCreated, models.AuthResponse{Message: MsgRegistered, User: &user})
}

// ==========================
// Login (any valid email/password pair is accepted)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	errs := validation.Login(validation.LoginValues{Email: input.Email, Password: input.Password})
	if !errs.Valid() {
		JSONValidationError(w, "invalid credentials", errs.Fields(), http.StatusBadRequest)
		return
	}

	user := auth.SynthesizeUser(strings.TrimSpace(input.Email), h.now())
	writeJSON(w, http.StatusOK, models.AuthResponse{Message: MsgLoggedIn, User: user})
}

// ==========================
// Logout (no server-side state to clear)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.AuthResponse{Message: MsgLoggedOut})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// Routes returns the register, login and logout endpoints, ready to be
// mounted under /api/auth.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	return r
}
