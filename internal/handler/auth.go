package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/croc-pos/api/internal/auth"
	"github.com/croc-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore defines the storage methods needed by auth handlers.
// Satisfied by *storage.Store; narrow interface for testability.
type AuthStore interface {
	GetUserByEmail(ctx context.Context, email string) (storage.User, error)
	CreateUser(ctx context.Context, user storage.User) error
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	store         AuthStore
	jwtSecret     string
	allowedEmails map[string]bool
}

// NewAuthHandler creates a new AuthHandler. Only allow-listed emails can ever
// authenticate or register.
func NewAuthHandler(store AuthStore, jwtSecret string, allowedEmails []string) *AuthHandler {
	allowed := make(map[string]bool, len(allowedEmails))
	for _, email := range allowedEmails {
		allowed[email] = true
	}
	return &AuthHandler{store: store, jwtSecret: jwtSecret, allowedEmails: allowed}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
	Registered  bool   `json:"registered"`
}

// --- Handlers ---

// Login authenticates an allow-listed email. An allow-listed email with no
// stored record is registered on the spot with the supplied password
// (first-use self-registration: whatever password arrives first becomes
// permanent; there is no change flow).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	if !h.allowedEmails[req.Email] {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "email not authorized"})
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.registerAndRespond(w, r, req)
			return
		}
		log.Printf("ERROR: get user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "wrong password"})
		return
	}

	h.respondWithToken(w, req.Email, false)
}

// --- Helpers ---

func (h *AuthHandler) registerAndRespond(w http.ResponseWriter, r *http.Request, req loginRequest) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("ERROR: hash password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if err := h.store.CreateUser(r.Context(), storage.User{Email: req.Email, PasswordHash: string(hashed)}); err != nil {
		log.Printf("ERROR: create user: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.respondWithToken(w, req.Email, true)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, email string, registered bool) {
	accessToken, err := auth.GenerateToken(h.jwtSecret, email)
	if err != nil {
		log.Printf("ERROR: generate token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		Email:       email,
		Registered:  registered,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
