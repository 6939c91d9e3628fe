package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/croc-pos/api/internal/auth"
	"github.com/croc-pos/api/internal/handler"
	"github.com/croc-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// --- Mock store ---

type mockAuthStore struct {
	users map[string]storage.User // keyed by email
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{users: make(map[string]storage.User)}
}

func (m *mockAuthStore) GetUserByEmail(_ context.Context, email string) (storage.User, error) {
	u, ok := m.users[email]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (m *mockAuthStore) CreateUser(_ context.Context, user storage.User) error {
	m.users[user.Email] = user
	return nil
}

// --- Helpers ---

func setupAuthRouter(store *mockAuthStore, allowedEmails []string) *chi.Mux {
	h := handler.NewAuthHandler(store, testSecret, allowedEmails)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func postLogin(t *testing.T, router http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeAuthResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// --- Tests ---

func TestLoginFirstUseRegisters(t *testing.T) {
	store := newMockAuthStore()
	router := setupAuthRouter(store, []string{"gerente@croc.com.br"})

	rr := postLogin(t, router, "gerente@croc.com.br", "segredo123")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeAuthResponse(t, rr)
	if resp["registered"] != true {
		t.Errorf("expected registered true, got %v", resp["registered"])
	}
	if resp["access_token"] == "" {
		t.Error("expected an access token")
	}

	// The password arriving first becomes the stored credential.
	stored, ok := store.users["gerente@croc.com.br"]
	if !ok {
		t.Fatal("expected user to be created")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestLoginExistingUser(t *testing.T) {
	store := newMockAuthStore()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.DefaultCost)
	store.users["gerente@croc.com.br"] = storage.User{
		Email:        "gerente@croc.com.br",
		PasswordHash: string(hashed),
	}
	router := setupAuthRouter(store, []string{"gerente@croc.com.br"})

	rr := postLogin(t, router, "gerente@croc.com.br", "segredo123")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeAuthResponse(t, rr)
	if resp["registered"] != false {
		t.Errorf("expected registered false, got %v", resp["registered"])
	}

	token, ok := resp["access_token"].(string)
	if !ok || token == "" {
		t.Fatal("expected an access token")
	}
	claims, err := auth.ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.Email != "gerente@croc.com.br" {
		t.Errorf("token email: got %q", claims.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newMockAuthStore()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.DefaultCost)
	store.users["gerente@croc.com.br"] = storage.User{
		Email:        "gerente@croc.com.br",
		PasswordHash: string(hashed),
	}
	router := setupAuthRouter(store, []string{"gerente@croc.com.br"})

	rr := postLogin(t, router, "gerente@croc.com.br", "errada")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestLoginEmailNotAllowed(t *testing.T) {
	store := newMockAuthStore()
	router := setupAuthRouter(store, []string{"gerente@croc.com.br"})

	rr := postLogin(t, router, "intruso@example.com", "qualquer")

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rr.Code)
	}
	if len(store.users) != 0 {
		t.Error("expected no user to be created")
	}
}

func TestLoginMissingFields(t *testing.T) {
	store := newMockAuthStore()
	router := setupAuthRouter(store, []string{"gerente@croc.com.br"})

	rr := postLogin(t, router, "gerente@croc.com.br", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing password, got %d", rr.Code)
	}

	rr = postLogin(t, router, "", "segredo123")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing email, got %d", rr.Code)
	}
}

func TestLoginInvalidBody(t *testing.T) {
	store := newMockAuthStore()
	router := setupAuthRouter(store, []string{"gerente@croc.com.br"})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("not-json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}
