package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/croc-pos/api/internal/handler"
	"github.com/croc-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
)

// --- Mock store ---

type mockCustomerStore struct {
	customers []storage.Customer
}

func (m *mockCustomerStore) ListCustomers(_ context.Context) ([]storage.Customer, error) {
	return m.customers, nil
}

func (m *mockCustomerStore) GetCustomer(_ context.Context, id int64) (storage.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return storage.Customer{}, storage.ErrNotFound
}

func (m *mockCustomerStore) CreateCustomer(_ context.Context, arg storage.CreateCustomerParams) (storage.Customer, error) {
	taxID := storage.NormalizeDigits(arg.TaxID)
	phone := storage.NormalizeDigits(arg.Phone)
	for _, c := range m.customers {
		if storage.NormalizeDigits(c.TaxID) == taxID {
			return storage.Customer{}, storage.ErrDuplicateTaxID
		}
	}
	for _, c := range m.customers {
		if storage.NormalizeDigits(c.Phone) == phone {
			return storage.Customer{}, storage.ErrDuplicatePhone
		}
	}

	c := storage.Customer{
		ID:      int64(len(m.customers) + 1),
		Name:    arg.Name,
		TaxID:   storage.FormatTaxID(arg.TaxID),
		Address: arg.Address,
		Phone:   storage.FormatPhone(arg.Phone),
	}
	m.customers = append(m.customers, c)
	return c, nil
}

// --- Helpers ---

func setupCustomerRouter(store *mockCustomerStore) *chi.Mux {
	h := handler.NewCustomerHandler(store)
	r := chi.NewRouter()
	r.Route("/customers", h.RegisterRoutes)
	return r
}

func decodeCustomerResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// --- Tests ---

func TestCustomerList(t *testing.T) {
	store := &mockCustomerStore{customers: []storage.Customer{
		{ID: 1, Name: "Maria Silva", TaxID: "123.456.789-09", Phone: "(11) 98765-4321"},
		{ID: 2, Name: "Joao Souza", Phone: "(11) 3456-7890"},
	}}
	router := setupCustomerRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(resp))
	}
	if resp[0]["tax_id"] != "123.456.789-09" {
		t.Errorf("tax_id: got %v", resp[0]["tax_id"])
	}
}

func TestCustomerGet(t *testing.T) {
	store := &mockCustomerStore{customers: []storage.Customer{
		{ID: 1, Name: "Maria Silva", TaxID: "123.456.789-09", Address: "Rua das Flores 100", Phone: "(11) 98765-4321"},
	}}
	router := setupCustomerRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/customers/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeCustomerResponse(t, rr)
	if resp["name"] != "Maria Silva" {
		t.Errorf("name: got %v", resp["name"])
	}
	if resp["address"] != "Rua das Flores 100" {
		t.Errorf("address: got %v", resp["address"])
	}
}

func TestCustomerGetNotFound(t *testing.T) {
	store := &mockCustomerStore{}
	router := setupCustomerRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/customers/42", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestCustomerCreate(t *testing.T) {
	store := &mockCustomerStore{}
	router := setupCustomerRouter(store)

	body := map[string]interface{}{
		"name":    "Maria Silva",
		"tax_id":  "12345678909",
		"address": "Rua das Flores 100",
		"phone":   "11987654321",
	}
	bodyJSON, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeCustomerResponse(t, rr)
	if resp["tax_id"] != "123.456.789-09" {
		t.Errorf("tax_id: got %v, want 123.456.789-09", resp["tax_id"])
	}
	if resp["phone"] != "(11) 98765-4321" {
		t.Errorf("phone: got %v, want (11) 98765-4321", resp["phone"])
	}
}

func TestCustomerCreateMissingName(t *testing.T) {
	store := &mockCustomerStore{}
	router := setupCustomerRouter(store)

	body := map[string]interface{}{"phone": "11987654321"}
	bodyJSON, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}

	resp := decodeCustomerResponse(t, rr)
	if !strings.Contains(resp["error"].(string), "name is required") {
		t.Errorf("expected 'name is required' error, got %v", resp["error"])
	}
}

func TestCustomerCreateDuplicateTaxID(t *testing.T) {
	store := &mockCustomerStore{customers: []storage.Customer{
		{ID: 1, Name: "Maria Silva", TaxID: "123.456.789-09", Phone: "(11) 98765-4321"},
	}}
	router := setupCustomerRouter(store)

	// Same digits, unformatted
	body := map[string]interface{}{
		"name":   "Outra Maria",
		"tax_id": "12345678909",
		"phone":  "11911112222",
	}
	bodyJSON, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rr.Code)
	}

	resp := decodeCustomerResponse(t, rr)
	if !strings.Contains(resp["error"].(string), "tax id") {
		t.Errorf("expected tax id error, got %v", resp["error"])
	}
}

func TestCustomerCreateDuplicatePhone(t *testing.T) {
	store := &mockCustomerStore{customers: []storage.Customer{
		{ID: 1, Name: "Maria Silva", TaxID: "123.456.789-09", Phone: "(11) 98765-4321"},
	}}
	router := setupCustomerRouter(store)

	body := map[string]interface{}{
		"name":   "Joao Souza",
		"tax_id": "98765432100",
		"phone":  "11987654321",
	}
	bodyJSON, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rr.Code)
	}

	resp := decodeCustomerResponse(t, rr)
	if !strings.Contains(resp["error"].(string), "phone") {
		t.Errorf("expected phone error, got %v", resp["error"])
	}
}
