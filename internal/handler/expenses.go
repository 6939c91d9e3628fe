package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"github.com/croc-pos/api/internal/enum"
	"github.com/croc-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ExpenseStore defines the storage methods needed by expense handlers.
// Satisfied by *storage.Store; narrow interface for testability.
type ExpenseStore interface {
	ListExpenses(ctx context.Context) ([]storage.Expense, error)
	CreateExpense(ctx context.Context, arg storage.CreateExpenseParams) (storage.Expense, error)
}

// ExpenseHandler handles expense endpoints. Expenses are append-only: there
// are no update or delete routes.
type ExpenseHandler struct {
	store ExpenseStore
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(store ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{store: store}
}

// RegisterRoutes registers expense endpoints on the given Chi router.
func (h *ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

// --- Request / Response types ---

type createExpenseRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

type expenseResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

func toExpenseResponse(e storage.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount.StringFixed(2),
		Date:        e.Date,
	}
}

// --- Handlers ---

// List returns all expenses sorted by date descending; ties keep file order.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.store.ListExpenses(r.Context())
	if err != nil {
		log.Printf("ERROR: list expenses: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date > expenses[j].Date })

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create records a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "description is required"})
		return
	}
	if !enum.IsValidExpenseCategory(req.Category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category"})
		return
	}
	if !isValidDate(req.Date) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amount"})
		return
	}

	expense, err := h.store.CreateExpense(r.Context(), storage.CreateExpenseParams{
		Description: req.Description,
		Category:    req.Category,
		Amount:      amount,
		Date:        req.Date,
	})
	if err != nil {
		log.Printf("ERROR: create expense: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}
