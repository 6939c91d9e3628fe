package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/croc-pos/api/internal/report"
	"github.com/croc-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
)

const rollingWindowDays = 30

// ReportsStore defines the storage methods needed by report handlers.
// Satisfied by *storage.Store; narrow interface for testability.
type ReportsStore interface {
	ListOrders(ctx context.Context) ([]storage.Order, error)
	ListExpenses(ctx context.Context) ([]storage.Expense, error)
}

// ReportsHandler handles the summary endpoint.
type ReportsHandler struct {
	store ReportsStore
	now   func() time.Time
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(store ReportsStore) *ReportsHandler {
	return &ReportsHandler{store: store, now: time.Now}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
}

// --- Response types ---

type summaryResponse struct {
	Daily            dailySummaryResponse    `json:"daily"`
	Rolling30d       rollingSummaryResponse  `json:"rolling_30d"`
	ExpenseBreakdown []categoryTotalResponse `json:"expense_breakdown"`
}

type dailySummaryResponse struct {
	Date           string `json:"date"`
	TotalOrders    int    `json:"total_orders"`
	CounterOrders  int    `json:"counter_orders"`
	DeliveryOrders int    `json:"delivery_orders"`
	Revenue        string `json:"revenue"`
}

type rollingSummaryResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TotalOrders int    `json:"total_orders"`
	Revenue     string `json:"revenue"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// --- Handlers ---

// Summary recomputes the daily and 30-day order aggregates plus the expense
// breakdown from full store contents. An optional ?date= query sets the
// reference date; it defaults to today.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	refDate := h.now()
	if s := r.URL.Query().Get("date"); s != "" {
		parsed, err := time.Parse(storage.DateLayout, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format"})
			return
		}
		refDate = parsed
	}

	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders for summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	expenses, err := h.store.ListExpenses(r.Context())
	if err != nil {
		log.Printf("ERROR: list expenses for summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	daily := report.Daily(orders, refDate)
	rolling := report.Rolling(orders, refDate, rollingWindowDays)
	breakdown := report.ExpenseBreakdown(expenses)

	breakdownResp := make([]categoryTotalResponse, len(breakdown))
	for i, ct := range breakdown {
		breakdownResp[i] = categoryTotalResponse{
			Category: ct.Category,
			Total:    ct.Total.StringFixed(2),
		}
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Daily: dailySummaryResponse{
			Date:           daily.Date,
			TotalOrders:    daily.TotalOrders,
			CounterOrders:  daily.CounterOrders,
			DeliveryOrders: daily.DeliveryOrders,
			Revenue:        daily.Revenue.StringFixed(2),
		},
		Rolling30d: rollingSummaryResponse{
			StartDate:   rolling.StartDate,
			EndDate:     rolling.EndDate,
			TotalOrders: rolling.TotalOrders,
			Revenue:     rolling.Revenue.StringFixed(2),
		},
		ExpenseBreakdown: breakdownResp,
	})
}
