package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/croc-pos/api/internal/service"
	"github.com/croc-pos/api/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// OrderStore defines the storage methods needed by order read endpoints.
// Satisfied by *storage.Store; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]storage.Order, error)
	ListOrdersByDate(ctx context.Context, date string) ([]storage.Order, error)
	ListOrdersWithin(ctx context.Context, start, end string) ([]storage.Order, error)
	GetOrder(ctx context.Context, id int64) (storage.Order, error)
}

// OrderHandler handles order endpoints. Orders are immutable once created:
// there are no update or delete routes.
type OrderHandler struct {
	svc   *service.OrderService
	store OrderStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService, store OrderStore) *OrderHandler {
	return &OrderHandler{svc: svc, store: store}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
}

// --- Request / Response types ---

type createOrderRequest struct {
	OrderType   string                   `json:"order_type"`
	CustomerID  *int64                   `json:"customer_id"`
	DeliveryFee string                   `json:"delivery_fee"`
	Items       []createOrderItemRequest `json:"items"`
}

type createOrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type orderResponse struct {
	ID            int64              `json:"id"`
	Timestamp     string             `json:"timestamp"`
	OrderType     string             `json:"order_type"`
	CustomerID    *int64             `json:"customer_id,omitempty"`
	ItemsSubtotal string             `json:"items_subtotal"`
	DeliveryFee   string             `json:"delivery_fee"`
	Total         string             `json:"total"`
	Items         []lineItemResponse `json:"line_items"`
}

type lineItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func toOrderResponse(o storage.Order) orderResponse {
	items := make([]lineItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = lineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
	}
	return orderResponse{
		ID:            o.ID,
		Timestamp:     o.Timestamp,
		OrderType:     o.Type,
		CustomerID:    o.CustomerID,
		ItemsSubtotal: o.ItemsSubtotal.StringFixed(2),
		DeliveryFee:   o.DeliveryFee.StringFixed(2),
		Total:         o.Total.StringFixed(2),
		Items:         items,
	}
}

// --- Handlers ---

// List returns orders, optionally filtered by ?date= or by an inclusive
// ?start_date=&end_date= range (all YYYY-MM-DD).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	startDate := q.Get("start_date")
	endDate := q.Get("end_date")

	var (
		orders []storage.Order
		err    error
	)
	switch {
	case date != "":
		if !isValidDate(date) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format"})
			return
		}
		orders, err = h.store.ListOrdersByDate(r.Context(), date)
	case startDate != "" || endDate != "":
		if !isValidDate(startDate) || !isValidDate(endDate) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start_date and end_date are required together"})
			return
		}
		if startDate > endDate {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "start_date must not be after end_date"})
			return
		}
		orders, err = h.store.ListOrdersWithin(r.Context(), startDate, endDate)
	default:
		orders, err = h.store.ListOrders(r.Context())
	}
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single order with its line items.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Create registers a new order at the current wall-clock time.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	fee := decimal.Zero
	if req.DeliveryFee != "" {
		parsed, err := decimal.NewFromString(req.DeliveryFee)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid delivery_fee"})
			return
		}
		fee = parsed
	}

	items := make([]service.CreateOrderItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateOrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		OrderType:   req.OrderType,
		CustomerID:  req.CustomerID,
		DeliveryFee: fee,
		Items:       items,
	})
	if err != nil {
		if isOrderValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

// --- Helpers ---

func isOrderValidationError(err error) bool {
	for _, known := range []error{
		service.ErrEmptyItems,
		service.ErrInvalidOrderType,
		service.ErrInvalidQuantity,
		service.ErrQuantityExceedsStock,
		service.ErrProductNotFound,
		service.ErrCustomerRequired,
		service.ErrCustomerNotFound,
		service.ErrNegativeDeliveryFee,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func isValidDate(s string) bool {
	_, err := time.Parse(storage.DateLayout, s)
	return err == nil
}
