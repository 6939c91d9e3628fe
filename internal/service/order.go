package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/croc-pos/api/internal/enum"
	"github.com/croc-pos/api/internal/storage"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service.
var (
	ErrEmptyItems           = errors.New("items are required")
	ErrInvalidOrderType     = errors.New("invalid order_type")
	ErrInvalidQuantity      = errors.New("quantity must be > 0")
	ErrQuantityExceedsStock = errors.New("quantity exceeds current stock")
	ErrProductNotFound      = errors.New("product not found")
	ErrCustomerRequired     = errors.New("customer_id is required for DELIVERY orders")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrNegativeDeliveryFee  = errors.New("delivery_fee must be >= 0")
)

// OrderStore defines the storage methods needed to create orders.
// Satisfied by *storage.Store; narrow interface for testability.
type OrderStore interface {
	GetProduct(ctx context.Context, id int64) (storage.Product, error)
	GetCustomer(ctx context.Context, id int64) (storage.Customer, error)
	CreateOrder(ctx context.Context, order storage.Order) (storage.Order, error)
}

// CreateOrderRequest is the validated input for creating an order.
type CreateOrderRequest struct {
	OrderType   string
	CustomerID  *int64
	DeliveryFee decimal.Decimal
	Items       []CreateOrderItemRequest
}

// CreateOrderItemRequest is a single item in the order.
type CreateOrderItemRequest struct {
	ProductID int64
	Quantity  int64
}

// OrderService handles order business logic.
type OrderService struct {
	store OrderStore
	now   func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

// SetNow overrides the clock used for order timestamps.
func (s *OrderService) SetNow(now func() time.Time) {
	s.now = now
}

// CreateOrder validates the request, snapshots current catalog names and
// prices into line items, computes totals, and persists the order. Stock is
// used only as an upper bound on quantities; it is not decremented
// (reconciliation is manual).
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (storage.Order, error) {
	if !enum.IsValidOrderType(req.OrderType) {
		return storage.Order{}, ErrInvalidOrderType
	}
	if len(req.Items) == 0 {
		return storage.Order{}, ErrEmptyItems
	}
	if req.DeliveryFee.IsNegative() {
		return storage.Order{}, ErrNegativeDeliveryFee
	}

	// Delivery orders need an existing customer; counter orders carry none.
	var customerID *int64
	if req.OrderType == enum.OrderTypeDelivery {
		if req.CustomerID == nil {
			return storage.Order{}, ErrCustomerRequired
		}
		if _, err := s.store.GetCustomer(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return storage.Order{}, ErrCustomerNotFound
			}
			return storage.Order{}, fmt.Errorf("get customer: %w", err)
		}
		customerID = req.CustomerID
	}

	subtotal := decimal.Zero
	items := make([]storage.LineItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return storage.Order{}, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}

		product, err := s.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return storage.Order{}, fmt.Errorf("item[%d]: %w", i, ErrProductNotFound)
			}
			return storage.Order{}, fmt.Errorf("item[%d]: get product: %w", i, err)
		}
		if item.Quantity > product.Quantity {
			return storage.Order{}, fmt.Errorf("item[%d]: %w", i, ErrQuantityExceedsStock)
		}

		items = append(items, storage.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	// The fee applies only to delivery orders.
	fee := decimal.Zero
	if req.OrderType == enum.OrderTypeDelivery {
		fee = req.DeliveryFee
	}

	order := storage.Order{
		Timestamp:     s.now().Format(storage.TimestampLayout),
		Type:          req.OrderType,
		CustomerID:    customerID,
		ItemsSubtotal: subtotal,
		DeliveryFee:   fee,
		Total:         subtotal.Add(fee),
		Items:         items,
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		return storage.Order{}, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}
