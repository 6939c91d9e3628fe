package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// LineItem snapshots product name and unit price at order time. Later edits
// or deletion of the product do not change historical orders.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is immutable once created: no update or delete path exists.
// CustomerID is set only for delivery orders; it round-trips through the
// CustomerIDRaw column so an empty cell reads back as nil, not zero. Items
// round-trips through the LineItemsJSON column.
type Order struct {
	ID            int64           `csv:"ID" json:"id"`
	Timestamp     string          `csv:"Timestamp" json:"timestamp"`
	Type          string          `csv:"Type" json:"order_type"`
	CustomerID    *int64          `csv:"-" json:"customer_id,omitempty"`
	CustomerIDRaw string          `csv:"CustomerID" json:"-"`
	ItemsSubtotal decimal.Decimal `csv:"ItemsSubtotal" json:"items_subtotal"`
	DeliveryFee   decimal.Decimal `csv:"DeliveryFee" json:"delivery_fee"`
	Total         decimal.Decimal `csv:"Total" json:"total"`
	LineItemsJSON string          `csv:"LineItemsJSON" json:"-"`
	Items         []LineItem      `csv:"-" json:"line_items"`
}

// Date returns the date portion of the order timestamp.
func (o Order) Date() string {
	if len(o.Timestamp) < len(DateLayout) {
		return o.Timestamp
	}
	return o.Timestamp[:len(DateLayout)]
}

// CreateOrder assigns the next id and appends the order. Validation, price
// snapshotting and totals are the order service's job; the store persists
// what it is given.
func (s *Store) CreateOrder(ctx context.Context, order Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return Order{}, err
	}

	order.ID = nextID(orders, func(o Order) int64 { return o.ID })
	if order.CustomerID != nil {
		order.CustomerIDRaw = strconv.FormatInt(*order.CustomerID, 10)
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return Order{}, fmt.Errorf("encode line items: %w", err)
	}
	order.LineItemsJSON = string(itemsJSON)

	orders = append(orders, order)
	if err := writeTable(s, ordersFile, orders); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListOrders returns all orders in file (append) order.
func (s *Store) ListOrders(ctx context.Context) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrders()
}

// ListOrdersByDate returns orders whose timestamp date equals date
// (YYYY-MM-DD).
func (s *Store) ListOrdersByDate(ctx context.Context, date string) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	var out []Order
	for _, o := range orders {
		if o.Date() == date {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListOrdersWithin returns orders whose timestamp date falls in
// [start, end] inclusive. YYYY-MM-DD dates compare correctly as strings.
func (s *Store) ListOrdersWithin(ctx context.Context, start, end string) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}
	var out []Order
	for _, o := range orders {
		if d := o.Date(); d >= start && d <= end {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.loadOrders()
	if err != nil {
		return Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// loadOrders reads the table and decodes the CustomerIDRaw and LineItemsJSON
// columns. Callers must hold the mutex.
func (s *Store) loadOrders() ([]Order, error) {
	orders, err := readTable[Order](s, ordersFile)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if raw := orders[i].CustomerIDRaw; raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("decode customer id of order %d: %w", orders[i].ID, err)
			}
			orders[i].CustomerID = &id
		}
		if orders[i].LineItemsJSON == "" {
			continue
		}
		if err := json.Unmarshal([]byte(orders[i].LineItemsJSON), &orders[i].Items); err != nil {
			return nil, fmt.Errorf("decode line items of order %d: %w", orders[i].ID, err)
		}
	}
	return orders, nil
}
