package storage

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int64           `csv:"ID" json:"id"`
	Name     string          `csv:"Name" json:"name"`
	Category string          `csv:"Category" json:"category"`
	Price    decimal.Decimal `csv:"Price" json:"price"`
	Quantity int64           `csv:"Quantity" json:"stock_quantity"`
}

type CreateProductParams struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Quantity int64
}

// UpdateProductParams replaces name, price and stock in place. Category is
// immutable after creation and has no update path.
type UpdateProductParams struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// ListProducts returns products in file (append) order.
func (s *Store) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTable[Product](s, productsFile)
}

func (s *Store) GetProduct(ctx context.Context, id int64) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readTable[Product](s, productsFile)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *Store) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readTable[Product](s, productsFile)
	if err != nil {
		return Product{}, err
	}

	p := Product{
		ID:       nextID(products, func(p Product) int64 { return p.ID }),
		Name:     arg.Name,
		Category: arg.Category,
		Price:    arg.Price,
		Quantity: arg.Quantity,
	}
	products = append(products, p)
	if err := writeTable(s, productsFile, products); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, arg UpdateProductParams) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readTable[Product](s, productsFile)
	if err != nil {
		return Product{}, err
	}
	for i, p := range products {
		if p.ID == id {
			products[i].Name = arg.Name
			products[i].Price = arg.Price
			products[i].Quantity = arg.Quantity
			if err := writeTable(s, productsFile, products); err != nil {
				return Product{}, err
			}
			return products[i], nil
		}
	}
	return Product{}, ErrNotFound
}

// DeleteProduct removes the row. Orders referencing the product keep their
// name and price snapshots, so no cascade check is needed.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := readTable[Product](s, productsFile)
	if err != nil {
		return err
	}
	for i, p := range products {
		if p.ID == id {
			products = append(products[:i], products[i+1:]...)
			return writeTable(s, productsFile, products)
		}
	}
	return ErrNotFound
}
