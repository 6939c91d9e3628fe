package storage

import (
	"context"
	"fmt"
	"strings"
)

// Customer is append-only: there is no update or delete path.
type Customer struct {
	ID      int64  `csv:"ID" json:"id"`
	Name    string `csv:"Name" json:"name"`
	TaxID   string `csv:"TaxID" json:"tax_id"`
	Address string `csv:"Address" json:"address"`
	Phone   string `csv:"Phone" json:"phone"`
}

type CreateCustomerParams struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// NormalizeDigits strips every non-digit character. Tax ids and phones are
// stored in display form but compared in this normalized form for uniqueness.
func NormalizeDigits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTaxID formats an 11-digit tax id as XXX.XXX.XXX-XX; anything else is
// returned as given.
func FormatTaxID(v string) string {
	digits := NormalizeDigits(v)
	if len(digits) != 11 {
		return v
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[:3], digits[3:6], digits[6:9], digits[9:])
}

// FormatPhone formats 11 digits as (XX) XXXXX-XXXX and 10 digits as
// (XX) XXXX-XXXX; anything else is returned as given.
func FormatPhone(v string) string {
	digits := NormalizeDigits(v)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
	default:
		return v
	}
}

func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTable[Customer](s, customersFile)
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readTable[Customer](s, customersFile)
	if err != nil {
		return Customer{}, err
	}
	for _, c := range customers {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

// CreateCustomer enforces digits-only uniqueness of tax id and phone against
// every existing customer, then persists the canonical display forms.
func (s *Store) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := readTable[Customer](s, customersFile)
	if err != nil {
		return Customer{}, err
	}

	taxID := NormalizeDigits(arg.TaxID)
	phone := NormalizeDigits(arg.Phone)
	for _, c := range customers {
		if NormalizeDigits(c.TaxID) == taxID {
			return Customer{}, ErrDuplicateTaxID
		}
	}
	for _, c := range customers {
		if NormalizeDigits(c.Phone) == phone {
			return Customer{}, ErrDuplicatePhone
		}
	}

	c := Customer{
		ID:      nextID(customers, func(c Customer) int64 { return c.ID }),
		Name:    arg.Name,
		TaxID:   FormatTaxID(arg.TaxID),
		Address: arg.Address,
		Phone:   FormatPhone(arg.Phone),
	}
	customers = append(customers, c)
	if err := writeTable(s, customersFile, customers); err != nil {
		return Customer{}, err
	}
	return c, nil
}
