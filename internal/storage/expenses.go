package storage

import (
	"context"

	"github.com/shopspring/decimal"
)

// Expense is append-only: there is no update or delete path.
type Expense struct {
	ID          int64           `csv:"ID" json:"id"`
	Description string          `csv:"Description" json:"description"`
	Category    string          `csv:"Category" json:"category"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Date        string          `csv:"Date" json:"date"`
}

type CreateExpenseParams struct {
	Description string
	Category    string
	Amount      decimal.Decimal
	Date        string
}

// ListExpenses returns expenses in file (append) order.
func (s *Store) ListExpenses(ctx context.Context) ([]Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTable[Expense](s, expensesFile)
}

func (s *Store) CreateExpense(ctx context.Context, arg CreateExpenseParams) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := readTable[Expense](s, expensesFile)
	if err != nil {
		return Expense{}, err
	}

	e := Expense{
		ID:          nextID(expenses, func(e Expense) int64 { return e.ID }),
		Description: arg.Description,
		Category:    arg.Category,
		Amount:      arg.Amount,
		Date:        arg.Date,
	}
	expenses = append(expenses, e)
	if err := writeTable(s, expensesFile, expenses); err != nil {
		return Expense{}, err
	}
	return e, nil
}
