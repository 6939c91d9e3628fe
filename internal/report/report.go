// Package report derives sales and expense aggregates from full store
// contents. Everything here is a pure function of its inputs and a reference
// date; nothing is cached.
package report

import (
	"sort"
	"time"

	"github.com/croc-pos/api/internal/enum"
	"github.com/croc-pos/api/internal/storage"
	"github.com/shopspring/decimal"
)

type DailySummary struct {
	Date           string
	TotalOrders    int
	CounterOrders  int
	DeliveryOrders int
	Revenue        decimal.Decimal
}

type RollingSummary struct {
	StartDate   string
	EndDate     string
	TotalOrders int
	Revenue     decimal.Decimal
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Daily aggregates orders whose date equals the reference date, split by
// order type. Counter + delivery always equals the total count.
func Daily(orders []storage.Order, today time.Time) DailySummary {
	date := today.Format(storage.DateLayout)
	summary := DailySummary{Date: date, Revenue: decimal.Zero}
	for _, o := range orders {
		if o.Date() != date {
			continue
		}
		summary.TotalOrders++
		switch o.Type {
		case enum.OrderTypeCounter:
			summary.CounterOrders++
		case enum.OrderTypeDelivery:
			summary.DeliveryOrders++
		}
		summary.Revenue = summary.Revenue.Add(o.Total)
	}
	return summary
}

// Rolling aggregates orders dated within [today - windowDays, today]
// inclusive.
func Rolling(orders []storage.Order, today time.Time, windowDays int) RollingSummary {
	start := today.AddDate(0, 0, -windowDays).Format(storage.DateLayout)
	end := today.Format(storage.DateLayout)
	summary := RollingSummary{StartDate: start, EndDate: end, Revenue: decimal.Zero}
	for _, o := range orders {
		if d := o.Date(); d >= start && d <= end {
			summary.TotalOrders++
			summary.Revenue = summary.Revenue.Add(o.Total)
		}
	}
	return summary
}

// ExpenseBreakdown groups expenses by category and sums their amounts.
// Categories are sorted for a deterministic result; an empty expense table
// yields an empty slice, not an error.
func ExpenseBreakdown(expenses []storage.Expense) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
