package enum

// ── Fixed value sets (validated at the API edge) ──

const (
	ProductCategoryPopcorn   = "POPCORN"
	ProductCategoryBeverages = "BEVERAGES"
	ProductCategoryOther     = "OTHER"
)

const (
	OrderTypeCounter  = "COUNTER"
	OrderTypeDelivery = "DELIVERY"
)

const (
	ExpenseCategoryProductionCosts = "PRODUCTION_COSTS"
	ExpenseCategoryUnforeseen      = "UNFORESEEN"
	ExpenseCategoryRawMaterial     = "RAW_MATERIAL"
	ExpenseCategoryRegularExpenses = "REGULAR_EXPENSES"
)

func IsValidProductCategory(c string) bool {
	switch c {
	case ProductCategoryPopcorn, ProductCategoryBeverages, ProductCategoryOther:
		return true
	}
	return false
}

func IsValidOrderType(t string) bool {
	switch t {
	case OrderTypeCounter, OrderTypeDelivery:
		return true
	}
	return false
}

func IsValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseCategoryProductionCosts, ExpenseCategoryUnforeseen,
		ExpenseCategoryRawMaterial, ExpenseCategoryRegularExpenses:
		return true
	}
	return false
}
