package domain

// ProductCost is the sum of ingredient unit cost times line quantity.
// Lines whose ingredient was not loaded contribute nothing.
func ProductCost(p Product) float64 {
	total := 0.0
	for _, line := range p.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		total += line.Ingredient.Cost * line.Quantity
	}
	return total
}

func ProductMargin(p Product) float64 {
	return p.Price - ProductCost(p)
}

// MarginPercent is undefined for a zero price; IEEE division then yields
// Inf or NaN and callers must handle it (the HTTP layer omits the field).
func MarginPercent(p Product) float64 {
	return ProductMargin(p) / p.Price * 100
}

func LineSubtotal(item SaleItem) float64 {
	return item.UnitPrice * float64(item.Quantity)
}

// SaleTotal is computed once at sale creation and stored on the sale; it
// is never re-derived from line items on read.
func SaleTotal(items []SaleItem) float64 {
	total := 0.0
	for _, item := range items {
		total += LineSubtotal(item)
	}
	return total
}

func SumBy[T any](items []T, field func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		total += field(item)
	}
	return total
}

func SumWhere[T any](items []T, keep func(T) bool, field func(T) float64) float64 {
	total := 0.0
	for _, item := range items {
		if keep(item) {
			total += field(item)
		}
	}
	return total
}

func CountWhere[T any](items []T, keep func(T) bool) int {
	count := 0
	for _, item := range items {
		if keep(item) {
			count++
		}
	}
	return count
}
