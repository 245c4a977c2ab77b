package domain

import "github.com/shopspring/decimal"

// CartItem mirrors the server's cart line. PriceAtAdd is the price snapshot taken
// by the server when the product was first added.
type CartItem struct {
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	PriceAtAdd decimal.Decimal `json:"price_at_add"`
}

type WishlistItem struct {
	ProductID string `json:"product_id"`
}

// CartTotal sums PriceAtAdd * Quantity over the given lines.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.PriceAtAdd.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
