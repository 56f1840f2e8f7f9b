package entity

import "github.com/shopspring/decimal"

// CartItem embeds a full product snapshot. Quantity is always >= 1 in a
// server response; an update to a quantity <= 0 means "remove the item".
type CartItem struct {
	ID       int64           `json:"id"`
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is server-owned. Total and item subtotals are computed by the
// backend (pricing/tax rules live there) and are never derived locally;
// the client only ever holds the latest server snapshot.
type Cart struct {
	ID    int64           `json:"id"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
