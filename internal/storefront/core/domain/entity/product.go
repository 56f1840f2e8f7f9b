package entity

import "github.com/shopspring/decimal"

// ProductImage is a single gallery entry attached to a product.
type ProductImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

// Product is the catalog snapshot the backend returns. Price is a
// decimal-as-string on the wire; decimal.Decimal round-trips it without
// float drift.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []ProductImage  `json:"images"`
	Category     int64           `json:"category"`
	CategoryName string          `json:"category_name"`
	InStock      bool            `json:"in_stock"`
	IsFeatured   bool            `json:"is_featured"`
	CreatedAt    string          `json:"created_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
