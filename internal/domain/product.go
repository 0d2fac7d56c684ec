package domain

import "time"

// Product is the catalog entity served by the catalog API.
type Product struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"-"`
}

// Stock is the number of units available for a product.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}
