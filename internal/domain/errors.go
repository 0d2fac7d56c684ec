package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuantity indicates a requested amount below one.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientStock indicates the requested amount exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrUpstream wraps any failure of the product/stock query service.
	ErrUpstream = errors.New("upstream failure")
)
