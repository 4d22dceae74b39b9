package cart

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotFound      = errors.New("cart item not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
)
