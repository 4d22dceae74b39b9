package purchase

import "errors"

var (
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least one")
	ErrPurchaseClosed    = errors.New("purchase already has a shipment")
)
