package shipment

import "errors"

var (
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrEmptyPurchase     = errors.New("purchase has no detail lines")
	ErrAlreadyShipped    = errors.New("purchase already has a shipment")
	ErrInvalidTransition = errors.New("invalid shipment status transition")
)
