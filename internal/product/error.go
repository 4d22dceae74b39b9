package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStock    = errors.New("stock must not be negative")
	ErrForbidden       = errors.New("product does not belong to this producer")
)
