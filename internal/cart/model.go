package cart

import "time"

// Item is one row of a client's cart.
type Item struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Row is a cart item joined with its product, as listed back to the client.
type Row struct {
	Item
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Stock       int     `json:"stock"`
	WeightKg    float64 `json:"weight_kg"`
}

type AddParams struct {
	ClientID  int64
	ProductID int64
	Quantity  int
}

type UpdateParams struct {
	ClientID  int64
	ProductID int64
	Quantity  int
}

type CheckoutParams struct {
	ClientID        int64
	PaymentMethod   string
	DeliveryAddress string
}
