package purchase

import "time"

type Status string

// A purchase starts empty, becomes active once it has at least one line and
// is closed for modification the moment a shipment is created for it.
const (
	StatusDraft   Status = "DRAFT"
	StatusActive  Status = "ACTIVE"
	StatusPaidOut Status = "PAID_OUT"
)

type Purchase struct {
	ID              int64        `json:"id"`
	ClientID        int64        `json:"client_id"`
	Status          Status       `json:"status"`
	Subtotal        float64      `json:"subtotal"`
	Taxes           float64      `json:"taxes"`
	ShippingValue   float64      `json:"shipping_value"`
	Total           float64      `json:"total"`
	DeliveryAddress string       `json:"delivery_address"`
	PaymentMethod   string       `json:"payment_method"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Lines           []DetailLine `json:"lines,omitempty"`
}

// DetailLine is one product line of a purchase. UnitPrice is a snapshot taken
// when the line is added and never tracks later price changes.
type DetailLine struct {
	ID          int64   `json:"id"`
	PurchaseID  int64   `json:"purchase_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}
