package product

import "time"

const (
	StatusActive  = "active"
	StatusDisable = "disable"
)

type Product struct {
	ID          int64     `json:"id"`
	FarmID      int64     `json:"farm_id"`
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	WeightKg    float64   `json:"weight_kg"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"imageurl,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListOptions struct {
	OnlyActive bool
	CategoryID *int64
	FarmID     *int64
}
