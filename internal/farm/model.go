package farm

import "time"

// Farm is a producer's property. Its coordinates are the shipping origin for
// every product it supplies.
type Farm struct {
	ID         int64     `json:"id"`
	ProducerID int64     `json:"producer_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	CreatedAt  time.Time `json:"created_at"`
}
