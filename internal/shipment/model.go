package shipment

import "time"

type Status string

const (
	StatusSeekingCarrier Status = "SEEKING_CARRIER"
	StatusAssigned       Status = "ASSIGNED"
	StatusFinalized      Status = "FINALIZED"
)

// Transitions move forward only. There is no way back from any state.
var validTransitions = map[Status][]Status{
	StatusSeekingCarrier: {StatusAssigned},
	StatusAssigned:       {StatusFinalized},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PendingAddress is stored as the destination when the purchase carries no
// delivery address yet.
const PendingAddress = "pending confirmation"

type Shipment struct {
	ID         int64  `json:"id"`
	PurchaseID int64  `json:"purchase_id"`
	CarrierID  *int64 `json:"carrier_id,omitempty"`
	VehicleID  *int64 `json:"vehicle_id,omitempty"`
	Status     Status `json:"status"`

	OriginAddress string  `json:"origin_address"`
	DestAddress   string  `json:"dest_address"`
	OriginLat     float64 `json:"origin_lat"`
	OriginLon     float64 `json:"origin_lon"`
	DestLat       float64 `json:"dest_lat"`
	DestLon       float64 `json:"dest_lon"`

	TotalWeightKg float64 `json:"total_weight_kg"`
	DistanceKm    float64 `json:"distance_km"`
	BaseCost      float64 `json:"base_cost"`
	WeightCost    float64 `json:"weight_cost"`
	TotalCost     float64 `json:"total_cost"`

	DepartureDate  *time.Time `json:"departure_date,omitempty"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
	TrackingNumber string     `json:"tracking_number"`
	CreatedAt      time.Time  `json:"created_at"`
}
