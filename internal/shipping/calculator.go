package shipping

import "math"

// Rates holds the injected shipping tariff. Values are in currency units.
type Rates struct {
	PerKm   float64
	PerKg   float64
	Minimum float64
}

// DefaultRates returns the standard tariff used when no override is configured.
func DefaultRates() Rates {
	return Rates{
		PerKm:   2500,
		PerKg:   50,
		Minimum: 20000,
	}
}

// Breakdown is the transient result of a cost computation. It is returned to
// callers for transparency and never persisted as-is: the floor is applied to
// TotalCost only, so BaseCost + WeightCost may be below TotalCost.
type Breakdown struct {
	BaseCost   float64
	WeightCost float64
	TotalCost  float64
	RatePerKm  float64
	RatePerKg  float64
}

type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Cost computes the shipping cost breakdown for a distance and weight.
// Non-positive inputs are treated as 1.0 so the estimate is always usable.
func (c *Calculator) Cost(distanceKm, weightKg float64) Breakdown {
	if distanceKm <= 0 || math.IsNaN(distanceKm) {
		distanceKm = 1.0
	}
	if weightKg <= 0 || math.IsNaN(weightKg) {
		weightKg = 1.0
	}

	base := Round2(c.rates.PerKm * distanceKm)
	weight := Round2(c.rates.PerKg * weightKg)

	total := Round2(base + weight)
	if total < c.rates.Minimum {
		total = c.rates.Minimum
	}

	return Breakdown{
		BaseCost:   base,
		WeightCost: weight,
		TotalCost:  total,
		RatePerKm:  c.rates.PerKm,
		RatePerKg:  c.rates.PerKg,
	}
}

// Round2 rounds a non-negative amount to 2 decimals, half-up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
