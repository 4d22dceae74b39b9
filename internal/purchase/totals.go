package purchase

import "agrocampo-be/internal/shipping"

// TaxRate is the flat tax applied to the merchandise subtotal.
const TaxRate = 0.08

type lineTotals struct {
	Quantity int
	Subtotal float64
	WeightKg float64
}

type Totals struct {
	Subtotal      float64
	Taxes         float64
	ShippingValue float64
	Total         float64
	WeightKg      float64
}

// computeTotals recomputes the money fields of a purchase from scratch out of
// all of its lines. Shipping is a provisional calculator estimate: the real
// distance is unknown until a shipment exists, so the distance input is left
// at zero and clamped by the calculator. Shipment creation overwrites it with
// the definitive cost.
func computeTotals(lines []lineTotals, calc *shipping.Calculator) Totals {
	var subtotal, weight float64
	for _, l := range lines {
		subtotal += l.Subtotal
		weight += float64(l.Quantity) * l.WeightKg
	}

	subtotal = shipping.Round2(subtotal)
	taxes := shipping.Round2(subtotal * TaxRate)
	shippingValue := calc.Cost(0, weight).TotalCost

	return Totals{
		Subtotal:      subtotal,
		Taxes:         taxes,
		ShippingValue: shippingValue,
		Total:         shipping.Round2(subtotal + taxes + shippingValue),
		WeightKg:      weight,
	}
}
