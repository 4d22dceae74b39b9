package geo

import (
	"errors"
	"math"
)

const (
	earthRadiusKm = 6371.0

	// RoadFactor approximates real road distance from the
	// great-circle (straight line) distance.
	RoadFactor = 1.3
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// DistanceKm returns the road-corrected distance in kilometers between two
// lat/lon points: haversine great-circle distance scaled by RoadFactor.
func DistanceKm(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if err := validate(lat1, lon1); err != nil {
		return 0, err
	}
	if err := validate(lat2, lon2); err != nil {
		return 0, err
	}

	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c * RoadFactor, nil
}

func validate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return ErrInvalidCoordinate
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
