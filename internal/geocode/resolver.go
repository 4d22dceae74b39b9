package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agrocampo-be/internal/cache"
	"agrocampo-be/internal/geo"
	"agrocampo-be/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://maps.googleapis.com"

	// A slow mapping provider must never stall order processing.
	requestTimeout = 5 * time.Second

	cacheTTL = 24 * time.Hour
)

// Reference point used when an address cannot be geocoded (Bogotá).
const (
	ReferenceLat = 4.7110
	ReferenceLon = -74.0721
)

// Resolver looks up road distances and coordinates through an external
// distance-matrix/geocoding API. Every external failure (missing key, network
// error, bad status, malformed payload, timeout) degrades to local
// computation and is never propagated to the caller.
type Resolver struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
}

func NewResolver(apiKey string, c cache.Cache) *Resolver {
	if apiKey == "" {
		logger.L().Warn("maps API key is empty, distance lookups will use local estimation")
	}
	if c == nil {
		c = cache.Noop{}
	}

	return &Resolver{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cache: c,
	}
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// DistanceKm resolves the road distance between two points in kilometers.
// Invalid coordinates surface as geo.ErrInvalidCoordinate; any external
// failure falls back to the haversine estimate.
func (r *Resolver) DistanceKm(ctx context.Context, lat1, lon1, lat2, lon2 float64) (float64, error) {
	fallback, err := geo.DistanceKm(lat1, lon1, lat2, lon2)
	if err != nil {
		return 0, err
	}

	if r.apiKey == "" {
		return fallback, nil
	}

	log := logger.FromCtx(ctx).With(
		zap.Float64("origin_lat", lat1),
		zap.Float64("origin_lon", lon1),
		zap.Float64("dest_lat", lat2),
		zap.Float64("dest_lon", lon2),
	)

	key := fmt.Sprintf("dist:%.4f,%.4f:%.4f,%.4f", lat1, lon1, lat2, lon2)
	if raw, ok, cErr := r.cache.Get(ctx, key); cErr == nil && ok {
		if km, pErr := strconv.ParseFloat(raw, 64); pErr == nil {
			return km, nil
		}
	}

	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", lat1, lon1))
	q.Set("destinations", fmt.Sprintf("%f,%f", lat2, lon2))
	q.Set("key", r.apiKey)

	var res matrixResponse
	if err := r.getJSON(ctx, "/maps/api/distancematrix/json?"+q.Encode(), &res); err != nil {
		log.Warn("distance matrix lookup failed, using local estimate", zap.Error(err))
		return fallback, nil
	}

	if res.Status != "OK" || len(res.Rows) == 0 || len(res.Rows[0].Elements) == 0 ||
		res.Rows[0].Elements[0].Status != "OK" {
		log.Warn("distance matrix returned no usable element, using local estimate",
			zap.String("status", res.Status),
		)
		return fallback, nil
	}

	km := float64(res.Rows[0].Elements[0].Distance.Value) / 1000.0
	if km <= 0 {
		return fallback, nil
	}

	_ = r.cache.Set(ctx, key, strconv.FormatFloat(km, 'f', -1, 64), cacheTTL)

	return km, nil
}

// Geocode resolves an address to coordinates, defaulting to the fixed
// reference point whenever the external call cannot be completed.
func (r *Resolver) Geocode(ctx context.Context, address string) (float64, float64) {
	if address == "" || r.apiKey == "" {
		return ReferenceLat, ReferenceLon
	}

	log := logger.FromCtx(ctx).With(zap.String("address", address))

	key := "geo:" + address
	if raw, ok, cErr := r.cache.Get(ctx, key); cErr == nil && ok {
		var lat, lon float64
		if _, sErr := fmt.Sscanf(raw, "%f,%f", &lat, &lon); sErr == nil {
			return lat, lon
		}
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", r.apiKey)

	var res geocodeResponse
	if err := r.getJSON(ctx, "/maps/api/geocode/json?"+q.Encode(), &res); err != nil {
		log.Warn("geocode lookup failed, using reference point", zap.Error(err))
		return ReferenceLat, ReferenceLon
	}

	if res.Status != "OK" || len(res.Results) == 0 {
		log.Warn("geocode returned no results, using reference point",
			zap.String("status", res.Status),
		)
		return ReferenceLat, ReferenceLon
	}

	loc := res.Results[0].Geometry.Location
	_ = r.cache.Set(ctx, key, fmt.Sprintf("%f,%f", loc.Lat, loc.Lng), cacheTTL)

	return loc.Lat, loc.Lng
}

func (r *Resolver) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read maps response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps API status %d: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}
