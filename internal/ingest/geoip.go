package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/egset/waybar-weather/internal/metrics"
	"github.com/egset/waybar-weather/internal/models"
)

const (
	// DefaultGeoIPURL returns the caller's approximate position as JSON.
	DefaultGeoIPURL = "https://ipapi.co/json/"

	locationCacheKey = "location"
)

// GeoIP resolves the current position from the public IP address.
type GeoIP struct {
	client *http.Client
	url    string
	cache  PayloadCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewGeoIP(client *http.Client, url string, cache PayloadCache, ttl time.Duration, logger *zap.Logger) *GeoIP {
	if url == "" {
		url = DefaultGeoIPURL
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeoIP{client: client, url: url, cache: cache, ttl: ttl, logger: logger}
}

// Locate returns the cached or freshly looked-up position. It never fails:
// on any error it logs a warning and returns models.DefaultLocation.
func (g *GeoIP) Locate(ctx context.Context) models.Coordinates {
	if g.cache != nil {
		if data, ok := g.cache.Get(locationCacheKey, g.ttl); ok {
			if coords, ok := parseCoordinates(data); ok {
				return coords
			}
		}
	}

	coords, err := g.lookup(ctx)
	if err != nil {
		g.logger.Warn("could not determine location from IP, using default",
			zap.Error(err),
			zap.Float64("latitude", models.DefaultLocation.Latitude),
			zap.Float64("longitude", models.DefaultLocation.Longitude))
		return models.DefaultLocation
	}

	if g.cache != nil {
		data, _ := json.Marshal(coords)
		if err := g.cache.Set(locationCacheKey, data); err != nil {
			g.logger.Warn("cache location", zap.Error(err))
		}
	}
	return coords
}

func (g *GeoIP) lookup(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	metrics.APILatency.WithLabelValues("geoip").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APICallsTotal.WithLabelValues("geoip", "error").Inc()
		return models.Coordinates{}, fmt.Errorf("fetch location: %w", err)
	}
	defer resp.Body.Close()

	metrics.APICallsTotal.WithLabelValues("geoip", strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("fetch location: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("read body: %w", err)
	}

	coords, ok := parseCoordinates(body)
	if !ok {
		return models.Coordinates{}, fmt.Errorf("response is not a JSON object: %.200s", body)
	}
	return coords, nil
}

// parseCoordinates reads "latitude" and "longitude" from a JSON object.
// Each field that is missing or not a number defaults to the matching
// DefaultLocation coordinate on its own. ok is false only when data is not
// a JSON object.
func parseCoordinates(data []byte) (models.Coordinates, bool) {
	if !gjson.ValidBytes(data) {
		return models.Coordinates{}, false
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return models.Coordinates{}, false
	}
	return models.Coordinates{
		Latitude:  numberOr(doc.Get("latitude"), models.DefaultLocation.Latitude),
		Longitude: numberOr(doc.Get("longitude"), models.DefaultLocation.Longitude),
	}, true
}

func numberOr(v gjson.Result, fallback float64) float64 {
	if v.Type != gjson.Number {
		return fallback
	}
	return v.Num
}
