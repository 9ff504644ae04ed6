package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/egset/waybar-weather/internal/models"
)

// ErrInvalidCoordinates is returned for a location containing a comma that
// is not a valid "lat,lon" pair.
var ErrInvalidCoordinates = errors.New("invalid coordinate format, expected 'lat,lon'")

// Locator returns the current position without failing.
type Locator interface {
	Locate(ctx context.Context) models.Coordinates
}

// ParseLocation parses "lat,lon". It reports ok=false for a value without
// a comma, which is a location ID rather than coordinates.
func ParseLocation(s string) (coords models.Coordinates, ok bool, err error) {
	if !strings.Contains(s, ",") {
		return models.Coordinates{}, false, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Coordinates{}, false, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinates{}, false, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinates{}, false, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}
	if !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		return models.Coordinates{}, false, fmt.Errorf("%w: %q out of range", ErrInvalidCoordinates, s)
	}
	return models.Coordinates{Latitude: lat, Longitude: lon}, true, nil
}

// ResolveLocation turns the --location value into coordinates. An empty
// value or an unsupported location ID falls back to the locator.
func ResolveLocation(ctx context.Context, location string, locator Locator, logger *zap.Logger) (models.Coordinates, error) {
	if location == "" {
		return locator.Locate(ctx), nil
	}

	coords, ok, err := ParseLocation(location)
	if err != nil {
		return models.Coordinates{}, err
	}
	if ok {
		return coords, nil
	}

	logger.Warn("location IDs are not supported, using IP-based geolocation", zap.String("location", location))
	return locator.Locate(ctx), nil
}
