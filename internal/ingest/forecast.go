package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/egset/waybar-weather/internal/forecast"
	"github.com/egset/waybar-weather/internal/metrics"
	"github.com/egset/waybar-weather/internal/models"
)

// DefaultForecastURL is MET Norway's compact locationforecast endpoint.
const DefaultForecastURL = "https://api.met.no/weatherapi/locationforecast/2.0/compact"

// ErrInvalidPayload is returned when the forecast response is not valid JSON.
var ErrInvalidPayload = errors.New("invalid forecast payload")

// ForecastClient fetches locationforecast snapshots, consulting the cache first.
type ForecastClient struct {
	client      *http.Client
	baseURL     string
	cache       PayloadCache
	ttl         time.Duration
	retryWindow time.Duration
	retryStart  time.Duration
	logger      *zap.Logger
}

// ForecastConfig configures a ForecastClient. Zero values pick defaults.
type ForecastConfig struct {
	BaseURL     string
	TTL         time.Duration
	RetryWindow time.Duration
}

func NewForecastClient(client *http.Client, cfg ForecastConfig, cache PayloadCache, logger *zap.Logger) *ForecastClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultForecastURL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastClient{
		client:      client,
		baseURL:     cfg.BaseURL,
		cache:       cache,
		ttl:         cfg.TTL,
		retryWindow: cfg.RetryWindow,
		retryStart:  backoff.DefaultInitialInterval,
		logger:      logger,
	}
}

// Fetch returns the snapshot for coords from the cache if fresh, otherwise
// from the API. Fresh responses are cached only when they parse.
func (f *ForecastClient) Fetch(ctx context.Context, coords models.Coordinates) (forecast.Snapshot, error) {
	key := coords.Key()

	if f.cache != nil {
		if body, ok := f.cache.Get(key, f.ttl); ok {
			if snap, err := forecast.ParseSnapshot(body); err == nil {
				f.logger.Debug("forecast cache hit", zap.String("key", key))
				return snap, nil
			}
			f.logger.Warn("ignoring unparseable cached forecast", zap.String("key", key))
		}
	}

	body, err := f.fetch(ctx, coords)
	if err != nil {
		return forecast.Snapshot{}, err
	}

	snap, err := forecast.ParseSnapshot(body)
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if f.cache != nil {
		if err := f.cache.Set(key, body); err != nil {
			f.logger.Warn("cache forecast", zap.String("key", key), zap.Error(err))
		}
	}
	return snap, nil
}

func (f *ForecastClient) requestURL(coords models.Coordinates) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse forecast url: %w", err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (f *ForecastClient) fetch(ctx context.Context, coords models.Coordinates) ([]byte, error) {
	reqURL, err := f.requestURL(coords)
	if err != nil {
		return nil, err
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		start := time.Now()
		resp, err := f.client.Do(req)
		metrics.APILatency.WithLabelValues("metno").Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.APICallsTotal.WithLabelValues("metno", "error").Inc()
			return backoff.Permanent(fmt.Errorf("fetch forecast: %w", err))
		}
		defer resp.Body.Close()

		metrics.APICallsTotal.WithLabelValues("metno", strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			f.logger.Info("forecast request throttled or failed, retrying", zap.Int("status", resp.StatusCode))
			return fmt.Errorf("fetch forecast: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("fetch forecast: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.retryStart
	bo.MaxElapsedTime = f.retryWindow
	var policy backoff.BackOff = bo
	if f.retryWindow <= 0 {
		policy = &backoff.StopBackOff{}
	}
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
