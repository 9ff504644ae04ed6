package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/egset/waybar-weather/internal/cache"
	"github.com/egset/waybar-weather/internal/digest"
	"github.com/egset/waybar-weather/internal/forecast"
	"github.com/egset/waybar-weather/internal/httputil"
	"github.com/egset/waybar-weather/internal/i18n"
	"github.com/egset/waybar-weather/internal/ingest"
	"github.com/egset/waybar-weather/internal/metrics"
	"github.com/egset/waybar-weather/internal/store"
)

var version = "dev"

const (
	fetchFailed = "Failed to fetch weather data"
	parseFailed = "Failed to parse weather data"

	// Entries older than this are removed from the sqlite cache on startup.
	pruneAge = 24 * time.Hour
)

type CLI struct {
	Location       string                `help:"Coordinates as 'lat,lon'. Anything else uses IP geolocation." env:"WAYBAR_WEATHER_LOCATION"`
	IndicatorStyle digest.IndicatorStyle `help:"Bar text detail." enum:"concise,detailed,full" default:"concise" env:"WAYBAR_WEATHER_INDICATOR_STYLE"`
	Lang           string                `help:"Tooltip language: en, nb, nn, sme, fr, de, es or a BCP 47 tag." default:"en" env:"WAYBAR_WEATHER_LANG"`
	TooltipStyle   digest.TooltipStyle   `help:"Tooltip forecast horizon." enum:"current-day,three-days,week" default:"current-day" env:"WAYBAR_WEATHER_TOOLTIP_STYLE"`
	TempFormat     forecast.Unit         `help:"Temperature unit." enum:"celsius,fahrenheit" default:"celsius" env:"WAYBAR_WEATHER_TEMP_FORMAT"`

	CacheBackend string        `help:"Payload cache backend." enum:"file,sqlite" default:"file" env:"WAYBAR_WEATHER_CACHE_BACKEND"`
	CacheDir     string        `help:"Cache directory (defaults to the OS temp dir)." type:"path" env:"WAYBAR_WEATHER_CACHE_DIR"`
	ForecastTTL  time.Duration `help:"How long a fetched forecast is reused." default:"15m" env:"WAYBAR_WEATHER_FORECAST_TTL"`
	LocationTTL  time.Duration `help:"How long a geolocated position is reused." default:"1h" env:"WAYBAR_WEATHER_LOCATION_TTL"`

	Timeout     time.Duration `help:"Timeout per HTTP request." default:"10s" env:"WAYBAR_WEATHER_TIMEOUT"`
	RetryWindow time.Duration `help:"Total time spent retrying throttled or failed forecast requests." default:"5s" env:"WAYBAR_WEATHER_RETRY_WINDOW"`
	MetURL      string        `help:"Locationforecast endpoint." default:"${met_url}" env:"WAYBAR_WEATHER_MET_URL"`
	GeoIPURL    string        `name:"geoip-url" help:"IP geolocation endpoint." default:"${geoip_url}" env:"WAYBAR_WEATHER_GEOIP_URL"`

	LogLevel    string `help:"Log level for stderr." enum:"debug,info,warn,error" default:"warn" env:"WAYBAR_WEATHER_LOG_LEVEL"`
	MetricsFile string `help:"Write Prometheus metrics to this textfile after each run." type:"path" env:"WAYBAR_WEATHER_METRICS_FILE"`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("waybar-weather"),
		kong.Description("Weather module for Waybar using MET Norway's locationforecast API."),
		kong.Vars{
			"version":   version,
			"met_url":   ingest.DefaultForecastURL,
			"geoip_url": ingest.DefaultGeoIPURL,
		},
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "waybar-weather: %v\n", err)
		os.Exit(1)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, err := newLogger(cli.LogLevel, os.Stderr)
	parser.FatalIfErrorf(err)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, &cli, os.Stdout, os.Stderr, logger)
	cancel()
	logger.Sync()
	os.Exit(code)
}

// run produces one Waybar line on stdout and returns the exit code.
func run(ctx context.Context, cli *CLI, stdout, stderr io.Writer, logger *zap.Logger) int {
	defer writeMetrics(cli.MetricsFile, logger)

	lang, err := i18n.ParseLang(cli.Lang)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	payloads, closeCache, err := openCache(cli, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeCache()

	client := httputil.NewClient("waybar-weather/"+version+" github.com/egset/waybar-weather", cli.Timeout)

	geo := ingest.NewGeoIP(client, cli.GeoIPURL, payloads, cli.LocationTTL, logger)
	coords, err := ingest.ResolveLocation(ctx, cli.Location, geo, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("resolved location", zap.Float64("latitude", coords.Latitude), zap.Float64("longitude", coords.Longitude))

	met := ingest.NewForecastClient(client, ingest.ForecastConfig{
		BaseURL:     cli.MetURL,
		TTL:         cli.ForecastTTL,
		RetryWindow: cli.RetryWindow,
	}, payloads, logger)

	snap, err := met.Fetch(ctx, coords)
	if err != nil {
		msg := fetchFailed
		if errors.Is(err, ingest.ErrInvalidPayload) {
			msg = parseFailed
		}
		logger.Error(msg, zap.Error(err))
		if werr := digest.Failure(msg).Write(stdout); werr != nil {
			logger.Error("write output", zap.Error(werr))
		}
		return 1
	}

	d := digest.Render(snap, digest.Options{
		Lang:      lang,
		Indicator: cli.IndicatorStyle,
		Tooltip:   cli.TooltipStyle,
		Unit:      cli.TempFormat,
	})
	metrics.Renders.WithLabelValues(string(cli.TooltipStyle)).Inc()

	if err := d.Output().Write(stdout); err != nil {
		logger.Error("write output", zap.Error(err))
		return 1
	}
	return 0
}

// openCache returns the configured payload cache and a func releasing it.
func openCache(cli *CLI, logger *zap.Logger) (ingest.PayloadCache, func(), error) {
	switch cli.CacheBackend {
	case "sqlite":
		dir := cli.CacheDir
		if dir == "" {
			dir = os.TempDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create cache directory: %w", err)
		}
		st, err := store.Open(filepath.Join(dir, "waybar-weather.db"), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache database: %w", err)
		}
		if n, err := st.Prune(pruneAge); err != nil {
			logger.Warn("prune cache", zap.Error(err))
		} else if n > 0 {
			logger.Debug("pruned cache entries", zap.Int64("count", n))
		}
		return st, func() {
			if err := st.Close(); err != nil {
				logger.Warn("close cache database", zap.Error(err))
			}
		}, nil
	default:
		files, err := cache.NewFiles(cli.CacheDir)
		if err != nil {
			return nil, nil, err
		}
		return files, func() {}, nil
	}
}

func writeMetrics(path string, logger *zap.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn("write metrics", zap.String("path", path), zap.Error(err))
	}
}
