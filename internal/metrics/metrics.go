package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waybar_weather_api_calls_total",
			Help: "Total upstream API calls",
		},
		[]string{"endpoint", "status"},
	)

	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waybar_weather_api_latency_seconds",
			Help:    "Upstream API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waybar_weather_cache_lookups_total",
			Help: "Payload cache lookups by result",
		},
		[]string{"backend", "result"},
	)

	Renders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waybar_weather_renders_total",
			Help: "Digests rendered",
		},
		[]string{"tooltip_style"},
	)
)

// WriteTextfile writes every registered metric to path in the text
// exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
