// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config filled with defaults.
// - Load layers a YAML file and environment variables on top of New.
// - Errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Default values.
const (
	DefaultAddr                   = "127.0.0.1:5000"
	DefaultLogLevel               = "info"
	DefaultPlotlyJSURL            = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DefaultMetricsNamespace       = "plotdeck"
	DefaultMetricsSubsystem       = "web"
	DefaultMetricsRefreshInterval = 10 * time.Second
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	// Debug mode overrides it with debug.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. "127.0.0.1:5000".
	Addr string `koanf:"addr"`

	// Debug enables verbose logging and the /debug/pprof/ routes.
	Debug bool `koanf:"debug"`

	// LogJSON switches log output from text to JSON.
	LogJSON bool `koanf:"log_json"`

	// MetricsEnabled toggles Prometheus recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// PlotlyJSURL is the script the chart page loads Plotly.js from.
	PlotlyJSURL string `koanf:"plotly_js_url"`

	// Metric naming: <namespace>_<subsystem>_[<prefix>_]<name>.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`
	MetricsPrefix    string `koanf:"metrics_prefix"`

	// MetricsRefreshInterval is how often runtime gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`

	// MetricsBuckets overrides the latency histogram buckets (milliseconds).
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsLabels are constant labels attached to every series.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		Addr:           DefaultAddr,
		Debug:          true,
		LogJSON:        false,
		MetricsEnabled: true,
		PlotlyJSURL:    DefaultPlotlyJSURL,

		MetricsNamespace:       DefaultMetricsNamespace,
		MetricsSubsystem:       DefaultMetricsSubsystem,
		MetricsRefreshInterval: DefaultMetricsRefreshInterval,
	}
}

// EffectiveLogLevel returns the level to apply at startup.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
