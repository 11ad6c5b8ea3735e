package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/plotdeck/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:5000")
				convey.So(cfg.Debug, convey.ShouldBeTrue)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PLOTDECK_ADDR", ":8080")
			_ = os.Setenv("PLOTDECK_DEBUG", "false")
			_ = os.Setenv("PLOTDECK_LOG_LEVEL", "warn")
			_ = os.Setenv("PLOTDECK_LOG_JSON", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Debug, convey.ShouldBeFalse)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.LogJSON, convey.ShouldBeTrue)
				convey.So(cfg.EffectiveLogLevel(), convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
debug: false
metrics_enabled: false
plotly_js_url: "/static/plotly.min.js"
`)
			_ = os.Setenv("PLOTDECK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Debug, convey.ShouldBeFalse)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeFalse)
				convey.So(cfg.PlotlyJSURL, convey.ShouldEqual, "/static/plotly.min.js")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info") // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
log_level: error
`)
			_ = os.Setenv("PLOTDECK_CONFIG", tmpFile)
			_ = os.Setenv("PLOTDECK_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")      // Overridden by env
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("PLOTDECK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PLOTDECK_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PLOTDECK_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})

		convey.Convey("When loading config with an unknown log level", func() {
			_ = os.Setenv("PLOTDECK_LOG_LEVEL", "verbose")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading metrics settings from file and env", func() {
			tmpFile := createTempConfigFile(t, `
metrics_subsystem: charts
metrics_prefix: demo
metrics_buckets: [1, 5, 25, 100]
metrics_labels:
  env: staging
`)
			_ = os.Setenv("PLOTDECK_CONFIG", tmpFile)
			_ = os.Setenv("PLOTDECK_METRICS_NAMESPACE", "acme")
			_ = os.Setenv("PLOTDECK_METRICS_REFRESH_INTERVAL", "15s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then every metrics key should be applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "acme")
				convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "charts")
				convey.So(cfg.MetricsPrefix, convey.ShouldEqual, "demo")
				convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 15*time.Second)
				convey.So(cfg.MetricsBuckets, convey.ShouldResemble, []float64{1, 5, 25, 100})
				convey.So(cfg.MetricsLabels, convey.ShouldResemble, map[string]string{"env": "staging"})
			})
		})

		convey.Convey("When the metrics refresh interval is not positive", func() {
			_ = os.Setenv("PLOTDECK_METRICS_REFRESH_INTERVAL", "0s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_refresh_interval")
			})
		})

		convey.Convey("When metrics buckets are out of order", func() {
			tmpFile := createTempConfigFile(t, `metrics_buckets: [5, 1]`)
			_ = os.Setenv("PLOTDECK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_buckets")
			})
		})

		convey.Convey("When loading config with an invalid boolean", func() {
			_ = os.Setenv("PLOTDECK_DEBUG", "sometimes")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, name := range []string{
		"PLOTDECK_CONFIG",
		"PLOTDECK_ADDR",
		"PLOTDECK_DEBUG",
		"PLOTDECK_LOG_LEVEL",
		"PLOTDECK_LOG_JSON",
		"PLOTDECK_METRICS_ENABLED",
		"PLOTDECK_PLOTLY_JS_URL",
		"PLOTDECK_METRICS_NAMESPACE",
		"PLOTDECK_METRICS_REFRESH_INTERVAL",
	} {
		_ = os.Unsetenv(name)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
