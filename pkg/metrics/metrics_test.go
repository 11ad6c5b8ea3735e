package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
				So(manager.Enabled(), ShouldBeTrue)
			})

			Convey("And metric names should carry the prefix and labels", func() {
				manager.RecordPresetFallback()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_prefix_preset_fallbacks_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When options receive empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "plotdeck")
				So(manager.subsystem, ShouldEqual, "web")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestPageMetrics(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording page renders", func() {
			manager.RecordPageRender("scatter", 3)
			manager.RecordPageRender("scatter", 3)
			manager.RecordPageRender("other", 0)

			Convey("Then renders should be counted per preset", func() {
				So(testutil.ToFloat64(manager.pageRenders.WithLabelValues("scatter")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.pageRenders.WithLabelValues("other")), ShouldEqual, 1)
				So(testutil.CollectAndCount(manager.figuresPerPage), ShouldEqual, 1)
			})
		})

		Convey("When recording fallbacks and errors", func() {
			manager.RecordPresetFallback()
			manager.RecordRenderError()
			manager.RecordRenderError()

			Convey("Then the counters should move", func() {
				So(testutil.ToFloat64(manager.presetFallbacks), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.renderErrors), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		manager := NewManager(
			WithMetricsEnabled(false),
			WithPrometheusRegistry(prometheus.NewRegistry()),
		)

		Convey("When recording", func() {
			manager.RecordPresetFallback()
			manager.RecordHTTPRequest("plotly", "GET", "200")

			Convey("Then nothing should be counted", func() {
				So(testutil.ToFloat64(manager.presetFallbacks), ShouldEqual, 0)
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("plotly", "GET", "200")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package helpers should not panic", func() {
			So(func() {
				RecordPageRender("box", 3)
				RecordPresetFallback()
				RecordRenderError()
				RecordRenderLatency(1.5)
				RecordHTTPRequest("plotly", "GET", "200")
				RecordHTTPRequestDuration("plotly", "GET", "200", 2.0)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("plotly", "GET", "client_error")
				RecordErrorLatency("http", "client_error", 3.0)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})

		Convey("And the registry should expose the recorded families", func() {
			RecordHTTPRequest("healthz", "GET", "200")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			So(SystemRefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager rebuilt from options", t, func() {
		defer Init()

		Init(
			WithMetricsEnabled(true),
			WithNamespace("acme"),
			WithSubsystem("charts"),
			WithRefreshInterval(30*time.Second),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithCustomLabels(map[string]string{"env": "staging"}),
		)

		Convey("When recording through the package helpers", func() {
			RecordPageRender("box", 3)

			Convey("Then the series should use the configured names on the new registry", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "acme_charts_page_renders_total" {
						found = true
						So(f.GetMetric()[0].GetLabel(), ShouldHaveLength, 2)
					}
					So(f.GetName(), ShouldNotStartWith, "plotdeck_")
				}
				So(found, ShouldBeTrue)
				So(SystemRefreshInterval(), ShouldEqual, 30*time.Second)
				So(globalManager.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
			})
		})
	})

	Convey("Given the global manager rebuilt with recording disabled", t, func() {
		defer Init()

		Init(WithMetricsEnabled(false))
		RecordPresetFallback()

		Convey("Then nothing should be counted", func() {
			So(globalManager.Enabled(), ShouldBeFalse)
			So(testutil.ToFloat64(globalManager.presetFallbacks), ShouldEqual, 0)
		})
	})

	Convey("Given a caller that mutates the options it passed", t, func() {
		defer Init()

		buckets := []float64{1, 2, 3}
		labels := map[string]string{"env": "dev"}
		Init(WithHistogramBuckets(buckets), WithCustomLabels(labels))
		buckets[0] = 99
		labels["env"] = "prod"

		Convey("Then the manager should keep its own copies", func() {
			So(globalManager.histogramBuckets[0], ShouldEqual, 1)
			So(globalManager.customLabels["env"], ShouldEqual, "dev")
		})
	})
}
