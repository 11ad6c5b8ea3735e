// Package page serves the chart page: it resolves the requested preset,
// serializes its figures for Plotly.js and renders them into HTML.
package page

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/plotdeck/internal/adapters/http/api"
	"github.com/okian/plotdeck/internal/domain/chart"
	"github.com/okian/plotdeck/internal/domain/plotly"
	"github.com/okian/plotdeck/pkg/logger"
	"github.com/okian/plotdeck/pkg/metrics"
)

// Route is the chart page path.
const Route = "/plotly"

// typeParam is the query parameter selecting the preset.
const typeParam = "type"

// unknownPresetLabel groups unknown presets in metrics to bound cardinality.
const unknownPresetLabel = "other"

// Handler handles chart page requests.
type Handler struct {
	renderer Renderer
	log      logger.Logger
}

// NewHandler creates a chart page handler.
func NewHandler(renderer Renderer, log logger.Logger) *Handler {
	if renderer == nil {
		panic("renderer is nil")
	}
	if log == nil {
		log = logger.Get()
	}
	return &Handler{renderer: renderer, log: log.Named("page")}
}

// Register attaches the chart page route to mux.
func Register(_ context.Context, mux *http.ServeMux, h *Handler) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET "+Route, api.MetricsMiddleware(h.HandlePlotly, "plotly"))
}

// HandlePlotly handles GET /plotly?type=<preset>. Every type is accepted:
// unknown presets render a page without charts.
func (h *Handler) HandlePlotly(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	log := h.log.With(logger.String("request_id", api.RequestIDFromContext(ctx)))

	q := r.URL.Query()
	preset := chart.ResolveType(q.Get(typeParam), q.Has(typeParam))

	body, figures, err := h.render(preset)
	if err != nil {
		metrics.RecordRenderError()
		log.Error(ctx, "chart page render failed",
			logger.String("type", string(preset)),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	label := string(preset)
	if !chart.Known(preset) {
		label = unknownPresetLabel
		metrics.RecordPresetFallback()
		log.Debug(ctx, "unknown chart type; rendering empty page",
			logger.String("type", string(preset)),
		)
	}
	metrics.RecordPageRender(label, figures)
	metrics.RecordRenderLatency(float64(time.Since(start).Microseconds()) / 1000)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// render builds the page for preset into memory so that a failure can
// still produce a clean error response.
func (h *Handler) render(preset chart.Preset) ([]byte, int, error) {
	serialized, err := plotly.MarshalAll(chart.Build(preset))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrSerialize, err)
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, serialized, string(preset)); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(serialized), nil
}
