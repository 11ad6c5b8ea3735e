// Package plotly encodes chart figures in the Plotly.js figure schema:
//
//	{"data": [<trace>], "layout": {"title": {"text": <title>}}}
//
// The browser side passes data and layout straight to Plotly.newPlot.
package plotly

import (
	"encoding/json"
	"fmt"

	"github.com/okian/plotdeck/internal/domain/chart"
)

// Trace type names understood by Plotly.js.
const (
	typeScatter = "scatter"
	typeBox     = "box"
)

type figure struct {
	Data   []any  `json:"data"`
	Layout layout `json:"layout"`
}

type layout struct {
	Title title `json:"title"`
}

type title struct {
	Text string `json:"text"`
}

type scatterTrace struct {
	Type string    `json:"type"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Mode string    `json:"mode"`
	Name string    `json:"name"`
}

type boxTrace struct {
	Type string    `json:"type"`
	Y    []float64 `json:"y"`
	Name string    `json:"name"`
}

// encodeTrace maps a chart trace to its Plotly object.
func encodeTrace(t chart.Trace) (any, error) {
	switch tr := t.(type) {
	case chart.ScatterTrace:
		return scatterTrace{Type: typeScatter, X: tr.X, Y: tr.Y, Mode: tr.Mode, Name: tr.Name}, nil
	case chart.BoxTrace:
		return boxTrace{Type: typeBox, Y: tr.Y, Name: tr.Name}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTrace, t)
	}
}

// Marshal returns the Plotly JSON for a single figure.
func Marshal(f chart.Figure) (string, error) {
	trace, err := encodeTrace(f.Trace)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(figure{
		Data:   []any{trace},
		Layout: layout{Title: title{Text: f.Title}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return string(b), nil
}

// MarshalAll encodes figures in order. The result is never nil.
func MarshalAll(figs []chart.Figure) ([]string, error) {
	out := make([]string, 0, len(figs))
	for _, f := range figs {
		s, err := Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("figure %d: %w", f.Index, err)
		}
		out = append(out, s)
	}
	return out, nil
}
