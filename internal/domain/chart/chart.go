// Package chart defines the fixed chart presets and the figures built from them.
package chart

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Preset identifies a named selection of traces.
type Preset string

// Known presets.
const (
	Scatter Preset = "scatter"
	Box     Preset = "box"

	// DefaultPreset is used when no type is requested.
	DefaultPreset = Scatter
)

// markersMode renders scatter points without connecting lines.
const markersMode = "markers"

// Trace is one data series. It is implemented by ScatterTrace and BoxTrace only.
type Trace interface {
	TraceName() string
	isTrace()
}

// ScatterTrace is a series of (x, y) points.
type ScatterTrace struct {
	X    []float64
	Y    []float64
	Mode string
	Name string
}

// BoxTrace is a distribution of samples drawn as a box plot.
type BoxTrace struct {
	Y    []float64
	Name string
}

func (t ScatterTrace) TraceName() string { return t.Name }
func (t BoxTrace) TraceName() string     { return t.Name }

func (ScatterTrace) isTrace() {}
func (BoxTrace) isTrace()     {}

// Figure bundles a single trace with its panel title.
type Figure struct {
	// Index is the 1-based position of the trace within its preset.
	Index int
	Title string
	Trace Trace
}

// ResolveType returns the preset requested by a raw query value. A missing or
// empty value selects DefaultPreset; any other value is taken verbatim.
func ResolveType(raw string, present bool) Preset {
	if !present || raw == "" {
		return DefaultPreset
	}
	return Preset(raw)
}

// Known reports whether p has traces.
func Known(p Preset) bool {
	switch p {
	case Scatter, Box:
		return true
	default:
		return false
	}
}

// Traces returns the traces of p in display order. Unknown presets yield an
// empty slice. Every call allocates new slices.
func Traces(p Preset) []Trace {
	switch p {
	case Scatter:
		return []Trace{
			ScatterTrace{X: []float64{1, 2, 3}, Y: []float64{10, 15, 13}, Mode: markersMode, Name: "Scatter 1"},
			ScatterTrace{X: []float64{1, 2, 3}, Y: []float64{16, 5, 11}, Mode: markersMode, Name: "Scatter 2"},
			ScatterTrace{X: []float64{1, 2, 3}, Y: []float64{12, 9, 15}, Mode: markersMode, Name: "Scatter 3"},
		}
	case Box:
		return []Trace{
			BoxTrace{Y: []float64{10, 15, 13, 17, 20, 22}, Name: "Box 1"},
			BoxTrace{Y: []float64{7, 9, 5, 12, 14, 18}, Name: "Box 2"},
			BoxTrace{Y: []float64{20, 22, 19, 24, 25, 23}, Name: "Box 3"},
		}
	default:
		return []Trace{}
	}
}

// DisplayName title-cases p: every run of letters is capitalised on its own,
// so any non-letter (space, underscore, digit, apostrophe) starts a new word.
// "foo_bar" becomes "Foo_Bar" and "x2y" becomes "X2Y".
func DisplayName(p Preset) string {
	// Casers keep state between calls, so each call gets its own.
	caser := cases.Title(language.Und)

	var b strings.Builder
	s := string(p)
	for len(s) > 0 {
		i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
		if i == 0 {
			i = strings.IndexFunc(s, unicode.IsLetter)
			if i < 0 {
				i = len(s)
			}
			b.WriteString(s[:i])
			s = s[i:]
			continue
		}
		if i < 0 {
			i = len(s)
		}
		b.WriteString(caser.String(s[:i]))
		caser.Reset()
		s = s[i:]
	}
	return b.String()
}

// Title formats the panel title for the index-th figure of p,
// e.g. "Scatter Graph 2".
func Title(p Preset, index int) string {
	return DisplayName(p) + " Graph " + strconv.Itoa(index)
}

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{Scatter, Box}
}

// Build wraps every trace of p in a titled figure.
func Build(p Preset) []Figure {
	traces := Traces(p)
	figures := make([]Figure, 0, len(traces))
	for i, tr := range traces {
		index := i + 1
		figures = append(figures, Figure{
			Index: index,
			Title: Title(p, index),
			Trace: tr,
		})
	}
	return figures
}
