package page

import "errors"

// Sentinel kinds for chart page errors.
var (
	ErrParseTemplate = errors.New("chart page template parse failed")
	ErrRender        = errors.New("chart page render failed")
	ErrSerialize     = errors.New("chart figure serialization failed")
)
