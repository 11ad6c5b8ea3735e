package plotly

import (
	"errors"
)

// Sentinel kinds for serialization errors.
var (
	ErrUnsupportedTrace = errors.New("unsupported trace")
	ErrEncode           = errors.New("plotly encode failed")
)
