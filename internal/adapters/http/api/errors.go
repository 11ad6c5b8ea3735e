package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrWriteResponse = errors.New("write response failed")
)
