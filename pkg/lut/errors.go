package lut

import "errors"

// Error kinds reported by the LUT packages. Callers match them with errors.Is;
// the wrapping error carries the detail.
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrMalformedDocument = errors.New("malformed document")
	ErrImageDecode       = errors.New("image decode error")
	ErrResourceExceeded  = errors.New("resource exceeded")
)
