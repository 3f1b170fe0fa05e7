package rcwt

import "errors"

// ErrInvalidLineLength is returned when WriteLine is given a payload that
// is not exactly 42 bytes (a T42 line).
var ErrInvalidLineLength = errors.New("rcwt: line must be exactly 42 bytes")
