package models

import "errors"

// ErrInvalidPrice is returned when a monetary string does not match the
// expected base-10 format with at most two fractional digits.
var ErrInvalidPrice = errors.New("invalid price format")
