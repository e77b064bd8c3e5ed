package apperr

import "errors"

// Invalid is returned when the input fails domain validation or an operation
// targets an order in the wrong state.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness conflict (duplicate courier or order id).
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")
