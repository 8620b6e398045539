package database

import "errors"

// ErrNotFound is returned when an operation requires a row or item that does
// not exist. Handlers map it to a 404.
var ErrNotFound = errors.New("not found")
