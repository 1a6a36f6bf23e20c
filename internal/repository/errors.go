package repository

import "errors"

// ErrNotFound is returned when a listing does not exist.
var ErrNotFound = errors.New("not found")
