package domain

import "errors"

// ErrFormNotFound is returned when a form ID is not known to the loader.
var ErrFormNotFound = errors.New("form not found")

// ErrLayoutNotCached is returned by a layout cache on a miss.
var ErrLayoutNotCached = errors.New("layout not cached")
