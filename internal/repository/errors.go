package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist or is not
// owned by the caller. Ownership misses are indistinguishable from missing
// rows on purpose.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")
