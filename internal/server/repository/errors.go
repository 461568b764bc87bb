package repository

import "errors"

// ErrNotFound indicates the requested row does not exist (or was already
// soft-deleted).
var ErrNotFound = errors.New("not found")
