package models

import "errors"

// ErrNotFound indicates the remote API has no record for the requested
// identifier. Clients translate 404 responses into this error so callers
// can branch on it with errors.Is.
var ErrNotFound = errors.New("not found")
