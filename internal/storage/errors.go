// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage implementations

package storage

import "errors"

// ErrNotFound is returned when no persisted state exists yet.
var ErrNotFound = errors.New("not found")
