package reports

import "errors"

// ErrNotFound covers both a nonexistent report id and an id owned by a
// different user; the store never distinguishes the two.
var ErrNotFound = errors.New("report not found")

// ErrStoreUnavailable indicates the document store could not be reached.
var ErrStoreUnavailable = errors.New("report store unavailable")

// ErrStoreWriteFailed indicates a write fault other than connectivity.
var ErrStoreWriteFailed = errors.New("report store write failed")
