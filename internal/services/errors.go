package services

import "errors"

// Sentinel errors surfaced to the transport layer, which maps them to
// API error responses.
var (
	// ErrYearNotFound means the cleaned data holds no rows for the
	// requested year.
	ErrYearNotFound = errors.New("no data for requested year")
)
