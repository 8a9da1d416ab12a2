package domain

import "errors"

// Common domain errors. Call sites discriminate with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrRateLimited       = errors.New("text generation rate limited")
)
