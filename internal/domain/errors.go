package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrUpstream      = errors.New("upstream unavailable")
	ErrBadQuantity   = errors.New("quantity must be a positive whole number")
	ErrEmptyResponse = errors.New("empty response")
)
