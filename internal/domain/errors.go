package domain

import "errors"

var (
	// ErrNotFound covers every gate and catalog lookup failure.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is only produced by the authentication layer.
	ErrUnauthorized = errors.New("unauthorized")
)
