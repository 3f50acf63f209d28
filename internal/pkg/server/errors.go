package server

import "errors"

var (
	// ErrMissingHandler is returned by NewServer without WithHandler.
	ErrMissingHandler = errors.New("server needs a handler")
)
