package client

import "github.com/pkg/errors"

var (
	// ErrNotConnected is returned by Run before Connect.
	ErrNotConnected = errors.New("client is not connected")
	// ErrMissingServerAddr is returned by NewClient without a server address.
	ErrMissingServerAddr = errors.New("client needs a server address")
	// ErrMissingIO is returned by NewClient without input or output.
	ErrMissingIO = errors.New("client needs an input and an output")
)
