package session

import "errors"

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionAlreadyExists = errors.New("session already exists")

// ErrSessionClosed ends a session on the client's request.
var ErrSessionClosed = errors.New("session closed")
