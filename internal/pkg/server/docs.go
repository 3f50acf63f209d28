// Package server serves quiz sessions over stream transports.
//
// Every accepted connection gets its own session:
// 	1. The client is greeted with the welcome banner and the command prompt.
// 	2. A reader goroutine splits the incoming stream into lines and hands them,
// 	   in arrival order, to the handler loop owning the session.
// 	3. The handler answers each line before it looks at the next one. While a
// 	   multi-step flow is active the line answers the outstanding question.
// 	4. The session ends on quit, when the client goes away, or when the server
// 	   context is cancelled. Its connection is closed and its goroutines exit.
//
// Plain TCP and a WebSocket gateway (one text frame per line) share the same
// session engine. A gRPC health service reports whether the server is up.
//
// Sessions share nothing but the quiz store, so a slow or broken client never
// affects the others.
package server
