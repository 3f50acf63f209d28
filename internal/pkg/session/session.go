package session

import (
	"io"
	"sync"

	"quiz/internal/pkg/prompt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Session is the state bound to one client connection. Only the goroutine
// serving that connection touches it.
type Session struct {
	ID      uuid.UUID
	Remote  string
	Channel *prompt.Channel
	// Flow is the multi-step interaction in progress, nil when idle.
	Flow Flow
}

func New(remote string, ch *prompt.Channel) *Session {
	return &Session{
		ID:      uuid.New(),
		Remote:  remote,
		Channel: ch,
	}
}

// Idle reports whether the next line is a command.
func (s *Session) Idle() bool {
	return s.Flow == nil
}

// Registry tracks live sessions so the server can count and close them.
type Registry struct {
	sessions map[uuid.UUID]entry
	mu       sync.RWMutex
}

type entry struct {
	session *Session
	closer  io.Closer
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]entry),
	}
}

// Add registers s; closer is closed by CloseAll.
func (r *Registry) Add(s *Session, closer io.Closer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return ErrSessionAlreadyExists
	}
	r.sessions[s.ID] = entry{session: s, closer: closer}
	return nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[id]; ok {
		return e.session, nil
	}
	return nil, ErrSessionNotFound
}

func (r *Registry) Remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll closes the transport of every registered session. Sessions remove
// themselves once their serving goroutine notices.
func (r *Registry) CloseAll() error {
	r.mu.RLock()
	closers := make([]io.Closer, 0, len(r.sessions))
	for _, e := range r.sessions {
		closers = append(closers, e.closer)
	}
	r.mu.RUnlock()

	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "close session transport failed")
		}
	}
	return firstErr
}
