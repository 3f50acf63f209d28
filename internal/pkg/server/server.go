package server

import (
	"context"
	"io"
	"net"
	"sync"

	"quiz/internal/pkg/handler"
	"quiz/internal/pkg/log"
	"quiz/internal/pkg/prompt"
	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/render"
	"quiz/internal/pkg/session"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// BusyMessage is sent to connections refused because the session cap is reached.
const BusyMessage = "The server is busy, try again later."

// Server accepts client connections and runs one quiz session per connection.
type Server struct {
	handler     *handler.Handler
	registry    *session.Registry
	slots       *semaphore.Weighted
	prompt      string
	color       bool
	interactive bool
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithHandler sets the handler running the command protocol.
func WithHandler(h *handler.Handler) Cfg {
	return func(s *Server) error {
		s.handler = h
		return nil
	}
}

// WithRegistry sets the registry live sessions are tracked in.
func WithRegistry(r *session.Registry) Cfg {
	return func(s *Server) error {
		s.registry = r
		return nil
	}
}

// WithMaxSessions caps the number of concurrent sessions. Zero means no cap.
func WithMaxSessions(n int64) Cfg {
	return func(s *Server) error {
		if n < 0 {
			return errors.Errorf("max sessions must not be negative, got %d", n)
		}
		if n > 0 {
			s.slots = semaphore.NewWeighted(n)
		}
		return nil
	}
}

// WithPrompt sets the command prompt token.
func WithPrompt(p string) Cfg {
	return func(s *Server) error {
		s.prompt = p
		return nil
	}
}

// WithColor enables ANSI styling of the output.
func WithColor(color bool) Cfg {
	return func(s *Server) error {
		s.color = color
		return nil
	}
}

// WithInteractiveDefaults shows current values as editable defaults in edit.
func WithInteractiveDefaults(interactive bool) Cfg {
	return func(s *Server) error {
		s.interactive = interactive
		return nil
	}
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfgs ...Cfg) (*Server, error) {
	server := &Server{
		prompt: prompt.DefaultPrompt,
	}
	for _, cfg := range cfgs {
		if err := cfg(server); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if server.handler == nil {
		return nil, ErrMissingHandler
	}
	if server.registry == nil {
		server.registry = session.NewRegistry()
	}
	return server, nil
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	return s.registry.Len()
}

// Serve accepts TCP connections on ln until ctx is done or accepting fails.
// It returns once every session it started has ended.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		ln.Close()
	}()
	logger.WithField("addr", ln.Addr().String()).Info("quiz server listening")

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("quiz server stopped")
				return nil
			}
			if cerr := s.registry.CloseAll(); cerr != nil {
				logger.WithError(cerr).Warn("close sessions failed")
			}
			return errors.Wrap(err, "accept connection failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, NewTCPConn(conn)); err != nil {
				logger.WithError(err).Error("serve connection failed")
			}
		}()
	}
}

// ServeConn runs one session on conn and closes conn when the session ends.
// Quit, disconnects and cancellation of ctx end a session normally.
func (s *Server) ServeConn(ctx context.Context, conn Conn) error {
	defer conn.Close()
	fields := logrus.Fields{"remote": conn.RemoteAddr(), "transport": conn.Transport()}

	if s.slots != nil {
		if !s.slots.TryAcquire(1) {
			logger.WithFields(fields).Warn("session limit reached, refusing client")
			if _, err := io.WriteString(conn, BusyMessage+"\n"); err != nil {
				logger.WithFields(fields).WithError(err).Debug("send busy message failed")
			}
			return nil
		}
		defer s.slots.Release(1)
	}

	ch := prompt.NewChannel(conn,
		prompt.WithPrompt(s.prompt),
		prompt.WithRenderer(render.New(s.color)),
		prompt.WithInteractive(s.interactive),
	)
	sess := session.New(conn.RemoteAddr(), ch)
	entry := logger.WithFields(log.SessionFields(sess.ID, sess.Remote)).WithField("transport", conn.Transport())
	if err := s.registry.Add(sess, conn); err != nil {
		return errors.Wrap(err, "register session failed")
	}
	defer func() {
		if err := s.registry.Remove(sess.ID); err != nil {
			entry.WithError(err).Warn("unregister session failed")
		}
	}()
	entry.Infof("new client at %s", sess.Remote)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan string)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(in)
		for {
			line, err := conn.ReadLine()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					entry.WithError(err).Debug("read line failed")
				}
				return
			}
			select {
			case in <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	defer func() {
		// closing conn unblocks the reader
		cancel()
		conn.Close()
		wg.Wait()
	}()

	ch.EmitBanner("CORE Quiz", render.Green)
	ch.Prompt()
	if err := ch.Err(); err != nil {
		entry.WithError(err).Warn("client disconnected")
		return nil
	}

	err := s.handler.Run(ctx, sess, in)
	switch {
	case err == nil:
		entry.Info("client quit")
	case errors.Is(err, quiz.ErrTransportLost):
		entry.WithError(err).Warn("client disconnected")
	case errors.Is(err, context.Canceled):
		entry.Info("session closed on shutdown")
	default:
		return errors.Wrap(err, "run session failed")
	}
	return nil
}
