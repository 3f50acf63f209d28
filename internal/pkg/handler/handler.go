package handler

import (
	"context"
	"time"

	"quiz/internal/pkg/log"
	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/session"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// ErrMissingStore is returned by NewHandler without WithStore.
var ErrMissingStore = errors.New("handler needs a quiz store")

// Handler runs the command protocol for any number of sessions. It keeps no
// per-session state; everything a flow needs lives in session.Flow values.
type Handler struct {
	store quiz.Store
	seed  func() int64
}

// HandlerCfg configures a Handler.
type HandlerCfg func(*Handler) error

// WithStore sets the record store.
func WithStore(store quiz.Store) HandlerCfg {
	return func(h *Handler) error {
		h.store = store
		return nil
	}
}

// WithSeed sets the seed source for play round randomness.
func WithSeed(seed func() int64) HandlerCfg {
	return func(h *Handler) error {
		h.seed = seed
		return nil
	}
}

// NewHandler creates a new Handler.
func NewHandler(cfgs ...HandlerCfg) (*Handler, error) {
	h := &Handler{
		seed: func() int64 { return time.Now().UnixNano() },
	}
	for _, cfg := range cfgs {
		if err := cfg(h); err != nil {
			return nil, errors.Wrap(err, "apply handler cfg failed")
		}
	}
	if h.store == nil {
		return nil, ErrMissingStore
	}
	return h, nil
}

// HandleLine processes one input line. While a flow is active the line answers
// its outstanding ask; otherwise it is a command.
//
// Command failures are reported to the client and do not surface here. The
// returned error is session.ErrSessionClosed after quit, or the transport
// failure that made the client unreachable.
func (h *Handler) HandleLine(ctx context.Context, s *session.Session, line string) error {
	var err error
	if s.Idle() {
		err = h.dispatch(ctx, s, line)
	} else {
		err = h.resume(ctx, s, line)
	}
	if err != nil {
		return err
	}
	return s.Channel.Err()
}

// Run feeds lines from in to the session until the client quits, in is closed or
// ctx is done.
func (h *Handler) Run(ctx context.Context, s *session.Session, in <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-in:
			if !ok {
				return errors.Wrap(quiz.ErrTransportLost, "input closed")
			}
			if err := h.HandleLine(ctx, s, line); err != nil {
				if errors.Is(err, session.ErrSessionClosed) {
					return nil
				}
				return errors.Wrap(err, "handle line failed")
			}
		}
	}
}

// settle ends the active flow, if any, and issues the command prompt.
func (h *Handler) settle(s *session.Session) {
	s.Flow = nil
	s.Channel.Prompt()
}

func (h *Handler) resume(ctx context.Context, s *session.Session, line string) error {
	answer, ok := s.Channel.Resolve(line)
	if !ok {
		logger.WithFields(log.SessionFields(s.ID, s.Remote)).
			WithField("flow", s.Flow.Name()).
			Warn("flow without an outstanding ask, dropping it")
		h.settle(s)
		return nil
	}
	switch f := s.Flow.(type) {
	case session.AddQuestion:
		h.addQuestion(s, answer)
	case session.AddAnswer:
		h.addAnswer(ctx, s, f, answer)
	case session.EditQuestion:
		h.editQuestion(s, f, answer)
	case session.EditAnswer:
		h.editAnswer(ctx, s, f, answer)
	case session.TestAnswer:
		h.testAnswer(s, f, answer)
	case *session.Playing:
		h.playAnswer(ctx, s, f, answer)
	default:
		h.settle(s)
	}
	return nil
}

// ask starts waiting for the reply to question in state next.
func (h *Handler) ask(s *session.Session, next session.Flow, question string) {
	s.Flow = next
	if err := s.Channel.Ask(question); err != nil {
		h.report(s, err)
		h.settle(s)
	}
}

func (h *Handler) askDefault(s *session.Session, next session.Flow, question, current string) {
	s.Flow = next
	if err := s.Channel.AskDefault(question, current); err != nil {
		h.report(s, err)
		h.settle(s)
	}
}
