package handler

import (
	"context"
	"strings"

	"quiz/internal/pkg/log"
	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/render"
	"quiz/internal/pkg/session"

	"github.com/pkg/errors"
)

type command func(h *Handler, ctx context.Context, s *session.Session, args []string) error

var commands = map[string]command{
	"h":       (*Handler).help,
	"help":    (*Handler).help,
	"list":    (*Handler).list,
	"show":    (*Handler).show,
	"add":     (*Handler).add,
	"delete":  (*Handler).delete,
	"edit":    (*Handler).edit,
	"test":    (*Handler).test,
	"p":       (*Handler).play,
	"play":    (*Handler).play,
	"credits": (*Handler).credits,
	"q":       (*Handler).quit,
	"quit":    (*Handler).quit,
}

var helpLines = []string{
	"Commands:",
	"   h|help - Show this help.",
	"   list - List the existing quizzes.",
	"   show <id> - Show the question and the answer of the given quiz.",
	"   add - Add a new quiz interactively.",
	"   delete <id> - Delete the given quiz.",
	"   edit <id> - Edit the given quiz.",
	"   test <id> - Test the given quiz.",
	"   p|play - Play: answer every quiz in random order.",
	"   credits - Credits.",
	"   q|quit - Quit.",
}

var authors = []string{
	"Jose Ignacio Villegas Villegas",
	"Raul Luengo Ximenez-Cruz",
}

func (h *Handler) dispatch(ctx context.Context, s *session.Session, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.Channel.Prompt()
		return nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		h.report(s, &quiz.UnknownCommandError{Name: fields[0]})
		s.Channel.Prompt()
		return nil
	}
	logger.WithFields(log.SessionFields(s.ID, s.Remote)).WithField("command", name).Debug("dispatching command")
	return cmd(h, ctx, s, fields[1:])
}

// arg returns the i-th argument, nil when absent.
func arg(args []string, i int) *string {
	if i >= len(args) {
		return nil
	}
	return &args[i]
}

// report tells the client what went wrong with a command. It never ends the session.
func (h *Handler) report(s *session.Session, err error) {
	logger.WithFields(log.SessionFields(s.ID, s.Remote)).WithError(err).Debug("command failed")

	var invalid *quiz.ValidationError
	var unknown *quiz.UnknownCommandError
	switch {
	case errors.As(err, &invalid):
		s.Channel.Error("The quiz is invalid:")
		for _, msg := range invalid.Messages {
			s.Channel.Error(msg)
		}
	case errors.As(err, &unknown):
		s.Channel.Sendf("Unknown command: '%s'", s.Channel.Color(unknown.Name, render.Red))
		s.Channel.Sendf("Use %s to see all available commands.", s.Channel.Color("help", render.Green))
	default:
		s.Channel.Error(err.Error())
	}
}

// fetch validates the id argument and loads its record.
func (h *Handler) fetch(ctx context.Context, args []string) (quiz.Record, error) {
	id, err := quiz.ValidateID(arg(args, 0))
	if err != nil {
		return quiz.Record{}, err
	}
	return h.store.FindByID(ctx, id)
}

func (h *Handler) help(_ context.Context, s *session.Session, _ []string) error {
	for _, l := range helpLines {
		s.Channel.Send(l)
	}
	h.settle(s)
	return nil
}

func (h *Handler) credits(_ context.Context, s *session.Session, _ []string) error {
	s.Channel.Send("Authors of the practice:")
	for _, a := range authors {
		s.Channel.Emit(a, render.Green)
	}
	h.settle(s)
	return nil
}

func (h *Handler) quit(_ context.Context, s *session.Session, _ []string) error {
	s.Channel.Send("Bye!")
	return session.ErrSessionClosed
}

func (h *Handler) list(ctx context.Context, s *session.Session, _ []string) error {
	records, err := h.store.FindAll(ctx)
	if err != nil {
		h.report(s, err)
	}
	for _, r := range records {
		s.Channel.Sendf(" [%s]: %s", s.Channel.Color(formatID(r.ID), render.Magenta), r.Question)
	}
	h.settle(s)
	return nil
}

func (h *Handler) show(ctx context.Context, s *session.Session, args []string) error {
	r, err := h.fetch(ctx, args)
	if err != nil {
		h.report(s, err)
	} else {
		s.Channel.Sendf(" [%s]: %s %s %s",
			s.Channel.Color(formatID(r.ID), render.Magenta), r.Question,
			s.Channel.Color("=>", render.Magenta), r.Answer)
	}
	h.settle(s)
	return nil
}

func (h *Handler) delete(ctx context.Context, s *session.Session, args []string) error {
	r, err := h.fetch(ctx, args)
	if err == nil {
		err = h.store.Destroy(ctx, r.ID)
	}
	if err != nil {
		h.report(s, err)
	} else {
		s.Channel.Sendf("%s: %s", s.Channel.Color("Deleted", render.Magenta), r)
	}
	h.settle(s)
	return nil
}
