package handler

import (
	"context"
	"strconv"
	"strings"

	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/render"
	"quiz/internal/pkg/session"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// matches compares a reply with the expected answer, ignoring case and
// surrounding whitespace.
func matches(reply, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(reply), strings.TrimSpace(answer))
}

func (h *Handler) add(_ context.Context, s *session.Session, _ []string) error {
	h.ask(s, session.AddQuestion{}, "Enter a question: ")
	return nil
}

func (h *Handler) addQuestion(s *session.Session, question string) {
	h.ask(s, session.AddAnswer{Question: question}, "Enter the answer: ")
}

func (h *Handler) addAnswer(ctx context.Context, s *session.Session, f session.AddAnswer, answer string) {
	r, err := h.store.Create(ctx, quiz.Fields{Question: f.Question, Answer: answer})
	if err != nil {
		h.report(s, err)
	} else {
		s.Channel.Sendf("%s: %s", s.Channel.Color("Added", render.Magenta), r)
	}
	h.settle(s)
}

func (h *Handler) edit(ctx context.Context, s *session.Session, args []string) error {
	r, err := h.fetch(ctx, args)
	if err != nil {
		h.report(s, err)
		h.settle(s)
		return nil
	}
	h.askDefault(s, session.EditQuestion{Record: r}, "Enter the question: ", r.Question)
	return nil
}

func (h *Handler) editQuestion(s *session.Session, f session.EditQuestion, question string) {
	h.askDefault(s, session.EditAnswer{Record: f.Record, Question: question}, "Enter the answer: ", f.Record.Answer)
}

func (h *Handler) editAnswer(ctx context.Context, s *session.Session, f session.EditAnswer, answer string) {
	changed := f.Record
	changed.Question = f.Question
	changed.Answer = answer
	r, err := h.store.Update(ctx, changed)
	if err != nil {
		h.report(s, err)
	} else {
		s.Channel.Sendf("'%s' changed to '%s'", f.Record, r)
	}
	h.settle(s)
}

func (h *Handler) test(ctx context.Context, s *session.Session, args []string) error {
	r, err := h.fetch(ctx, args)
	if err != nil {
		h.report(s, err)
		h.settle(s)
		return nil
	}
	h.ask(s, session.TestAnswer{Record: r}, r.Question+"? ")
	return nil
}

func (h *Handler) testAnswer(s *session.Session, f session.TestAnswer, answer string) {
	if matches(answer, f.Record.Answer) {
		s.Channel.Emit("Your answer is correct.", render.Green)
		s.Channel.EmitBanner("Correct", render.Green)
	} else {
		s.Channel.Emit("Your answer is incorrect.", render.Red)
		s.Channel.EmitBanner("Incorrect", render.Red)
	}
	h.settle(s)
}
