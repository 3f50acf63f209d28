package handler

import (
	"context"
	"math/rand"
	"strconv"

	"quiz/internal/pkg/log"
	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/render"
	"quiz/internal/pkg/session"

	"github.com/pkg/errors"
)

func (h *Handler) play(ctx context.Context, s *session.Session, _ []string) error {
	records, err := h.store.FindAll(ctx)
	if err != nil {
		h.report(s, err)
		h.settle(s)
		return nil
	}
	ids := make([]int64, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	round := &session.Playing{
		Remaining: session.NewPool(ids...),
		Rand:      rand.New(rand.NewSource(h.seed())),
	}
	logger.WithFields(log.SessionFields(s.ID, s.Remote)).
		WithField("pool", round.Remaining.Len()).
		Debug("play round started")
	h.nextQuestion(ctx, s, round)
	return nil
}

// nextQuestion asks a random remaining record, or ends the round as won when
// none is left. Records deleted since the round started are dropped.
func (h *Handler) nextQuestion(ctx context.Context, s *session.Session, round *session.Playing) {
	for round.Remaining.Len() > 0 {
		id := round.Remaining.Pick(round.Rand)
		r, err := h.store.FindByID(ctx, id)
		if errors.Is(err, quiz.ErrNotFound) {
			round.Remaining.Remove(id)
			continue
		}
		if err != nil {
			h.report(s, err)
			h.finishRound(s, round)
			return
		}
		round.Current = r
		h.ask(s, round, r.Question+"? ")
		return
	}
	s.Channel.Send("Nothing left to ask.")
	h.finishRound(s, round)
}

func (h *Handler) playAnswer(ctx context.Context, s *session.Session, round *session.Playing, answer string) {
	if !matches(answer, round.Current.Answer) {
		s.Channel.Emit("INCORRECT.", render.Red)
		h.finishRound(s, round)
		return
	}
	round.Score++
	round.Remaining.Remove(round.Current.ID)
	s.Channel.Sendf("CORRECT - %d hits so far.", round.Score)
	h.nextQuestion(ctx, s, round)
}

func (h *Handler) finishRound(s *session.Session, round *session.Playing) {
	s.Channel.Send("End of the round. Hits:")
	s.Channel.EmitBanner(strconv.Itoa(round.Score), render.Magenta)
	logger.WithFields(log.SessionFields(s.ID, s.Remote)).
		WithField("score", round.Score).
		Debug("play round finished")
	h.settle(s)
}
