package session

import (
	"math/rand"

	"quiz/internal/pkg/quiz"
)

// Flow is one state of a multi-step interaction. Each value carries everything
// the next step needs; a transition replaces it.
type Flow interface {
	Name() string
}

// AddQuestion waits for the question of a new record.
type AddQuestion struct{}

// AddAnswer waits for the answer of a new record.
type AddAnswer struct {
	Question string
}

// EditQuestion waits for the new question of Record.
type EditQuestion struct {
	Record quiz.Record
}

// EditAnswer waits for the new answer of Record.
type EditAnswer struct {
	Record   quiz.Record
	Question string
}

// TestAnswer waits for the reply to a single test question.
type TestAnswer struct {
	Record quiz.Record
}

// Playing is a play round waiting for the answer to Current.
type Playing struct {
	Remaining Pool
	Score     int
	Current   quiz.Record
	Rand      *rand.Rand
}

func (AddQuestion) Name() string  { return "add_question" }
func (AddAnswer) Name() string    { return "add_answer" }
func (EditQuestion) Name() string { return "edit_question" }
func (EditAnswer) Name() string   { return "edit_answer" }
func (TestAnswer) Name() string   { return "test_answer" }
func (*Playing) Name() string     { return "playing" }
