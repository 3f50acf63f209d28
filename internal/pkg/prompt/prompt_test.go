package prompt

import (
	"bytes"
	"errors"
	"testing"

	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/render"

	"github.com/stretchr/testify/require"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestAskResolve(t *testing.T) {
	var buf bytes.Buffer
	c := NewChannel(&buf)

	_, ok := c.Resolve("stray")
	require.False(t, ok)

	require.NoError(t, c.Ask("Question: "))
	require.True(t, c.Pending())
	require.ErrorIs(t, c.Ask("again"), ErrAskPending)

	answer, ok := c.Resolve("  Paris \r")
	require.True(t, ok)
	require.Equal(t, "Paris", answer)
	require.False(t, c.Pending())
	require.Equal(t, "Question: ", buf.String())
}

func TestAskDefaultNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	c := NewChannel(&buf)
	require.NoError(t, c.AskDefault("New question: ", "old"))
	require.Equal(t, "New question: ", buf.String())
	answer, ok := c.Resolve("   ")
	require.True(t, ok)
	require.Empty(t, answer)
}

func TestAskDefaultInteractive(t *testing.T) {
	var buf bytes.Buffer
	c := NewChannel(&buf, WithInteractive(true))
	require.NoError(t, c.AskDefault("New question: ", "old"))
	require.Equal(t, "New question: [old] ", buf.String())
	require.ErrorIs(t, c.AskDefault("x", "y"), ErrAskPending)

	answer, ok := c.Resolve("")
	require.True(t, ok)
	require.Equal(t, "old", answer)

	require.NoError(t, c.AskDefault("New answer: ", "old"))
	answer, _ = c.Resolve(" new ")
	require.Equal(t, "new", answer)
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewChannel(&buf, WithPrompt("> "), WithRenderer(render.New(false)))
	c.Send("one")
	c.Sendf("%d", 2)
	c.Emit("three", render.Green)
	c.Error("four")
	c.Prompt()
	require.Equal(t, "one\n2\nthree\nError: four\n> ", buf.String())
	require.NoError(t, c.Err())
}

func TestTransportLost(t *testing.T) {
	c := NewChannel(brokenWriter{})
	c.Send("hello")
	require.ErrorIs(t, c.Err(), quiz.ErrTransportLost)
	c.Send("ignored")
	require.ErrorIs(t, c.Err(), quiz.ErrTransportLost)
}
