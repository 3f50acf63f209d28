// Package prompt implements the conversation with one connected client: lines
// out, and at most one outstanding question whose reply is the next line in.
package prompt

import (
	"fmt"
	"io"
	"strings"

	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/render"

	"github.com/pkg/errors"
)

// DefaultPrompt is the command prompt token.
const DefaultPrompt = "quiz> "

// ErrAskPending is returned by Ask while an earlier ask has not been resolved.
var ErrAskPending = errors.New("an ask is already outstanding")

type pendingAsk struct {
	current    string
	hasCurrent bool
}

// Channel writes to one client and tracks its outstanding ask. It is not safe for
// concurrent use; a session owns its channel.
type Channel struct {
	w           io.Writer
	render      *render.Renderer
	prompt      string
	interactive bool

	pending *pendingAsk
	err     error
}

// Cfg configures a Channel.
type Cfg func(*Channel)

// WithPrompt sets the command prompt token.
func WithPrompt(p string) Cfg {
	return func(c *Channel) {
		c.prompt = p
	}
}

// WithRenderer sets the renderer used for styled output.
func WithRenderer(r *render.Renderer) Cfg {
	return func(c *Channel) {
		c.render = r
	}
}

// WithInteractive enables editable defaults in AskDefault.
func WithInteractive(interactive bool) Cfg {
	return func(c *Channel) {
		c.interactive = interactive
	}
}

// NewChannel returns a channel writing to w.
func NewChannel(w io.Writer, cfgs ...Cfg) *Channel {
	c := &Channel{
		w:      w,
		prompt: DefaultPrompt,
	}
	for _, cfg := range cfgs {
		cfg(c)
	}
	if c.render == nil {
		c.render = render.New(false)
	}
	return c
}

func (c *Channel) write(s string) {
	if c.err != nil {
		return
	}
	if _, err := io.WriteString(c.w, s); err != nil {
		c.err = errors.Wrap(quiz.ErrTransportLost, err.Error())
	}
}

// Err reports the transport failure that ended this channel, if any.
func (c *Channel) Err() error {
	return c.err
}

// Send writes one unstyled line.
func (c *Channel) Send(text string) {
	c.write(text + "\n")
}

// Sendf is Send with formatting.
func (c *Channel) Sendf(format string, args ...interface{}) {
	c.Send(fmt.Sprintf(format, args...))
}

// Emit writes one line with a style hint.
func (c *Channel) Emit(text string, s render.Style) {
	c.Send(c.render.Text(text, s))
}

// EmitBanner writes text as a banner.
func (c *Channel) EmitBanner(text string, s render.Style) {
	c.Send(c.render.Banner(text, s))
}

// Error writes an error line.
func (c *Channel) Error(msg string) {
	c.Send(fmt.Sprintf("%s: %s", c.render.Text("Error", render.Red), c.render.Text(msg, render.Error)))
}

// Color exposes the renderer for lines mixing several styles.
func (c *Channel) Color(text string, s render.Style) string {
	return c.render.Text(text, s)
}

// Prompt writes the command prompt token.
func (c *Channel) Prompt() {
	c.write(c.render.Text(c.prompt, render.Blue))
}

// Ask writes question and marks it outstanding. The next line passed to Resolve
// answers it.
func (c *Channel) Ask(question string) error {
	if c.pending != nil {
		return ErrAskPending
	}
	c.pending = &pendingAsk{}
	c.write(c.render.Text(question, render.Red))
	return nil
}

// AskDefault asks with current as an editable default. On an interactive channel
// current is shown and an empty reply keeps it; otherwise this is Ask.
func (c *Channel) AskDefault(question, current string) error {
	if !c.interactive {
		return c.Ask(question)
	}
	if c.pending != nil {
		return ErrAskPending
	}
	c.pending = &pendingAsk{current: current, hasCurrent: true}
	c.write(c.render.Text(question, render.Red) + "[" + current + "] ")
	return nil
}

// Pending reports whether an ask is outstanding.
func (c *Channel) Pending() bool {
	return c.pending != nil
}

// Resolve answers the outstanding ask with line, trimmed. It returns false when
// nothing was asked.
func (c *Channel) Resolve(line string) (string, bool) {
	p := c.pending
	if p == nil {
		return "", false
	}
	c.pending = nil
	answer := strings.TrimSpace(line)
	if answer == "" && p.hasCurrent {
		return p.current, true
	}
	return answer, true
}
