package quiz

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrMissingID indicates that a command needing an <id> argument got none.
var ErrMissingID = errors.New("missing <id> argument")

// ErrInvalidID indicates that the <id> argument is not a number.
var ErrInvalidID = errors.New("the <id> argument is not a number")

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("quiz not found")

// ErrTransportLost indicates that the client connection went away.
var ErrTransportLost = errors.New("transport lost")

// NotFoundError reports a well-formed id without a matching record.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("there is no quiz with id=%d", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid quiz: " + strings.Join(e.Messages, "; ")
}

// UnknownCommandError reports an unrecognized command token.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: '%s'", e.Name)
}
