// Package quiz defines the quiz record, the store contract the session engine
// consumes and the errors shared by both sides.
package quiz

import (
	"context"
	"fmt"
)

// Fields are the user-editable parts of a record.
type Fields struct {
	Question string `json:"question" yaml:"question" validate:"required,max=1024"`
	Answer   string `json:"answer" yaml:"answer" validate:"required,max=1024"`
}

// Record is a stored question/answer pair. ID is assigned by the store and never changes.
type Record struct {
	ID int64 `json:"id" yaml:"id"`
	Fields
}

func (r Record) String() string {
	return fmt.Sprintf("[%d] %s => %s", r.ID, r.Question, r.Answer)
}

// Store is the record store consumed by the session engine.
//
// FindByID and Update fail with a *NotFoundError for a missing id. Create and Update
// fail with a *ValidationError when the fields break the record rules. Destroy of a
// missing id is a no-op.
type Store interface {
	FindAll(ctx context.Context) ([]Record, error)
	FindByID(ctx context.Context, id int64) (Record, error)
	Create(ctx context.Context, fields Fields) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	Destroy(ctx context.Context, id int64) error
	Close() error
}
