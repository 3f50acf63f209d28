package quiz

import (
	"fmt"
	"strings"

	"quiz/internal/pkg/validate"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Check applies the record rules to fields. Store backends call it before every
// write so that all of them reject the same input the same way.
func Check(fields Fields) error {
	err := validate.Validate().Struct(fields)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate quiz fields failed")
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Messages = append(verr.Messages, fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s must not be empty", name)
	case "max":
		return fmt.Sprintf("the %s must be at most %s characters long", name, fe.Param())
	default:
		return fmt.Sprintf("the %s is not valid (%s)", name, fe.Tag())
	}
}
