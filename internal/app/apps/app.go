// Package apps implements the applications started by the quiz commands.
package apps

import (
	"context"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// App is an application run by a command.
type App interface {
	Run(ctx context.Context, args []string) error
}
