// Package store implements the quiz record store backends.
package store

import (
	"context"
	"strings"

	"quiz/internal/pkg/quiz"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ErrUnsupportedDriver is returned by Open for an unknown driver name.
var ErrUnsupportedDriver = errors.New("unsupported store driver")

// ErrMissingDSN is returned by Open when a driver needs a DSN and got none.
var ErrMissingDSN = errors.New("store dsn must be provided")

// Open connects to the store selected by driver.
func Open(ctx context.Context, driver, dsn string) (quiz.Store, error) {
	driver = strings.ToLower(driver)
	if driver != DriverMemory && dsn == "" {
		return nil, errors.Wrapf(ErrMissingDSN, "open %s store failed", driver)
	}
	logger.WithField("driver", driver).Info("opening quiz store")
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "sqlite3", DriverMySQL:
		s, err := OpenSQLStore(ctx, driver, dsn)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s store failed", driver)
		}
		return s, nil
	case DriverPostgres:
		s, err := OpenGormStore(ctx, dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres store failed")
		}
		return s, nil
	case DriverRedis:
		s, err := OpenRedisStore(ctx, dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open redis store failed")
		}
		return s, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDriver, "driver %q", driver)
	}
}
