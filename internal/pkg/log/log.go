// Package log add logging utilities.
package log

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SetLogger sets the default logger's level. JSON output replaces the text
// formatter, for log collectors in production.
func SetLogger(level string, json bool) {
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		customFormatter := new(logrus.TextFormatter)
		customFormatter.TimestampFormat = time.RFC3339
		customFormatter.FullTimestamp = true
		logrus.SetFormatter(customFormatter)
	}
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

// SessionFields identifies a client session in log entries.
func SessionFields(id uuid.UUID, remote string) logrus.Fields {
	return logrus.Fields{
		"session": id.String(),
		"remote":  remote,
	}
}
