package log

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger("error", false)

	SetLogger("DEBUG", false)
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	SetLogger("info", true)
	require.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	SetLogger("nonsense", false)
	require.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}

func TestSessionFields(t *testing.T) {
	id := uuid.New()
	fields := SessionFields(id, "127.0.0.1:4000")
	require.Equal(t, id.String(), fields["session"])
	require.Equal(t, "127.0.0.1:4000", fields["remote"])
}
