package cfg

import (
	"quiz/internal"
	"quiz/internal/app/apps"

	"github.com/pkg/errors"
)

// SessionCfg shapes the sessions served to clients.
type SessionCfg struct {
	prompt      string
	color       bool
	interactive bool
	maxSessions int
}

// NewSessionCfg creates a new SessionCfg.
func NewSessionCfg(prompt string, color, interactive bool, maxSessions int) *SessionCfg {
	return &SessionCfg{
		prompt:      prompt,
		color:       color,
		interactive: interactive,
		maxSessions: maxSessions,
	}
}

// SessionFromEnv creates a new SessionCfg from the current environment.
func SessionFromEnv() *SessionCfg {
	return NewSessionCfg(internal.Prompt, internal.Color, internal.InteractiveDefaults, internal.MaxSessions)
}

// ApplyServerApp applies the SessionCfg to a ServerApp.
func (cfg SessionCfg) ApplyServerApp(app *apps.ServerApp) error {
	if cfg.maxSessions < 0 {
		return errors.Errorf("max sessions must not be negative, got %d", cfg.maxSessions)
	}
	app.Prompt = cfg.prompt
	app.Color = cfg.color
	app.Interactive = cfg.interactive
	app.MaxSessions = int64(cfg.maxSessions)
	return nil
}
