package cfg

import (
	"io"

	"quiz/internal/app/apps"
)

// IOCfg replaces the terminal a client talks through.
type IOCfg struct {
	in  io.Reader
	out io.Writer
}

// NewIOCfg creates a new IOCfg.
func NewIOCfg(in io.Reader, out io.Writer) *IOCfg {
	return &IOCfg{in: in, out: out}
}

// ApplyClientApp applies the IOCfg to a ClientApp.
func (cfg IOCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.In = cfg.in
	app.Out = cfg.out
	return nil
}
