package cfg

import (
	"quiz/internal"
	"quiz/internal/app/apps"
)

// AddrCfg is the quiz server address a client connects to.
type AddrCfg struct {
	addr string
}

// NewAddrCfg creates a new AddrCfg.
func NewAddrCfg(addr string) *AddrCfg {
	return &AddrCfg{addr: addr}
}

// AddrFromEnv creates a new AddrCfg from the current environment.
func AddrFromEnv() *AddrCfg {
	return NewAddrCfg(internal.Addr)
}

// ApplyClientApp applies the AddrCfg to a ClientApp.
func (cfg AddrCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.Addr = cfg.addr
	return nil
}
