// Package cfg implements functionaltiy to configure an app.
//
// The configuration objects defined here need only be implemented once,
// but can be applied to multiple types.
//
// In order to add support for a new type, the configuration
// need only implement an ApplyX method.
//
package cfg

import (
	"quiz/internal"
	"quiz/internal/app/apps"
)

// PortCfg is configuration for the ports the quiz server listens on.
type PortCfg struct {
	port       uint16
	healthPort uint16
	wsPort     uint16
}

// NewPortCfg creates a new PortCfg from the given config. A zero health or
// WebSocket port disables that listener.
func NewPortCfg(port, healthPort, wsPort uint16) *PortCfg {
	return &PortCfg{
		port:       port,
		healthPort: healthPort,
		wsPort:     wsPort,
	}
}

// PortFromEnv creates a new PortCfg from the current environment.
func PortFromEnv() *PortCfg {
	return NewPortCfg(uint16(internal.Port), uint16(internal.HealthPort), uint16(internal.WSPort))
}

// ApplyServerApp applies the PortCfg to a ServerApp.
func (cfg PortCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.Port = cfg.port
	app.HealthPort = cfg.healthPort
	app.WSPort = cfg.wsPort
	return nil
}
