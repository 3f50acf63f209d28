package apps

import (
	"context"
	"fmt"
	"net"

	"quiz/internal/pkg/handler"
	"quiz/internal/pkg/quiz"
	"quiz/internal/pkg/server"
	"quiz/internal/pkg/store"
	"quiz/internal/pkg/validate"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp is the quiz server application: the TCP server plus the optional
// WebSocket gateway and health service, all backed by one store.
type ServerApp struct {
	Port        uint16 `validate:"required"`
	HealthPort  uint16
	WSPort      uint16
	MaxSessions int64  `validate:"min=0"`
	Store       string `validate:"required,oneof=memory sqlite mysql postgres redis"`
	StoreDSN    string `validate:"required_unless=Store memory"`
	SeedFile    string
	Prompt      string `validate:"required"`
	Color       bool
	Interactive bool
}

// NewServerApp creates a new ServerApp.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{
		Store:  store.DriverMemory,
		Prompt: "quiz> ",
	}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

// Run serves until ctx is done or one of the listeners fails.
func (app *ServerApp) Run(ctx context.Context, args []string) error {
	st, err := store.Open(ctx, app.Store, app.StoreDSN)
	if err != nil {
		return errors.Wrap(err, "open store failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.WithError(err).Warn("close store failed")
		}
	}()
	if err := app.seed(ctx, st); err != nil {
		return err
	}

	h, err := handler.NewHandler(handler.WithStore(st))
	if err != nil {
		return errors.Wrap(err, "create handler failed")
	}
	srv, err := server.NewServer(
		server.WithHandler(h),
		server.WithMaxSessions(app.MaxSessions),
		server.WithPrompt(app.Prompt),
		server.WithColor(app.Color),
		server.WithInteractiveDefaults(app.Interactive),
	)
	if err != nil {
		return errors.Wrap(err, "create server failed")
	}

	var lc net.ListenConfig
	var listeners []net.Listener
	listen := func(port uint16) (net.Listener, error) {
		ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			for _, l := range listeners {
				l.Close()
			}
			return nil, errors.Wrapf(err, "listen on port %d failed", port)
		}
		listeners = append(listeners, ln)
		return ln, nil
	}
	ln, err := listen(app.Port)
	if err != nil {
		return err
	}
	var wsLn, healthLn net.Listener
	if app.WSPort != 0 {
		if wsLn, err = listen(app.WSPort); err != nil {
			return err
		}
	}
	if app.HealthPort != 0 {
		if healthLn, err = listen(app.HealthPort); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ctx, ln)
	})
	if wsLn != nil {
		g.Go(func() error {
			return srv.ServeWebSocket(ctx, wsLn)
		})
	}
	if healthLn != nil {
		g.Go(func() error {
			return server.ServeHealth(ctx, healthLn)
		})
	}
	return g.Wait()
}

func (app *ServerApp) seed(ctx context.Context, st quiz.Store) error {
	fields := store.DefaultSeed()
	if app.SeedFile != "" {
		var err error
		if fields, err = store.LoadSeed(app.SeedFile); err != nil {
			return errors.Wrap(err, "load seed failed")
		}
	}
	if _, err := store.SeedIfEmpty(ctx, st, fields); err != nil {
		return errors.Wrap(err, "seed store failed")
	}
	return nil
}
