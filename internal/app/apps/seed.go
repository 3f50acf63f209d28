package apps

import (
	"context"

	"quiz/internal/pkg/store"
	"quiz/internal/pkg/validate"

	"github.com/pkg/errors"
)

// SeedAppCfg configures a SeedApp.
type SeedAppCfg interface {
	ApplySeedApp(*SeedApp) error
}

// SeedApp imports a YAML seed file into a store, whether or not it is empty.
type SeedApp struct {
	Store    string `validate:"required,oneof=memory sqlite mysql postgres redis"`
	StoreDSN string `validate:"required_unless=Store memory"`
}

// NewSeedApp creates a new SeedApp.
func NewSeedApp(cfgs ...SeedAppCfg) (*SeedApp, error) {
	app := &SeedApp{Store: store.DriverMemory}
	for _, cfg := range cfgs {
		if err := cfg.ApplySeedApp(app); err != nil {
			return nil, errors.Wrap(err, "apply SeedApp cfg failed")
		}
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate SeedApp failed")
	}
	return app, nil
}

// Run imports the seed file named by args[0].
func (app *SeedApp) Run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.Errorf("expected one seed file, got %d arguments", len(args))
	}
	fields, err := store.LoadSeed(args[0])
	if err != nil {
		return errors.Wrap(err, "load seed failed")
	}
	st, err := store.Open(ctx, app.Store, app.StoreDSN)
	if err != nil {
		return errors.Wrap(err, "open store failed")
	}
	defer st.Close()
	n, err := store.Import(ctx, st, fields)
	if err != nil {
		return errors.Wrapf(err, "import seed failed after %d quizzes", n)
	}
	logger.WithFields(map[string]interface{}{"file": args[0], "quizzes": n}).Info("seed imported")
	return nil
}
