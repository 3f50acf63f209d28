package cfg

import (
	"quiz/internal"
	"quiz/internal/app/apps"
)

// StoreCfg selects the quiz store and how it is seeded.
type StoreCfg struct {
	driver   string
	dsn      string
	seedFile string
}

// NewStoreCfg creates a new StoreCfg. An empty seedFile seeds an empty store
// with the built-in quizzes.
func NewStoreCfg(driver, dsn, seedFile string) *StoreCfg {
	return &StoreCfg{
		driver:   driver,
		dsn:      dsn,
		seedFile: seedFile,
	}
}

// StoreFromEnv creates a new StoreCfg from the current environment.
func StoreFromEnv() *StoreCfg {
	return NewStoreCfg(internal.Store, internal.StoreDSN, internal.Seed)
}

// ApplyServerApp applies the StoreCfg to a ServerApp.
func (cfg StoreCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.Store = cfg.driver
	app.StoreDSN = cfg.dsn
	app.SeedFile = cfg.seedFile
	return nil
}

// ApplySeedApp applies the StoreCfg to a SeedApp.
func (cfg StoreCfg) ApplySeedApp(app *apps.SeedApp) error {
	app.Store = cfg.driver
	app.StoreDSN = cfg.dsn
	return nil
}
