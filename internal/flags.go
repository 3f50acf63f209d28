// Package internal holds the process-wide settings shared by the commands.
//
// Every setting is a Flag: a command line flag whose default can be overridden
// through an environment variable. Flags given on the command line win over the
// environment, which wins over the built-in default.
package internal

import (
	"os"
	"strconv"

	"quiz/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Settings, filled in by the registered flags.
var (
	Env                 string
	LogLevel            string
	Port                int
	HealthPort          int
	WSPort              int
	MaxSessions         int
	Store               string
	StoreDSN            string
	Seed                string
	Prompt              string
	Color               bool
	InteractiveDefaults bool
	Addr                string
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Flag describes one setting. Target points at the variable the value lands in
// and must be a *string, *int or *bool matching Default.
type Flag struct {
	Name    string
	Env     string
	Default interface{}
	Usage   string
	Target  interface{}
}

// Flag definitions.
var (
	EnvFlag = Flag{
		Name: "env", Env: "QUIZ_ENV", Default: EnvDevelopment, Target: &Env,
		Usage: "runtime environment: development, production or test",
	}
	LogLevelFlag = Flag{
		Name: "log-level", Env: "QUIZ_LOG_LEVEL", Default: "info", Target: &LogLevel,
		Usage: "log level: trace, debug, info, warn or error",
	}
	PortFlag = Flag{
		Name: "port", Env: "QUIZ_PORT", Default: 3030, Target: &Port,
		Usage: "TCP port of the quiz server",
	}
	HealthPortFlag = Flag{
		Name: "health-port", Env: "QUIZ_HEALTH_PORT", Default: 3031, Target: &HealthPort,
		Usage: "gRPC health service port, 0 disables it",
	}
	WSPortFlag = Flag{
		Name: "ws-port", Env: "QUIZ_WS_PORT", Default: 0, Target: &WSPort,
		Usage: "WebSocket gateway port, 0 disables it",
	}
	MaxSessionsFlag = Flag{
		Name: "max-sessions", Env: "QUIZ_MAX_SESSIONS", Default: 0, Target: &MaxSessions,
		Usage: "maximum number of concurrent sessions, 0 means no limit",
	}
	StoreFlag = Flag{
		Name: "store", Env: "QUIZ_STORE", Default: "memory", Target: &Store,
		Usage: "quiz store: memory, sqlite, mysql, postgres or redis",
	}
	StoreDSNFlag = Flag{
		Name: "store-dsn", Env: "QUIZ_STORE_DSN", Default: "", Target: &StoreDSN,
		Usage: "data source name of the quiz store",
	}
	SeedFlag = Flag{
		Name: "seed", Env: "QUIZ_SEED", Default: "", Target: &Seed,
		Usage: "YAML file of quizzes loaded when the store is empty",
	}
	PromptFlag = Flag{
		Name: "prompt", Env: "QUIZ_PROMPT", Default: "quiz> ", Target: &Prompt,
		Usage: "command prompt shown to clients",
	}
	ColorFlag = Flag{
		Name: "color", Env: "QUIZ_COLOR", Default: true, Target: &Color,
		Usage: "style client output with ANSI colors",
	}
	InteractiveDefaultsFlag = Flag{
		Name: "interactive-defaults", Env: "QUIZ_INTERACTIVE_DEFAULTS", Default: false, Target: &InteractiveDefaults,
		Usage: "show current values in edit and keep them on an empty reply",
	}
	AddrFlag = Flag{
		Name: "addr", Env: "QUIZ_ADDR", Default: "localhost:3030", Target: &Addr,
		Usage: "address of the quiz server",
	}
)

// RegisterCommandFlags registers flags as persistent flags of cmd, with defaults
// taken from the environment where set.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	fs := cmd.PersistentFlags()
	for _, f := range flags {
		env, hasEnv := os.LookupEnv(f.Env)
		usage := f.Usage + " [" + f.Env + "]"
		switch target := f.Target.(type) {
		case *string:
			def, ok := f.Default.(string)
			if !ok {
				return errors.Errorf("flag %s: default must be a string", f.Name)
			}
			if hasEnv {
				def = env
			}
			fs.StringVar(target, f.Name, def, usage)
		case *int:
			def, ok := f.Default.(int)
			if !ok {
				return errors.Errorf("flag %s: default must be an int", f.Name)
			}
			if hasEnv {
				v, err := strconv.Atoi(env)
				if err != nil {
					return errors.Wrapf(err, "parse %s failed", f.Env)
				}
				def = v
			}
			fs.IntVar(target, f.Name, def, usage)
		case *bool:
			def, ok := f.Default.(bool)
			if !ok {
				return errors.Errorf("flag %s: default must be a bool", f.Name)
			}
			if hasEnv {
				v, err := strconv.ParseBool(env)
				if err != nil {
					return errors.Wrapf(err, "parse %s failed", f.Env)
				}
				def = v
			}
			fs.BoolVar(target, f.Name, def, usage)
		default:
			return errors.Errorf("flag %s: unsupported target type %T", f.Name, f.Target)
		}
	}
	return nil
}

type settings struct {
	Env         string `validate:"oneof=development production test"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`
	Port        int    `validate:"min=1,max=65535"`
	HealthPort  int    `validate:"min=0,max=65535"`
	WSPort      int    `validate:"min=0,max=65535"`
	MaxSessions int    `validate:"min=0"`
	Store       string `validate:"oneof=memory sqlite mysql postgres redis"`
	StoreDSN    string `validate:"required_unless=Store memory"`
}

// ValidateEnv checks the settings shared by every command.
func ValidateEnv() error {
	s := settings{
		Env:         Env,
		LogLevel:    LogLevel,
		Port:        Port,
		HealthPort:  HealthPort,
		WSPort:      WSPort,
		MaxSessions: MaxSessions,
		Store:       Store,
		StoreDSN:    StoreDSN,
	}
	if err := validate.Validate().Struct(s); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	return nil
}

// IsProduction reports whether the process runs in production.
func IsProduction() bool {
	return Env == EnvProduction
}
