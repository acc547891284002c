package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ExtKey          = "ext"
	DryRunKey       = "dry-run"
	CheckKey        = "check"
	SkipOriginalKey = "skip-original"
	LogLevelKey     = "log-level"
	LogFormatKey    = "log-format"
)

// EnvPrefix prefixes every environment variable, e.g. STRINGS_SYNC_DRY_RUN.
const EnvPrefix = "STRINGS_SYNC"

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Ext          string
	DryRun       bool
	Check        bool
	SkipOriginal bool
	LogLevel     zerolog.Level
	LogFormat    string
}

var defaults = map[string]any{
	ExtKey:          ".strings",
	DryRunKey:       false,
	CheckKey:        false,
	SkipOriginalKey: false,
	LogLevelKey:     "info",
	LogFormatKey:    FormatConsole,
}

// RegisterFlags adds the configuration flags to a flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(ExtKey, defaults[ExtKey].(string), "Extension of the target files")
	flags.Bool(DryRunKey, false, "Report what would change without writing files")
	flags.Bool(CheckKey, false, "Like --dry-run, but exit with an error if any file is out of sync")
	flags.Bool(SkipOriginalKey, false, "Do not rewrite the original file if it is found in the folder")
	flags.String(LogLevelKey, defaults[LogLevelKey].(string), "Log level: trace, debug, info, warn, error")
	flags.String(LogFormatKey, defaults[LogFormatKey].(string), "Log format: console or json")
}

// Load reads configuration from flags, STRINGS_SYNC_* environment variables and
// an optional .env file in the working directory, in that order of precedence.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		log.Debug().Msg("No .env file found, using environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString(LogLevelKey)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", LogLevelKey, err)
	}

	format := strings.ToLower(v.GetString(LogFormatKey))
	if format != FormatConsole && format != FormatJSON {
		return nil, fmt.Errorf("invalid %s %q: must be %q or %q", LogFormatKey, format, FormatConsole, FormatJSON)
	}

	return &Config{
		Ext:          v.GetString(ExtKey),
		DryRun:       v.GetBool(DryRunKey),
		Check:        v.GetBool(CheckKey),
		SkipOriginal: v.GetBool(SkipOriginalKey),
		LogLevel:     level,
		LogFormat:    format,
	}, nil
}
