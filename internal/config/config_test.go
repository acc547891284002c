package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Ext:       ".strings",
		LogLevel:  zerolog.InfoLevel,
		LogFormat: FormatConsole,
	}, cfg)
}

func TestLoad_FlagDefaultsMatch(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ".strings", cfg.Ext)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STRINGS_SYNC_EXT", ".txt")
	t.Setenv("STRINGS_SYNC_DRY_RUN", "true")
	t.Setenv("STRINGS_SYNC_SKIP_ORIGINAL", "1")
	t.Setenv("STRINGS_SYNC_LOG_LEVEL", "DEBUG")
	t.Setenv("STRINGS_SYNC_LOG_FORMAT", "json")

	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, ".txt", cfg.Ext)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.SkipOriginal)
	assert.False(t, cfg.Check)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("STRINGS_SYNC_DRY_RUN", "true")
	t.Setenv("STRINGS_SYNC_LOG_LEVEL", "debug")

	cfg, err := Load(newFlags(t, "--dry-run=false", "--log-level", "warn", "--check"))
	require.NoError(t, err)

	assert.False(t, cfg.DryRun)
	assert.True(t, cfg.Check)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "log level", args: []string{"--log-level", "loud"}},
		{name: "log format", args: []string{"--log-format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}
