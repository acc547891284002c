package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"strings-sync/internal/config"
	"strings-sync/internal/syncer"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	ctx, cancel := setupContext()
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Sync failed")
		cancel()
		os.Exit(1)
	}
}

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strings-sync <original.strings> <folder>",
		Short: "Synchronize localized .strings files with an original",
		Long: `Rewrites every .strings file found under <folder> so it holds exactly the keys
of <original.strings>, in the same order. Existing translations are kept, missing
keys are copied from the original and keys the original no longer has are removed.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Usage is only useful for argument errors, which are reported before RunE.
			cmd.SilenceUsage = true

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			log.Logger = logger

			return runSync(cmd.Context(), cfg, logger, args[0], args[1])
		},
	}

	config.RegisterFlags(cmd.Flags())
	return cmd
}

// runSync handles the root command.
func runSync(ctx context.Context, cfg *config.Config, logger zerolog.Logger, originalPath, folder string) error {
	s := syncer.New(syncer.Options{
		Ext:          cfg.Ext,
		DryRun:       cfg.DryRun,
		Check:        cfg.Check,
		SkipOriginal: cfg.SkipOriginal,
	}, logger)

	_, err := s.Run(ctx, originalPath, folder)
	return err
}

// newLogger creates the process logger from the configuration.
func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	w := out
	if cfg.LogFormat == config.FormatConsole {
		w = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(w).Level(cfg.LogLevel).With().Timestamp().Logger()
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, stopping after the current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
