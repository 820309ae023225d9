// Package cli provides the focusclock command line.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"focusclock/internal/clock"
	"focusclock/internal/history"
	"focusclock/internal/logging"
	"focusclock/internal/storage"
	"focusclock/internal/ui/desktop"
)

const appName = "focusclock"

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// environment carries what PersistentPreRunE resolves to the subcommands.
type environment struct {
	viper    *viper.Viper
	logger   zerolog.Logger
	closeLog func() error
}

func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	env := &environment{
		viper:    viper.New(),
		logger:   zerolog.Nop(),
		closeLog: func() error { return nil },
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "A pomodoro timer for the system tray",
		Long: `focusclock alternates focus intervals with short and long breaks,
plays a cue and shows a notification when an interval ends, and keeps a journal
of finished sessions.

Without a subcommand it starts the tray application, or a terminal timer with --headless.`,
		Version:      formatVersion(info),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(env.viper, cmd); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			return env.initLogger(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return env.closeLog()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env.viper.GetBool(flagHeadless) {
				return runHeadless(cmd.Context(), env, headlessOptionsFrom(cmd), cmd.OutOrStdout())
			}
			return env.runDesktop(cmd.Context())
		},
	}

	AddGlobalFlags(cmd, flags)
	addHeadlessFlags(cmd)
	cmd.AddCommand(newSettingsCmd(env), newHistoryCmd(env))
	return cmd
}

func (env *environment) initLogger(cmd *cobra.Command) error {
	logFile := env.viper.GetString(flagLogFile)
	if logFile == "" {
		path, err := logging.LogPath(appName)
		if err != nil {
			return err
		}
		logFile = path
	}

	env.logger, env.closeLog = logging.New(logging.Options{
		Verbose:  env.viper.GetBool(flagVerbose),
		Quiet:    env.viper.GetBool(flagQuiet),
		Console:  cmd.ErrOrStderr(),
		FilePath: logFile,
	})
	return nil
}

func (env *environment) openStore() (*storage.Store, error) {
	path := env.viper.GetString(flagConfig)
	if path == "" {
		resolved, err := storage.SettingsPath(appName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return storage.OpenStore(path, env.logger)
}

func (env *environment) openJournal() (*history.Journal, error) {
	path := env.viper.GetString(flagHistory)
	if path == "" {
		resolved, err := history.JournalPath(appName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return history.Open(path, clock.Real{})
}

func (env *environment) runDesktop(ctx context.Context) error {
	store, err := env.openStore()
	if err != nil {
		return err
	}
	journal, err := env.openJournal()
	if err != nil {
		return err
	}
	return desktop.Run(ctx, desktop.Options{
		AppName: appName,
		Store:   store,
		Journal: journal,
		Logger:  env.logger,
	})
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	return newRootCmd(&GlobalFlags{}, info).ExecuteContext(ctx)
}
