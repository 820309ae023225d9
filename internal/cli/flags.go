package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag names, also used as viper keys.
const (
	flagConfig   = "config"
	flagHistory  = "history"
	flagLogFile  = "log-file"
	flagHeadless = "headless"
	flagVerbose  = "verbose"
	flagQuiet    = "quiet"
)

// envPrefix namespaces environment overrides, e.g. FOCUSCLOCK_HEADLESS.
const envPrefix = "FOCUSCLOCK"

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// ConfigPath overrides the settings file location.
	ConfigPath string
	// HistoryPath overrides the session journal location.
	HistoryPath string
	// LogFile overrides the rotating log file location.
	LogFile string
	// Headless runs the timer in the terminal instead of the tray.
	Headless bool
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet limits logging to warnings.
	Quiet bool
}

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, flagConfig, "", "settings file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&flags.HistoryPath, flagHistory, "", "session journal file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&flags.LogFile, flagLogFile, "", "log file (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&flags.Headless, flagHeadless, false, "run in the terminal without the tray")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, flagVerbose, "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, flagQuiet, "q", false, "only log warnings and errors")
	cmd.MarkFlagsMutuallyExclusive(flagVerbose, flagQuiet)
}

// BindGlobalFlags binds the root persistent flags to v and enables FOCUSCLOCK_* overrides.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()
	for _, name := range []string{flagConfig, flagHistory, flagLogFile, flagHeadless, flagVerbose, flagQuiet} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}
