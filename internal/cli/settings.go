package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusclock/internal/storage"
)

func newSettingsCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := env.openStore()
			if err != nil {
				return err
			}
			serialized, err := storage.MarshalSettings(store.Current())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", store.Path())
			_, err = out.Write(serialized)
			return err
		},
	}
	cmd.AddCommand(newSettingsSetCmd(env))
	return cmd
}

func newSettingsSetCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the given flags are written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := env.openStore()
			if err != nil {
				return err
			}

			settings := store.Current()
			flags := cmd.Flags()
			ints := map[string]*int{
				"work":     &settings.WorkDuration,
				"short":    &settings.ShortBreakDuration,
				"long":     &settings.LongBreakDuration,
				"interval": &settings.LongBreakInterval,
			}
			for name, target := range ints {
				if flags.Changed(name) {
					*target, _ = flags.GetInt(name)
				}
			}
			bools := map[string]*bool{
				"auto-breaks":    &settings.AutoStartBreaks,
				"auto-pomodoros": &settings.AutoStartPomodoros,
				"sound":          &settings.SoundEnabled,
				"notifications":  &settings.NotificationsEnabled,
			}
			for name, target := range bools {
				if flags.Changed(name) {
					*target, _ = flags.GetBool(name)
				}
			}
			if flags.Changed("volume") {
				settings.Volume, _ = flags.GetFloat64("volume")
			}

			if err := store.Update(settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().Int("work", 0, "focus length in minutes")
	cmd.Flags().Int("short", 0, "short break length in minutes")
	cmd.Flags().Int("long", 0, "long break length in minutes")
	cmd.Flags().Int("interval", 0, "pomodoros between long breaks")
	cmd.Flags().Bool("auto-breaks", false, "start breaks automatically")
	cmd.Flags().Bool("auto-pomodoros", false, "start focus intervals automatically")
	cmd.Flags().Bool("sound", true, "play sounds")
	cmd.Flags().Bool("notifications", true, "show notifications")
	cmd.Flags().Float64("volume", 0.5, "cue volume in [0,1]")
	return cmd
}
