package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/iconx/internal/config"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change export defaults",
	Long:  `Preferences hold the default format, size, stroke and colors used by the TUI and by copy/export/download.`,
}

var showPrefsCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every preference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		out := cmd.OutOrStdout()
		for _, key := range config.PreferenceKeys() {
			v, _ := cfg.Preferences.Get(key)
			fmt.Fprintf(out, "%-16s %s\n", key, v)
		}
		fmt.Fprintf(out, "\n(%s)\n", cfg.Path())
		return nil
	},
}

var setPrefCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Preferences.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		v, _ := cfg.Preferences.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
		return nil
	},
}

var editPrefsCmd = &cobra.Command{
	Use:   "edit",
	Short: "Pick a preference and edit it interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		keys := config.PreferenceKeys()
		_, key, err := (&promptui.Select{Label: "Preference", Items: keys, Size: len(keys)}).Run()
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		current, _ := cfg.Preferences.Get(key)

		prompt := promptui.Prompt{
			Label:   key,
			Default: current,
			Validate: func(v string) error {
				probe := cfg.Preferences
				return probe.Set(key, v)
			},
		}
		value, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}

		if err := cfg.Preferences.Set(key, value); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(showPrefsCmd)
	prefsCmd.AddCommand(setPrefCmd)
	prefsCmd.AddCommand(editPrefsCmd)
}
