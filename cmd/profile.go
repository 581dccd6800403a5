package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/iconx/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage AI profiles used for icon suggestions",
	Long:  `Manage OpenAI-compatible endpoints that power "iconx suggest" and the ctrl+g search shortcut.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Fprintln(out, "Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Fprintf(out, "  %s%s\n", name, marker)
			printProfile(cmd, cfg.Profiles[name], "    ")
			fmt.Fprintln(out)
		}
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		profile, exists := cfg.Profiles[args[0]]
		if !exists {
			return fmt.Errorf("profile '%s' does not exist", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile: %s\n", args[0])
		printProfile(cmd, profile, "")
		return nil
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		name := ""
		if len(args) > 0 {
			name = args[0]
		} else if name, err = (&promptui.Prompt{Label: "Profile name"}).Run(); err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}

		profile, err := promptProfile(config.Profile{Model: "gpt-4o-mini"})
		if err != nil {
			return err
		}
		if err := cfg.AddProfile(name, profile); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' added successfully!\n", name)
		return nil
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		name, err := profileArg(cfg, args, "Select profile to edit", "")
		if err != nil {
			return err
		}

		profile, err := promptProfile(cfg.Profiles[name])
		if err != nil {
			return err
		}
		cfg.Profiles[name] = profile
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' updated successfully!\n", name)
		return nil
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		name, err := profileArg(cfg, args, "Select profile to delete", "")
		if err != nil {
			return err
		}

		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", name),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
			return nil
		}

		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' deleted successfully!\n", name)
		return nil
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		name, err := profileArg(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if errors.Is(err, errNoProfiles) {
			fmt.Fprintln(cmd.OutOrStdout(), "No other profiles available to switch to")
			return nil
		}
		if err != nil {
			return err
		}

		if err := cfg.SwitchProfile(name); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile '%s'\n", name)
		return nil
	},
}

var errNoProfiles = errors.New("no profiles available")

// profileArg takes the name from args or lets the user pick one, leaving
// out exclude.
func profileArg(cfg *config.Config, args []string, label, exclude string) (string, error) {
	if len(args) > 0 {
		if _, exists := cfg.Profiles[args[0]]; !exists {
			return "", fmt.Errorf("profile '%s' does not exist", args[0])
		}
		return args[0], nil
	}

	var names []string
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", errNoProfiles
	}

	_, name, err := (&promptui.Select{Label: label, Items: names}).Run()
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}
	return name, nil
}

// promptProfile asks for every field, defaulting to current values.
func promptProfile(p config.Profile) (config.Profile, error) {
	var err error
	if p.APIKey, err = (&promptui.Prompt{Label: "API Key", Default: p.APIKey, Mask: '*'}).Run(); err != nil {
		return p, fmt.Errorf("prompt failed: %w", err)
	}
	if p.Model, err = (&promptui.Prompt{Label: "Model", Default: p.Model}).Run(); err != nil {
		return p, fmt.Errorf("prompt failed: %w", err)
	}
	if p.BaseURL, err = (&promptui.Prompt{Label: "Base URL (optional)", Default: p.BaseURL}).Run(); err != nil {
		return p, fmt.Errorf("prompt failed: %w", err)
	}
	return p, nil
}

func printProfile(cmd *cobra.Command, p config.Profile, indent string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%sModel: %s\n", indent, p.Model)
	if p.BaseURL != "" {
		fmt.Fprintf(out, "%sBase URL: %s\n", indent, p.BaseURL)
	}
	hasKey := "Not set"
	if p.APIKey != "" {
		hasKey = "Set (hidden)"
	}
	fmt.Fprintf(out, "%sAPI Key: %s\n", indent, hasKey)
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
