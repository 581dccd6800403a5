package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/iconx/internal/catalog"
	"github.com/Rorical/iconx/internal/config"
	"github.com/Rorical/iconx/internal/logger"
	"github.com/Rorical/iconx/internal/suggest"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest <description...>",
	Short: "Ask the active AI profile for fitting icons",
	Example: `  iconx suggest "button that deletes a file"
  iconx suggest weather warning --limit 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		s, err := suggest.NewFromConfig(cfg, catalog.Load(), logger.L())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		description := strings.Join(args, " ")
		names, err := s.Suggest(ctx, description, suggestLimit)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No catalog icons fit %q\n", description)
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 5, "maximum suggestions")
}
