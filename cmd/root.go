package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/iconx/internal/app"
	"github.com/Rorical/iconx/internal/config"
	"github.com/Rorical/iconx/internal/logger"
)

var (
	debugLog bool
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "iconx",
	Short: "Find icons and copy them as SVG, JSX or imports",
	Long: `iconx is a terminal icon explorer. Search the catalog, tweak size and
stroke, then copy SVG markup, a component snippet or an import statement to
the clipboard, or save the icon as an .svg file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		home, err := config.HomeDir()
		if err != nil {
			return
		}
		// Logging is best effort; a read-only home still gets a working CLI.
		closeLog, _ = logger.Setup(logger.Config{Root: home, Debug: debugLog})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			_ = closeLog()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		application, err := app.NewApplication(cfg)
		if err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		defer application.Stop()

		return application.Start()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write debug entries to the log file")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(suggestCmd)
}
