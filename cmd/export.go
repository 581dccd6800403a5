package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/iconx/internal/app"
	"github.com/Rorical/iconx/internal/catalog"
	"github.com/Rorical/iconx/internal/config"
	"github.com/Rorical/iconx/internal/core"
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/logger"
	"github.com/Rorical/iconx/internal/render"
	"github.com/Rorical/iconx/internal/update"
)

// exportFlags override the stored preferences for one command.
type exportFlags struct {
	format   string
	size     float64
	stroke   float64
	color    string
	fill     string
	classes  []string
	stripIDs bool
	outDir   string
}

func (f *exportFlags) bind(cmd *cobra.Command, withFormat bool) {
	fs := cmd.Flags()
	if withFormat {
		fs.StringVarP(&f.format, "format", "f", "", "svg, component, import or download (default from prefs)")
	}
	fs.Float64VarP(&f.size, "size", "s", 0, "width and height in px")
	fs.Float64Var(&f.stroke, "stroke", 0, "stroke width")
	fs.StringVar(&f.color, "color", "", "stroke color")
	fs.StringVar(&f.fill, "fill", "", "fill color")
	fs.StringSliceVar(&f.classes, "class", nil, "extra class names (repeatable)")
	fs.BoolVar(&f.stripIDs, "strip-ids", false, "remove id attributes and references to them")
	fs.StringVarP(&f.outDir, "out", "o", "", "download directory (default from prefs)")
}

// params starts from prefs and applies only the flags the user set.
func (f *exportFlags) params(cmd *cobra.Command, prefs config.Preferences) (render.Params, error) {
	p, err := prefs.Params()
	if err != nil {
		return p, err
	}
	fs := cmd.Flags()
	if fs.Changed("size") {
		p.Size = f.size
	}
	if fs.Changed("stroke") {
		p.StrokeWidth = f.stroke
	}
	if fs.Changed("color") {
		p.Color = f.color
	}
	if fs.Changed("fill") {
		p.FillColor = f.fill
	}
	if fs.Changed("class") {
		p.ClassNames = append(p.ClassNames, f.classes...)
	}
	if fs.Changed("strip-ids") {
		p.StripIDs = f.stripIDs
	}
	return p, p.Validate()
}

func (f *exportFlags) exportFormat(prefs config.Preferences) (export.Format, error) {
	if f.format == "" {
		return prefs.Format(), nil
	}
	return export.ParseFormat(f.format)
}

// resolveIcon maps user input to a canonical icon name, with "did you
// mean" hints when nothing matches.
func resolveIcon(input string) (string, error) {
	cat := catalog.Load()
	if name, ok := cat.Canonical(input); ok {
		return name, nil
	}
	if reg := render.Lucide(); reg.Has(input) {
		return input, nil
	}
	msg := fmt.Sprintf("unknown icon %q", input)
	if hints := cat.Suggest(input, 3); len(hints) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(hints, ", "))
	}
	return "", errors.New(msg)
}

type exportEnv struct {
	cfg    *config.Config
	deps   app.Deps
	name   string
	params render.Params
}

func loadExportEnv(cmd *cobra.Command, f *exportFlags, input string) (*exportEnv, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if f.outDir != "" {
		cfg.Preferences.DownloadDir = f.outDir
	}
	name, err := resolveIcon(input)
	if err != nil {
		return nil, err
	}
	params, err := f.params(cmd, cfg.Preferences)
	if err != nil {
		return nil, err
	}
	deps, err := app.BuildDeps(cfg, logger.L())
	if err != nil {
		return nil, err
	}
	return &exportEnv{cfg: cfg, deps: deps, name: name, params: params}, nil
}

// coordinator runs one CLI operation. Reset delays do not matter here
// since the process exits right after.
func (e *exportEnv) coordinator() *core.Coordinator {
	clipboard, saver := app.NewSinks(e.cfg, os.Stderr)
	return core.NewCoordinator("cli", e.deps.Emitter, clipboard, saver, core.WithLogger(e.deps.Log))
}

var (
	exportOpts   exportFlags
	copyOpts     exportFlags
	downloadOpts exportFlags
)

var exportCmd = &cobra.Command{
	Use:   "export <icon>",
	Short: "Print an icon in one format",
	Long: `Export writes the icon to stdout as SVG markup, a component snippet or an
import statement. The download format saves an .svg file and prints its path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadExportEnv(cmd, &exportOpts, args[0])
		if err != nil {
			return err
		}
		format, err := exportOpts.exportFormat(env.cfg.Preferences)
		if err != nil {
			return err
		}

		if format == export.DownloadFile {
			return runDownload(cmd, env)
		}
		res, err := env.deps.Emitter.Emit(env.name, format, env.params)
		if err != nil {
			return errors.New(core.Describe(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <icon>",
	Short: "Copy an icon to the clipboard",
	Long:  `Copy puts the icon on the clipboard using the OSC 52 terminal escape, so it works over SSH and in tmux.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadExportEnv(cmd, &copyOpts, args[0])
		if err != nil {
			return err
		}
		format, err := copyOpts.exportFormat(env.cfg.Preferences)
		if err != nil {
			return err
		}

		c := env.coordinator()
		if err := c.PerformCopy(cmd.Context(), env.name, format, env.params); err != nil {
			return errors.New(c.State().LastError)
		}
		fmt.Fprintln(cmd.OutOrStdout(), statusLine(c))
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <icon>",
	Short: "Save an icon as an .svg file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadExportEnv(cmd, &downloadOpts, args[0])
		if err != nil {
			return err
		}
		return runDownload(cmd, env)
	},
}

func runDownload(cmd *cobra.Command, env *exportEnv) error {
	c := env.coordinator()
	if err := c.PerformDownload(cmd.Context(), env.name, env.params); err != nil {
		return errors.New(c.State().LastError)
	}
	fmt.Fprintln(cmd.OutOrStdout(), statusLine(c))
	return nil
}

func statusLine(c *core.Coordinator) string {
	return update.StatusFor(c.State())
}

func init() {
	exportOpts.bind(exportCmd, true)
	copyOpts.bind(copyCmd, true)
	downloadOpts.bind(downloadCmd, false)
}
