package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mondrian"

	// defaultBase names output files when there is no script file to derive
	// a name from.
	defaultBase = "composition"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	stdout     io.Writer
}

// New creates a CLI logging to w at level. Command output goes to stdout
// until a command runs, then to that command's output writer.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), stdout: os.Stdout}
}

func (c *CLI) out() printer { return newPrinter(c.stdout) }

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mondrian subdivides a canvas into colored rectangles",
		Long: `Mondrian is a generative-art tool: a rectangle is recursively split into a
Mondrian-style tiling whose tiles are painted from a generated palette.

Compose interactively with "mondrian draw", or replay a command script
with "mondrian render".`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.installHooks()
			c.stdout = cmd.OutOrStdout()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mondrian/config.toml)")

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// installHooks routes engine and render events to the logger.
func (c *CLI) installHooks() {
	h := &logHooks{logger: c.Logger}
	observability.SetEngineHooks(h)
	observability.SetRenderHooks(h)
}

// =============================================================================
// Config
// =============================================================================

// canvasFlags override the configured canvas size when set.
type canvasFlags struct {
	width  float64
	height float64
}

func (f *canvasFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (overrides config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (overrides config)")
}

// loadConfig reads --config (or the default location) and applies flag
// overrides.
func (c *CLI) loadConfig(flags canvasFlags) (config.Config, error) {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.width > 0 {
		cfg.Canvas.Width = flags.width
	}
	if flags.height > 0 {
		cfg.Canvas.Height = flags.height
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("Loaded config",
		"canvas", cfg.Canvas,
		"palette", cfg.Palette.Length,
		"history", cfg.History.Capacity)
	return cfg, nil
}

// =============================================================================
// Cache
// =============================================================================

// newCache returns the artifact store for png/pdf conversions. Without a
// usable cache directory conversions simply are not cached.
func newCache(noCache bool) (cache.Store, error) {
	if noCache {
		return cache.Null{}, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.Null{}, nil
	}
	return cache.NewFileStore(dir, cache.DefaultMaxAge)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mondrian/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
