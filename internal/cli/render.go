package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/control"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/partition"
	"github.com/matzehuels/mondrian/pkg/render"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

const (
	formatSVG  = "svg"
	formatJSON = "json"
	formatPNG  = render.FormatPNG
	formatPDF  = render.FormatPDF
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatJSON: true, formatPNG: true, formatPDF: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string      // output file (single format) or base path (multiple)
	formats []string    // output formats: "svg", "json", "png", "pdf"
	title   string      // SVG <title>
	scale   float64     // SVG size multiplier; PNG uses it as raster scale
	noCache bool        // bypass the artifact cache for png/pdf
	canvas  canvasFlags // --width/--height overrides
}

// renderCommand creates the render command, which replays a command script
// against a fresh canvas and writes the result.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [script]",
		Short: "Replay a command script and export the composition",
		Long: `Replay a command script against a fresh canvas and export the result.

A script holds one command per line; blank lines and lines starting with '#'
are skipped. Use "-" to read the script from stdin; without a script the bare
canvas is exported.

Commands:
  vertical | horizontal     set split orientation (2-way, split mode)
  next-color | prev-color   step through the palette (color mode)
  toggle-mode               switch between split and color mode
  mode split|color          set the click mode
  arity 2|4                 set the split arity (split mode)
  toggle-all                toggle splitting every tile of the clicked color
  toggle-outline            toggle tile outlines
  undo                      undo the last split
  click N                   activate tile N`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG document title")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "output scale (png defaults to 2)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always run the png/pdf converter")
	opts.canvas.register(cmd)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'json', 'png', or 'pdf')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input, falling back to
// defaultBase for stdin or no script. A known format extension on output is
// stripped as well.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format goes to --output verbatim when given.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// runRender builds a controller from config, replays the script and writes
// every requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig(opts.canvas)
	if err != nil {
		return err
	}
	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}
	prog.step("Canvas ready", "width", cfg.Canvas.Width, "height", cfg.Canvas.Height)

	if input != "" {
		if err := replay(ctx, ctrl, input); err != nil {
			return err
		}
		prog.step("Script replayed", "script", input)
	}
	st := ctrl.State()
	logger.Infof("Composition: %d tiles, %d colors", st.Len(), len(st.Colors()))

	art, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer art.Close()

	doc := exportDoc{
		id:      uuid.NewString(),
		title:   opts.title,
		scale:   opts.scale,
		palette: ctrl.Palette(),
	}
	paths := outputPaths(opts.output, input, opts.formats)
	for _, format := range opts.formats {
		path := paths[format]
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		data, cached, err := doc.render(ctx, art, st, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		prog.step("Wrote output", "format", format, "bytes", len(data), "cached", cached)
		c.out().file(path, cached)
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(opts.formats)))
	return nil
}

// replay runs the script at path ("-" for stdin) through ctrl.
func replay(ctx context.Context, ctrl *control.Controller, path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s not found", path)
			}
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
		}
		defer f.Close()
		r = f
	}
	if err := ctrl.Run(ctx, r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// exportDoc carries the per-export settings shared by every format.
type exportDoc struct {
	id      string
	title   string
	scale   float64
	palette []partition.Color
}

// svgOptions returns the SVG settings. The document id is left out of
// artifacts headed for conversion so their cache keys stay stable.
func (d exportDoc) svgOptions(withID bool) []sink.SVGOption {
	var opts []sink.SVGOption
	if withID {
		opts = append(opts, sink.WithID(d.id))
	}
	if d.title != "" {
		opts = append(opts, sink.WithTitle(d.title))
	}
	return opts
}

// render produces one format, reporting whether a png/pdf came from the
// artifact cache.
func (d exportDoc) render(ctx context.Context, art cache.Store, st partition.State, format string) (data []byte, cached bool, err error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, format, st.Len())
	defer func() {
		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	}()

	switch format {
	case formatSVG:
		return sink.RenderSVG(st, append(d.svgOptions(true), sink.WithScale(d.scale))...), false, nil
	case formatJSON:
		data, err = sink.RenderJSON(st, sink.WithJSONID(d.id), sink.WithJSONPalette(d.palette))
		return data, false, err
	case formatPNG, formatPDF:
		scale := d.scale
		if scale == 1 {
			scale = sink.DefaultPNGScale
		}
		spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Converting to %s...", format))
		defer spin.stop()
		return sink.RenderRaster(ctx, st, format,
			sink.WithSVGOptions(d.svgOptions(false)...),
			sink.WithPNGScale(scale),
			sink.WithCache(art))
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}
