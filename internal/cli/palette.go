package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/partition"
)

// paletteOpts holds the command-line flags for the palette command.
type paletteOpts struct {
	length int
	start  string
	end    string
}

// paletteCommand prints the generated palette.
func (c *CLI) paletteCommand() *cobra.Command {
	var opts paletteOpts

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the generated color palette",
		Long: `Print the palette generated from the configured start and end colors.

Each color after the first is the channel-wise average of the previous color
and the end color, so the palette converges on the end color.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(canvasFlags{})
			if err != nil {
				return err
			}
			colors, err := paletteColors(&cfg, opts)
			if err != nil {
				return err
			}
			out := c.out()
			out.keyValue("start", cfg.Palette.Start)
			out.keyValue("end", cfg.Palette.End)
			fmt.Fprintln(out.w, paletteTable(colors))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.length, "length", "n", 0, "number of colors (overrides config)")
	cmd.Flags().StringVar(&opts.start, "start", "", "start color as #rrggbb (overrides config)")
	cmd.Flags().StringVar(&opts.end, "end", "", "end color as #rrggbb (overrides config)")

	return cmd
}

// paletteColors applies flag overrides to cfg and generates the palette.
func paletteColors(cfg *config.Config, opts paletteOpts) ([]partition.Color, error) {
	if opts.length < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--length must not be negative, got %d", opts.length)
	}
	if opts.length > 0 {
		cfg.Palette.Length = opts.length
	}
	if opts.start != "" {
		cfg.Palette.Start = opts.start
	}
	if opts.end != "" {
		cfg.Palette.End = opts.end
	}
	gen, err := cfg.Generator()
	if err != nil {
		return nil, err
	}
	return gen.Generate(cfg.Palette.Length), nil
}

// paletteTable renders one row per color with a swatch.
func paletteTable(colors []partition.Color) string {
	rows := make([][]string, len(colors))
	for i, col := range colors {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			strings.Repeat(" ", 6),
			col.Hex(),
			fmt.Sprintf("%3d %3d %3d", col.R, col.G, col.B),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "", "Hex", "RGB").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Foreground(colorDim)
			case 1:
				return base.Background(lipgloss.Color(colors[row].Hex()))
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}
