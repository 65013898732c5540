// Package config loads mondrian settings from a TOML file and builds the
// engine, palette and controller they describe.
//
// Every field has a default (see [Default]), so a config file only needs the
// keys it changes:
//
//	[canvas]
//	width = 800
//	height = 600
//	fill = "#f2efe6"
//
//	[palette]
//	start = "#d62828"
//	end = "#003049"
//	length = 12
//
//	[split]
//	min_size = 4
//	orientation = "vertical"
//
//	[outline]
//	enabled = false
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mondrian/pkg/control"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/history"
	"github.com/matzehuels/mondrian/pkg/palette"
	"github.com/matzehuels/mondrian/pkg/partition"
)

const (
	appName  = "mondrian"
	fileName = "config.toml"
)

// Config is the full set of settings.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Palette Palette `toml:"palette"`
	History History `toml:"history"`
	Split   Split   `toml:"split"`
	Outline Outline `toml:"outline"`
}

// Canvas is the initial single tile.
type Canvas struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Fill   string  `toml:"fill"`
}

// Palette configures the palette generator.
type Palette struct {
	Start  string `toml:"start"`
	End    string `toml:"end"`
	Length int    `toml:"length"`
}

// History configures undo depth.
type History struct {
	Capacity int `toml:"capacity"`
}

// Split configures split limits and the starting split mode.
type Split struct {
	MinSize     float64 `toml:"min_size"`
	Orientation string  `toml:"orientation"`
	Arity       int     `toml:"arity"`
}

// Outline configures tile outlines.
type Outline struct {
	Enabled bool    `toml:"enabled"`
	Color   string  `toml:"color"`
	Width   float64 `toml:"width"`
}

// Default returns the built-in settings: a 512x512 blue canvas at (1, 1)
// with thin white outlines and the default 15-color palette.
func Default() Config {
	return Config{
		Canvas: Canvas{
			X: 1, Y: 1,
			Width: 512, Height: 512,
			Fill: partition.Blue.Hex(),
		},
		Palette: Palette{
			Start:  palette.DefaultStart.Hex(),
			End:    palette.DefaultEnd.Hex(),
			Length: palette.DefaultLength,
		},
		History: History{Capacity: history.DefaultCapacity},
		Split: Split{
			MinSize:     partition.DefaultMinSize,
			Orientation: partition.Horizontal.String(),
			Arity:       int(partition.TwoWay),
		},
		Outline: Outline{
			Enabled: partition.DefaultOutline.Visible(),
			Color:   partition.DefaultOutline.Color,
			Width:   partition.DefaultOutline.Width,
		},
	}
}

// DefaultPath returns the config file location following the XDG standard
// (~/.config/mondrian/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads path over the defaults and validates the result. Unknown keys
// are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path if set. With an empty path it loads the default
// location when a file exists there and returns the defaults otherwise.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	def, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(def); err != nil {
		return Default(), nil
	}
	return Load(def)
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %gx%g must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	for name, hex := range map[string]string{
		"canvas.fill":   c.Canvas.Fill,
		"palette.start": c.Palette.Start,
		"palette.end":   c.Palette.End,
	} {
		if _, err := partition.ParseHex(hex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", name)
		}
	}
	if c.Palette.Length < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "palette.length must be at least 1, got %d", c.Palette.Length)
	}
	if c.History.Capacity < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "history.capacity must be at least 1, got %d", c.History.Capacity)
	}
	if c.Split.MinSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "split.min_size must not be negative, got %g", c.Split.MinSize)
	}
	if _, err := partition.ParseOrientation(c.Split.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "split.orientation")
	}
	if !partition.Arity(c.Split.Arity).Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "split.arity must be 2 or 4, got %d", c.Split.Arity)
	}
	if c.Outline.Width < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "outline.width must not be negative, got %g", c.Outline.Width)
	}
	return nil
}

// CanvasRect returns the initial tile.
func (c Config) CanvasRect() (partition.Rect, error) {
	fill, err := partition.ParseHex(c.Canvas.Fill)
	if err != nil {
		return partition.Rect{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas.fill")
	}
	return partition.Rect{
		X: c.Canvas.X, Y: c.Canvas.Y,
		Width: c.Canvas.Width, Height: c.Canvas.Height,
		Fill: fill,
	}, nil
}

// OutlineStroke returns the stroke drawn while outlines are enabled.
func (c Config) OutlineStroke() partition.Stroke {
	return partition.Stroke{Color: c.Outline.Color, Width: c.Outline.Width}
}

// Generator returns the configured palette generator.
func (c Config) Generator() (*palette.Generator, error) {
	start, err := partition.ParseHex(c.Palette.Start)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.start")
	}
	end, err := partition.ParseHex(c.Palette.End)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette.end")
	}
	return palette.New(start, end), nil
}

// NewEngine builds an engine for the configured canvas.
func (c Config) NewEngine() (*partition.Engine, error) {
	canvas, err := c.CanvasRect()
	if err != nil {
		return nil, err
	}
	return partition.NewEngine(canvas,
		partition.WithHistory(history.New[partition.State](c.History.Capacity)),
		partition.WithMinSize(c.Split.MinSize),
		partition.WithOutlineStroke(c.OutlineStroke()),
		partition.WithOutline(c.Outline.Enabled),
	)
}

// Mode returns the starting interaction mode.
func (c Config) Mode() (control.Mode, error) {
	o, err := partition.ParseOrientation(c.Split.Orientation)
	if err != nil {
		return control.Mode{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "split.orientation")
	}
	m := control.DefaultMode()
	m.Orientation = o
	m.Arity = partition.Arity(c.Split.Arity)
	m.Outline = c.Outline.Enabled
	return m, nil
}

// NewController wires engine, palette and mode together.
func (c Config) NewController() (*control.Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	engine, err := c.NewEngine()
	if err != nil {
		return nil, err
	}
	gen, err := c.Generator()
	if err != nil {
		return nil, err
	}
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}
	return control.New(engine, gen.Generate(c.Palette.Length), control.WithMode(mode))
}
