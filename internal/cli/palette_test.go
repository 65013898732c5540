package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/config"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/partition"
)

func TestPaletteColors(t *testing.T) {
	tests := []struct {
		name      string
		opts      paletteOpts
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{"config defaults", paletteOpts{}, 15, "#b77aab", ""},
		{"length override", paletteOpts{length: 3}, 3, "#b77aab", "#4b2156"},
		{"endpoints override", paletteOpts{length: 2, start: "#000000", end: "#ffffff"}, 2, "#000000", "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			colors, err := paletteColors(&cfg, tt.opts)
			if err != nil {
				t.Fatalf("paletteColors() error = %v", err)
			}
			if len(colors) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(colors), tt.wantLen)
			}
			if got := colors[0].Hex(); got != tt.wantFirst {
				t.Errorf("first = %s, want %s", got, tt.wantFirst)
			}
			if tt.wantLast != "" {
				if got := colors[len(colors)-1].Hex(); got != tt.wantLast {
					t.Errorf("last = %s, want %s", got, tt.wantLast)
				}
			}
			if cfg.Palette.Length != tt.wantLen {
				t.Errorf("cfg.Palette.Length = %d, want %d", cfg.Palette.Length, tt.wantLen)
			}
		})
	}
}

func TestPaletteColorsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts paletteOpts
		want errors.Code
	}{
		{"negative length", paletteOpts{length: -1}, errors.ErrCodeInvalidInput},
		{"bad start", paletteOpts{start: "red"}, errors.ErrCodeInvalidConfig},
		{"bad end", paletteOpts{end: "#12345"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			_, err := paletteColors(&cfg, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("paletteColors() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestPaletteTable(t *testing.T) {
	colors := []partition.Color{partition.MustParseHex("#b77aab"), partition.MustParseHex("#6f3f72")}
	out := paletteTable(colors)

	for _, want := range []string{"Hex", "#b77aab", "#6f3f72", "183 122 171"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
