package sink

import (
	"context"
	"testing"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/render"
)

func TestRenderRasterFromCache(t *testing.T) {
	ctx := context.Background()
	st := splitState(t)
	store, err := cache.NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}

	svg := RenderSVG(st, WithTitle("cached"))
	if err := store.Put(ctx, cache.KeyFor(svg, render.FormatPNG, DefaultPNGScale), []byte("png bytes")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, cache.KeyFor(svg, render.FormatPDF, 0), []byte("pdf bytes")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		format string
		opts   []RasterOption
		want   string
	}{
		{render.FormatPNG, nil, "png bytes"},
		{render.FormatPNG, []RasterOption{WithPNGScale(DefaultPNGScale)}, "png bytes"},
		{render.FormatPDF, []RasterOption{WithPNGScale(5)}, "pdf bytes"},
	}
	for _, tt := range tests {
		opts := append([]RasterOption{WithCache(store), WithSVGOptions(WithTitle("cached"))}, tt.opts...)
		data, hit, err := RenderRaster(ctx, st, tt.format, opts...)
		if err != nil {
			t.Fatalf("RenderRaster(%s) error = %v", tt.format, err)
		}
		if !hit || string(data) != tt.want {
			t.Errorf("RenderRaster(%s) = %q, hit %v; want %q, true", tt.format, data, hit, tt.want)
		}
	}
}

func TestRenderRasterRejectsFormat(t *testing.T) {
	_, _, err := RenderRaster(context.Background(), splitState(t), "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderRaster(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderPNGAndPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()
	st := splitState(t)

	png, err := RenderPNG(ctx, st, WithPNGScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("RenderPNG() did not return a PNG (%d bytes)", len(png))
	}

	pdf, err := RenderPDF(ctx, st)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if len(pdf) < 5 || string(pdf[:5]) != "%PDF-" {
		t.Errorf("RenderPDF() did not return a PDF (%d bytes)", len(pdf))
	}
}
