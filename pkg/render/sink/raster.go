package sink

import (
	"context"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/partition"
	"github.com/matzehuels/mondrian/pkg/render"
)

// DefaultPNGScale renders PNGs at twice the SVG size.
const DefaultPNGScale = 2.0

// RasterOption configures PNG and PDF rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	svgOpts []SVGOption
	scale   float64
	store   cache.Store
}

// WithSVGOptions passes options through to the underlying SVG renderer.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *rasterRenderer) { r.svgOpts = opts }
}

// WithPNGScale sets the PNG scale factor. PDF output ignores it.
func WithPNGScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

// WithCache serves repeated conversions from store.
func WithCache(store cache.Store) RasterOption {
	return func(r *rasterRenderer) { r.store = store }
}

// RenderRaster renders the state as format ("png" or "pdf") via SVG
// conversion. The second result reports whether the bytes came from the
// cache set with [WithCache].
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderRaster(ctx context.Context, s partition.State, format string, opts ...RasterOption) ([]byte, bool, error) {
	r := rasterRenderer{scale: DefaultPNGScale, store: cache.Null{}}
	for _, opt := range opts {
		opt(&r)
	}
	return render.Convert(ctx, r.store, RenderSVG(s, r.svgOpts...), format, r.scale)
}

// RenderPNG renders the state as PNG.
func RenderPNG(ctx context.Context, s partition.State, opts ...RasterOption) ([]byte, error) {
	data, _, err := RenderRaster(ctx, s, render.FormatPNG, opts...)
	return data, err
}

// RenderPDF renders the state as PDF.
func RenderPDF(ctx context.Context, s partition.State, opts ...RasterOption) ([]byte, error) {
	data, _, err := RenderRaster(ctx, s, render.FormatPDF, opts...)
	return data, err
}
