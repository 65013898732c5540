package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/mondrian/pkg/cache"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/observability"
)

// Formats accepted by [Convert].
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// converter is the external SVG conversion tool.
var converter = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, FormatPDF)
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return rsvgConvert(ctx, svg, FormatPNG, "-z", fmt.Sprintf("%.2f", scale))
}

// Convert turns svg into format ("png" or "pdf"), serving repeated
// conversions from store. The second result reports a cache hit. Store
// failures are reported to the render hooks and only cost the cached copy;
// the converted bytes are still returned.
func Convert(ctx context.Context, store cache.Store, svg []byte, format string, scale float64) ([]byte, bool, error) {
	var convert func() ([]byte, error)
	switch format {
	case FormatPNG:
		convert = func() ([]byte, error) { return ToPNG(ctx, svg, scale) }
	case FormatPDF:
		scale = 0
		convert = func() ([]byte, error) { return ToPDF(ctx, svg) }
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "cannot convert svg to %q", format)
	}

	key := cache.KeyFor(svg, format, scale)
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		observability.Render().OnCacheError(ctx, "get", format, err)
	} else if ok {
		return data, true, nil
	}
	data, err = convert()
	if err != nil {
		return nil, false, err
	}
	if err := store.Put(ctx, key, data); err != nil {
		observability.Render().OnCacheError(ctx, "put", format, err)
	}
	return data, false, nil
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
