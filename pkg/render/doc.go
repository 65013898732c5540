// Package render turns partition states into image files.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [Available] reports whether
// the tool is installed, so callers can fail before doing any work.
//
//	svg := sink.RenderSVG(state)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [Convert] wraps both behind a [cache.Store], keyed on the SVG digest and the
// conversion settings, so re-exporting an unchanged composition is free.
//
// # Sinks
//
// The [sink] subpackage holds the output formats (SVG, JSON, PNG, PDF and
// SVG data URIs). Each is a read-only projection of a [partition.State].
//
// [cache.Store]: github.com/matzehuels/mondrian/pkg/cache.Store
// [sink]: github.com/matzehuels/mondrian/pkg/render/sink
// [partition.State]: github.com/matzehuels/mondrian/pkg/partition.State
package render
