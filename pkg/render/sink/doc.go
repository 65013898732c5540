// Package sink provides output format renderers for partition states.
//
// # Overview
//
// A "sink" projects a [partition.State] into a final output format. Sinks
// never mutate the state. This package provides renderers for:
//
//   - SVG: one <rect> per tile, in state order
//   - JSON: tile geometry and colors for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] writes a document whose viewBox covers the state's bounds.
// Each tile becomes a <rect> with id "tile-{x}x{y}", its fill as a hex
// color, and its stroke (or stroke="none" when outlines are off):
//
//	svg := sink.RenderSVG(engine.State(),
//	    sink.WithTitle("composition"),
//	    sink.WithScale(2),
//	)
//	href := sink.DataURI(svg)
//
// # SVG Options
//
//   - [WithID]: id attribute on the root element
//   - [WithTitle]: document title
//   - [WithBackground]: solid rectangle behind the tiles
//   - [WithScale]: multiply the pixel size, keeping the viewBox
//
// # JSON Output
//
// [RenderJSON] exports bounds, tiles and, with [WithJSONPalette], the
// palette in use. [WithJSONID] tags the document.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] first generate SVG, then convert via
// [render.Convert]. [RenderRaster] does the same for either format and,
// with [WithCache], reuses earlier conversions:
//
//	pdf, err := sink.RenderPDF(ctx, state)
//	png, err := sink.RenderPNG(ctx, state, sink.WithPNGScale(4))
//	png, hit, err := sink.RenderRaster(ctx, state, "png", sink.WithCache(store))
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [partition.State]: github.com/matzehuels/mondrian/pkg/partition.State
// [render.Convert]: github.com/matzehuels/mondrian/pkg/render.Convert
package sink
