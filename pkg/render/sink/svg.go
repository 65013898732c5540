package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/mondrian/pkg/partition"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	id         string
	title      string
	background string
	scale      float64
}

// WithID sets the id attribute of the root element.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithBackground paints a rectangle of the given color behind the tiles.
func WithBackground(c partition.Color) SVGOption {
	return func(r *svgRenderer) { r.background = c.Hex() }
}

// WithScale multiplies the width and height attributes. The viewBox stays in
// tile coordinates. Non-positive values are ignored.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderSVG draws one <rect> per tile, in state order, inside a viewBox
// covering the state's bounds.
func RenderSVG(s partition.State, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	b := s.Bounds()
	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" baseProfile="full"`)
	if r.id != "" {
		fmt.Fprintf(&buf, ` id="%s"`, escape(r.id))
	}
	fmt.Fprintf(&buf, ` viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(b.X), num(b.Y), num(b.Width), num(b.Height),
		num(b.Width*r.scale), num(b.Height*r.scale))

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(b.X), num(b.Y), num(b.Width), num(b.Height), r.background)
	}
	for _, t := range s.Tiles() {
		renderTile(&buf, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTile(buf *bytes.Buffer, t partition.Rect) {
	fmt.Fprintf(buf, `  <rect id="tile-%s" x="%s" y="%s" width="%s" height="%s" fill="%s"`,
		t.Key(), num(t.X), num(t.Y), num(t.Width), num(t.Height), t.Fill.Hex())
	if t.Stroke.Visible() {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, escape(t.Stroke.Color), num(t.Stroke.Width))
	} else {
		buf.WriteString(` stroke="none"`)
	}
	buf.WriteString("/>\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
