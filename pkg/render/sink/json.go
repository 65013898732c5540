package sink

import (
	"encoding/json"

	"github.com/matzehuels/mondrian/pkg/partition"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id      string
	palette []partition.Color
}

// WithJSONID records a document id.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONPalette records the palette the tiles were painted from.
func WithJSONPalette(colors []partition.Color) JSONOption {
	return func(r *jsonRenderer) { r.palette = colors }
}

type jsonOutput struct {
	ID      string     `json:"id,omitempty"`
	Bounds  jsonBounds `json:"bounds"`
	Palette []string   `json:"palette,omitempty"`
	Tiles   []jsonTile `json:"tiles"`
}

type jsonBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonTile struct {
	Key         string  `json:"key"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
}

// RenderJSON exports the tiles, in state order, as a pretty-printed JSON
// document. It returns an error only if marshaling fails.
func RenderJSON(s partition.State, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := s.Bounds()
	out := jsonOutput{
		ID:     r.id,
		Bounds: jsonBounds{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height},
		Tiles:  make([]jsonTile, 0, s.Len()),
	}
	for _, c := range r.palette {
		out.Palette = append(out.Palette, c.Hex())
	}
	for _, t := range s.Tiles() {
		jt := jsonTile{
			Key:    t.Key(),
			X:      t.X,
			Y:      t.Y,
			Width:  t.Width,
			Height: t.Height,
			Fill:   t.Fill.Hex(),
		}
		if t.Stroke.Visible() {
			jt.Stroke = t.Stroke.Color
			jt.StrokeWidth = t.Stroke.Width
		}
		out.Tiles = append(out.Tiles, jt)
	}

	return json.MarshalIndent(out, "", "  ")
}
