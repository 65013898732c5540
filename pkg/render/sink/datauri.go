package sink

import "encoding/base64"

// DataURI encodes an SVG document as a base64 data URI, suitable for an
// <a href> download link or an <img src>.
func DataURI(svg []byte) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)
}
