// Package fonts provides the embedded typeface used for labels and matrices.
//
// The Go Regular face ships with golang.org/x/image, so raster and vector
// output share the same glyph metrics without relying on system fonts.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// RegularTTF returns the Go Regular TTF data shared by the rasterizer and
// the SVG @font-face rule.
func RegularTTF() []byte {
	return goregular.TTF
}

var (
	source     *text.FontSource
	sourceErr  error
	sourceOnce sync.Once
)

// Source returns the shared font source for Go Regular. Faces created from
// it are safe for concurrent use.
func Source() (*text.FontSource, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(RegularTTF())
	})
	return source, sourceErr
}

// Face returns a Go Regular face at the given pixel size.
func Face(size float64) (text.Face, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF font data as a base64 string for
// embedding in SVG @font-face rules.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(RegularTTF())
	})
	return ttfBase64
}

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go Regular"

// FallbackFontFamily lists fallbacks for viewers that ignore @font-face.
const FallbackFontFamily = `'Go Regular', 'Helvetica Neue', Arial, sans-serif`
