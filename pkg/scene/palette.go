package scene

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/lintrans/pkg/errors"
)

// Palette holds the colors used by the storyboard.
type Palette struct {
	Background gg.RGBA
	Axes       gg.RGBA
	Shape      gg.RGBA
	Dot        gg.RGBA
	Fill       gg.RGBA
	Text       gg.RGBA
}

// Default colors, hex encoded.
const (
	DefaultBackground = "#000000"
	DefaultAxes       = "#58C4DD"
	DefaultShape      = "#FFFF00"
	DefaultDot        = "#FC6255"
	DefaultFill       = "#83C167"
	DefaultText       = "#FFFFFF"
)

// DefaultPalette returns the dark-background palette.
func DefaultPalette() Palette {
	return Palette{
		Background: gg.Hex(DefaultBackground),
		Axes:       gg.Hex(DefaultAxes),
		Shape:      gg.Hex(DefaultShape),
		Dot:        gg.Hex(DefaultDot),
		Fill:       gg.Hex(DefaultFill),
		Text:       gg.Hex(DefaultText),
	}
}

// PaletteHex is the hex-encoded form of a Palette used by config files and
// command-line flags. Empty fields keep the default color.
type PaletteHex struct {
	Background string `json:"background,omitempty" toml:"background" yaml:"background"`
	Axes       string `json:"axes,omitempty" toml:"axes" yaml:"axes"`
	Shape      string `json:"shape,omitempty" toml:"shape" yaml:"shape"`
	Dot        string `json:"dot,omitempty" toml:"dot" yaml:"dot"`
	Fill       string `json:"fill,omitempty" toml:"fill" yaml:"fill"`
	Text       string `json:"text,omitempty" toml:"text" yaml:"text"`
}

// Palette validates every non-empty field and resolves it on top of the defaults.
func (h PaletteHex) Palette() (Palette, error) {
	p := DefaultPalette()
	fields := []struct {
		name string
		hex  string
		dst  *gg.RGBA
	}{
		{"background", h.Background, &p.Background},
		{"axes", h.Axes, &p.Axes},
		{"shape", h.Shape, &p.Shape},
		{"dot", h.Dot, &p.Dot},
		{"fill", h.Fill, &p.Fill},
		{"text", h.Text, &p.Text},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		if err := errors.ValidateColor(f.hex); err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s color", f.name)
		}
		*f.dst = gg.Hex(f.hex)
	}
	return p, nil
}
