package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// ParseQuery reads pipeline options from a query string:
//
//	points   vertices, "1,1;3,1;2,3" ('|' may replace ';')
//	scale    "2" or "2,-1"
//	t        still frame time in seconds (negative or absent: the end)
//	width, height, fps
//	embed_font  "1" or "true" inlines the font into SVG output
//	bg, axes, shape, dot, fill, text  palette colors
//
// Absent parameters keep the pipeline defaults.
func ParseQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options

	v, err := pipeline.ParseVertices(strings.ReplaceAll(q.Get("points"), "|", ";"))
	if err != nil {
		return opts, err
	}
	opts.Vertices = v

	m, err := pipeline.ParseMatrix(q.Get("scale"))
	if err != nil {
		return opts, err
	}
	opts.Matrix = m

	if s := q.Get("t"); s != "" {
		t, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid t %q", s)
		}
		opts.Time = &t
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"fps", &opts.FPS},
	} {
		s := q.Get(p.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", p.name, s)
		}
		*p.dst = n
	}

	if s := q.Get("embed_font"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid embed_font %q", s)
		}
		opts.EmbedFont = b
	}

	opts.Palette = scene.PaletteHex{
		Background: q.Get("bg"),
		Axes:       q.Get("axes"),
		Shape:      q.Get("shape"),
		Dot:        q.Get("dot"),
		Fill:       q.Get("fill"),
		Text:       q.Get("text"),
	}
	return opts, nil
}
