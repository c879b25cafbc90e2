package sink

import (
	"encoding/json"

	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	fps    int
	indent bool
}

// WithJSONFPS sets the frame rate used for the frame count (default 15).
func WithJSONFPS(fps int) JSONOption { return func(r *jsonRenderer) { r.fps = fps } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// Transform is the JSON form of one linear transformation of a shape.
type Transform struct {
	Matrix      Matrix       `json:"matrix"`
	Original    []geom.Point `json:"original"`
	Transformed []geom.Point `json:"transformed"`
}

// Matrix is the JSON form of a scaling matrix.
type Matrix struct {
	SX      float64       `json:"sx"`
	SY      float64       `json:"sy"`
	Entries [2][2]float64 `json:"entries"`
}

// Storyboard is the JSON document produced by [RenderJSON].
type Storyboard struct {
	Transform
	Duration   float64          `json:"duration"`
	FPS        int              `json:"fps"`
	FrameCount int              `json:"frame_count"`
	Steps      []scene.StepInfo `json:"steps"`
}

// NewTransform describes m applied to shape.
func NewTransform(shape geom.Shape, m geom.ScalingMatrix) Transform {
	return Transform{
		Matrix:      Matrix{SX: m.SX, SY: m.SY, Entries: m.Entries()},
		Original:    nonNil(shape.Clone()),
		Transformed: nonNil(geom.Transform(shape, m)),
	}
}

func nonNil(s geom.Shape) []geom.Point {
	if s == nil {
		return []geom.Point{}
	}
	return s
}

// NewStoryboard describes sc at the given frame rate.
func NewStoryboard(sc *scene.Scene, fps int) Storyboard {
	return Storyboard{
		Transform:  NewTransform(sc.Original(), sc.Matrix()),
		Duration:   sc.Duration(),
		FPS:        fps,
		FrameCount: sc.FrameCount(fps),
		Steps:      sc.Steps(),
	}
}

// RenderJSON exports the storyboard of sc.
func RenderJSON(sc *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{fps: DefaultFPS}
	for _, opt := range opts {
		opt(&r)
	}
	out := NewStoryboard(sc, r.fps)
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
