package scene

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/lintrans/pkg/geom"
)

// FrameHeight is the height of the visible frame in scene units.
const FrameHeight = 8.0

// State is the set of objects at one instant, in draw order.
type State struct {
	order   []string
	objects map[string]*Object
}

func newState() *State {
	return &State{objects: make(map[string]*Object)}
}

// Get returns the object with the given id. Storyboard steps only refer to
// objects registered by Build, so a missing id is a programming error.
func (s *State) Get(id string) *Object {
	o, ok := s.objects[id]
	if !ok {
		panic("scene: unknown object " + id)
	}
	return o
}

// Lookup returns the object with the given id, if present.
func (s *State) Lookup(id string) (*Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

func (s *State) add(o Object) {
	if _, dup := s.objects[o.ID]; dup {
		panic("scene: duplicate object " + o.ID)
	}
	s.order = append(s.order, o.ID)
	s.objects[o.ID] = o.clone()
}

func (s *State) clone() *State {
	c := &State{
		order:   s.order,
		objects: make(map[string]*Object, len(s.objects)),
	}
	for id, o := range s.objects {
		c.objects[id] = o.clone()
	}
	return c
}

// Step is one timed entry of the storyboard. All animations of a step share
// its duration and rate function.
type Step struct {
	Name        string
	Description string
	Start       float64
	Duration    float64
	Rate        RateFunc
	Animations  []Animation
}

// End returns Start+Duration.
func (s Step) End() float64 { return s.Start + s.Duration }

func (s Step) apply(from, to *State, alpha float64) {
	for _, a := range s.Animations {
		a.Apply(from, to, alpha)
	}
}

// StepInfo is the exported, animation-free view of a step.
type StepInfo struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Start       float64 `json:"start"`
	Duration    float64 `json:"duration"`
}

// Frame is the snapshot of a scene at one instant.
type Frame struct {
	Time       float64
	Width      float64 // scene units
	Height     float64 // scene units
	Background gg.RGBA
	// Objects holds the visible objects in draw order.
	Objects []Object
}

// Scene is a built storyboard.
type Scene struct {
	cfg         Config
	axes        Axes
	frameWidth  float64
	initial     *State
	steps       []Step
	duration    float64
	original    geom.Shape
	transformed geom.Shape
}

// Config returns the configuration the scene was built from.
func (sc *Scene) Config() Config { return sc.cfg }

// Axes returns the coordinate axes.
func (sc *Scene) Axes() Axes { return sc.axes }

// FrameWidth returns the frame width in scene units.
func (sc *Scene) FrameWidth() float64 { return sc.frameWidth }

// Duration returns the total running time in seconds.
func (sc *Scene) Duration() float64 { return sc.duration }

// Original returns a copy of the input vertices.
func (sc *Scene) Original() geom.Shape { return sc.original.Clone() }

// Transformed returns a copy of the scaled vertices.
func (sc *Scene) Transformed() geom.Shape { return sc.transformed.Clone() }

// Matrix returns the scaling matrix.
func (sc *Scene) Matrix() geom.ScalingMatrix { return sc.cfg.Matrix }

// Steps describes the storyboard.
func (sc *Scene) Steps() []StepInfo {
	out := make([]StepInfo, len(sc.steps))
	for i, s := range sc.steps {
		out[i] = StepInfo{
			Index:       i,
			Name:        s.Name,
			Description: s.Description,
			Start:       s.Start,
			Duration:    s.Duration,
		}
	}
	return out
}

// StepAt returns the index of the step running at time t.
func (sc *Scene) StepAt(t float64) int {
	for i, s := range sc.steps {
		if t < s.End() {
			return i
		}
	}
	return len(sc.steps) - 1
}

// FrameAt returns the snapshot at time t, clamped to [0, Duration].
func (sc *Scene) FrameAt(t float64) Frame {
	t = math.Min(math.Max(t, 0), sc.duration)
	st := sc.stateAt(t)

	f := Frame{
		Time:       t,
		Width:      sc.frameWidth,
		Height:     FrameHeight,
		Background: sc.cfg.Palette.Background,
	}
	for _, id := range st.order {
		o := st.objects[id]
		if o.Visible && o.Opacity > 0 {
			f.Objects = append(f.Objects, *o)
		}
	}
	return f
}

func (sc *Scene) stateAt(t float64) *State {
	st := sc.initial.clone()
	for _, step := range sc.steps {
		if t <= step.Start && step.Duration > 0 {
			break
		}
		from := st.clone()
		if t >= step.End() || step.Duration <= 0 {
			step.apply(from, st, 1)
			continue
		}
		alpha := (t - step.Start) / step.Duration
		if step.Rate != nil {
			alpha = step.Rate(alpha)
		}
		step.apply(from, st, alpha)
		break
	}
	return st
}

// FrameCount returns the number of frames needed at fps, including both the
// first and the last instant.
func (sc *Scene) FrameCount(fps int) int {
	if fps <= 0 {
		return 1
	}
	return int(math.Round(sc.duration*float64(fps))) + 1
}

// FrameTime returns the time of frame i at fps, clamped to Duration.
func (sc *Scene) FrameTime(i, fps int) float64 {
	if fps <= 0 {
		return sc.duration
	}
	return math.Min(float64(i)/float64(fps), sc.duration)
}
