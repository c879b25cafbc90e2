//go:build !headless

package player

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matzehuels/lintrans/internal/player/playhead"
	"github.com/matzehuels/lintrans/pkg/render"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// ScrubRate is how many scene seconds one second of holding an arrow key
// skips.
const ScrubRate = 4.0

// Action is a player command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionRestart
	ActionQuit
)

// Player is an ebiten.Game that plays a scene.
type Player struct {
	sc     *scene.Scene
	r      *render.Renderer
	fps    int
	clock  *playhead.Clock
	logger *log.Logger

	screen  *ebiten.Image
	buf     *image.RGBA
	shown   int // index of the rendered frame, -1 before the first
	hud     bool
	lastErr error
}

// New returns a player for sc that renders width×height frames quantized to
// fps.
func New(sc *scene.Scene, width, height, fps int, logger *log.Logger) (*Player, error) {
	r, err := render.NewRenderer(width, height)
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid fps %d", fps)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		sc:     sc,
		r:      r,
		fps:    fps,
		clock:  playhead.NewClock(sc.Duration()),
		logger: logger,
		buf:    image.NewRGBA(image.Rect(0, 0, width, height)),
		shown:  -1,
		hud:    true,
	}, nil
}

// Clock returns the playhead.
func (p *Player) Clock() *playhead.Clock { return p.clock }

// Run opens a window and plays until the window is closed or q is pressed.
func (p *Player) Run(title string) error {
	w, h := p.r.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(p)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Apply performs a.
func (p *Player) Apply(a Action) error {
	switch a {
	case ActionTogglePause:
		p.clock.TogglePause()
		p.logger.Debug("pause toggled", "paused", p.clock.Paused(), "t", p.clock.Time())
	case ActionRestart:
		p.clock.Restart()
	case ActionQuit:
		return ebiten.Termination
	}
	return nil
}

// Update implements ebiten.Game.
func (p *Player) Update() error {
	if p.lastErr != nil {
		return p.lastErr
	}
	if err := p.Apply(pressedAction()); err != nil {
		return err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		p.hud = !p.hud
	}

	dt := 1 / float64(ebiten.TPS())
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		p.clock.Seek(-ScrubRate * dt)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		p.clock.Seek(ScrubRate * dt)
	default:
		p.clock.Advance(dt)
	}
	return nil
}

func pressedAction() Action {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		return ActionTogglePause
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		return ActionRestart
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ActionQuit
	}
	return ActionNone
}

// FrameIndex returns the frame shown at the current playhead.
func (p *Player) FrameIndex() int {
	return int(math.Round(p.clock.Time() * float64(p.fps)))
}

// Draw implements ebiten.Game. A frame is rendered only when the playhead
// crosses into a new one.
func (p *Player) Draw(screen *ebiten.Image) {
	if i := p.FrameIndex(); i != p.shown {
		if err := p.renderFrame(i); err != nil {
			p.lastErr = err
			return
		}
		p.shown = i
	}
	if p.screen != nil {
		screen.DrawImage(p.screen, nil)
	}
	if p.hud {
		ebitenutil.DebugPrint(screen, p.status())
	}
}

func (p *Player) renderFrame(i int) error {
	img, err := p.r.Render(p.sc.FrameAt(p.sc.FrameTime(i, p.fps)))
	if err != nil {
		return fmt.Errorf("render frame %d: %w", i, err)
	}
	draw.Draw(p.buf, p.buf.Bounds(), img, img.Bounds().Min, draw.Src)
	if p.screen == nil {
		w, h := p.r.Size()
		p.screen = ebiten.NewImage(w, h)
	}
	p.screen.WritePixels(p.buf.Pix)
	return nil
}

func (p *Player) status() string {
	t := p.clock.Time()
	step := "-"
	if i := p.sc.StepAt(t); i >= 0 {
		step = p.sc.Steps()[i].Name
	}
	state := "playing"
	if p.clock.Paused() {
		state = "paused"
	}
	return fmt.Sprintf("%5.2fs / %.0fs  %s  [%s]\nspace pause  ←/→ scrub  r restart  h hud  q quit",
		t, p.sc.Duration(), step, state)
}

// Layout implements ebiten.Game. The scene keeps its render size and
// ebiten scales it to the window.
func (p *Player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.r.Size()
}
