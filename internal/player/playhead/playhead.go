// Package playhead tracks a playback position within a fixed-length scene.
package playhead

import "math"

// Clock tracks the playhead of a scene of fixed duration.
type Clock struct {
	duration float64
	t        float64
	paused   bool
}

// NewClock returns a running clock at t = 0.
func NewClock(duration float64) *Clock {
	return &Clock{duration: math.Max(duration, 0)}
}

// Time returns the playhead position in seconds.
func (c *Clock) Time() float64 { return c.t }

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool { return c.paused }

// Done reports whether the playhead reached the end.
func (c *Clock) Done() bool { return c.t >= c.duration }

// Advance moves the playhead forward by dt unless paused.
func (c *Clock) Advance(dt float64) {
	if c.paused {
		return
	}
	c.Seek(dt)
}

// Seek moves the playhead by delta, clamped to the scene.
func (c *Clock) Seek(delta float64) {
	c.t = math.Min(math.Max(c.t+delta, 0), c.duration)
}

// TogglePause pauses a running clock and resumes a paused one. Resuming at
// the end starts over.
func (c *Clock) TogglePause() {
	if c.paused && c.Done() {
		c.t = 0
	}
	c.paused = !c.paused
}

// Restart rewinds to the beginning and resumes.
func (c *Clock) Restart() {
	c.t = 0
	c.paused = false
}
