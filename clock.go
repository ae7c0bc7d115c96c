package choreo

import "time"

// Frame carries one scheduling cycle's delta time in seconds, both scaled by
// the host time scale and unscaled. Tweens pick one through IgnoreTimeScale.
type Frame struct {
	Scaled   float64
	Unscaled float64
}

// FrameOf returns a Frame whose scaled and unscaled deltas are both dt.
func FrameOf(dt float64) Frame {
	return Frame{Scaled: dt, Unscaled: dt}
}

// Delta returns the unscaled delta when ignoreTimeScale is set, otherwise the
// scaled one.
func (f Frame) Delta(ignoreTimeScale bool) float64 {
	if ignoreTimeScale {
		return f.Unscaled
	}
	return f.Scaled
}

// Clock turns host time steps into Frames. TimeScale multiplies the scaled
// delta only; Paused zeroes it while unscaled time keeps flowing.
type Clock struct {
	TimeScale float64
	Paused    bool

	last time.Time
}

// NewClock returns a clock with a time scale of 1.
func NewClock() *Clock {
	return &Clock{TimeScale: 1}
}

// Frame builds a Frame from an unscaled step in seconds.
func (c *Clock) Frame(unscaled float64) Frame {
	scaled := unscaled * c.TimeScale
	if c.Paused {
		scaled = 0
	}
	return Frame{Scaled: scaled, Unscaled: unscaled}
}

// FixedFrame builds a Frame for a fixed cadence of tps ticks per second.
// A non-positive tps yields an empty frame.
func (c *Clock) FixedFrame(tps int) Frame {
	if tps <= 0 {
		return Frame{}
	}
	return c.Frame(1 / float64(tps))
}

// FrameSince builds a Frame from the wall time elapsed since the previous
// call. The first call yields an empty frame and only records now.
func (c *Clock) FrameSince(now time.Time) Frame {
	if c.last.IsZero() {
		c.last = now
		return Frame{}
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		dt = 0
	}
	return c.Frame(dt.Seconds())
}

// Reset forgets the last FrameSince timestamp.
func (c *Clock) Reset() {
	c.last = time.Time{}
}
