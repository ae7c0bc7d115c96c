package choreo

import (
	"errors"
	"math"
)

// Epsilon is the tolerance used when deciding whether a tween's progress ratio
// sits on an extreme. Nested composites accumulate floating-point drift, so
// the begin/end predicates never compare against exactly 0 or 1.
const Epsilon = 1e-9

// Sentinel errors returned by composition and scheduling calls. The state
// machines themselves never return errors.
var (
	ErrCycle     = errors.New("choreo: child would create a cycle")
	ErrHasParent = errors.New("choreo: child already belongs to an animation")
	ErrScheduled = errors.New("choreo: item is registered on another scheduler")
	ErrNotFound  = errors.New("choreo: not found")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Lerp returns the component-wise interpolation between c and to. The factor
// is not clamped, so overshooting easings extrapolate.
func (c Color) Lerp(to Color, f float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*f,
		G: c.G + (to.G-c.G)*f,
		B: c.B + (to.B-c.B)*f,
		A: c.A + (to.A-c.A)*f,
	}
}

// Vec2 is a 2D vector used for positions, scales, and directions.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Lerp returns the interpolation between v and to. The factor is not clamped.
func (v Vec2) Lerp(to Vec2, f float64) Vec2 {
	return Vec2{v.X + (to.X-v.X)*f, v.Y + (to.Y-v.Y)*f}
}

// LoopPolicy selects what a tween or animation does when it reaches an extreme.
type LoopPolicy uint8

const (
	LoopNone LoopPolicy = iota // settle at the extreme
	Loop                       // restart the same direction (sawtooth)
	PingPong                   // reverse direction
)

// String returns the lower-case policy name.
func (p LoopPolicy) String() string {
	switch p {
	case Loop:
		return "loop"
	case PingPong:
		return "pingpong"
	default:
		return "none"
	}
}

// ParseLoopPolicy maps "none", "loop", or "pingpong" to a LoopPolicy.
func ParseLoopPolicy(s string) (LoopPolicy, bool) {
	switch s {
	case "", "none":
		return LoopNone, true
	case "loop":
		return Loop, true
	case "pingpong", "ping-pong":
		return PingPong, true
	}
	return LoopNone, false
}

// Direction is the sign of a tween's progress accumulation.
type Direction int8

const (
	Backward Direction = -1 // progress counts down toward the begin state
	Idle     Direction = 0  // not running
	Forward  Direction = 1  // progress counts up toward the end state
)

// String returns "forward", "backward", or "idle".
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "idle"
	}
}

// Activator is an external handle that is shown while an animation plays
// toward its end state and hidden once it settles into its begin state.
type Activator interface {
	SetActive(active bool)
}
