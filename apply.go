package choreo

import (
	"github.com/lucasb-eyer/go-colorful"
)

// FloatTarget interpolates a single float64 field: rotation, field of view,
// alpha, or anything else scalar. A nil Field makes it a no-op.
type FloatTarget struct {
	Field    *float64
	From, To float64
}

// ApplyFactor writes From + (To-From)*factor to Field.
func (t *FloatTarget) ApplyFactor(factor float64) {
	if t.Field == nil {
		return
	}
	*t.Field = t.From + (t.To-t.From)*factor
}

// Vec2Target interpolates a Vec2 field such as a position or a scale.
type Vec2Target struct {
	Field    *Vec2
	From, To Vec2
}

// ApplyFactor writes the interpolated vector to Field.
func (t *Vec2Target) ApplyFactor(factor float64) {
	if t.Field == nil {
		return
	}
	*t.Field = t.From.Lerp(t.To, factor)
}

// ColorTarget interpolates all four components of a Color field.
type ColorTarget struct {
	Field    *Color
	From, To Color
}

// ApplyFactor writes the interpolated color to Field.
func (t *ColorTarget) ApplyFactor(factor float64) {
	if t.Field == nil {
		return
	}
	*t.Field = t.From.Lerp(t.To, factor)
}

// GradientTarget animates the top and bottom stops of a two-stop vertical
// gradient. Either stop may be nil.
type GradientTarget struct {
	Top, Bottom            *colorful.Color
	StartTop, EndTop       colorful.Color
	StartBottom, EndBottom colorful.Color
}

// ApplyFactor blends each stop in RGB space.
func (t *GradientTarget) ApplyFactor(factor float64) {
	if t.Top != nil {
		*t.Top = t.StartTop.BlendRgb(t.EndTop, factor)
	}
	if t.Bottom != nil {
		*t.Bottom = t.StartBottom.BlendRgb(t.EndBottom, factor)
	}
}

// Group fans a factor out to several targets in order, so one tween can drive
// several fields at once.
type Group []Target

// ApplyFactor forwards factor to every non-nil member.
func (g Group) ApplyFactor(factor float64) {
	for _, t := range g {
		if t != nil {
			t.ApplyFactor(factor)
		}
	}
}

// ColorFrom converts a colorful.Color to a Color with the given alpha.
func ColorFrom(c colorful.Color, alpha float64) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Colorful converts c to a colorful.Color, dropping alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
