package choreo

import (
	"github.com/tanema/gween/ease"
)

// Easing maps a relative time in [0, 1] to the factor handed to a Target.
// The returned factor may leave [0, 1] for overshooting families such as
// Back and Elastic.
//
// The set of variants is closed: Linear, CurveEasing, EaseIn, EaseOut, and
// EaseInOut. Each carries only the parameters it needs.
//
// EaseIn, EaseOut, and EaseInOut evaluate in float32, so their factors carry
// float32 precision (about 1e-7 relative error). Linear and CurveEasing are
// exact in float64. The factors applied at completion are always exactly 0
// or 1.
type Easing interface {
	Factor(t float64) float64
	easing()
}

// Family selects the curve shape used by the EaseIn, EaseOut, and EaseInOut
// variants.
type Family uint8

const (
	Quad    Family = iota // t^2
	Cubic                 // t^3
	Quart                 // t^4
	Quint                 // t^5
	Sine                  // quarter sine wave
	Expo                  // 2^(10(t-1))
	Circ                  // circular arc
	Elastic               // damped spring, overshoots
	Back                  // pulls back before moving, overshoots
	Bounce                // bouncing ball
)

var familyNames = [...]string{"quad", "cubic", "quart", "quint", "sine", "expo", "circ", "elastic", "back", "bounce"}

// String returns the lower-case family name.
func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// ParseFamily returns the Family with the given lower-case name.
func ParseFamily(name string) (Family, bool) {
	for i, n := range familyNames {
		if n == name {
			return Family(i), true
		}
	}
	return Quad, false
}

type familyFuncs struct {
	in, out, inOut ease.TweenFunc
}

var familyTable = [...]familyFuncs{
	Quad:    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	Cubic:   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	Quart:   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	Quint:   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	Sine:    {ease.InSine, ease.OutSine, ease.InOutSine},
	Expo:    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	Circ:    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	Elastic: {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	Back:    {ease.InBack, ease.OutBack, ease.InOutBack},
	Bounce:  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

func (f Family) funcs() familyFuncs {
	if int(f) < len(familyTable) {
		return familyTable[f]
	}
	return familyFuncs{ease.Linear, ease.Linear, ease.Linear}
}

// evalTweenFunc runs a gween easing over a unit interval.
// evalTweenFunc rounds t to float32 for gween; the result keeps that precision.
func evalTweenFunc(fn ease.TweenFunc, t float64) float64 {
	return float64(fn(float32(t), 0, 1, 1))
}

// Linear is the identity easing.
type Linear struct{}

// Factor returns t unchanged.
func (Linear) Factor(t float64) float64 { return t }
func (Linear) easing()                  {}

// EaseIn accelerates from zero velocity.
type EaseIn struct{ Family Family }

// Factor evaluates the family's ease-in curve.
func (e EaseIn) Factor(t float64) float64 { return evalTweenFunc(e.Family.funcs().in, t) }
func (EaseIn) easing()                    {}

// EaseOut decelerates to zero velocity.
type EaseOut struct{ Family Family }

// Factor evaluates the family's ease-out curve.
func (e EaseOut) Factor(t float64) float64 { return evalTweenFunc(e.Family.funcs().out, t) }
func (EaseOut) easing()                    {}

// EaseInOut accelerates through the first half and decelerates through the second.
type EaseInOut struct{ Family Family }

// Factor evaluates the family's ease-in-out curve.
func (e EaseInOut) Factor(t float64) float64 { return evalTweenFunc(e.Family.funcs().inOut, t) }
func (EaseInOut) easing()                    {}

// CurveEasing samples a keyframed Curve. A nil Curve behaves like Linear.
type CurveEasing struct{ Curve *Curve }

// Factor evaluates the curve at t.
func (e CurveEasing) Factor(t float64) float64 {
	if e.Curve == nil {
		return t
	}
	return e.Curve.Evaluate(t)
}
func (CurveEasing) easing() {}

// ParseEasing builds an Easing from a method name ("linear", "in", "out",
// "inout") and a family name. The family is ignored for "linear".
func ParseEasing(method, family string) (Easing, bool) {
	if method == "" || method == "linear" || method == "none" {
		return Linear{}, true
	}
	f, ok := ParseFamily(family)
	if !ok {
		return nil, false
	}
	switch method {
	case "in":
		return EaseIn{f}, true
	case "out":
		return EaseOut{f}, true
	case "inout", "in-out":
		return EaseInOut{f}, true
	}
	return nil, false
}

func factorOf(e Easing, t float64) float64 {
	if e == nil {
		return t
	}
	return e.Factor(t)
}
