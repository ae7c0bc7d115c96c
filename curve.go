package choreo

import (
	"sort"

	"github.com/fogleman/ease"
)

// Keyframe is a single control point of a Curve. Tangents are slopes
// (dValue/dTime) on either side of the key.
type Keyframe struct {
	Time, Value           float64
	InTangent, OutTangent float64
}

// Curve is a keyframed function evaluated with cubic Hermite segments.
// Outside the key range the first or last value is held.
type Curve struct {
	keys []Keyframe
}

// NewCurve returns a curve over the given keys, sorted by time.
func NewCurve(keys ...Keyframe) *Curve {
	c := &Curve{keys: append([]Keyframe(nil), keys...)}
	sort.SliceStable(c.keys, func(i, j int) bool { return c.keys[i].Time < c.keys[j].Time })
	return c
}

// LinearCurve returns the default two-key curve from (0,0) to (1,1).
func LinearCurve() *Curve {
	return NewCurve(
		Keyframe{Time: 0, Value: 0, InTangent: 1, OutTangent: 1},
		Keyframe{Time: 1, Value: 1, InTangent: 1, OutTangent: 1},
	)
}

// Keys returns a copy of the curve's keyframes.
func (c *Curve) Keys() []Keyframe {
	return append([]Keyframe(nil), c.keys...)
}

// Evaluate returns the curve's value at t.
func (c *Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	switch {
	case n == 0:
		return t
	case n == 1 || t <= c.keys[0].Time:
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	// First key strictly after t; t lies in [keys[i-1], keys[i]).
	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t })
	k0, k1 := c.keys[i-1], c.keys[i]
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*k0.OutTangent*dt + h01*k1.Value + h11*k1.InTangent*dt
}

// SampleCurve builds a curve by sampling fn at n evenly spaced points over
// [0, 1]. Tangents come from finite differences of the samples. n is raised to
// 2 if smaller.
func SampleCurve(fn func(float64) float64, n int) *Curve {
	if n < 2 {
		n = 2
	}
	step := 1.0 / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = fn(float64(i) * step)
	}

	keys := make([]Keyframe, n)
	for i := range keys {
		var slope float64
		switch i {
		case 0:
			slope = (vals[1] - vals[0]) / step
		case n - 1:
			slope = (vals[n-1] - vals[n-2]) / step
		default:
			slope = (vals[i+1] - vals[i-1]) / (2 * step)
		}
		keys[i] = Keyframe{Time: float64(i) * step, Value: vals[i], InTangent: slope, OutTangent: slope}
	}
	// Pin the ends so sampled curves start and finish exactly on their source.
	keys[0].Time, keys[n-1].Time = 0, 1
	return &Curve{keys: keys}
}

// curvePresets are sampled from fogleman/ease.
var curvePresets = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-back":     ease.OutBack,
	"out-bounce":   ease.OutBounce,
}

// presetSamples is the default lookup resolution for CurvePreset.
const presetSamples = 33

// CurvePreset returns a sampled curve for a named preset such as
// "in-out-quad" or "out-bounce".
func CurvePreset(name string) (*Curve, bool) {
	fn, ok := curvePresets[name]
	if !ok {
		return nil, false
	}
	return SampleCurve(fn, presetSamples), true
}
