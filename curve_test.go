package choreo

import (
	"math"
	"testing"
)

func TestLinearCurve(t *testing.T) {
	c := LinearCurve()
	for _, x := range []float64{0, 0.25, 0.5, 0.9, 1} {
		if got := c.Evaluate(x); !near(got, x) {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestCurveClampsOutsideKeys(t *testing.T) {
	c := NewCurve(
		Keyframe{Time: 0.2, Value: 3},
		Keyframe{Time: 0.8, Value: 7},
	)
	if got := c.Evaluate(-1); got != 3 {
		t.Errorf("Evaluate(-1) = %v, want 3", got)
	}
	if got := c.Evaluate(2); got != 7 {
		t.Errorf("Evaluate(2) = %v, want 7", got)
	}
}

func TestNewCurveSortsKeys(t *testing.T) {
	c := NewCurve(
		Keyframe{Time: 1, Value: 1},
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 0.5, Value: 2},
	)
	keys := c.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i].Time < keys[i-1].Time {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
	if got := c.Evaluate(0.5); got != 2 {
		t.Errorf("Evaluate at key = %v, want 2", got)
	}
}

func TestEmptyCurveIsIdentity(t *testing.T) {
	c := NewCurve()
	if got := c.Evaluate(0.3); got != 0.3 {
		t.Errorf("Evaluate(0.3) = %v, want 0.3", got)
	}
}

func TestSampleCurveHitsSamples(t *testing.T) {
	fn := func(x float64) float64 { return x * x }
	c := SampleCurve(fn, 5)
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := c.Evaluate(x); !near(got, fn(x)) {
			t.Errorf("Evaluate(%v) = %v, want %v", x, got, fn(x))
		}
	}
	// Between samples the Hermite segment stays close to the source.
	if got := c.Evaluate(0.4); math.Abs(got-0.16) > 0.01 {
		t.Errorf("Evaluate(0.4) = %v, want ~0.16", got)
	}
}

func TestCurvePreset(t *testing.T) {
	c, ok := CurvePreset("in-out-quad")
	if !ok {
		t.Fatal("in-out-quad preset missing")
	}
	if got := c.Evaluate(0); got != 0 {
		t.Errorf("Evaluate(0) = %v, want 0", got)
	}
	if got := c.Evaluate(1); !near(got, 1) {
		t.Errorf("Evaluate(1) = %v, want 1", got)
	}
	if got := c.Evaluate(0.5); !near(got, 0.5) {
		t.Errorf("Evaluate(0.5) = %v, want 0.5", got)
	}
	if _, ok := CurvePreset("nope"); ok {
		t.Error("unknown preset should not resolve")
	}
}

func TestCurveEasingDrivesTween(t *testing.T) {
	c, _ := CurvePreset("in-quad")
	tw := NewTween("t", 1, nil)
	tw.Easing = CurveEasing{Curve: c}
	tw.SetEndState(0, 1)
	tw.Update(0.5)
	if got := tw.Factor(); !near(got, 0.25) {
		t.Errorf("factor = %v, want 0.25", got)
	}
}
