package choreo

import "math"

// Target receives the eased progress of a Tween once per tick. ApplyFactor
// must be idempotent for a given factor; a Target whose backing object is
// gone should make it a no-op.
type Target interface {
	ApplyFactor(factor float64)
}

// TargetFunc adapts a plain function to the Target interface.
type TargetFunc func(factor float64)

// ApplyFactor calls f(factor).
func (f TargetFunc) ApplyFactor(factor float64) { f(factor) }

// Tween is a single-value progress state machine. It waits out its delay,
// accumulates progress in its current direction, eases the progress ratio,
// and hands the result to its Target.
//
// A tween is always in exactly one of four states: settled at begin, settled
// at end, running forward, or running backward. SetEndState and SetBeginState
// arm a run; the Immediately variants snap to an extreme and cancel any run.
//
// Create tweens with NewTween; the zero value has a duration scale of 0 and
// completes on its first tick.
type Tween struct {
	Name            string
	Easing          Easing
	Loop            LoopPolicy
	IgnoreTimeScale bool
	Target          Target

	// OnComplete is invoked at the instant a run overshoots an extreme,
	// before the settle event and before loop policy re-arms the tween. If it
	// re-arms the tween itself, loop policy is skipped for that settle.
	OnComplete func()

	// OnBeginStateSet and OnEndStateSet fire when a run settles at that
	// extreme. PingPong tweens fire on every turn; Loop tweens never fire.
	OnBeginStateSet Signal
	OnEndStateSet   Signal

	membership

	duration      float64
	durationScale float64
	delay         float64

	elapsed   float64 // progress time since activation, in [0, Span]
	waited    float64 // time since the delay started counting
	direction Direction
	progress  float64 // elapsed / Span, or the clamped extreme
	factor    float64 // last factor handed to Target
	active    bool
}

// NewTween returns a tween settled in its begin state.
func NewTween(name string, duration float64, target Target) *Tween {
	return &Tween{
		Name:          name,
		Target:        target,
		duration:      duration,
		durationScale: 1,
	}
}

// Label returns the tween's name.
func (t *Tween) Label() string { return t.Name }

// Duration returns the unscaled duration in seconds.
func (t *Tween) Duration() float64 { return t.duration }

// SetDuration changes the unscaled duration and invalidates the owning
// animation's cached total. A running tween picks the new value up on its
// next tick.
func (t *Tween) SetDuration(d float64) {
	if d == t.duration {
		return
	}
	t.duration = d
	t.invalidateParent()
}

// Delay returns the delay of the current or most recent run.
func (t *Tween) Delay() float64 { return t.delay }

// DurationScale returns the duration multiplier.
func (t *Tween) DurationScale() float64 { return t.durationScale }

// SetDurationScale changes the duration multiplier.
func (t *Tween) SetDurationScale(s float64) {
	if s == t.durationScale {
		return
	}
	t.durationScale = s
	t.invalidateParent()
}

func (t *Tween) setDurationScale(s float64) { t.durationScale = s }

// Span returns the scaled duration.
func (t *Tween) Span() float64 { return t.duration * t.durationScale }

// Direction returns the current run direction, Idle when settled.
func (t *Tween) Direction() Direction { return t.direction }

// Active reports whether a run is in progress.
func (t *Tween) Active() bool { return t.active }

// Running is Active; it satisfies Child.
func (t *Tween) Running() bool { return t.active }

// Progress returns the un-eased progress ratio.
func (t *Tween) Progress() float64 { return t.progress }

// Factor returns the last factor applied to the target.
func (t *Tween) Factor() float64 { return t.factor }

// SetEndState arms a forward run: after delay seconds progress counts up from
// 0 to the scaled duration, driving the factor toward 1.
func (t *Tween) SetEndState(delay, duration float64) {
	t.arm(delay, duration)
	t.elapsed = 0
	t.progress = 0
	t.factor = 0
	t.direction = Forward
}

// SetBeginState arms a backward run: after delay seconds progress counts down
// from the scaled duration to 0, driving the factor toward 0.
func (t *Tween) SetBeginState(delay, duration float64) {
	t.arm(delay, duration)
	t.elapsed = math.Max(t.Span(), 0)
	t.progress = 1
	t.factor = 1
	t.direction = Backward
}

// Replay re-arms a forward run with the stored delay and duration.
func (t *Tween) Replay() { t.SetEndState(t.delay, t.duration) }

// Rewind re-arms a backward run with the stored delay and duration.
func (t *Tween) Rewind() { t.SetBeginState(t.delay, t.duration) }

func (t *Tween) arm(delay, duration float64) {
	t.SetDuration(duration)
	t.delay = delay
	t.waited = 0
	t.active = true
}

func (t *Tween) runForward(delay float64)  { t.SetEndState(delay, t.duration) }
func (t *Tween) runBackward(delay float64) { t.SetBeginState(delay, t.duration) }

// SetEndStateImmediately applies factor 1 and settles in the end state,
// cancelling any run.
func (t *Tween) SetEndStateImmediately() {
	t.snap(math.Max(t.Span(), 0), 1)
}

// SetBeginStateImmediately applies factor 0 and settles in the begin state,
// cancelling any run.
func (t *Tween) SetBeginStateImmediately() {
	t.snap(0, 0)
}

func (t *Tween) snap(elapsed, progress float64) {
	t.active = false
	t.direction = Idle
	t.waited = 0
	t.elapsed = elapsed
	t.progress = progress
	t.apply(progress)
}

// IsInBeginState reports whether the tween is settled with progress at 0.
func (t *Tween) IsInBeginState() bool {
	return !t.active && t.direction <= Idle && t.progress <= Epsilon
}

// IsInEndState reports whether the tween is settled with progress at 1.
func (t *Tween) IsInEndState() bool {
	return !t.active && t.direction >= Idle && t.progress >= 1-Epsilon
}

// Tick advances the tween using the frame delta selected by IgnoreTimeScale.
func (t *Tween) Tick(f Frame) {
	t.Update(f.Delta(t.IgnoreTimeScale))
}

// Update advances the tween by dt seconds. It is a no-op while settled.
//
// The delay is consumed before any progress. Once it has elapsed every tick
// advances by its whole dt, the tick that crosses the delay included. A run
// whose scaled duration is not positive completes on its first tick past the
// delay.
func (t *Tween) Update(dt float64) {
	if !t.active {
		return
	}
	if dt < 0 {
		dt = 0
	}

	t.waited += dt
	if t.waited < t.delay {
		return
	}
	t.elapsed += dt * float64(t.direction)

	span := t.Span()
	switch {
	case t.direction == Forward && (span <= 0 || t.elapsed >= span):
		t.settle(Forward)
	case t.direction == Backward && (span <= 0 || t.elapsed <= 0):
		t.settle(Backward)
	default:
		t.progress = t.elapsed / span
		t.apply(factorOf(t.Easing, t.progress))
	}
}

// settle clamps to the reached extreme, applies its exact factor, and runs
// the completion callback, the settle event, and loop policy in that order.
// A Loop tween never settles for good, so it fires no settle event.
func (t *Tween) settle(reached Direction) {
	t.active = false
	t.direction = Idle
	if reached == Forward {
		t.elapsed, t.progress = math.Max(t.Span(), 0), 1
	} else {
		t.elapsed, t.progress = 0, 0
	}
	t.apply(t.progress)

	if t.OnComplete != nil {
		t.OnComplete()
	}
	if t.Loop != Loop {
		if reached == Forward {
			t.OnEndStateSet.emit()
		} else {
			t.OnBeginStateSet.emit()
		}
	}

	if !t.active {
		switch {
		case t.Loop == Loop && reached == Forward:
			t.Replay()
		case t.Loop == Loop && reached == Backward:
			t.Rewind()
		case t.Loop == PingPong && reached == Forward:
			t.Rewind()
		case t.Loop == PingPong && reached == Backward:
			t.Replay()
		}
	}

	// Re-armed on this tick: show the new run's starting pose right away.
	if t.active {
		t.apply(t.factor)
	}
}

func (t *Tween) apply(f float64) {
	t.factor = f
	if t.Target != nil {
		t.Target.ApplyFactor(f)
	}
}

func (t *Tween) signals() (begin, end *Signal) {
	return &t.OnBeginStateSet, &t.OnEndStateSet
}
