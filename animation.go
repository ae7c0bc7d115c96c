package choreo

import "fmt"

// Entry is one child of an Animation together with its start delay relative
// to the animation's own activation.
type Entry struct {
	Child Child
	Delay float64
}

// Animation is a composite over tweens and nested animations. It does not own
// progress: it drives its children with synchronized delays, polls them for
// completion, and fires its own begin/end events once every child settles.
//
// Going forward each child starts after its relative delay. Going backward
// the delays are remapped so the run is the time mirror of the forward one:
// the child that started last forward starts first backward, and the whole
// animation reaches its begin state TotalDuration after activation. Ticks are
// discrete and the tick that crosses a child's delay counts in full, so a
// delayed child can settle up to one tick early.
type Animation struct {
	Name string
	Loop LoopPolicy

	// Deactivate, when set, is activated by SetEndState and deactivated when
	// the animation settles into its begin state with LoopNone.
	Deactivate Activator

	OnBeginStateSet Signal
	OnEndStateSet   Signal

	membership

	entries       []Entry
	durationScale float64
	total         float64
	totalValid    bool
	running       bool
	direction     Direction // direction of the current or last run
}

// NewAnimation returns an empty animation with a duration scale of 1.
func NewAnimation(name string) *Animation {
	return &Animation{Name: name, durationScale: 1}
}

// Label returns the animation's name.
func (a *Animation) Label() string { return a.Name }

// Add appends c with the given relative start delay. It fails if c already
// belongs to an animation, is registered on a scheduler, or is a (possibly
// indirect) parent of a.
func (a *Animation) Add(c Child, delay float64) error {
	if c == nil {
		return fmt.Errorf("add to %q: nil child", a.Name)
	}
	m := c.member()
	if m.parent != nil {
		return fmt.Errorf("add %q to %q: %w", c.Label(), a.Name, ErrHasParent)
	}
	if m.owner != nil {
		return fmt.Errorf("add %q to %q: %w", c.Label(), a.Name, ErrScheduled)
	}
	if sub, ok := c.(*Animation); ok {
		for p := a; p != nil; p = p.parent {
			if p == sub {
				return fmt.Errorf("add %q to %q: %w", c.Label(), a.Name, ErrCycle)
			}
		}
	}
	m.parent = a
	a.entries = append(a.entries, Entry{Child: c, Delay: delay})
	a.Invalidate()
	return nil
}

// AddTween creates a tween, adds it with the given delay, and returns it.
func (a *Animation) AddTween(name string, duration, delay float64, target Target) *Tween {
	t := NewTween(name, duration, target)
	// A fresh tween has no parent and no scheduler, so Add cannot fail.
	_ = a.Add(t, delay)
	return t
}

// Remove detaches c. It reports whether c was a child of a.
func (a *Animation) Remove(c Child) bool {
	for i, e := range a.entries {
		if e.Child == c {
			a.entries = append(a.entries[:i:i], a.entries[i+1:]...)
			c.member().parent = nil
			a.Invalidate()
			return true
		}
	}
	return false
}

// SetChildDelay changes the relative start delay of c.
func (a *Animation) SetChildDelay(c Child, delay float64) error {
	for i := range a.entries {
		if a.entries[i].Child == c {
			a.entries[i].Delay = delay
			a.Invalidate()
			return nil
		}
	}
	return fmt.Errorf("delay of %q in %q: %w", c.Label(), a.Name, ErrNotFound)
}

// Entries returns a copy of the children and their relative delays.
func (a *Animation) Entries() []Entry {
	return append([]Entry(nil), a.entries...)
}

// Len returns the number of direct children.
func (a *Animation) Len() int { return len(a.entries) }

// Invalidate drops the cached TotalDuration of a and every ancestor. Child
// mutations made through this package call it automatically.
func (a *Animation) Invalidate() {
	for p := a; p != nil; p = p.parent {
		p.totalValid = false
	}
}

// TotalDuration returns the latest end time over all children, child span
// plus relative delay, or 0 without children. The value is memoised until the
// next invalidation.
func (a *Animation) TotalDuration() float64 {
	if !a.totalValid {
		total := 0.0
		for _, e := range a.entries {
			if end := e.Child.Span() + e.Delay; end > total {
				total = end
			}
		}
		a.total = total
		a.totalValid = true
	}
	return a.total
}

// Span returns TotalDuration; it satisfies Child.
func (a *Animation) Span() float64 { return a.TotalDuration() }

// DurationScale returns the scale last written with SetDurationScale.
func (a *Animation) DurationScale() float64 { return a.durationScale }

// SetDurationScale writes s to every descendant, recursively.
func (a *Animation) SetDurationScale(s float64) {
	a.durationScale = s
	for _, e := range a.entries {
		e.Child.setDurationScale(s)
	}
	a.Invalidate()
}

func (a *Animation) setDurationScale(s float64) { a.SetDurationScale(s) }

// Running reports whether a run is waiting for children to finish.
func (a *Animation) Running() bool { return a.running }

// Direction returns the direction of the current or most recent run.
func (a *Animation) Direction() Direction { return a.direction }

// SetEndState snaps every child to its begin state and starts it forward
// after its relative delay plus delay.
func (a *Animation) SetEndState(delay float64) {
	if a.Deactivate != nil {
		a.Deactivate.SetActive(true)
	}
	for _, e := range a.entries {
		e.Child.SetBeginStateImmediately()
		e.Child.runForward(e.Delay + delay)
	}
	a.running = true
	a.direction = Forward
}

// SetBeginState snaps every child to its end state and starts it backward
// with the mirrored delay from BeginDelays.
func (a *Animation) SetBeginState(delay float64) {
	delays := a.BeginDelays(delay)
	for i, e := range a.entries {
		e.Child.SetEndStateImmediately()
		e.Child.runBackward(delays[i])
	}
	a.running = true
	a.direction = Backward
}

// BeginDelays returns, per child in order, the delay SetBeginState(delay)
// hands it: TotalDuration - (relative delay + child span) + delay.
func (a *Animation) BeginDelays(delay float64) []float64 {
	total := a.TotalDuration()
	out := make([]float64, len(a.entries))
	for i, e := range a.entries {
		out[i] = total - (e.Delay + e.Child.Span()) + delay
	}
	return out
}

func (a *Animation) runForward(delay float64)  { a.SetEndState(delay) }
func (a *Animation) runBackward(delay float64) { a.SetBeginState(delay) }

// SetBeginStateImmediately snaps every descendant to its begin state.
func (a *Animation) SetBeginStateImmediately() {
	for _, e := range a.entries {
		e.Child.SetBeginStateImmediately()
	}
	a.running = false
}

// SetEndStateImmediately snaps every descendant to its end state.
func (a *Animation) SetEndStateImmediately() {
	for _, e := range a.entries {
		e.Child.SetEndStateImmediately()
	}
	a.running = false
}

// IsInBeginState reports whether every child is in its begin state.
func (a *Animation) IsInBeginState() bool {
	for _, e := range a.entries {
		if !e.Child.IsInBeginState() {
			return false
		}
	}
	return true
}

// IsInEndState reports whether every child is in its end state.
func (a *Animation) IsInEndState() bool {
	for _, e := range a.entries {
		if !e.Child.IsInEndState() {
			return false
		}
	}
	return true
}

// Update advances the animation by dt seconds, scaled and unscaled alike.
func (a *Animation) Update(dt float64) {
	a.Tick(FrameOf(dt))
}

// Tick advances every child in order, then, if a run is in progress and every
// child has finished, settles the animation. Children settle and fire their
// own events before the animation's event fires.
func (a *Animation) Tick(f Frame) {
	// Iterate a snapshot; a child removed mid-tick is skipped.
	entries := a.entries
	for _, e := range entries {
		if e.Child.member().parent != a {
			continue
		}
		e.Child.Tick(f)
	}

	if !a.running {
		return
	}
	for _, e := range a.entries {
		if e.Child.Running() {
			return
		}
	}
	a.running = false

	backward := a.direction == Backward
	switch {
	case backward && a.IsInBeginState():
		a.settleBegin()
	case a.IsInEndState():
		a.settleEnd()
	case a.IsInBeginState():
		a.settleBegin()
	}
}

func (a *Animation) settleBegin() {
	a.OnBeginStateSet.emit()
	if a.running {
		return
	}
	switch a.Loop {
	case Loop:
		a.SetBeginState(0)
	case PingPong:
		a.SetEndState(0)
	default:
		if a.Deactivate != nil {
			a.Deactivate.SetActive(false)
		}
	}
}

func (a *Animation) settleEnd() {
	a.OnEndStateSet.emit()
	if a.running {
		return
	}
	switch a.Loop {
	case Loop:
		a.SetEndState(0)
	case PingPong:
		a.SetBeginState(0)
	}
}

func (a *Animation) signals() (begin, end *Signal) {
	return &a.OnBeginStateSet, &a.OnEndStateSet
}
