package choreo

// Step is one leg of a Chain: a run of the chained tween over Duration
// seconds in Direction. Prepare, when set, runs just before the tween is
// armed, typically to retarget it.
type Step struct {
	Duration  float64
	Direction Direction
	Prepare   func()
}

// Sequence is a lazy, finite source of Steps.
type Sequence interface {
	Next() (Step, bool)
}

// SequenceFunc adapts a generator function to Sequence.
type SequenceFunc func() (Step, bool)

// Next calls f.
func (f SequenceFunc) Next() (Step, bool) { return f() }

type sliceSequence struct {
	steps []Step
	i     int
}

func (s *sliceSequence) Next() (Step, bool) {
	if s.i >= len(s.steps) {
		return Step{}, false
	}
	st := s.steps[s.i]
	s.i++
	return st, true
}

// StepsOf returns a Sequence over a fixed list of steps.
func StepsOf(steps ...Step) Sequence {
	return &sliceSequence{steps: steps}
}

// SplinePath yields one step per segment between point indices from and to.
// Forward legs run segment i from begin to end; backward legs run segment i-1
// from end to begin. A non-positive speed yields zero-length steps.
func SplinePath(target *SplineTarget, from, to int, speed float64) Sequence {
	cur := from
	return SequenceFunc(func() (Step, bool) {
		if cur == to {
			return Step{}, false
		}
		seg, dir := cur, Forward
		if cur > to {
			seg, dir = cur-1, Backward
			cur--
		} else {
			cur++
		}
		d := 0.0
		if speed > 0 && target.Spline != nil {
			d = target.Spline.Length(seg) / speed
		}
		return Step{
			Duration:  d,
			Direction: dir,
			Prepare:   func() { target.Segment = seg },
		}, true
	})
}

// Chain drives one Tween through a Sequence, arming the next step each time
// the previous one completes. While the chain runs it owns the tween's
// OnComplete and forces Linear easing; both are restored when it finishes or
// stops.
type Chain struct {
	tween *Tween
	seq   Sequence
	done  func()

	savedEasing     Easing
	savedOnComplete func()
	running         bool
	steps           int
}

// NewChain returns a chain over tw and seq. Nothing happens until Start.
func NewChain(tw *Tween, seq Sequence) *Chain {
	return &Chain{tween: tw, seq: seq}
}

// Start arms the first step. done, if not nil, runs after the last step
// settles, or immediately when the sequence is empty.
func (c *Chain) Start(done func()) {
	if c.running {
		c.Stop()
	}
	c.done = done
	c.savedEasing = c.tween.Easing
	c.savedOnComplete = c.tween.OnComplete
	c.tween.Easing = Linear{}
	c.tween.OnComplete = c.advance
	c.running = true
	c.advance()
}

// Stop detaches the chain without calling done. The tween keeps its current
// state.
func (c *Chain) Stop() {
	if !c.running {
		return
	}
	c.restore()
}

// Running reports whether the chain still has steps in flight.
func (c *Chain) Running() bool { return c.running }

// Steps returns how many steps have been armed so far.
func (c *Chain) Steps() int { return c.steps }

func (c *Chain) advance() {
	st, ok := c.seq.Next()
	if !ok {
		c.restore()
		if c.done != nil {
			c.done()
		}
		return
	}
	c.steps++
	if st.Prepare != nil {
		st.Prepare()
	}
	if st.Direction == Backward {
		c.tween.SetBeginState(0, st.Duration)
	} else {
		c.tween.SetEndState(0, st.Duration)
	}
}

func (c *Chain) restore() {
	c.running = false
	c.tween.Easing = c.savedEasing
	c.tween.OnComplete = c.savedOnComplete
}
