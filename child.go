package choreo

// Child is a slot in an Animation: either a *Tween or a nested *Animation.
// The interface is sealed; both variants expose the same begin/end surface so
// a composite can drive them with one piece of convergence arithmetic.
type Child interface {
	// Tick advances the child by one scheduling cycle.
	Tick(f Frame)

	SetBeginStateImmediately()
	SetEndStateImmediately()
	IsInBeginState() bool
	IsInEndState() bool

	// Span is the scaled run length: a tween's duration times its scale, or
	// an animation's TotalDuration.
	Span() float64

	// Running reports whether the child has an unfinished run.
	Running() bool

	// Label returns the child's name for logs and events.
	Label() string

	member() *membership
	runForward(delay float64)
	runBackward(delay float64)
	setDurationScale(s float64)
	signals() (begin, end *Signal)
}

// membership records who drives a Tween or Animation. At most one of parent
// and owner is set: children are ticked by their animation, top-level items
// by exactly one scheduler.
type membership struct {
	parent *Animation
	owner  *Scheduler
}

func (m *membership) member() *membership { return m }

// Parent returns the animation that owns this item, or nil.
func (m *membership) Parent() *Animation { return m.parent }

// Scheduler returns the scheduler this item is registered on, or nil.
func (m *membership) Scheduler() *Scheduler { return m.owner }

func (m *membership) invalidateParent() {
	if m.parent != nil {
		m.parent.Invalidate()
	}
}
