package choreo

import (
	"fmt"
	"log/slog"
	"time"
)

// EventKind identifies a settle event.
type EventKind uint8

const (
	EventBeginReached EventKind = iota // settled into the begin state
	EventEndReached                    // settled into the end state
)

// String returns "begin" or "end".
func (k EventKind) String() string {
	if k == EventEndReached {
		return "end"
	}
	return "begin"
}

// SettleEvent is forwarded to a scheduler's EventSink whenever one of its
// top-level items fires its begin or end event.
type SettleEvent struct {
	Kind  EventKind
	Name  string
	Frame uint64 // scheduler tick count when the event fired
}

// EventSink receives settle events from a Scheduler. Implementations must not
// block; they run inside Tick.
type EventSink interface {
	EmitEvent(event SettleEvent)
}

type scheduled struct {
	item       Child
	begin, end SubscriptionID
}

// Scheduler is an ordered list of top-level tweens and animations that a host
// driver ticks once per cycle. Registration is explicit and idempotent, and an
// item belongs to at most one scheduler at a time, so production and preview
// ticking can never double-advance the same state.
//
// Scheduler is not safe for concurrent use.
type Scheduler struct {
	name   string
	items  []scheduled
	sink   EventSink
	frames uint64

	debug  bool
	logger *slog.Logger
}

// NewScheduler returns an empty scheduler. The name only appears in logs.
func NewScheduler(name string) *Scheduler {
	return &Scheduler{name: name, logger: slog.Default()}
}

// Name returns the scheduler's name.
func (s *Scheduler) Name() string { return s.name }

// Add registers item at the end of the tick order. Adding an item already on
// s is a no-op. Items owned by another scheduler or by an Animation are
// rejected.
func (s *Scheduler) Add(item Child) error {
	if item == nil {
		return fmt.Errorf("schedule on %q: nil item", s.name)
	}
	m := item.member()
	switch {
	case m.owner == s:
		return nil
	case m.owner != nil:
		return fmt.Errorf("schedule %q on %q: %w", item.Label(), s.name, ErrScheduled)
	case m.parent != nil:
		return fmt.Errorf("schedule %q on %q: %w", item.Label(), s.name, ErrHasParent)
	}
	m.owner = s
	if s.debug {
		s.debugCheckTree(item)
	}

	begin, end := item.signals()
	name := item.Label()
	s.items = append(s.items, scheduled{
		item:  item,
		begin: begin.Subscribe(func() { s.emit(EventBeginReached, name) }),
		end:   end.Subscribe(func() { s.emit(EventEndReached, name) }),
	})
	return nil
}

// Remove unregisters item. It reports whether item was registered on s.
// Removing during Tick is allowed; the item is not ticked again.
func (s *Scheduler) Remove(item Child) bool {
	for i, sc := range s.items {
		if sc.item != item {
			continue
		}
		begin, end := item.signals()
		begin.Unsubscribe(sc.begin)
		end.Unsubscribe(sc.end)
		item.member().owner = nil
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		return true
	}
	return false
}

// Len returns the number of registered items.
func (s *Scheduler) Len() int { return len(s.items) }

// Has reports whether item is registered on s.
func (s *Scheduler) Has(item Child) bool {
	return item != nil && item.member().owner == s
}

// Frames returns how many times Tick has run.
func (s *Scheduler) Frames() uint64 { return s.frames }

// SetEventSink sets the optional settle-event sink. Pass nil to clear it.
func (s *Scheduler) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLogger replaces the logger used in debug mode. A nil logger restores
// slog.Default().
func (s *Scheduler) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// SetDebugMode enables per-tick timing stats at debug level.
func (s *Scheduler) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Tick advances every registered item once, in registration order.
func (s *Scheduler) Tick(f Frame) {
	s.frames++

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	// Iterate a snapshot; an item removed mid-tick loses its owner and is skipped.
	items := s.items
	for _, sc := range items {
		if sc.item.member().owner != s {
			continue
		}
		sc.item.Tick(f)
	}

	if s.debug {
		s.debugLog(tickStats{
			tickTime: time.Since(t0),
			frame:    f,
			items:    len(s.items),
			running:  s.countRunning(),
		})
	}
}

// Update ticks with dt as both the scaled and unscaled delta.
func (s *Scheduler) Update(dt float64) {
	s.Tick(FrameOf(dt))
}

func (s *Scheduler) countRunning() int {
	n := 0
	for _, sc := range s.items {
		if sc.item.Running() {
			n++
		}
	}
	return n
}

func (s *Scheduler) emit(kind EventKind, name string) {
	if s.debug {
		s.logger.Debug("settled", "scheduler", s.name, "item", name, "state", kind.String(), "frame", s.frames)
	}
	if s.sink != nil {
		s.sink.EmitEvent(SettleEvent{Kind: kind, Name: name, Frame: s.frames})
	}
}
