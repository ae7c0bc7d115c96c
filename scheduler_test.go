package choreo

import (
	"errors"
	"reflect"
	"testing"
)

type eventLog struct {
	events []SettleEvent
}

func (l *eventLog) EmitEvent(e SettleEvent) { l.events = append(l.events, e) }

func TestSchedulerTicksInOrder(t *testing.T) {
	s := NewScheduler("game")
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		tw := NewTween(name, 10, TargetFunc(func(float64) { order = append(order, name) }))
		tw.SetEndState(0, 10)
		if err := s.Add(tw); err != nil {
			t.Fatal(err)
		}
	}

	s.Update(0.1)

	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", s.Frames())
	}
}

func TestSchedulerAddIsIdempotent(t *testing.T) {
	s := NewScheduler("game")
	tw := NewTween("t", 1, nil)
	tw.SetEndState(0, 1)
	if err := s.Add(tw); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(tw); err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}

	s.Update(0.25)
	if !near(tw.Progress(), 0.25) {
		t.Errorf("progress = %v, want 0.25 (ticked once)", tw.Progress())
	}
}

func TestSchedulerExclusiveOwnership(t *testing.T) {
	prod := NewScheduler("production")
	other := NewScheduler("other")
	tw := NewTween("t", 1, nil)

	if err := prod.Add(tw); err != nil {
		t.Fatal(err)
	}
	if err := other.Add(tw); !errors.Is(err, ErrScheduled) {
		t.Fatalf("err = %v, want ErrScheduled", err)
	}
	if tw.Scheduler() != prod {
		t.Error("owner changed after rejected Add")
	}

	prod.Remove(tw)
	if err := other.Add(tw); err != nil {
		t.Errorf("Add after Remove: %v", err)
	}
	if prod.Has(tw) || !other.Has(tw) {
		t.Error("ownership did not move")
	}
}

func TestSchedulerRejectsChildOfAnimation(t *testing.T) {
	s := NewScheduler("game")
	a := NewAnimation("a")
	tw := a.AddTween("t", 1, 0, nil)
	if err := s.Add(tw); !errors.Is(err, ErrHasParent) {
		t.Errorf("err = %v, want ErrHasParent", err)
	}
	if err := s.Add(nil); err == nil {
		t.Error("Add(nil) should fail")
	}
}

func TestSchedulerForwardsSettleEvents(t *testing.T) {
	s := NewScheduler("game")
	sink := &eventLog{}
	s.SetEventSink(sink)

	tw := NewTween("fade", 1, nil)
	tw.Loop = PingPong
	tw.SetEndState(0, 1)
	if err := s.Add(tw); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		s.Update(0.5)
	}

	want := []SettleEvent{
		{Kind: EventEndReached, Name: "fade", Frame: 2},
		{Kind: EventBeginReached, Name: "fade", Frame: 4},
	}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("events = %+v, want %+v", sink.events, want)
	}
}

func TestSchedulerLoopTweenSendsNoEvents(t *testing.T) {
	s := NewScheduler("game")
	sink := &eventLog{}
	s.SetEventSink(sink)

	tw := NewTween("spin", 1, nil)
	tw.Loop = Loop
	tw.SetEndState(0, 1)
	if err := s.Add(tw); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		s.Update(0.5)
	}

	if len(sink.events) != 0 {
		t.Errorf("events = %+v, want none from a looping tween", sink.events)
	}
}

func TestSchedulerRemoveStopsEvents(t *testing.T) {
	s := NewScheduler("game")
	sink := &eventLog{}
	s.SetEventSink(sink)
	tw := NewTween("t", 1, nil)
	if err := s.Add(tw); err != nil {
		t.Fatal(err)
	}
	if !s.Remove(tw) {
		t.Fatal("Remove returned false")
	}
	if s.Remove(tw) {
		t.Error("second Remove should report false")
	}

	tw.SetEndState(0, 1)
	tw.Update(1)
	if len(sink.events) != 0 {
		t.Errorf("events after Remove: %+v", sink.events)
	}
	if tw.OnEndStateSet.Len() != 0 {
		t.Errorf("scheduler left %d handlers behind", tw.OnEndStateSet.Len())
	}
}

func TestSchedulerRemoveDuringTick(t *testing.T) {
	s := NewScheduler("game")
	second := NewTween("second", 1, nil)
	first := NewTween("first", 0.5, nil)
	first.OnComplete = func() { s.Remove(second) }
	first.SetEndState(0, 0.5)
	second.SetEndState(0, 1)
	if err := s.Add(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(second); err != nil {
		t.Fatal(err)
	}

	s.Update(0.5)

	if second.Progress() != 0 {
		t.Errorf("removed item was ticked: progress = %v", second.Progress())
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSchedulerIgnoreTimeScale(t *testing.T) {
	s := NewScheduler("game")
	clock := NewClock()
	clock.Paused = true

	menu := NewTween("menu", 1, nil)
	menu.IgnoreTimeScale = true
	world := NewTween("world", 1, nil)
	for _, tw := range []*Tween{menu, world} {
		tw.SetEndState(0, 1)
		if err := s.Add(tw); err != nil {
			t.Fatal(err)
		}
	}

	s.Tick(clock.Frame(0.5))

	if !near(menu.Progress(), 0.5) {
		t.Errorf("menu progress = %v, want 0.5", menu.Progress())
	}
	if world.Progress() != 0 {
		t.Errorf("world progress = %v, want 0 while paused", world.Progress())
	}
}

func TestEventKindString(t *testing.T) {
	if EventBeginReached.String() != "begin" || EventEndReached.String() != "end" {
		t.Errorf("got %q/%q", EventBeginReached, EventEndReached)
	}
}
