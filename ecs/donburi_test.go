package ecs

import (
	"testing"

	"github.com/phanxgames/choreo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []choreo.SettleEvent
	SettleEventType.Subscribe(world, func(w donburi.World, e choreo.SettleEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(choreo.SettleEvent{Kind: choreo.EventEndReached, Name: "intro", Frame: 10})
	sink.EmitEvent(choreo.SettleEvent{Kind: choreo.EventBeginReached, Name: "intro", Frame: 20})

	// Events are queued; process them.
	SettleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Kind != choreo.EventEndReached || e.Name != "intro" || e.Frame != 10 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Kind != choreo.EventBeginReached || e.Frame != 20 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromScheduler(t *testing.T) {
	world := donburi.NewWorld()
	sched := choreo.NewScheduler("game")
	sched.SetEventSink(NewDonburiSink(world))

	tw := choreo.NewTween("fade", 0.5, nil)
	tw.SetEndState(0, 0.5)
	if err := sched.Add(tw); err != nil {
		t.Fatal(err)
	}

	var names []string
	SettleEventType.Subscribe(world, func(w donburi.World, e choreo.SettleEvent) {
		names = append(names, e.Name+":"+e.Kind.String())
	})

	sched.Update(0.5)
	events.ProcessAllEvents(world)

	if len(names) != 1 || names[0] != "fade:end" {
		t.Errorf("names = %v, want [fade:end]", names)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	SettleEventType.Subscribe(world, func(w donburi.World, e choreo.SettleEvent) {
		count1++
	})
	SettleEventType.Subscribe(world, func(w donburi.World, e choreo.SettleEvent) {
		count2++
	})

	sink.EmitEvent(choreo.SettleEvent{Kind: choreo.EventEndReached})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestTick_AdvancesUnownedItems(t *testing.T) {
	world := donburi.NewWorld()

	free := choreo.NewTween("free", 1, nil)
	free.SetEndState(0, 1)
	Attach(world, free)

	sched := choreo.NewScheduler("game")
	taken := choreo.NewTween("taken", 1, nil)
	taken.SetEndState(0, 1)
	if err := sched.Add(taken); err != nil {
		t.Fatal(err)
	}
	Attach(world, taken)

	Tick(world, choreo.FrameOf(0.5))

	if free.Progress() != 0.5 {
		t.Errorf("free progress = %v, want 0.5", free.Progress())
	}
	if taken.Progress() != 0 {
		t.Errorf("scheduled item was ticked by the ECS: progress = %v", taken.Progress())
	}
}
