package choreo

import (
	"errors"
	"reflect"
	"testing"
)

func TestPreviewManualStep(t *testing.T) {
	p := NewPreview(60)
	tw := NewTween("t", 1, nil)
	tw.SetEndState(0, 1)
	if err := p.Attach("t", tw); err != nil {
		t.Fatal(err)
	}

	p.Step(0.25)
	if p.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", p.Pending())
	}
	p.Update()
	if !near(tw.Progress(), 0.25) {
		t.Errorf("progress = %v, want 0.25", tw.Progress())
	}
	if p.Pending() != 0 {
		t.Errorf("Pending = %d after Update, want 0", p.Pending())
	}
}

func TestPreviewFixedCadence(t *testing.T) {
	p := NewPreview(4)
	tw := NewTween("t", 1, nil)
	tw.SetEndState(0, 1)
	if err := p.Attach("t", tw); err != nil {
		t.Fatal(err)
	}
	if n := p.Run(2); n != 2 {
		t.Fatalf("Run = %d, want 2", n)
	}
	if !near(tw.Progress(), 0.5) {
		t.Errorf("progress = %v, want 0.5", tw.Progress())
	}
}

func TestPreviewStepFramesDefaultsToCadence(t *testing.T) {
	p := NewPreview(10)
	p.StepFrames(3, 0)
	if p.Pending() != 3 {
		t.Fatalf("Pending = %d, want 3", p.Pending())
	}
	if !near(p.queue[0], 0.1) {
		t.Errorf("queued dt = %v, want 0.1", p.queue[0])
	}
}

func TestPreviewAndProductionAreExclusive(t *testing.T) {
	prod := NewScheduler("production")
	p := NewPreview(60)
	tw := NewTween("t", 1, nil)

	if err := prod.Add(tw); err != nil {
		t.Fatal(err)
	}
	if err := p.Attach("t", tw); !errors.Is(err, ErrScheduled) {
		t.Fatalf("Attach err = %v, want ErrScheduled", err)
	}

	prod.Remove(tw)
	if err := p.Attach("t", tw); err != nil {
		t.Fatal(err)
	}
	if err := prod.Add(tw); !errors.Is(err, ErrScheduled) {
		t.Fatalf("production Add err = %v, want ErrScheduled", err)
	}

	// Ticking production does not move a previewed tween.
	tw.SetEndState(0, 1)
	prod.Update(0.5)
	if tw.Progress() != 0 {
		t.Errorf("production ticked a previewed tween: progress = %v", tw.Progress())
	}

	if !p.Detach("t") {
		t.Fatal("Detach returned false")
	}
	if err := prod.Add(tw); err != nil {
		t.Errorf("production Add after Detach: %v", err)
	}
}

func TestPreviewAttachDuplicateName(t *testing.T) {
	p := NewPreview(60)
	if err := p.Attach("x", NewTween("a", 1, nil)); err != nil {
		t.Fatal(err)
	}
	if err := p.Attach("x", NewTween("b", 1, nil)); err == nil {
		t.Error("duplicate name should fail")
	}
}

func TestPreviewNamesAndClose(t *testing.T) {
	p := NewPreview(0)
	if p.tps != DefaultPreviewTPS {
		t.Errorf("tps = %d, want default", p.tps)
	}
	a := NewTween("a", 1, nil)
	b := NewTween("b", 1, nil)
	_ = p.Attach("a", a)
	_ = p.Attach("b", b)
	if got := p.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names = %v", got)
	}
	if _, ok := p.Lookup("b"); !ok {
		t.Error("Lookup(b) failed")
	}

	p.Step(1)
	p.Close()
	if len(p.Names()) != 0 || p.Pending() != 0 {
		t.Error("Close left items or queued steps behind")
	}
	if a.Scheduler() != nil || b.Scheduler() != nil {
		t.Error("Close did not release ownership")
	}
	if p.Detach("a") {
		t.Error("Detach after Close should report false")
	}
}

func TestNewPreviewFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeScale = 0.5
	cfg.PreviewTPS = 2
	p := NewPreviewFromConfig(cfg)

	tw := NewTween("t", 1, nil)
	tw.SetEndState(0, 1)
	if err := p.Attach("t", tw); err != nil {
		t.Fatal(err)
	}
	p.Update()
	if !near(tw.Progress(), 0.25) {
		t.Errorf("progress = %v, want 0.25 (half of a 0.5s frame)", tw.Progress())
	}
}
