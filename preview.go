package choreo

import "fmt"

// Preview drives tweens and animations at author time, outside the
// production scheduler. It owns its own Scheduler, so an item attached here
// cannot be ticked by production at the same time, and vice versa.
//
// Each Update consumes one queued manual step if there is one, otherwise it
// advances by the fixed preview cadence.
type Preview struct {
	sched  *Scheduler
	clock  *Clock
	tps    int
	items  map[string]Child
	order  []string
	queue  []float64
	script *Script
}

// NewPreview returns a preview ticking at tps frames per second. A
// non-positive tps falls back to DefaultPreviewTPS.
func NewPreview(tps int) *Preview {
	if tps <= 0 {
		tps = DefaultPreviewTPS
	}
	return &Preview{
		sched: NewScheduler("preview"),
		clock: NewClock(),
		tps:   tps,
		items: make(map[string]Child),
	}
}

// NewPreviewFromConfig returns a preview using cfg's cadence, time scale, and
// debug flag.
func NewPreviewFromConfig(cfg Config) *Preview {
	p := NewPreview(cfg.PreviewTPS)
	p.clock = cfg.Clock()
	p.sched.SetDebugMode(cfg.Debug)
	return p
}

// Scheduler returns the preview's scheduler, for sinks and loggers.
func (p *Preview) Scheduler() *Scheduler { return p.sched }

// Clock returns the preview clock.
func (p *Preview) Clock() *Clock { return p.clock }

// Attach registers item under name. It fails with ErrScheduled if another
// scheduler (typically production) owns the item.
func (p *Preview) Attach(name string, item Child) error {
	if _, dup := p.items[name]; dup {
		return fmt.Errorf("attach %q: name already in use", name)
	}
	if err := p.sched.Add(item); err != nil {
		return fmt.Errorf("attach %q: %w", name, err)
	}
	p.items[name] = item
	p.order = append(p.order, name)
	return nil
}

// Detach releases the item registered under name so production may claim
// it. It reports whether name was attached.
func (p *Preview) Detach(name string) bool {
	item, ok := p.items[name]
	if !ok {
		return false
	}
	p.sched.Remove(item)
	delete(p.items, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// Close detaches every item.
func (p *Preview) Close() {
	for len(p.order) > 0 {
		p.Detach(p.order[0])
	}
	p.queue = p.queue[:0]
}

// Lookup returns the item attached under name.
func (p *Preview) Lookup(name string) (Child, bool) {
	c, ok := p.items[name]
	return c, ok
}

// Names returns the attached names in attach order.
func (p *Preview) Names() []string {
	return append([]string(nil), p.order...)
}

// Step queues one manual step of dt seconds. It is consumed on the next
// Update.
func (p *Preview) Step(dt float64) {
	p.queue = append(p.queue, dt)
}

// StepFrames queues n manual steps of dt seconds each. A non-positive dt
// uses the preview cadence.
func (p *Preview) StepFrames(n int, dt float64) {
	if dt <= 0 {
		dt = 1 / float64(p.tps)
	}
	for i := 0; i < n; i++ {
		p.Step(dt)
	}
}

// Pending returns the number of queued manual steps.
func (p *Preview) Pending() int { return len(p.queue) }

// SetScript attaches a script; it advances once per Update.
func (p *Preview) SetScript(s *Script) {
	p.script = s
}

// Update advances the script, then ticks every attached item by one frame:
// a queued manual step if there is one, otherwise the preview cadence. While
// a script executes an instantaneous action no time passes.
func (p *Preview) Update() {
	advance := true
	if p.script != nil {
		advance = p.script.step(p)
	}

	if len(p.queue) > 0 {
		dt := p.queue[0]
		copy(p.queue, p.queue[1:])
		p.queue = p.queue[:len(p.queue)-1]
		p.sched.Tick(p.clock.Frame(dt))
		return
	}
	if advance {
		p.sched.Tick(p.clock.FixedFrame(p.tps))
	}
}

// Run calls Update until the script finishes or maxFrames frames have run,
// and returns the number of frames run. Without a script it runs maxFrames.
func (p *Preview) Run(maxFrames int) int {
	n := 0
	for n < maxFrames {
		if p.script != nil && p.script.Done() && len(p.queue) == 0 {
			break
		}
		p.Update()
		n++
	}
	return n
}
