package cli

import (
	"github.com/phanxgames/choreo"
)

// Sample is one factor applied to a named tween.
type Sample struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// stage is the built-in scene: an "intro" animation fading, sliding, and
// growing a panel, with every applied factor and settle event recorded.
type stage struct {
	intro *choreo.Animation

	opacity float64
	offset  float64
	size    float64

	samples []Sample
	events  []string
}

func newStage() *stage {
	s := &stage{}
	s.intro = choreo.NewAnimation("intro")

	fade := s.intro.AddTween("fade", 2, 0, nil)
	fade.Target = s.record("fade", &choreo.FloatTarget{Field: &s.opacity, From: 0, To: 1})

	slide := s.intro.AddTween("slide", 1, 3, nil)
	slide.Easing = choreo.EaseOut{Family: choreo.Quad}
	slide.Target = s.record("slide", &choreo.FloatTarget{Field: &s.offset, From: -100, To: 0})

	grow := s.intro.AddTween("grow", 4, 1, nil)
	grow.Target = s.record("grow", &choreo.FloatTarget{Field: &s.size, From: 0.5, To: 1})

	for _, tw := range []*choreo.Tween{fade, slide, grow} {
		s.watch(tw.Name, &tw.OnBeginStateSet, &tw.OnEndStateSet)
	}
	s.watch(s.intro.Name, &s.intro.OnBeginStateSet, &s.intro.OnEndStateSet)
	return s
}

func (s *stage) record(name string, target choreo.Target) choreo.Target {
	return choreo.Group{
		target,
		choreo.TargetFunc(func(f float64) {
			s.samples = append(s.samples, Sample{Name: name, Factor: f})
		}),
	}
}

func (s *stage) watch(name string, begin, end *choreo.Signal) {
	begin.Subscribe(func() { s.events = append(s.events, name+":begin") })
	end.Subscribe(func() { s.events = append(s.events, name+":end") })
}

// drain returns and clears what was recorded since the last call.
func (s *stage) drain() ([]Sample, []string) {
	samples, events := s.samples, s.events
	s.samples, s.events = nil, nil
	return samples, events
}
