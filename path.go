package choreo

// Spline is a chain of cubic Bezier segments sharing end points: segment i
// uses Points[3i : 3i+4].
type Spline struct {
	Points []Vec2
}

// splineLengthSamples is the polyline resolution used by Length.
const splineLengthSamples = 32

// Segments returns the number of complete cubic segments.
func (s *Spline) Segments() int {
	if len(s.Points) < 4 {
		return 0
	}
	return (len(s.Points) - 1) / 3
}

func (s *Spline) segment(i int) (p0, p1, p2, p3 Vec2) {
	if n := s.Segments(); i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	k := i * 3
	return s.Points[k], s.Points[k+1], s.Points[k+2], s.Points[k+3]
}

// Point returns the position at t on segment i. t is not clamped.
func (s *Spline) Point(i int, t float64) Vec2 {
	if s.Segments() == 0 {
		return Vec2{}
	}
	p0, p1, p2, p3 := s.segment(i)
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t)).
		Add(p3.Scale(t * t * t))
}

// Direction returns the unit tangent at t on segment i.
func (s *Spline) Direction(i int, t float64) Vec2 {
	if s.Segments() == 0 {
		return Vec2{}
	}
	p0, p1, p2, p3 := s.segment(i)
	u := 1 - t
	d := p1.Sub(p0).Scale(3 * u * u).
		Add(p2.Sub(p1).Scale(6 * u * t)).
		Add(p3.Sub(p2).Scale(3 * t * t))
	return d.Normalize()
}

// Length estimates the arc length of segment i.
func (s *Spline) Length(i int) float64 {
	if s.Segments() == 0 {
		return 0
	}
	total := 0.0
	prev := s.Point(i, 0)
	for k := 1; k <= splineLengthSamples; k++ {
		p := s.Point(i, float64(k)/splineLengthSamples)
		total += p.Sub(prev).Len()
		prev = p
	}
	return total
}

// FollowMode selects which axis of a SplineTarget's heading tracks the path.
type FollowMode uint8

const (
	FollowForward  FollowMode = iota // heading points along the path
	FollowBackward                   // heading points against the path
	FollowLeft                       // heading is the path rotated 90° counter-clockwise
	FollowRight                      // heading is the path rotated 90° clockwise
)

// SplineTarget moves a position along one segment of a Spline. When Heading
// is set it also turns toward the path direction, smoothed by FollowDamping
// until the last 5% of the segment where it snaps.
type SplineTarget struct {
	Spline        *Spline
	Segment       int
	Position      *Vec2
	Heading       *Vec2
	Follow        FollowMode
	FollowDamping float64
}

// NewSplineTarget returns a target writing to pos with a damping of 0.3.
func NewSplineTarget(s *Spline, pos *Vec2) *SplineTarget {
	return &SplineTarget{Spline: s, Position: pos, FollowDamping: 0.3}
}

// ApplyFactor writes the point at factor on the current segment. It is a
// no-op without a spline or position.
func (t *SplineTarget) ApplyFactor(factor float64) {
	if t.Spline == nil || t.Position == nil || t.Spline.Segments() == 0 {
		return
	}
	*t.Position = t.Spline.Point(t.Segment, factor)
	if t.Heading == nil {
		return
	}

	dir := t.Spline.Direction(t.Segment, factor)
	switch t.Follow {
	case FollowBackward:
		dir = dir.Scale(-1)
	case FollowLeft:
		dir = Vec2{dir.Y, -dir.X}
	case FollowRight:
		dir = Vec2{-dir.Y, dir.X}
	}
	damping := t.FollowDamping
	if factor >= 0.95 {
		damping = 1
	}
	*t.Heading = t.Heading.Lerp(dir, damping).Normalize()
}

// MoveBetween drives tw along the spline from point index from to point index
// to at speed units per second, one segment per step, and calls done once the
// last segment settles. tw should use t as its Target.
func (t *SplineTarget) MoveBetween(tw *Tween, from, to int, speed float64, done func()) *Chain {
	c := NewChain(tw, SplinePath(t, from, to, speed))
	c.Start(done)
	return c
}
