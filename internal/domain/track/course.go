package track

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// worldUp is the global up direction frames are built against.
var worldUp = mgl64.Vec3{0, 1, 0}

// Course is an analytic tube: the centerline weaves laterally and dips
// vertically as smooth sinusoids of distance, so frames (and the slope
// the locomotion core reads) are continuous everywhere.
type Course struct {
	Length float64
	Radius float64

	// Lateral weave (x axis) and vertical undulation (y axis).
	WeaveAmp    float64
	WeavePeriod float64
	DipAmp      float64
	DipPeriod   float64

	forks []*ForkZone
}

// CourseParams configures NewCourse. Zero periods disable the
// corresponding undulation.
type CourseParams struct {
	Length      float64
	Radius      float64
	WeaveAmp    float64
	WeavePeriod float64
	DipAmp      float64
	DipPeriod   float64
}

// NewCourse builds a course from params.
func NewCourse(p CourseParams) *Course {
	return &Course{
		Length:      p.Length,
		Radius:      p.Radius,
		WeaveAmp:    p.WeaveAmp,
		WeavePeriod: p.WeavePeriod,
		DipAmp:      p.DipAmp,
		DipPeriod:   p.DipPeriod,
	}
}

// centerAt returns the centerline point at distance d.
func (c *Course) centerAt(d float64) mgl64.Vec3 {
	x, y := 0.0, 0.0
	if c.WeavePeriod > 0 {
		x = c.WeaveAmp * math.Sin(2*math.Pi*d/c.WeavePeriod)
	}
	if c.DipPeriod > 0 {
		y = c.DipAmp * math.Sin(2*math.Pi*d/c.DipPeriod)
	}
	return mgl64.Vec3{x, y, d}
}

// tangentAt returns the unnormalized centerline derivative at distance d.
func (c *Course) tangentAt(d float64) mgl64.Vec3 {
	dx, dy := 0.0, 0.0
	if c.WeavePeriod > 0 {
		k := 2 * math.Pi / c.WeavePeriod
		dx = c.WeaveAmp * k * math.Cos(k*d)
	}
	if c.DipPeriod > 0 {
		k := 2 * math.Pi / c.DipPeriod
		dy = c.DipAmp * k * math.Cos(k*d)
	}
	return mgl64.Vec3{dx, dy, 1}
}

// FrameAt samples the main path frame at distance d. Distances are
// clamped to [0, Length] so queries past the end stay stable.
func (c *Course) FrameAt(d float64) Frame {
	if d < 0 {
		d = 0
	}
	if c.Length > 0 && d > c.Length {
		d = c.Length
	}

	forward := c.tangentAt(d).Normalize()

	// Right-handed basis against world up. The tangent never goes
	// vertical for sane weave/dip amplitudes, but guard the degenerate
	// case anyway.
	right := forward.Cross(worldUp)
	if right.Len() < 1e-9 {
		right = mgl64.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up := right.Cross(forward).Normalize()

	return Frame{
		Center:  c.centerAt(d),
		Forward: forward,
		Right:   right,
		Up:      up,
		Radius:  c.Radius,
	}
}

// AddFork registers a fork zone and returns its registry index.
func (c *Course) AddFork(z *ForkZone) int {
	c.forks = append(c.forks, z)
	return len(c.forks) - 1
}

// ForkAt returns the fork zone containing distance d, or (nil, -1).
func (c *Course) ForkAt(d float64) (*ForkZone, int) {
	for i, z := range c.forks {
		if z.Contains(d) {
			return z, i
		}
	}
	return nil, -1
}

// Fork resolves a registry index from a previous ForkAt call.
func (c *Course) Fork(id int) *ForkZone {
	if id < 0 || id >= len(c.forks) {
		return nil
	}
	return c.forks[id]
}
