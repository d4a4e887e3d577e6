package track

import (
	"math"

	"github.com/younwookim/flume/internal/domain/entity"
)

// Branch is one arm of a fork zone.
type Branch struct {
	// EntryAngle is the center of the cross-section sector (degrees) that
	// routes a rider into this branch.
	EntryAngle float64
	// Offset is the lateral separation of the branch centerline from the
	// main path at full blend.
	Offset float64
	// Radius is the branch pipe radius at full blend.
	Radius float64
}

// ForkZone is a stretch of course where the tube splits into branches and
// merges back. The zone records which branch the rider took; branch data
// stays owned by the course, riders keep only the registry index.
type ForkZone struct {
	Start  float64
	Length float64

	// RampIn and RampOut are the fractions of the zone spent blending
	// away from and back to the main path; between them blend holds 1.
	RampIn  float64
	RampOut float64

	Branches []Branch

	riderBranch int
}

// NewForkZone builds a zone with the standard blend ramps.
func NewForkZone(start, length float64, branches ...Branch) *ForkZone {
	return &ForkZone{
		Start:       start,
		Length:      length,
		RampIn:      0.35,
		RampOut:     0.35,
		Branches:    branches,
		riderBranch: -1,
	}
}

// Contains reports whether distance d lies inside the zone.
func (z *ForkZone) Contains(d float64) bool {
	return d >= z.Start && d < z.Start+z.Length
}

// Blend returns the branch interpolation weight at distance d: 0 at the
// zone edges, rising to 1 across RampIn, holding, then falling back
// across RampOut so the merge never snaps.
func (z *ForkZone) Blend(d float64) float64 {
	if z.Length <= 0 {
		return 0
	}
	u := (d - z.Start) / z.Length
	switch {
	case u <= 0 || u >= 1:
		return 0
	case u < z.RampIn:
		return u / z.RampIn
	case u > 1-z.RampOut:
		return (1 - u) / z.RampOut
	default:
		return 1
	}
}

// AssignRider picks the branch whose entry sector is nearest the given
// cross-section angle, records it, and returns its index. Ties go to the
// earlier branch.
func (z *ForkZone) AssignRider(angleDeg float64) int {
	best, bestDist := 0, math.MaxFloat64
	for i, b := range z.Branches {
		d := math.Abs(entity.ShortestDelta(angleDeg, b.EntryAngle))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	z.riderBranch = best
	return best
}

// RiderBranch returns the assigned branch index, -1 if unassigned.
func (z *ForkZone) RiderBranch() int {
	return z.riderBranch
}

// Release clears the branch assignment when the rider leaves the zone.
func (z *ForkZone) Release() {
	z.riderBranch = -1
}

// BranchFrame returns the branch's own frame derived from the main frame
// at the same distance: the center shifts radially toward the branch's
// entry sector and the pipe takes the branch radius. Orientation axes
// stay the main frame's. Out-of-range branches return main unchanged.
func (z *ForkZone) BranchFrame(branch int, main Frame) Frame {
	if branch < 0 || branch >= len(z.Branches) {
		return main
	}
	b := z.Branches[branch]
	out := main
	out.Center = main.Center.Add(main.Radial(b.EntryAngle).Mul(b.Offset))
	out.Radius = b.Radius
	return out
}

// Lerp blends main toward the branch frame by t: center and radius
// interpolate, orientation axes stay main's for stability.
func Lerp(main, branch Frame, t float64) Frame {
	out := main
	out.Center = main.Center.Add(branch.Center.Sub(main.Center).Mul(t))
	out.Radius = main.Radius + (branch.Radius-main.Radius)*t
	return out
}
