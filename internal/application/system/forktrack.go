package system

import (
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/track"
)

// ForkTracker keeps the rider's sticky branch assignment while a fork
// zone is traversed and produces the blended frame the pose uses. The
// rider holds only the fork's registry index; branch data stays owned by
// the course.
type ForkTracker struct {
	course track.Provider
}

// NewForkTracker creates a tracker querying the given course.
func NewForkTracker(course track.Provider) *ForkTracker {
	return &ForkTracker{course: course}
}

// EffectiveFrame returns the frame the pose should use at the rider's
// distance: the main frame outside forks, or the main frame blended
// toward the assigned branch inside one. Entry assigns a branch from the
// rider's current angle; leaving the zone clears the assignment.
func (t *ForkTracker) EffectiveFrame(r *entity.Rider) track.Frame {
	main := t.course.FrameAt(r.Distance)

	zone, id := t.course.ForkAt(r.Distance)
	if zone == nil {
		t.release(r)
		return main
	}

	if r.Fork.ID != id {
		// Entering a new fork instance: pick the branch whose entry
		// sector matches where the rider sits right now.
		t.release(r)
		r.Fork.ID = id
		r.Fork.Branch = zone.AssignRider(r.Angle)
	}

	branch := zone.BranchFrame(r.Fork.Branch, main)
	return track.Lerp(main, branch, zone.Blend(r.Distance))
}

// release clears a stale assignment, both on the rider and in the zone.
func (t *ForkTracker) release(r *entity.Rider) {
	if r.Fork.ID < 0 {
		return
	}
	if zone := t.course.Fork(r.Fork.ID); zone != nil {
		zone.Release()
	}
	r.Fork.ID = -1
	r.Fork.Branch = -1
}
