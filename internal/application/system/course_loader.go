package system

import (
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/track"
	"github.com/younwookim/flume/internal/ecs"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// coinInset is how far off the wall coins float, so the rider's marker
// passes through them.
const coinInset = 0.6

// Gate is a mode trigger placed on the course; the scene fires the
// matching controller command when the rider's distance crosses it.
type Gate struct {
	Type      string // boost, magnet, drop
	Distance  float64
	Triggered bool
}

// BuildCourse turns a validated course config into the analytic track
// with its fork zones registered.
func BuildCourse(cfg *config.CourseConfig) *track.Course {
	course := track.NewCourse(track.CourseParams{
		Length:      cfg.Length,
		Radius:      cfg.Radius,
		WeaveAmp:    cfg.Weave.Amplitude,
		WeavePeriod: cfg.Weave.Period,
		DipAmp:      cfg.Dip.Amplitude,
		DipPeriod:   cfg.Dip.Period,
	})

	for _, f := range cfg.Forks {
		branches := make([]track.Branch, 0, len(f.Branches))
		for _, b := range f.Branches {
			branches = append(branches, track.Branch{
				EntryAngle: b.EntryAngle,
				Offset:     b.Offset,
				Radius:     b.Radius,
			})
		}
		course.AddFork(track.NewForkZone(f.Start, f.Length, branches...))
	}

	return course
}

// PopulateWorld places the config's coins and hazards into the
// collectible world, resolving distance+angle placements to world
// positions on the course.
func PopulateWorld(cfg *config.CourseConfig, course *track.Course, w *ecs.World) {
	for _, c := range cfg.Coins {
		frame := course.FrameAt(c.Distance)
		pos := frame.PointAtRadius(c.Angle, frame.Radius-coinInset)
		w.AddCoin(entity.NewCoin(pos))
	}
	for _, h := range cfg.Hazards {
		w.AddHazard(entity.Hazard{
			Kind:     hazardKind(h.Type),
			Distance: h.Distance,
			Angle:    h.Angle,
		})
	}
}

// Gates extracts the ordered mode triggers from the course config.
func Gates(cfg *config.CourseConfig) []Gate {
	gates := make([]Gate, 0, len(cfg.Gates))
	for _, g := range cfg.Gates {
		gates = append(gates, Gate{Type: g.Type, Distance: g.Distance})
	}
	return gates
}

func hazardKind(s string) entity.ObstacleKind {
	switch s {
	case "goo":
		return entity.ObstacleGoo
	case "spikes":
		return entity.ObstacleSpikes
	default:
		return entity.ObstacleBarrier
	}
}
