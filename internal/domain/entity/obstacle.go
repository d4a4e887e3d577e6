package entity

import "image/color"

// ObstacleKind tags the hazard variants placed along a course.
type ObstacleKind int

const (
	ObstacleBarrier ObstacleKind = iota
	ObstacleGoo
	ObstacleSpikes
)

// Obstacle is the minimal surface the reaction core reads from a hit
// source: a flash tint and whether the impact splatters. The core never
// learns concrete hazard types.
type Obstacle interface {
	HitFlash() color.RGBA
	Splatters() bool
}

// Hazard is a course obstacle pinned to a distance and cross-section
// angle. It implements Obstacle through its kind tag.
type Hazard struct {
	Kind     ObstacleKind
	Distance float64
	Angle    float64
}

// HitFlash returns the screen-flash tint for this hazard kind.
func (h Hazard) HitFlash() color.RGBA {
	switch h.Kind {
	case ObstacleGoo:
		return color.RGBA{R: 0x58, G: 0xc4, B: 0x32, A: 0x90}
	case ObstacleSpikes:
		return color.RGBA{R: 0xe0, G: 0x30, B: 0x30, A: 0xa0}
	default:
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	}
}

// Splatters reports whether hitting this hazard sprays particles.
func (h Hazard) Splatters() bool {
	return h.Kind == ObstacleGoo
}
