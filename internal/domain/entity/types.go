package entity

import "math"

// BottomAngle is the cross-section angle of the tube floor in degrees.
// Angles are measured in the frame's right/up plane, so 270 points
// straight down from the tube center.
const BottomAngle = 270.0

// HitPhase is the rider's post-collision reaction phase.
type HitPhase int

const (
	PhaseNormal HitPhase = iota
	PhaseStunned
	PhaseRecovering
	PhaseInvincible
)

// String returns the phase name for HUD and logs.
func (p HitPhase) String() string {
	switch p {
	case PhaseNormal:
		return "normal"
	case PhaseStunned:
		return "stunned"
	case PhaseRecovering:
		return "recovering"
	case PhaseInvincible:
		return "invincible"
	default:
		return "unknown"
	}
}

// TrickDirection is the in-air rotation direction latched for one jump.
type TrickDirection int

const (
	TrickNone TrickDirection = iota
	TrickForward
	TrickBackward
)

// String returns the trick direction name.
func (d TrickDirection) String() string {
	switch d {
	case TrickForward:
		return "forward"
	case TrickBackward:
		return "backward"
	default:
		return "none"
	}
}

// NormalizeAngle wraps an angle in degrees into [0,360).
func NormalizeAngle(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// ShortestDelta returns the signed shortest rotation from one angle to
// another in degrees. The result is always in (-180,180]; positive means
// increasing angle is the short way around.
func ShortestDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
