package entity

import "github.com/go-gl/mathgl/mgl64"

// Rider is the controllable entity riding the inside of the tube.
// All fields are mutated only by the owning controller's tick or by its
// explicit commands; nothing else writes here.
type Rider struct {
	// Locomotion. Distance is monotonically non-decreasing while riding
	// the surface; Angle is in degrees, [0,360), 270 = tube bottom.
	Distance      float64
	Angle         float64
	AngularVel    float64 // deg/s
	Speed         float64
	MaxSpeed      float64 // mutable: stun and boost scale it, then restore
	SmoothedSteer float64

	// Derived pose, recomputed every tick from distance+angle+frame.
	// Never authoritative.
	WorldPos mgl64.Vec3
	WorldRot mgl64.Quat

	Jump   JumpState
	Hit    HitState
	Combo  StompCombo
	Drop   DropState
	Fork   ForkAssignment
	Boost  BoostState
	Magnet MagnetState

	Score int
}

// NewRider creates a rider resting at the tube bottom with base speed.
func NewRider(baseSpeed, maxSpeed float64) *Rider {
	return &Rider{
		Angle:    BottomAngle,
		Speed:    baseSpeed,
		MaxSpeed: maxSpeed,
		WorldRot: mgl64.QuatIdent(),
		Hit:      HitState{Visible: true},
		Fork:     ForkAssignment{ID: -1, Branch: -1},
	}
}

// IsStunned reports whether steering input is currently ignored.
func (r *Rider) IsStunned() bool {
	return r.Hit.Phase == PhaseStunned
}

// IsInvincible reports whether the rider is in the post-hit grace phase.
func (r *Rider) IsInvincible() bool {
	return r.Hit.Phase == PhaseInvincible
}

// IsAirborne reports whether the jump arc is active.
func (r *Rider) IsAirborne() bool {
	return r.Jump.Active
}

// IsDropping reports whether the free-swimming drop mode is active.
func (r *Rider) IsDropping() bool {
	return r.Drop.Active
}

// JumpState tracks the active jump arc and in-air trick rotation.
// Reset to the zero value on landing.
type JumpState struct {
	Active   bool
	Timer    float64
	Duration float64
	Height   float64

	// Excursion is this tick's inward displacement off the surface.
	Excursion float64
	// ForwardScale is the squash/stretch factor along the forward axis,
	// 1 outside the stretch windows.
	ForwardScale float64

	TrickDir   TrickDirection
	TrickAngle float64 // accumulated degrees, monotonic while jumping
	TricksDone int
	// PendingCrossings holds 360-degree crossings not yet awarded; at most
	// one is consumed per tick.
	PendingCrossings int
}

// Progress returns the normalized arc time in [0,1].
func (j JumpState) Progress() float64 {
	if !j.Active || j.Duration <= 0 {
		return 0
	}
	t := j.Timer / j.Duration
	if t > 1 {
		return 1
	}
	return t
}

// HitState is the hit-reaction phase machine state.
type HitState struct {
	Phase    HitPhase
	Timer    float64
	Duration float64

	// RecoverFrom is the stunned speed the recovery phase eases away from.
	RecoverFrom float64
	// RecoverTo is the speed the recovery phase eases toward.
	RecoverTo float64

	// Flicker output for the invincible phase.
	Visible      bool
	FlickerClock float64
	GlitchFlip   bool
}

// Progress returns the normalized time through the current phase, 0 for
// PhaseNormal.
func (h HitState) Progress() float64 {
	if h.Phase == PhaseNormal || h.Duration <= 0 {
		return 0
	}
	p := h.Timer / h.Duration
	if p > 1 {
		return 1
	}
	return p
}

// StompCombo counts chained stomp bounces inside a timeout window.
type StompCombo struct {
	Count int
	Timer float64
}

// DropState is the free-swimming mode: a 2D offset inside a disk of
// radius MoveRadius on the cross-section plane.
type DropState struct {
	Active   bool
	Timer    float64
	Duration float64

	Speed      float64 // forward advancement before the plunge ramp
	MoveRadius float64
	MoveSpeed  float64

	ExitBoostMult float64
	ExitBoostDur  float64

	// Offset chases Target with inertial easing; both stay inside the
	// move radius.
	Offset mgl64.Vec2
	Target mgl64.Vec2

	BobClock float64
}

// Progress returns the normalized drop time in [0,1].
func (d DropState) Progress() float64 {
	if !d.Active || d.Duration <= 0 {
		return 0
	}
	p := d.Timer / d.Duration
	if p > 1 {
		return 1
	}
	return p
}

// ForkAssignment is a non-owning handle into the course's fork registry.
// Branch is -1 whenever the rider is not inside a fork zone.
type ForkAssignment struct {
	ID     int
	Branch int
}

// BoostState is the timed speed-boost modifier. Last write wins; the
// previous baseline is restored before a new one is captured.
type BoostState struct {
	Active       bool
	Remaining    float64
	Duration     float64
	Multiplier   float64
	BaselineMax  float64
	WarningFired bool
}

// Fraction returns the normalized time remaining in [0,1].
func (b BoostState) Fraction() float64 {
	if !b.Active || b.Duration <= 0 {
		return 0
	}
	f := b.Remaining / b.Duration
	if f < 0 {
		return 0
	}
	return f
}

// MagnetState is the timed collectible-magnet modifier.
type MagnetState struct {
	Active    bool
	Remaining float64
	Duration  float64
}
