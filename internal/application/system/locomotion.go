// Package system implements the per-tick simulation systems the rider
// controller composes: surface locomotion, jump arcs, hit reaction,
// stomp combos, drop mode, fork tracking, and timed modifiers.
package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/domain/track"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// LocomotionSystem integrates the rider's forward speed and angular
// position around the tube cross-section, then composes the world pose
// from the sampled path frame.
type LocomotionSystem struct {
	cfg    *config.LocomotionConfig
	course track.Provider
	forks  *ForkTracker
	hooks  feedback.Hooks
}

// NewLocomotionSystem creates a locomotion system riding the given course.
func NewLocomotionSystem(cfg *config.LocomotionConfig, course track.Provider, hooks feedback.Hooks) *LocomotionSystem {
	return &LocomotionSystem{
		cfg:    cfg,
		course: course,
		forks:  NewForkTracker(course),
		hooks:  hooks,
	}
}

// Forks exposes the fork tracker for telemetry and tests.
func (s *LocomotionSystem) Forks() *ForkTracker {
	return s.forks
}

// Integrate advances speed, distance, and cross-section angle.
// Pose composition happens separately in ComposePose so the jump system
// can set this tick's excursion in between.
func (s *LocomotionSystem) Integrate(r *entity.Rider, in InputState, dt float64) {
	steer := in.Steer
	if r.IsStunned() {
		steer = 0
	}

	// Low-pass the raw steer so one-frame flicks cannot snap the rig.
	r.SmoothedSteer += (steer - r.SmoothedSteer) * easeStep(s.cfg.SteerSmoothing, dt)

	s.integrateSpeed(r, in, dt)

	r.Distance += r.Speed * dt

	s.integrateAngular(r, dt)
	s.applyGravityPull(r, dt)

	r.Angle = entity.NormalizeAngle(r.Angle + r.AngularVel*dt)
}

// integrateSpeed eases speed toward its target and applies slope bias.
// The hit system owns speed during stun and recovery, so those phases
// are skipped here.
func (s *LocomotionSystem) integrateSpeed(r *entity.Rider, in InputState, dt float64) {
	if r.Hit.Phase == entity.PhaseStunned || r.Hit.Phase == entity.PhaseRecovering {
		return
	}

	target := s.cfg.BaseSpeed
	switch {
	case in.Throttle > 0:
		target += (r.MaxSpeed - s.cfg.BaseSpeed) * in.Throttle
	case in.Throttle < 0:
		target += (s.cfg.BaseSpeed - s.cfg.MinSpeed) * in.Throttle
	}

	step := s.cfg.Acceleration * dt
	diff := target - r.Speed
	if math.Abs(diff) <= step {
		r.Speed = target
	} else if diff > 0 {
		r.Speed += step
	} else {
		r.Speed -= step
	}

	// Uphill drags, downhill pushes: the tangent's vertical component is
	// positive when the tube climbs.
	slope := s.course.FrameAt(r.Distance).Forward.Dot(worldUp)
	r.Speed -= slope * s.cfg.SlopeGain * dt

	if r.Speed > r.MaxSpeed {
		r.Speed = r.MaxSpeed
	}
	if min := math.Min(s.cfg.MinSpeed, r.MaxSpeed); r.Speed < min {
		r.Speed = min
	}
}

// integrateAngular eases angular velocity toward the steer target, with
// a reduced ease rate (drift) when the input fights the current spin.
func (s *LocomotionSystem) integrateAngular(r *entity.Rider, dt float64) {
	if math.Abs(r.SmoothedSteer) < s.cfg.SteerDeadzone {
		r.AngularVel -= r.AngularVel * easeStep(s.cfg.NeutralDecay, dt)
		return
	}

	target := r.SmoothedSteer * s.cfg.SteerGain
	rate := s.cfg.SteerEase
	opposing := target*r.AngularVel < 0
	if opposing && math.Abs(r.AngularVel) > s.cfg.DriftThreshold {
		rate *= s.cfg.DriftEaseScale
	}
	r.AngularVel += (target - r.AngularVel) * easeStep(rate, dt)
}

// applyGravityPull torques the rider toward the tube bottom. The pull
// scales with the signed shortest delta to 270 and strengthens away
// from the bottom; near the bottom with idle input the angular velocity
// is damped so the rider settles instead of oscillating.
func (s *LocomotionSystem) applyGravityPull(r *entity.Rider, dt float64) {
	delta := entity.ShortestDelta(r.Angle, entity.BottomAngle)
	norm := delta / 180
	r.AngularVel += s.cfg.GravityGain * norm * (1 + s.cfg.GravityCurve*math.Abs(norm)) * dt

	if math.Abs(delta) < s.cfg.SettleAngle && math.Abs(r.SmoothedSteer) < s.cfg.SteerDeadzone {
		r.AngularVel -= r.AngularVel * easeStep(s.cfg.SettleDamping, dt)
	}
}

// ComposePose samples the (fork-blended) frame, places the rider on the
// wall at the current angle minus this tick's jump excursion, and blends
// the world pose toward the target instead of snapping.
func (s *LocomotionSystem) ComposePose(r *entity.Rider, dt float64) {
	frame := s.forks.EffectiveFrame(r)

	radius := frame.Radius
	if r.Jump.Active {
		radius -= r.Jump.Excursion
	}
	targetPos := frame.PointAtRadius(r.Angle, radius)
	targetRot := surfaceOrientation(frame, r.Angle)

	k := easeStep(s.cfg.PoseLerpRate, dt)
	r.WorldPos = r.WorldPos.Add(targetPos.Sub(r.WorldPos).Mul(k))
	r.WorldRot = mgl64.QuatSlerp(r.WorldRot, targetRot, k)

	s.hooks.Animator.SetLocomotion(r.Speed/s.cfg.MaxSpeed, r.SmoothedSteer)
}

// SnapPose places the rider exactly on the composed pose, used at spawn
// so the first frames do not blend in from the origin.
func (s *LocomotionSystem) SnapPose(r *entity.Rider) {
	frame := s.forks.EffectiveFrame(r)
	r.WorldPos = frame.SurfacePoint(r.Angle)
	r.WorldRot = surfaceOrientation(frame, r.Angle)
}

// surfaceOrientation faces the path tangent and rolls so local up points
// from the wall toward the tube center.
func surfaceOrientation(frame track.Frame, angleDeg float64) mgl64.Quat {
	up := frame.Radial(angleDeg).Mul(-1)
	if up.Len() < 1e-9 {
		up = frame.Up
	}
	return mgl64.QuatLookAtV(mgl64.Vec3{}, frame.Forward, up)
}

// easeStep converts a per-second ease rate into this tick's blend
// fraction, clamped so large dt steps never overshoot.
func easeStep(rate, dt float64) float64 {
	k := rate * dt
	if k > 1 {
		return 1
	}
	if k < 0 {
		return 0
	}
	return k
}
