package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/domain/track"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// DropParams is everything a drop gate hands EnterDrop.
type DropParams struct {
	Duration      float64
	Speed         float64
	MoveRadius    float64
	MoveSpeed     float64
	ExitBoostMult float64
	ExitBoostDur  float64
}

// DropSystem runs the free-swimming mode: 2D inertial movement inside a
// disk on the cross-section plane, a quadratic plunge ramp over the
// final stretch, and the flush exit back onto the wall.
type DropSystem struct {
	cfg    *config.DropConfig
	loco   *config.LocomotionConfig
	fb     config.FeedbackConfig
	course track.Provider
	hooks  feedback.Hooks

	// OnExitBoost fires the flush speed boost when the drop ends.
	OnExitBoost func(mult, dur float64)
}

// NewDropSystem creates the drop mode system.
func NewDropSystem(cfg *config.DropConfig, loco *config.LocomotionConfig, fb config.FeedbackConfig, course track.Provider, hooks feedback.Hooks) *DropSystem {
	return &DropSystem{cfg: cfg, loco: loco, fb: fb, course: course, hooks: hooks}
}

// Enter starts the drop. No-op while airborne or already dropping.
func (s *DropSystem) Enter(r *entity.Rider, p DropParams) {
	if r.IsAirborne() || r.IsDropping() || p.Duration <= 0 {
		return
	}
	r.AngularVel = 0
	r.Drop = entity.DropState{
		Active:        true,
		Duration:      p.Duration,
		Speed:         p.Speed,
		MoveRadius:    p.MoveRadius,
		MoveSpeed:     p.MoveSpeed,
		ExitBoostMult: p.ExitBoostMult,
		ExitBoostDur:  p.ExitBoostDur,
	}
	s.hooks.Screen.SetUnderwater(true)
	s.hooks.Particles.Start("bubbles")
	s.hooks.Audio.Play("splash")
}

// Update advances the drop one tick: offset chase, forward ramp, pose,
// and the exit at the end of the duration.
func (s *DropSystem) Update(r *entity.Rider, in InputState, dt float64) {
	d := &r.Drop
	if !d.Active {
		return
	}
	d.Timer += dt

	input := mgl64.Vec2{in.DropX, in.DropY}
	idle := input.Len() < s.cfg.InputDeadzone

	if idle {
		// Ambient current drifts the target back toward the center.
		if l := d.Target.Len(); l > 0 {
			shrink := s.cfg.RecenterRate * dt
			if shrink > l {
				shrink = l
			}
			d.Target = d.Target.Sub(d.Target.Mul(shrink / l))
		}
	} else {
		d.Target = clampToDisk(d.Target.Add(input.Mul(d.MoveSpeed*dt)), d.MoveRadius)
	}

	// Inertial chase, never a snap; the clamp keeps the disk invariant
	// even against a shoved target.
	d.Offset = clampToDisk(d.Offset.Add(d.Target.Sub(d.Offset).Mul(easeStep(s.cfg.OffsetEase, dt))), d.MoveRadius)

	speed := s.forwardSpeed(d)
	r.Speed = speed
	r.Distance += speed * dt
	s.hooks.Camera.Rumble(s.plungeRatio(d))

	s.composePose(r, input, idle, dt)

	if d.Timer >= d.Duration {
		s.exit(r)
	}
}

// forwardSpeed is the drop's advancement rule: flat until the plunge
// starts, then a quadratic ramp up to PlungeMaxMult times the base.
func (s *DropSystem) forwardSpeed(d *entity.DropState) float64 {
	u := s.plungeRatio(d)
	return d.Speed * (1 + (s.cfg.PlungeMaxMult-1)*u*u)
}

// plungeRatio is 0 before the plunge and rises linearly to 1 at the end.
func (s *DropSystem) plungeRatio(d *entity.DropState) float64 {
	p := d.Progress()
	if p <= s.cfg.PlungeStart {
		return 0
	}
	return (p - s.cfg.PlungeStart) / (1 - s.cfg.PlungeStart)
}

// composePose floats the rider at the 2D offset inside the tube, tilting
// gently with input and bobbing when idle. The blend speeds up through
// the plunge.
func (s *DropSystem) composePose(r *entity.Rider, input mgl64.Vec2, idle bool, dt float64) {
	frame := s.course.FrameAt(r.Distance)
	d := &r.Drop

	targetPos := frame.Center.
		Add(frame.Right.Mul(d.Offset.X())).
		Add(frame.Up.Mul(d.Offset.Y()))

	pitch := input.Y() * s.cfg.TiltMax
	roll := -input.X() * s.cfg.TiltMax
	if idle {
		d.BobClock += dt
		pitch += s.cfg.BobAmplitude * math.Sin(2*math.Pi*s.cfg.BobFrequency*d.BobClock)
	}

	targetRot := mgl64.QuatLookAtV(mgl64.Vec3{}, frame.Forward, frame.Up).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(pitch), mgl64.Vec3{1, 0, 0})).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(roll), mgl64.Vec3{0, 0, 1}))

	rate := s.loco.PoseLerpRate * (1 + s.cfg.PlungePoseBoost*s.plungeRatio(d))
	k := easeStep(rate, dt)
	r.WorldPos = r.WorldPos.Add(targetPos.Sub(r.WorldPos).Mul(k))
	r.WorldRot = mgl64.QuatSlerp(r.WorldRot, targetRot.Normalize(), k)
}

// exit flushes the rider back onto the tube floor with a strong boost.
func (s *DropSystem) exit(r *entity.Rider) {
	mult, dur := r.Drop.ExitBoostMult, r.Drop.ExitBoostDur

	r.Drop = entity.DropState{}
	r.Angle = entity.BottomAngle
	r.AngularVel = 0
	r.Speed = s.loco.BaseSpeed

	s.hooks.Screen.SetUnderwater(false)
	s.hooks.Camera.Rumble(0)
	s.hooks.Camera.Shake(s.fb.FlushShake)
	s.hooks.Haptics.Pulse(feedback.Heavy)
	s.hooks.Particles.Stop("bubbles")
	s.hooks.Particles.Burst("flush_spray")
	s.hooks.Audio.Play("flush")

	if s.OnExitBoost != nil {
		s.OnExitBoost(mult, dur)
	}
}
