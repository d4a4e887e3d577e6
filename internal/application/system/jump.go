package system

import (
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// JumpSystem runs the single active jump arc: a timed parabola pulling
// the rider inward off the wall, squash/stretch at both ends, and in-air
// trick rotation rewarded per completed 360.
type JumpSystem struct {
	cfg   *config.AirborneConfig
	fb    config.FeedbackConfig
	hooks feedback.Hooks

	// OnLandBoost fires when a trick landing earns a timed speed boost.
	OnLandBoost func(mult, dur float64)
}

// NewJumpSystem creates the jump system.
func NewJumpSystem(cfg *config.AirborneConfig, fb config.FeedbackConfig, hooks feedback.Hooks) *JumpSystem {
	return &JumpSystem{cfg: cfg, fb: fb, hooks: hooks}
}

// Launch starts a jump arc, dropping any running stomp combo along
// with the previous arc's trick state. No-op while already airborne or
// dropping.
func (s *JumpSystem) Launch(r *entity.Rider, height, duration float64) {
	if r.IsAirborne() || r.IsDropping() || duration <= 0 {
		return
	}
	if r.Combo.Count != 0 {
		r.Combo = entity.StompCombo{}
		s.hooks.Score.ComboChanged(0)
	}
	r.Jump = entity.JumpState{
		Active:       true,
		Duration:     duration,
		Height:       height,
		ForwardScale: 1,
	}
	s.hooks.Audio.Play("jump")
	s.hooks.Haptics.Pulse(feedback.Light)
}

// Bounce restarts the arc unconditionally; the stomp combo uses it to
// chain jumps without waiting for a landing.
func (s *JumpSystem) Bounce(r *entity.Rider, height, duration float64) {
	if r.IsDropping() || duration <= 0 {
		return
	}
	r.Jump = entity.JumpState{
		Active:       true,
		Duration:     duration,
		Height:       height,
		ForwardScale: 1,
	}
}

// Update advances the arc one tick: excursion, squash/stretch, trick
// accrual, and the landing at t >= 1.
func (s *JumpSystem) Update(r *entity.Rider, in InputState, dt float64) {
	if !r.Jump.Active {
		return
	}

	j := &r.Jump
	j.Timer += dt
	t := j.Progress()

	// Parabola: zero at both ends, Height at the apex.
	j.Excursion = 4 * j.Height * t * (1 - t)
	j.ForwardScale = s.stretchScale(t)
	s.hooks.Animator.SetStretch(j.ForwardScale)

	s.updateTrick(j, in, dt)

	if t >= 1 {
		s.land(r)
	}
}

// stretchScale stretches along the forward axis for the first window of
// the arc and squashes over the last one.
func (s *JumpSystem) stretchScale(t float64) float64 {
	w := s.cfg.StretchWindow
	switch {
	case t < w:
		return s.cfg.StretchScale + (1-s.cfg.StretchScale)*(t/w)
	case t > 1-w:
		return 1 + (s.cfg.SquashScale-1)*((t-(1-w))/w)
	default:
		return 1
	}
}

// updateTrick latches the first directional press of the jump and
// accrues rotation. 360-degree crossings are awarded at most once per
// tick; a large dt step banks the surplus for later ticks so nothing is
// double-counted or lost.
func (s *JumpSystem) updateTrick(j *entity.JumpState, in InputState, dt float64) {
	if j.TrickDir == entity.TrickNone {
		switch {
		case in.TrickForward:
			j.TrickDir = entity.TrickForward
		case in.TrickBackward:
			j.TrickDir = entity.TrickBackward
		}
		if j.TrickDir != entity.TrickNone {
			s.hooks.Audio.Play("trick_spin")
			s.hooks.Particles.Start("spin_trail")
		}
	}
	if j.TrickDir == entity.TrickNone {
		return
	}

	j.TrickAngle += s.cfg.TrickRotSpeed * dt
	if crossed := int(j.TrickAngle / 360); crossed > j.TricksDone+j.PendingCrossings {
		j.PendingCrossings += crossed - j.TricksDone - j.PendingCrossings
	}
	if j.PendingCrossings > 0 {
		j.TricksDone++
		j.PendingCrossings--
	}
}

// land clears the arc and pays out. Crossings still pending from a large
// final step are drained into the total first so no completed spin goes
// unrewarded.
func (s *JumpSystem) land(r *entity.Rider) {
	tricks := r.Jump.TricksDone + r.Jump.PendingCrossings
	hadTrick := r.Jump.TrickDir != entity.TrickNone

	r.Jump = entity.JumpState{ForwardScale: 1}
	s.hooks.Animator.SetStretch(1)
	if hadTrick {
		s.hooks.Particles.Stop("spin_trail")
	}

	if tricks > 0 {
		points := s.cfg.TrickScoreBonus * tricks
		r.Score += points
		s.hooks.Score.AddScore(points)
		s.hooks.Camera.Shake(s.fb.LandShake + s.fb.TrickShakeStep*float64(tricks))
		s.hooks.Camera.PunchFOV(s.fb.TrickFOVPunch)
		s.hooks.Haptics.Pulse(feedback.Heavy)
		s.hooks.Audio.Play("trick_land")
		s.hooks.Particles.Burst("trick_sparks")
		if s.OnLandBoost != nil {
			s.OnLandBoost(s.cfg.TrickBoostMult, s.cfg.TrickBoostDur)
		}
		return
	}

	s.hooks.Camera.Shake(s.fb.LandShake)
	s.hooks.Haptics.Pulse(feedback.Light)
	s.hooks.Audio.Play("land")
}
