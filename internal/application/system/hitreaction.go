package system

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// HitSystem runs the post-collision reaction phases:
// Normal -> Stunned -> Recovering -> Invincible -> Normal. Each phase is
// a timer advanced by Update; a hit outside Normal is ignored.
type HitSystem struct {
	cfg   *config.ReactionConfig
	loco  *config.LocomotionConfig
	fb    config.FeedbackConfig
	hooks feedback.Hooks
	rng   *rand.Rand
}

// NewHitSystem creates the hit reaction system. The rng drives the
// invincibility glitch flicker and must be the controller's seeded one.
func NewHitSystem(cfg *config.ReactionConfig, loco *config.LocomotionConfig, fb config.FeedbackConfig, hooks feedback.Hooks, rng *rand.Rand) *HitSystem {
	return &HitSystem{cfg: cfg, loco: loco, fb: fb, hooks: hooks, rng: rng}
}

// TakeHit reacts to a collision with the given obstacle. While dropping
// the phase machine is bypassed: the rider takes a bounded 2D shove
// inside the disk instead. Outside Normal phase the hit is a no-op.
func (s *HitSystem) TakeHit(r *entity.Rider, src entity.Obstacle) {
	if r.IsDropping() {
		s.dropKnockback(r)
		s.resetCombo(r)
		s.hooks.Screen.Flash(src.HitFlash())
		s.hooks.Haptics.Pulse(feedback.Medium)
		s.hooks.Audio.Play("hit_soft")
		return
	}
	if r.Hit.Phase != entity.PhaseNormal {
		return
	}

	s.resetCombo(r)

	s.hooks.Screen.Flash(src.HitFlash())
	if src.Splatters() {
		s.hooks.Particles.Burst("splatter")
	}
	s.hooks.Camera.Shake(s.fb.HitShake)
	s.hooks.Haptics.Pulse(feedback.Heavy)
	s.hooks.Audio.Play("hit")

	r.MaxSpeed *= s.cfg.StunSpeedMult
	r.Speed *= s.cfg.StunSpeedMult
	r.AngularVel *= 0.05
	if r.Boost.Active {
		// A boost ticking down through the stun restores a stunned
		// baseline, not the full cap.
		r.Boost.BaselineMax *= s.cfg.StunSpeedMult
	}

	r.Hit.Phase = entity.PhaseStunned
	r.Hit.Timer = 0
	r.Hit.Duration = s.cfg.StunDuration
}

// Update advances the active phase and handles transitions, carrying
// timer overshoot into the next phase so the total reaction time stays
// exact regardless of tick size.
func (s *HitSystem) Update(r *entity.Rider, dt float64) {
	h := &r.Hit
	if h.Phase == entity.PhaseNormal {
		return
	}

	h.Timer += dt

	switch h.Phase {
	case entity.PhaseStunned:
		if h.Timer >= h.Duration {
			s.enterRecovering(r, h.Timer-h.Duration)
		}
	case entity.PhaseRecovering:
		p := h.Progress()
		// Quadratic ease-out from the stunned speed back to base.
		e := 1 - (1-p)*(1-p)
		r.Speed = h.RecoverFrom + (h.RecoverTo-h.RecoverFrom)*e
		if h.Timer >= h.Duration {
			s.enterInvincible(r, h.Timer-h.Duration)
		}
	case entity.PhaseInvincible:
		s.updateFlicker(h, dt)
		if h.Timer >= h.Duration {
			s.close(r)
		}
	}
}

func (s *HitSystem) enterRecovering(r *entity.Rider, carry float64) {
	h := &r.Hit
	// The cap comes back from tuning, not a captured value; a boost
	// still running re-derives its scale from that same baseline, and
	// one applied mid-stun sheds the stunned baseline it captured.
	r.MaxSpeed = s.loco.MaxSpeed
	if r.Boost.Active {
		r.Boost.BaselineMax = s.loco.MaxSpeed
		r.MaxSpeed = s.loco.MaxSpeed * r.Boost.Multiplier
	}
	h.RecoverFrom = r.Speed
	h.RecoverTo = s.loco.BaseSpeed
	h.Phase = entity.PhaseRecovering
	h.Timer = carry
	h.Duration = s.cfg.RecoveryDuration
}

func (s *HitSystem) enterInvincible(r *entity.Rider, carry float64) {
	h := &r.Hit
	r.Speed = h.RecoverTo
	h.Phase = entity.PhaseInvincible
	h.Timer = carry
	h.Duration = s.cfg.InvincibilityDuration
	h.Visible = true
	h.FlickerClock = 0
	s.hooks.Particles.Start("shimmer")
}

func (s *HitSystem) close(r *entity.Rider) {
	r.Hit = entity.HitState{Visible: true}
	s.hooks.Particles.Stop("shimmer")
	s.hooks.Audio.Play("vulnerable")
}

// updateFlicker toggles visibility at a frequency that rises as the
// grace period runs out, with a small per-tick chance of an extra glitch
// toggle.
func (s *HitSystem) updateFlicker(h *entity.HitState, dt float64) {
	freq := s.cfg.FlickerBaseHz + (s.cfg.FlickerMaxHz-s.cfg.FlickerBaseHz)*h.Progress()
	h.FlickerClock += freq * dt
	for h.FlickerClock >= 0.5 {
		h.FlickerClock -= 0.5
		h.Visible = !h.Visible
	}
	if s.cfg.GlitchChance > 0 && s.rng.Float64() < s.cfg.GlitchChance {
		h.Visible = !h.Visible
		h.GlitchFlip = !h.GlitchFlip
	}
}

// dropKnockback shoves the drop offset outward from its current
// position, clamped to the disk so the bound invariant holds.
func (s *HitSystem) dropKnockback(r *entity.Rider) {
	d := &r.Drop
	dir := d.Offset
	if dir.Len() < 1e-6 {
		dir = mgl64.Vec2{0, -1}
	} else {
		dir = dir.Normalize()
	}
	shove := dir.Mul(s.cfg.DropKnockback)
	d.Offset = clampToDisk(d.Offset.Add(shove), d.MoveRadius)
	d.Target = clampToDisk(d.Target.Add(shove), d.MoveRadius)
}

func (s *HitSystem) resetCombo(r *entity.Rider) {
	if r.Combo.Count == 0 {
		return
	}
	r.Combo = entity.StompCombo{}
	s.hooks.Score.ComboChanged(0)
}

// clampToDisk limits a 2D offset to the given radius.
func clampToDisk(v mgl64.Vec2, radius float64) mgl64.Vec2 {
	if l := v.Len(); l > radius && l > 0 {
		return v.Mul(radius / l)
	}
	return v
}
