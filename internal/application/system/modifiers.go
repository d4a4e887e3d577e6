package system

import (
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/ecs"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// ModifierSystem runs the two timed modifiers: the speed boost (scales
// max speed for a bounded duration, restoring the captured baseline
// exactly at expiry) and the coin magnet (pulls nearby collectibles
// toward the rider each active tick).
type ModifierSystem struct {
	cfg   *config.ModifiersConfig
	fb    config.FeedbackConfig
	world *ecs.World
	hooks feedback.Hooks
}

// NewModifierSystem creates the modifier system. world may be nil when
// no collectibles exist; the magnet then times out without attracting.
func NewModifierSystem(cfg *config.ModifiersConfig, fb config.FeedbackConfig, world *ecs.World, hooks feedback.Hooks) *ModifierSystem {
	return &ModifierSystem{cfg: cfg, fb: fb, world: world, hooks: hooks}
}

// ApplySpeedBoost multiplies max speed and speed for the duration.
// Re-applying while active overwrites the remaining time; the previous
// baseline is restored first so baselines never compound.
func (s *ModifierSystem) ApplySpeedBoost(r *entity.Rider, mult, dur float64) {
	if mult <= 0 || dur <= 0 {
		return
	}
	b := &r.Boost
	if b.Active {
		r.MaxSpeed = b.BaselineMax
	}
	b.BaselineMax = r.MaxSpeed
	r.MaxSpeed *= mult
	r.Speed *= mult
	if r.Speed > r.MaxSpeed {
		r.Speed = r.MaxSpeed
	}

	b.Active = true
	b.Remaining = dur
	b.Duration = dur
	b.Multiplier = mult
	b.WarningFired = false

	s.hooks.Camera.PunchFOV(s.fb.BoostFOVPunch)
	s.hooks.Particles.Start("speed_lines")
	s.hooks.Audio.Play("boost")
}

// ActivateCoinMagnet starts (or re-arms) the magnet timer.
func (s *ModifierSystem) ActivateCoinMagnet(r *entity.Rider, dur float64) {
	if dur <= 0 {
		return
	}
	was := r.Magnet.Active
	r.Magnet = entity.MagnetState{Active: true, Remaining: dur, Duration: dur}
	if !was {
		s.hooks.Particles.Start("magnet_field")
		s.hooks.Audio.Play("magnet_on")
	}
}

// Update counts both timers down and runs their per-tick effects.
func (s *ModifierSystem) Update(r *entity.Rider, dt float64) {
	s.updateBoost(r, dt)
	s.updateMagnet(r, dt)
}

func (s *ModifierSystem) updateBoost(r *entity.Rider, dt float64) {
	b := &r.Boost
	if !b.Active {
		return
	}
	b.Remaining -= dt

	elapsed := 1 - b.Remaining/b.Duration
	if !b.WarningFired && elapsed >= s.cfg.BoostWarningFraction {
		b.WarningFired = true
		s.hooks.Audio.Play("boost_warning")
		s.hooks.Haptics.Pulse(feedback.Light)
	}

	if b.Remaining <= 0 {
		r.MaxSpeed = b.BaselineMax
		if r.Speed > r.MaxSpeed {
			r.Speed = r.MaxSpeed
		}
		*b = entity.BoostState{}
		s.hooks.Particles.Stop("speed_lines")
	}
}

func (s *ModifierSystem) updateMagnet(r *entity.Rider, dt float64) {
	m := &r.Magnet
	if !m.Active {
		return
	}
	m.Remaining -= dt
	if m.Remaining <= 0 {
		*m = entity.MagnetState{}
		s.hooks.Particles.Stop("magnet_field")
		s.hooks.Audio.Play("magnet_off")
		return
	}
	if s.world == nil {
		return
	}

	// Exponential approach: each tick closes a fixed fraction of the
	// remaining gap, so coins never overshoot the rider.
	k := easeStep(s.cfg.MagnetRate, dt)
	s.world.QueryNearby(r.WorldPos, s.cfg.MagnetRadius, func(_ ecs.ID, c *entity.Coin) {
		c.Pos = c.Pos.Add(r.WorldPos.Sub(c.Pos).Mul(k))
	})
}
