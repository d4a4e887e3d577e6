// Package runner wires the rider entity and the per-concern systems
// into one controller: a single Update per tick, the explicit command
// API, and read-only telemetry snapshots.
package runner

import (
	"math/rand"

	"github.com/younwookim/flume/internal/application/system"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/domain/track"
	"github.com/younwookim/flume/internal/ecs"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// Controller owns the rider and runs the simulation tick. It performs
// no I/O and no logging; everything outward goes through the injected
// feedback hooks.
type Controller struct {
	rider  *entity.Rider
	cfg    *config.TuningConfig
	course track.Provider

	loco  *system.LocomotionSystem
	jump  *system.JumpSystem
	hit   *system.HitSystem
	stomp *system.StompSystem
	drop  *system.DropSystem
	mods  *system.ModifierSystem
}

// New builds a controller on the given course. world may be nil when no
// collectibles exist. The rng must be seeded by the caller so replays
// stay deterministic.
func New(cfg *config.TuningConfig, course track.Provider, world *ecs.World, hooks feedback.Hooks, rng *rand.Rand) *Controller {
	c := &Controller{
		rider:  entity.NewRider(cfg.Locomotion.BaseSpeed, cfg.Locomotion.MaxSpeed),
		cfg:    cfg,
		course: course,
		loco:   system.NewLocomotionSystem(&cfg.Locomotion, course, hooks),
		jump:   system.NewJumpSystem(&cfg.Airborne, cfg.Feedback, hooks),
		hit:    system.NewHitSystem(&cfg.Reaction, &cfg.Locomotion, cfg.Feedback, hooks, rng),
		stomp:  system.NewStompSystem(&cfg.Airborne.Stomp, cfg.Feedback, hooks),
		drop:   system.NewDropSystem(&cfg.Drop, &cfg.Locomotion, cfg.Feedback, course, hooks),
		mods:   system.NewModifierSystem(&cfg.Modifiers, cfg.Feedback, world, hooks),
	}

	// Cross-system triggers.
	c.jump.OnLandBoost = func(mult, dur float64) {
		c.mods.ApplySpeedBoost(c.rider, mult, dur)
	}
	c.stomp.OnBounce = func(height, dur float64) {
		c.jump.Bounce(c.rider, height, dur)
	}
	c.drop.OnExitBoost = func(mult, dur float64) {
		c.mods.ApplySpeedBoost(c.rider, mult, dur)
	}

	c.loco.SnapPose(c.rider)
	return c
}

// Rider exposes the owned entity for the scene and tests. Callers must
// treat it as read-only outside the update thread.
func (c *Controller) Rider() *entity.Rider {
	return c.rider
}

// Update runs one simulation tick. The timed phases (hit reaction,
// combo window, modifiers) always advance; then exactly one primary
// locomotion path runs — drop mode if active, otherwise surface
// locomotion with the jump arc layered on top.
func (c *Controller) Update(in system.InputState, dt float64) {
	r := c.rider

	c.hit.Update(r, dt)
	c.stomp.Update(r, dt)
	c.mods.Update(r, dt)

	if in.JumpPressed {
		c.LaunchJump()
	}
	if in.StompPressed && r.IsAirborne() {
		c.Stomp()
	}

	if r.IsDropping() {
		c.drop.Update(r, in, dt)
		return
	}

	c.loco.Integrate(r, in, dt)
	c.jump.Update(r, in, dt)
	c.loco.ComposePose(r, dt)
}

// TakeHit reacts to a collision with an obstacle.
func (c *Controller) TakeHit(src entity.Obstacle) {
	c.hit.TakeHit(c.rider, src)
}

// LaunchJump starts a jump arc with the tuned height and duration.
// No-op while airborne or dropping.
func (c *Controller) LaunchJump() {
	c.jump.Launch(c.rider, c.cfg.Airborne.JumpHeight, c.cfg.Airborne.JumpDuration)
}

// Stomp registers a stomp event, growing the combo and re-bouncing.
func (c *Controller) Stomp() {
	c.stomp.Stomp(c.rider)
}

// EnterDrop switches to the free-swimming mode. No-op while airborne or
// already dropping.
func (c *Controller) EnterDrop(p system.DropParams) {
	c.drop.Enter(c.rider, p)
}

// ApplySpeedBoost starts (or re-arms) the timed speed boost.
func (c *Controller) ApplySpeedBoost(mult, dur float64) {
	c.mods.ApplySpeedBoost(c.rider, mult, dur)
}

// ActivateCoinMagnet starts (or re-arms) the coin magnet.
func (c *Controller) ActivateCoinMagnet(dur float64) {
	c.mods.ActivateCoinMagnet(c.rider, dur)
}

// Frame returns the fork-blended path frame at the rider's current
// distance, for the debug view.
func (c *Controller) Frame() track.Frame {
	return c.loco.Forks().EffectiveFrame(c.rider)
}

// Snapshot returns the read-only telemetry value for HUD and the
// websocket feed.
func (c *Controller) Snapshot() Snapshot {
	r := c.rider
	return Snapshot{
		Distance:      r.Distance,
		Speed:         r.Speed,
		HitPhase:      r.Hit.Phase.String(),
		HitProgress:   r.Hit.Progress(),
		Visible:       r.Hit.Visible,
		ForkBranch:    r.Fork.Branch,
		Jumping:       r.IsAirborne(),
		Dropping:      r.IsDropping(),
		BoostActive:   r.Boost.Active,
		BoostFraction: r.Boost.Fraction(),
		MagnetActive:  r.Magnet.Active,
		Combo:         r.Combo.Count,
		Score:         r.Score,
	}
}
