package system

import (
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// StompSystem counts chained stomp bounces inside a timeout window and
// re-triggers the jump arc with escalating height.
type StompSystem struct {
	cfg   *config.StompConfig
	fb    config.FeedbackConfig
	hooks feedback.Hooks

	// OnBounce re-triggers the jump arc with the combo's height.
	OnBounce func(height, duration float64)
}

// NewStompSystem creates the stomp combo system.
func NewStompSystem(cfg *config.StompConfig, fb config.FeedbackConfig, hooks feedback.Hooks) *StompSystem {
	return &StompSystem{cfg: cfg, fb: fb, hooks: hooks}
}

// Stomp registers a stomp event: bump the combo, restart its window,
// pay out, and bounce.
func (s *StompSystem) Stomp(r *entity.Rider) {
	r.Combo.Count++
	r.Combo.Timer = s.cfg.Window

	points := s.cfg.BaseScore * r.Combo.Count
	r.Score += points
	s.hooks.Score.AddScore(points)
	s.hooks.Score.ComboChanged(r.Combo.Count)
	s.hooks.Camera.Shake(s.fb.StompShake)
	s.hooks.Haptics.Pulse(feedback.Medium)
	s.hooks.Audio.Play("stomp")

	height := s.cfg.BounceHeight + s.cfg.BounceHeightStep*float64(r.Combo.Count-1)
	if height > s.cfg.BounceMaxHeight {
		height = s.cfg.BounceMaxHeight
	}
	if s.OnBounce != nil {
		s.OnBounce(height, s.cfg.BounceDuration)
	}
}

// Update ticks the combo window down and resets the count on expiry.
func (s *StompSystem) Update(r *entity.Rider, dt float64) {
	if r.Combo.Count == 0 {
		return
	}
	r.Combo.Timer -= dt
	if r.Combo.Timer <= 0 {
		r.Combo = entity.StompCombo{}
		s.hooks.Score.ComboChanged(0)
	}
}
