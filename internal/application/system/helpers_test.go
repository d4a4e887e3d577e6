package system

import (
	"image/color"

	"github.com/younwookim/flume/internal/domain/feedback"
	"github.com/younwookim/flume/internal/domain/track"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

// createTestTuning mirrors the shipped tuning document.
func createTestTuning() *config.TuningConfig {
	return &config.TuningConfig{
		Locomotion: config.LocomotionConfig{
			BaseSpeed:      14,
			MinSpeed:       6,
			MaxSpeed:       24,
			Acceleration:   10,
			SlopeGain:      6,
			SteerGain:      220,
			SteerEase:      6,
			SteerSmoothing: 12,
			SteerDeadzone:  0.05,
			NeutralDecay:   3,
			DriftThreshold: 60,
			DriftEaseScale: 0.45,
			GravityGain:    260,
			GravityCurve:   0.8,
			SettleAngle:    8,
			SettleDamping:  6,
			PoseLerpRate:   14,
		},
		Airborne: config.AirborneConfig{
			JumpHeight:      2.2,
			JumpDuration:    0.9,
			StretchWindow:   0.15,
			StretchScale:    1.25,
			SquashScale:     0.8,
			TrickRotSpeed:   540,
			TrickScoreBonus: 100,
			TrickBoostMult:  1.3,
			TrickBoostDur:   1.5,
			Stomp: config.StompConfig{
				Window:           2,
				BaseScore:        50,
				BounceHeight:     1.6,
				BounceHeightStep: 0.5,
				BounceMaxHeight:  3.4,
				BounceDuration:   0.55,
			},
		},
		Reaction: config.ReactionConfig{
			StunDuration:          1.5,
			StunSpeedMult:         0.35,
			RecoveryDuration:      0.5,
			InvincibilityDuration: 2.0,
			FlickerBaseHz:         4,
			FlickerMaxHz:          14,
			GlitchChance:          0,
			DropKnockback:         1.2,
		},
		Drop: config.DropConfig{
			OffsetEase:      7,
			RecenterRate:    0.8,
			InputDeadzone:   0.1,
			TiltMax:         18,
			BobAmplitude:    3,
			BobFrequency:    0.6,
			PlungeStart:     0.8,
			PlungeMaxMult:   4,
			PlungePoseBoost: 1.5,
		},
		Modifiers: config.ModifiersConfig{
			BoostWarningFraction: 0.8,
			MagnetRadius:         6,
			MagnetRate:           8,
		},
		Feedback: config.FeedbackConfig{
			LandShake:      2,
			TrickShakeStep: 1.5,
			TrickFOVPunch:  6,
			HitShake:       5,
			StompShake:     3,
			FlushShake:     6,
			BoostFOVPunch:  8,
		},
	}
}

// createStraightCourse is a flat tube with no weave or dip, so slope is
// zero everywhere.
func createStraightCourse() *track.Course {
	return track.NewCourse(track.CourseParams{Length: 10000, Radius: 4})
}

func createTestDropParams() DropParams {
	return DropParams{
		Duration:      12,
		Speed:         18,
		MoveRadius:    2.6,
		MoveSpeed:     6,
		ExitBoostMult: 1.8,
		ExitBoostDur:  2.5,
	}
}

// spyFeedback records every collaborator call for assertions.
type spyFeedback struct {
	scores     []int
	combos     []int
	shakes     []float64
	fovs       []float64
	rumble     float64
	started    []string
	stopped    []string
	bursts     []string
	pulses     []feedback.Severity
	flashes    []color.RGBA
	underwater bool
	sounds     []string
	speedRatio float64
	steer      float64
	stretches  []float64
}

func createSpyHooks() (feedback.Hooks, *spyFeedback) {
	spy := &spyFeedback{}
	return feedback.Hooks{
		Score:     spy,
		Camera:    spy,
		Particles: spy,
		Haptics:   spy,
		Screen:    spy,
		Audio:     spy,
		Animator:  spy,
	}, spy
}

func (s *spyFeedback) AddScore(p int)     { s.scores = append(s.scores, p) }
func (s *spyFeedback) ComboChanged(c int) { s.combos = append(s.combos, c) }
func (s *spyFeedback) Shake(i float64)    { s.shakes = append(s.shakes, i) }
func (s *spyFeedback) PunchFOV(a float64) { s.fovs = append(s.fovs, a) }
func (s *spyFeedback) Rumble(i float64)   { s.rumble = i }
func (s *spyFeedback) Start(n string)     { s.started = append(s.started, n) }
func (s *spyFeedback) Stop(n string)      { s.stopped = append(s.stopped, n) }
func (s *spyFeedback) Burst(n string)     { s.bursts = append(s.bursts, n) }
func (s *spyFeedback) Pulse(v feedback.Severity) {
	s.pulses = append(s.pulses, v)
}
func (s *spyFeedback) Flash(c color.RGBA)   { s.flashes = append(s.flashes, c) }
func (s *spyFeedback) SetUnderwater(b bool) { s.underwater = b }
func (s *spyFeedback) Play(n string)        { s.sounds = append(s.sounds, n) }
func (s *spyFeedback) SetLocomotion(ratio, steer float64) {
	s.speedRatio, s.steer = ratio, steer
}
func (s *spyFeedback) SetStretch(f float64) { s.stretches = append(s.stretches, f) }

func (s *spyFeedback) played(name string) int {
	n := 0
	for _, p := range s.sounds {
		if p == name {
			n++
		}
	}
	return n
}

func (s *spyFeedback) totalScore() int {
	t := 0
	for _, p := range s.scores {
		t += p
	}
	return t
}
