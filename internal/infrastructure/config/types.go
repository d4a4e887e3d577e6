package config

import "fmt"

// TuningConfig is the root config for tuning.json. Every number the
// simulation integrates with lives here so feel can be tuned without a
// rebuild.
type TuningConfig struct {
	Locomotion LocomotionConfig `json:"locomotion"`
	Airborne   AirborneConfig   `json:"airborne"`
	Reaction   ReactionConfig   `json:"reaction"`
	Drop       DropConfig       `json:"drop"`
	Modifiers  ModifiersConfig  `json:"modifiers"`
	Feedback   FeedbackConfig   `json:"feedback"`
}

// LocomotionConfig tunes surface riding: speed integration, steering
// response, and the gravity pull toward the tube bottom.
type LocomotionConfig struct {
	BaseSpeed    float64 `json:"baseSpeed"`
	MinSpeed     float64 `json:"minSpeed"`
	MaxSpeed     float64 `json:"maxSpeed"`
	Acceleration float64 `json:"acceleration"` // units/s toward the target speed
	SlopeGain    float64 `json:"slopeGain"`    // uphill drag / downhill push

	SteerGain      float64 `json:"steerGain"`      // deg/s of angular velocity at full steer
	SteerEase      float64 `json:"steerEase"`      // 1/s approach rate toward the steer target
	SteerSmoothing float64 `json:"steerSmoothing"` // 1/s low-pass rate on raw input
	SteerDeadzone  float64 `json:"steerDeadzone"`
	NeutralDecay   float64 `json:"neutralDecay"` // 1/s angular decay with neutral input

	DriftThreshold float64 `json:"driftThreshold"` // deg/s before opposing input drifts
	DriftEaseScale float64 `json:"driftEaseScale"` // ease multiplier while drifting, < 1

	GravityGain   float64 `json:"gravityGain"`   // deg/s^2 pull at full opposition
	GravityCurve  float64 `json:"gravityCurve"`  // extra pull away from the bottom
	SettleAngle   float64 `json:"settleAngle"`   // deg window for settle damping
	SettleDamping float64 `json:"settleDamping"` // 1/s damping inside the window

	PoseLerpRate float64 `json:"poseLerpRate"` // 1/s world pose blend rate
}

// AirborneConfig tunes the jump arc, trick rotation, and stomp bounces.
type AirborneConfig struct {
	JumpHeight   float64 `json:"jumpHeight"`
	JumpDuration float64 `json:"jumpDuration"`

	StretchWindow float64 `json:"stretchWindow"` // fraction of the arc, each end
	StretchScale  float64 `json:"stretchScale"`  // forward scale at launch
	SquashScale   float64 `json:"squashScale"`   // forward scale at touchdown

	TrickRotSpeed   float64 `json:"trickRotSpeed"` // deg/s
	TrickScoreBonus int     `json:"trickScoreBonus"`
	TrickBoostMult  float64 `json:"trickBoostMult"`
	TrickBoostDur   float64 `json:"trickBoostDur"`

	Stomp StompConfig `json:"stomp"`
}

// StompConfig tunes the chained bounce combo.
type StompConfig struct {
	Window           float64 `json:"window"` // seconds before the combo expires
	BaseScore        int     `json:"baseScore"`
	BounceHeight     float64 `json:"bounceHeight"`
	BounceHeightStep float64 `json:"bounceHeightStep"` // added per combo step
	BounceMaxHeight  float64 `json:"bounceMaxHeight"`
	BounceDuration   float64 `json:"bounceDuration"`
}

// ReactionConfig tunes the hit phases and the invincibility flicker.
type ReactionConfig struct {
	StunDuration          float64 `json:"stunDuration"`
	StunSpeedMult         float64 `json:"stunSpeedMult"`
	RecoveryDuration      float64 `json:"recoveryDuration"`
	InvincibilityDuration float64 `json:"invincibilityDuration"`

	FlickerBaseHz float64 `json:"flickerBaseHz"` // at the start of invincibility
	FlickerMaxHz  float64 `json:"flickerMaxHz"`  // as it runs out
	GlitchChance  float64 `json:"glitchChance"`  // per-tick extra toggle probability

	DropKnockback float64 `json:"dropKnockback"` // offset shove when hit while dropping
}

// DropConfig tunes the free-swimming mode feel. The per-entry numbers
// (duration, speeds, radius) arrive with the EnterDrop command.
type DropConfig struct {
	OffsetEase    float64 `json:"offsetEase"`    // 1/s inertial easing toward the target
	RecenterRate  float64 `json:"recenterRate"`  // units/s ambient pull to center
	InputDeadzone float64 `json:"inputDeadzone"`

	TiltMax      float64 `json:"tiltMax"`      // deg of pitch/roll at full input
	BobAmplitude float64 `json:"bobAmplitude"` // deg of idle pitch bob
	BobFrequency float64 `json:"bobFrequency"` // Hz

	PlungeStart     float64 `json:"plungeStart"`     // fraction of the drop, typically 0.8
	PlungeMaxMult   float64 `json:"plungeMaxMult"`   // speed multiplier at the end, typically 4
	PlungePoseBoost float64 `json:"plungePoseBoost"` // orientation blend multiplier while plunging
}

// ModifiersConfig tunes the timed boost and magnet modifiers.
type ModifiersConfig struct {
	BoostWarningFraction float64 `json:"boostWarningFraction"` // elapsed fraction that fires the warning
	MagnetRadius         float64 `json:"magnetRadius"`
	MagnetRate           float64 `json:"magnetRate"` // 1/s exponential approach
}

// FeedbackConfig tunes notification intensities forwarded to collaborators.
type FeedbackConfig struct {
	LandShake      float64 `json:"landShake"`
	TrickShakeStep float64 `json:"trickShakeStep"` // per completed trick
	TrickFOVPunch  float64 `json:"trickFovPunch"`
	HitShake       float64 `json:"hitShake"`
	StompShake     float64 `json:"stompShake"`
	FlushShake     float64 `json:"flushShake"`
	BoostFOVPunch  float64 `json:"boostFovPunch"`
}

// Validate rejects tuning values the integrators cannot work with.
func (c *TuningConfig) Validate() error {
	l := c.Locomotion
	if l.BaseSpeed <= 0 || l.MaxSpeed <= 0 {
		return fmt.Errorf("tuning: locomotion speeds must be positive (base=%v max=%v)", l.BaseSpeed, l.MaxSpeed)
	}
	if l.MinSpeed < 0 || l.MinSpeed > l.BaseSpeed || l.BaseSpeed > l.MaxSpeed {
		return fmt.Errorf("tuning: need 0 <= minSpeed <= baseSpeed <= maxSpeed (min=%v base=%v max=%v)",
			l.MinSpeed, l.BaseSpeed, l.MaxSpeed)
	}
	if l.DriftEaseScale <= 0 || l.DriftEaseScale > 1 {
		return fmt.Errorf("tuning: driftEaseScale must be in (0,1], got %v", l.DriftEaseScale)
	}

	a := c.Airborne
	if a.JumpDuration <= 0 {
		return fmt.Errorf("tuning: jumpDuration must be positive, got %v", a.JumpDuration)
	}
	if a.StretchWindow <= 0 || a.StretchWindow >= 0.5 {
		return fmt.Errorf("tuning: stretchWindow must be in (0,0.5), got %v", a.StretchWindow)
	}
	if a.Stomp.BounceDuration <= 0 || a.Stomp.Window <= 0 {
		return fmt.Errorf("tuning: stomp window and bounceDuration must be positive")
	}

	r := c.Reaction
	if r.StunDuration <= 0 || r.RecoveryDuration <= 0 || r.InvincibilityDuration <= 0 {
		return fmt.Errorf("tuning: reaction phase durations must be positive (stun=%v recovery=%v invincibility=%v)",
			r.StunDuration, r.RecoveryDuration, r.InvincibilityDuration)
	}
	if r.StunSpeedMult <= 0 || r.StunSpeedMult > 1 {
		return fmt.Errorf("tuning: stunSpeedMult must be in (0,1], got %v", r.StunSpeedMult)
	}
	if r.GlitchChance < 0 || r.GlitchChance >= 1 {
		return fmt.Errorf("tuning: glitchChance must be in [0,1), got %v", r.GlitchChance)
	}

	d := c.Drop
	if d.PlungeStart <= 0 || d.PlungeStart >= 1 {
		return fmt.Errorf("tuning: plungeStart must be in (0,1), got %v", d.PlungeStart)
	}
	if d.PlungeMaxMult < 1 {
		return fmt.Errorf("tuning: plungeMaxMult must be >= 1, got %v", d.PlungeMaxMult)
	}

	m := c.Modifiers
	if m.BoostWarningFraction <= 0 || m.BoostWarningFraction >= 1 {
		return fmt.Errorf("tuning: boostWarningFraction must be in (0,1), got %v", m.BoostWarningFraction)
	}
	if m.MagnetRadius <= 0 || m.MagnetRate <= 0 {
		return fmt.Errorf("tuning: magnet radius and rate must be positive")
	}

	return nil
}

// PickupsConfig is the root config for pickups.json: the payloads course
// pickups hand to the controller commands.
type PickupsConfig struct {
	Boost  BoostPickupConfig  `json:"boost"`
	Magnet MagnetPickupConfig `json:"magnet"`
	Drop   DropGateConfig     `json:"drop"`
}

// BoostPickupConfig is the speed-boost pad payload.
type BoostPickupConfig struct {
	Multiplier float64 `json:"multiplier"`
	Duration   float64 `json:"duration"`
}

// MagnetPickupConfig is the coin-magnet pickup payload.
type MagnetPickupConfig struct {
	Duration float64 `json:"duration"`
}

// DropGateConfig is the payload a drop gate starts the free-swimming
// mode with.
type DropGateConfig struct {
	Duration      float64 `json:"duration"`
	Speed         float64 `json:"speed"`
	MoveRadius    float64 `json:"moveRadius"`
	MoveSpeed     float64 `json:"moveSpeed"`
	ExitBoostMult float64 `json:"exitBoostMult"`
	ExitBoostDur  float64 `json:"exitBoostDur"`
}

// Validate rejects pickup payloads that would no-op or misbehave.
func (c *PickupsConfig) Validate() error {
	if c.Boost.Multiplier <= 1 || c.Boost.Duration <= 0 {
		return fmt.Errorf("pickups: boost needs multiplier > 1 and positive duration")
	}
	if c.Magnet.Duration <= 0 {
		return fmt.Errorf("pickups: magnet duration must be positive")
	}
	d := c.Drop
	if d.Duration <= 0 || d.Speed <= 0 || d.MoveRadius <= 0 || d.MoveSpeed <= 0 {
		return fmt.Errorf("pickups: drop gate numbers must be positive")
	}
	return nil
}
