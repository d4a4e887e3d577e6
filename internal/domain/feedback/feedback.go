// Package feedback defines the fire-and-forget collaborator interfaces the
// simulation notifies: score, camera, particles, haptics, screen tints,
// audio, and animation. The core never reads results back from any of
// them, and callers inject implementations at construction instead of
// resolving globals.
package feedback

import "image/color"

// Severity grades a haptic pulse.
type Severity int

const (
	Light Severity = iota
	Medium
	Heavy
)

// Scorer receives score and combo notifications.
type Scorer interface {
	AddScore(points int)
	ComboChanged(count int)
}

// Camera receives impulse effects.
type Camera interface {
	// Shake kicks a decaying screen shake at the given intensity.
	Shake(intensity float64)
	// PunchFOV widens the field of view briefly.
	PunchFOV(amount float64)
	// Rumble sets a sustained low shake level, 0 to stop.
	Rumble(intensity float64)
}

// Particles starts, stops, and bursts named effects.
type Particles interface {
	Start(name string)
	Stop(name string)
	Burst(name string)
}

// Haptics pulses the input device.
type Haptics interface {
	Pulse(s Severity)
}

// Screen toggles full-screen tints.
type Screen interface {
	Flash(c color.RGBA)
	SetUnderwater(on bool)
}

// Audio fires one-shot cues by name.
type Audio interface {
	Play(name string)
}

// Animator receives per-tick locomotion signals for the rig.
type Animator interface {
	// SetLocomotion forwards the normalized speed ratio and the smoothed
	// steering value.
	SetLocomotion(speedRatio, steer float64)
	// SetStretch forwards the squash/stretch scale along the forward axis.
	SetStretch(scale float64)
}

// Hooks bundles every collaborator the controller notifies. Build from
// NopHooks and replace only the fields the caller cares about; all fields
// must stay non-nil.
type Hooks struct {
	Score     Scorer
	Camera    Camera
	Particles Particles
	Haptics   Haptics
	Screen    Screen
	Audio     Audio
	Animator  Animator
}

// NopHooks returns hooks with every collaborator stubbed out.
func NopHooks() Hooks {
	n := nop{}
	return Hooks{
		Score:     n,
		Camera:    n,
		Particles: n,
		Haptics:   n,
		Screen:    n,
		Audio:     n,
		Animator:  n,
	}
}

type nop struct{}

func (nop) AddScore(int)                {}
func (nop) ComboChanged(int)            {}
func (nop) Shake(float64)               {}
func (nop) PunchFOV(float64)            {}
func (nop) Rumble(float64)              {}
func (nop) Start(string)                {}
func (nop) Stop(string)                 {}
func (nop) Burst(string)                {}
func (nop) Pulse(Severity)              {}
func (nop) Flash(color.RGBA)            {}
func (nop) SetUnderwater(bool)          {}
func (nop) Play(string)                 {}
func (nop) SetLocomotion(_, _ float64)  {}
func (nop) SetStretch(float64)          {}
