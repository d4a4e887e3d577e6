package riding

import (
	"image/color"

	"github.com/younwookim/flume/internal/domain/feedback"
)

// vfx accumulates the fire-and-forget feedback the simulation emits so
// the scene can decay and draw it: screen shake, flashes, the underwater
// tint, and sustained rumble. Audio, haptics, and the animator rig have
// no device in the debug shell and are swallowed.
type vfx struct {
	shake      float64
	rumble     float64
	fov        float64
	flash      color.RGBA
	flashTimer float64
	underwater bool
}

func (v *vfx) hooks() feedback.Hooks {
	h := feedback.NopHooks()
	h.Camera = v
	h.Screen = v
	return h
}

// decay fades the transient effects each frame.
func (v *vfx) decay(dt float64) {
	v.shake *= 0.90
	v.fov *= 0.92
	if v.flashTimer > 0 {
		v.flashTimer -= dt
	}
}

func (v *vfx) Shake(intensity float64) {
	if intensity > v.shake {
		v.shake = intensity
	}
}

func (v *vfx) PunchFOV(amount float64) {
	if amount > v.fov {
		v.fov = amount
	}
}

func (v *vfx) Rumble(intensity float64) {
	v.rumble = intensity
}

func (v *vfx) Flash(c color.RGBA) {
	v.flash = c
	v.flashTimer = 0.15
}

func (v *vfx) SetUnderwater(on bool) {
	v.underwater = on
}
