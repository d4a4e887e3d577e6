package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is the per-tick input the simulation consumes. Sources are
// the keyboard sampler below, a scripted source in tests, and the
// replayer.
type InputState struct {
	Steer    float64 // [-1,1], + steers toward increasing angle
	Throttle float64 // [-1,1], + pushes toward max speed, - brakes toward min

	JumpPressed   bool
	TrickForward  bool
	TrickBackward bool
	StompPressed  bool

	// Drop-mode 2D vector: x lateral, y vertical.
	DropX float64
	DropY float64
}

// Source yields one InputState per tick.
type Source interface {
	Poll() InputState
}

// InputSystem samples the keyboard for the demo shell.
type InputSystem struct{}

// NewInputSystem creates the keyboard sampler.
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Poll reads the current keyboard state.
func (s *InputSystem) Poll() InputState {
	in := InputState{
		JumpPressed:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
		TrickForward:  ebiten.IsKeyPressed(ebiten.KeyE),
		TrickBackward: ebiten.IsKeyPressed(ebiten.KeyQ),
		StompPressed:  inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft),
	}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.Steer -= 1
		in.DropX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.Steer += 1
		in.DropX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.Throttle += 1
		in.DropY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.Throttle -= 1
		in.DropY -= 1
	}

	return in
}
