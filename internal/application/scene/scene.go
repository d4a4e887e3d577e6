// Package scene defines the Scene interface for the demo shell's
// screens. The game loop delegates Update and Draw to the current
// scene; transitions happen by returning the next scene from Update.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the demo shell.
type Scene interface {
	// Update advances the scene by dt seconds. Returning a non-nil next
	// scene triggers a transition; returning an error ends the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is left.
	OnExit()
}
