// Package game provides the ebiten game loop that delegates to the
// active scene and handles scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/flume/internal/application/scene"
)

// Game implements ebiten.Game and manages scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
}

// New creates a game on the initial scene. The scene's OnEnter runs
// immediately.
func New(initial scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
	}
	g.current.OnEnter()
	return g
}

// Update advances the current scene and applies transitions.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT overrides the fixed timestep, for tests.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
