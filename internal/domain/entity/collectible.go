package entity

import "github.com/go-gl/mathgl/mgl64"

// Coin is a collectible the magnet modifier can pull toward the rider.
// Position is in world space so attraction works across fork blends.
type Coin struct {
	Pos       mgl64.Vec3
	Value     int
	Collected bool
}

// NewCoin places a coin with the standard value.
func NewCoin(pos mgl64.Vec3) Coin {
	return Coin{Pos: pos, Value: 10}
}
