// Package ecs stores the course's collectibles and hazard markers in
// dense slices with a free list, sized for the tens of live entries a
// course section holds. Queries are linear scans.
package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/flume/internal/domain/entity"
)

// ID indexes an entry in the world. IDs are recycled through the free
// list after removal; holders must not keep them across a Remove.
type ID int

// World holds coins and hazards.
type World struct {
	coins     []entity.Coin
	coinAlive []bool
	coinFree  []ID

	hazards []entity.Hazard
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// AddCoin inserts a coin and returns its ID, reusing a free slot when
// one exists.
func (w *World) AddCoin(c entity.Coin) ID {
	if n := len(w.coinFree); n > 0 {
		id := w.coinFree[n-1]
		w.coinFree = w.coinFree[:n-1]
		w.coins[id] = c
		w.coinAlive[id] = true
		return id
	}
	w.coins = append(w.coins, c)
	w.coinAlive = append(w.coinAlive, true)
	return ID(len(w.coins) - 1)
}

// RemoveCoin frees a coin slot. Unknown or dead IDs are ignored.
func (w *World) RemoveCoin(id ID) {
	if int(id) < 0 || int(id) >= len(w.coins) || !w.coinAlive[id] {
		return
	}
	w.coinAlive[id] = false
	w.coinFree = append(w.coinFree, id)
}

// Coin returns the live coin for id, or nil.
func (w *World) Coin(id ID) *entity.Coin {
	if int(id) < 0 || int(id) >= len(w.coins) || !w.coinAlive[id] {
		return nil
	}
	return &w.coins[id]
}

// CoinCount returns the number of live coins.
func (w *World) CoinCount() int {
	return len(w.coins) - len(w.coinFree)
}

// QueryNearby calls fn for every live coin within radius of center. The
// callback may mutate the coin in place; it must not add or remove
// entries.
func (w *World) QueryNearby(center mgl64.Vec3, radius float64, fn func(id ID, c *entity.Coin)) {
	r2 := radius * radius
	for i := range w.coins {
		if !w.coinAlive[i] {
			continue
		}
		if w.coins[i].Pos.Sub(center).LenSqr() <= r2 {
			fn(ID(i), &w.coins[i])
		}
	}
}

// EachCoin calls fn for every live coin, for drawing.
func (w *World) EachCoin(fn func(id ID, c *entity.Coin)) {
	for i := range w.coins {
		if w.coinAlive[i] {
			fn(ID(i), &w.coins[i])
		}
	}
}

// AddHazard inserts a hazard marker. Hazards are never removed, so they
// need no free list.
func (w *World) AddHazard(h entity.Hazard) {
	w.hazards = append(w.hazards, h)
}

// HazardsNear calls fn for hazards whose distance lies within the window
// around d.
func (w *World) HazardsNear(d, window float64, fn func(h *entity.Hazard)) {
	for i := range w.hazards {
		delta := w.hazards[i].Distance - d
		if delta >= -window && delta <= window {
			fn(&w.hazards[i])
		}
	}
}

// EachHazard calls fn for every hazard, for drawing.
func (w *World) EachHazard(fn func(h *entity.Hazard)) {
	for i := range w.hazards {
		fn(&w.hazards[i])
	}
}
