package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/flume/internal/domain/entity"
)

// Layout experiment behind the dense-slice World: row-oriented coin
// records vs column-oriented position arrays, over the magnet's hot
// path (distance filter + position nudge).

const benchN = 100_000

type coinsSoA struct {
	X, Y, Z [benchN]float64
	Alive   [benchN]bool
}

var (
	benchWorld *World
	benchSoA   coinsSoA
)

func init() {
	benchWorld = NewWorld()
	for i := 0; i < benchN; i++ {
		p := mgl64.Vec3{float64(i % 100), float64(i % 7), float64(i)}
		benchWorld.AddCoin(entity.NewCoin(p))
		benchSoA.X[i], benchSoA.Y[i], benchSoA.Z[i] = p.X(), p.Y(), p.Z()
		benchSoA.Alive[i] = true
	}
}

func BenchmarkMagnetSweep_AoS(b *testing.B) {
	center := mgl64.Vec3{50, 3, 50_000}
	for n := 0; n < b.N; n++ {
		benchWorld.QueryNearby(center, 40, func(_ ID, c *entity.Coin) {
			c.Pos = c.Pos.Add(center.Sub(c.Pos).Mul(0.1))
		})
	}
}

func BenchmarkMagnetSweep_SoA(b *testing.B) {
	cx, cy, cz := 50.0, 3.0, 50_000.0
	const r2 = 40.0 * 40.0
	for n := 0; n < b.N; n++ {
		for i := 0; i < benchN; i++ {
			if !benchSoA.Alive[i] {
				continue
			}
			dx := cx - benchSoA.X[i]
			dy := cy - benchSoA.Y[i]
			dz := cz - benchSoA.Z[i]
			if dx*dx+dy*dy+dz*dz > r2 {
				continue
			}
			benchSoA.X[i] += dx * 0.1
			benchSoA.Y[i] += dy * 0.1
			benchSoA.Z[i] += dz * 0.1
		}
	}
}

func BenchmarkDistanceScan_AoS(b *testing.B) {
	var sum float64
	for n := 0; n < b.N; n++ {
		sum = 0
		benchWorld.EachCoin(func(_ ID, c *entity.Coin) {
			sum += c.Pos.Z()
		})
	}
	_ = sum
}

func BenchmarkDistanceScan_SoA(b *testing.B) {
	var sum float64
	for n := 0; n < b.N; n++ {
		sum = 0
		for i := 0; i < benchN; i++ {
			if benchSoA.Alive[i] {
				sum += benchSoA.Z[i]
			}
		}
	}
	_ = sum
}
