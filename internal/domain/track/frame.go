// Package track provides the path geometry the locomotion core rides on:
// per-distance reference frames, the analytic demo course, and fork zones.
package track

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is the local reference basis sampled from a course at a distance:
// a center point, three orthonormal directions, and the pipe radius there.
type Frame struct {
	Center  mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
	Radius  float64
}

// SurfacePoint returns the point on the tube wall at the given
// cross-section angle in degrees (270 = bottom).
func (f Frame) SurfacePoint(angleDeg float64) mgl64.Vec3 {
	return f.PointAtRadius(angleDeg, f.Radius)
}

// PointAtRadius returns the point at the given angle but a custom radial
// distance from the center. Jump arcs use this to pull the rider inward.
func (f Frame) PointAtRadius(angleDeg, radius float64) mgl64.Vec3 {
	rad := angleDeg * math.Pi / 180
	return f.Center.
		Add(f.Right.Mul(math.Cos(rad) * radius)).
		Add(f.Up.Mul(math.Sin(rad) * radius))
}

// Radial returns the unit vector from the center toward the wall at the
// given angle.
func (f Frame) Radial(angleDeg float64) mgl64.Vec3 {
	rad := angleDeg * math.Pi / 180
	return f.Right.Mul(math.Cos(rad)).Add(f.Up.Mul(math.Sin(rad)))
}

// Provider yields path frames and fork zones by distance traveled.
// Implementations must return orthonormal frames for any non-negative
// distance; queries past the course end keep returning the final stretch.
type Provider interface {
	// FrameAt samples the main path frame at the given distance.
	FrameAt(distance float64) Frame
	// ForkAt returns the fork zone containing the distance and its
	// registry index, or (nil, -1) when no fork is active there.
	ForkAt(distance float64) (*ForkZone, int)
	// Fork resolves a registry index from a previous ForkAt call.
	// Returns nil for stale or invalid indices.
	Fork(id int) *ForkZone
}
