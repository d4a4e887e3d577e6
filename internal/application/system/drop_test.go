package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/flume/internal/domain/entity"
)

func createTestDrop() (*DropSystem, *entity.Rider, *spyFeedback) {
	cfg := createTestTuning()
	hooks, spy := createSpyHooks()
	s := NewDropSystem(&cfg.Drop, &cfg.Locomotion, cfg.Feedback, createStraightCourse(), hooks)
	r := entity.NewRider(14, 24)
	return s, r, spy
}

func TestDrop_EnterGuards(t *testing.T) {
	s, r, _ := createTestDrop()

	r.Jump.Active = true
	s.Enter(r, createTestDropParams())
	assert.False(t, r.IsDropping(), "no drop while airborne")

	r.Jump.Active = false
	s.Enter(r, createTestDropParams())
	require.True(t, r.IsDropping())

	r.Drop.Timer = 3
	s.Enter(r, createTestDropParams())
	assert.Equal(t, 3.0, r.Drop.Timer, "re-entry while dropping is ignored")
}

func TestDrop_EnterSideEffects(t *testing.T) {
	s, r, spy := createTestDrop()
	r.AngularVel = 140

	s.Enter(r, createTestDropParams())

	assert.Zero(t, r.AngularVel)
	assert.True(t, spy.underwater)
	assert.Contains(t, spy.started, "bubbles")
	assert.Equal(t, 1, spy.played("splash"))
}

func TestDrop_OffsetStaysInsideDisk(t *testing.T) {
	// Random stick mashing must never push the offset past the move
	// radius, even with the inertial chase in between.
	s, r, _ := createTestDrop()
	s.Enter(r, createTestDropParams())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 600; i++ {
		in := InputState{
			DropX: rng.Float64()*2 - 1,
			DropY: rng.Float64()*2 - 1,
		}
		s.Update(r, in, dt60)
		require.LessOrEqual(t, r.Drop.Offset.Len(), r.Drop.MoveRadius+1e-9,
			"tick %d: offset escaped the disk", i)
		require.LessOrEqual(t, r.Drop.Target.Len(), r.Drop.MoveRadius+1e-9,
			"tick %d: target escaped the disk", i)
	}
}

func TestDrop_InertialChaseNeverSnaps(t *testing.T) {
	s, r, _ := createTestDrop()
	s.Enter(r, createTestDropParams())

	in := InputState{DropX: 1}
	s.Update(r, in, dt60)

	assert.Greater(t, r.Drop.Target.X(), r.Drop.Offset.X(),
		"the offset lags behind the target on the first tick")
	assert.Greater(t, r.Drop.Offset.X(), 0.0)
}

func TestDrop_IdleRecentersTarget(t *testing.T) {
	s, r, _ := createTestDrop()
	s.Enter(r, createTestDropParams())

	in := InputState{DropX: 1}
	for i := 0; i < 60; i++ {
		s.Update(r, in, dt60)
	}
	pushed := r.Drop.Target.Len()
	require.Greater(t, pushed, 1.0)

	for i := 0; i < 120; i++ {
		s.Update(r, InputState{}, dt60)
	}
	assert.Less(t, r.Drop.Target.Len(), pushed-1.5,
		"the ambient current pulls the target back toward center")
}

func TestDrop_PlungeRampTiming(t *testing.T) {
	s, r, _ := createTestDrop()
	s.Enter(r, createTestDropParams())

	// Flat section: forward speed is the drop speed exactly.
	s.Update(r, InputState{}, dt60)
	assert.Equal(t, 18.0, r.Speed)

	// Walk to 90% progress: u = 0.5, mult = 1 + 3*0.25 = 1.75.
	r.Drop.Timer = 0.9 * r.Drop.Duration
	s.Update(r, InputState{}, dt60)
	u := (r.Drop.Progress() - 0.8) / 0.2
	assert.InDelta(t, 18*(1+3*u*u), r.Speed, 1e-9)
	assert.Greater(t, r.Speed, 18.0)

	// At the very end the ramp reaches 4x.
	r.Drop.Timer = r.Drop.Duration - dt60/2
	s.Update(r, InputState{}, dt60)
	assert.False(t, r.IsDropping(), "the drop exits at the end of the ramp")
}

func TestDrop_RumbleTracksPlunge(t *testing.T) {
	s, r, spy := createTestDrop()
	s.Enter(r, createTestDropParams())

	s.Update(r, InputState{}, dt60)
	assert.Zero(t, spy.rumble, "no rumble before the plunge")

	r.Drop.Timer = 0.95 * r.Drop.Duration
	s.Update(r, InputState{}, dt60)
	assert.Greater(t, spy.rumble, 0.5)
}

func TestDrop_ExitRestoresSurfaceState(t *testing.T) {
	s, r, spy := createTestDrop()
	boosts := [][2]float64{}
	s.OnExitBoost = func(mult, dur float64) {
		boosts = append(boosts, [2]float64{mult, dur})
	}
	s.Enter(r, createTestDropParams())
	r.Angle = 95
	r.AngularVel = 30

	r.Drop.Timer = r.Drop.Duration
	s.Update(r, InputState{}, dt60)

	assert.False(t, r.IsDropping())
	assert.Equal(t, entity.DropState{}, r.Drop, "drop state fully cleared")
	assert.Equal(t, entity.BottomAngle, r.Angle, "flushed out at the tube bottom")
	assert.Zero(t, r.AngularVel)
	assert.Equal(t, 14.0, r.Speed, "forward speed resets to base before the boost applies")

	assert.False(t, spy.underwater)
	assert.Zero(t, spy.rumble)
	assert.Contains(t, spy.stopped, "bubbles")
	assert.Contains(t, spy.bursts, "flush_spray")
	assert.Equal(t, 1, spy.played("flush"))
	require.Len(t, boosts, 1)
	assert.Equal(t, [2]float64{1.8, 2.5}, boosts[0])
}

func TestDrop_DistanceAdvances(t *testing.T) {
	s, r, _ := createTestDrop()
	s.Enter(r, createTestDropParams())

	prev := r.Distance
	for i := 0; i < 60; i++ {
		s.Update(r, InputState{}, dt60)
		require.Greater(t, r.Distance, prev)
		prev = r.Distance
	}
	assert.InDelta(t, 18.0, r.Distance, 0.01, "one flat second covers the drop speed")
}

func TestDrop_PoseFloatsAtOffset(t *testing.T) {
	s, r, _ := createTestDrop()
	s.Enter(r, createTestDropParams())

	in := InputState{DropX: 1}
	for i := 0; i < 300; i++ {
		s.Update(r, in, dt60)
	}

	frame := createStraightCourse().FrameAt(r.Distance)
	want := frame.Center.Add(frame.Right.Mul(r.Drop.Offset.X()))
	assert.InDelta(t, want.X(), r.WorldPos.X(), 0.2)
	assert.True(t, r.WorldRot.Len() > 0.99 && r.WorldRot.Len() < 1.01,
		"pose quaternion stays normalized")
}
