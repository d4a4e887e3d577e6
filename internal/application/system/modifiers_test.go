package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/ecs"
)

func createTestModifiers(world *ecs.World) (*ModifierSystem, *entity.Rider, *spyFeedback) {
	cfg := createTestTuning()
	hooks, spy := createSpyHooks()
	s := NewModifierSystem(&cfg.Modifiers, cfg.Feedback, world, hooks)
	r := entity.NewRider(14, 24)
	return s, r, spy
}

func TestBoost_ScalesAndRestoresBaselineExactly(t *testing.T) {
	s, r, spy := createTestModifiers(nil)
	r.Speed = 20

	s.ApplySpeedBoost(r, 1.5, 3.0)

	assert.Equal(t, 36.0, r.MaxSpeed)
	assert.Equal(t, 30.0, r.Speed)
	assert.Equal(t, 24.0, r.Boost.BaselineMax)
	assert.Contains(t, spy.started, "speed_lines")
	assert.Equal(t, []float64{8}, spy.fovs)

	for i := 0; i < 181; i++ { // past 3.0s
		s.Update(r, dt60)
	}

	assert.False(t, r.Boost.Active)
	assert.Equal(t, 24.0, r.MaxSpeed, "baseline restored bit-for-bit")
	assert.Equal(t, 24.0, r.Speed, "speed clamps down to the restored cap")
	assert.Contains(t, spy.stopped, "speed_lines")
}

func TestBoost_ReapplyDoesNotCompound(t *testing.T) {
	s, r, _ := createTestModifiers(nil)

	s.ApplySpeedBoost(r, 1.5, 3.0)
	s.ApplySpeedBoost(r, 2.0, 1.0)

	assert.Equal(t, 48.0, r.MaxSpeed, "the new multiplier applies to the original baseline")
	assert.Equal(t, 24.0, r.Boost.BaselineMax)
	assert.Equal(t, 1.0, r.Boost.Remaining, "last write wins on timing")
	assert.Equal(t, 2.0, r.Boost.Multiplier)
}

func TestBoost_WarningFiresOnce(t *testing.T) {
	s, r, spy := createTestModifiers(nil)
	s.ApplySpeedBoost(r, 1.5, 1.0)

	for i := 0; i < 59; i++ { // just short of expiry, past the 0.8 mark
		s.Update(r, dt60)
	}

	assert.Equal(t, 1, spy.played("boost_warning"))
	assert.True(t, r.Boost.Active, "warning precedes expiry")
}

func TestBoost_RejectsDegenerateArgs(t *testing.T) {
	s, r, _ := createTestModifiers(nil)

	s.ApplySpeedBoost(r, 0, 3)
	s.ApplySpeedBoost(r, 1.5, 0)

	assert.False(t, r.Boost.Active)
	assert.Equal(t, 24.0, r.MaxSpeed)
}

func TestBoost_FractionCountsDown(t *testing.T) {
	s, r, _ := createTestModifiers(nil)
	s.ApplySpeedBoost(r, 1.5, 2.0)

	assert.Equal(t, 1.0, r.Boost.Fraction())
	for i := 0; i < 60; i++ {
		s.Update(r, dt60)
	}
	assert.InDelta(t, 0.5, r.Boost.Fraction(), 0.01)
}

func TestMagnet_PullsCoinsWithoutOvershoot(t *testing.T) {
	world := ecs.NewWorld()
	near := world.AddCoin(entity.NewCoin(mgl64.Vec3{3, 0, 0}))
	far := world.AddCoin(entity.NewCoin(mgl64.Vec3{40, 0, 0}))

	s, r, _ := createTestModifiers(world)
	r.WorldPos = mgl64.Vec3{}
	s.ActivateCoinMagnet(r, 5.0)

	prev := world.Coin(near).Pos.Sub(r.WorldPos).Len()
	for i := 0; i < 120; i++ {
		s.Update(r, dt60)
		gap := world.Coin(near).Pos.Sub(r.WorldPos).Len()
		require.Less(t, gap, prev, "tick %d: the gap must shrink monotonically", i)
		require.GreaterOrEqual(t, gap, 0.0)
		prev = gap
	}
	assert.Less(t, prev, 0.1, "two seconds of attraction all but closes the gap")
	assert.Equal(t, mgl64.Vec3{40, 0, 0}, world.Coin(far).Pos,
		"coins outside the magnet radius stay put")
}

func TestMagnet_ReArmAndExpiry(t *testing.T) {
	world := ecs.NewWorld()
	s, r, spy := createTestModifiers(world)

	s.ActivateCoinMagnet(r, 1.0)
	s.ActivateCoinMagnet(r, 2.0)

	assert.Equal(t, 2.0, r.Magnet.Remaining, "re-arming replaces the timer")
	assert.Equal(t, 1, spy.played("magnet_on"), "the start cue fires only on activation")
	assert.Equal(t, []string{"magnet_field"}, spy.started)

	for i := 0; i < 121; i++ {
		s.Update(r, dt60)
	}
	assert.False(t, r.Magnet.Active)
	assert.Contains(t, spy.stopped, "magnet_field")
	assert.Equal(t, 1, spy.played("magnet_off"))
}

func TestMagnet_NilWorldJustTimesOut(t *testing.T) {
	s, r, _ := createTestModifiers(nil)
	s.ActivateCoinMagnet(r, 0.5)

	for i := 0; i < 31; i++ {
		s.Update(r, dt60)
	}
	assert.False(t, r.Magnet.Active)
}
