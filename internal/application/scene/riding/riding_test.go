package riding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/flume/internal/application/runner"
	"github.com/younwookim/flume/internal/application/state"
	"github.com/younwookim/flume/internal/application/system"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

const dt60 = 1.0 / 60.0

func createTestTuning() *config.TuningConfig {
	return &config.TuningConfig{
		Locomotion: config.LocomotionConfig{
			BaseSpeed: 14, MinSpeed: 6, MaxSpeed: 24,
			Acceleration: 10, SlopeGain: 6,
			SteerGain: 220, SteerEase: 6, SteerSmoothing: 12,
			SteerDeadzone: 0.05, NeutralDecay: 3,
			DriftThreshold: 60, DriftEaseScale: 0.45,
			GravityGain: 260, GravityCurve: 0.8,
			SettleAngle: 8, SettleDamping: 6,
			PoseLerpRate: 14,
		},
		Airborne: config.AirborneConfig{
			JumpHeight: 2.2, JumpDuration: 0.9,
			StretchWindow: 0.15, StretchScale: 1.25, SquashScale: 0.8,
			TrickRotSpeed: 540, TrickScoreBonus: 100,
			TrickBoostMult: 1.3, TrickBoostDur: 1.5,
			Stomp: config.StompConfig{
				Window: 2, BaseScore: 50,
				BounceHeight: 1.6, BounceHeightStep: 0.5,
				BounceMaxHeight: 3.4, BounceDuration: 0.55,
			},
		},
		Reaction: config.ReactionConfig{
			StunDuration: 1.5, StunSpeedMult: 0.35,
			RecoveryDuration: 0.5, InvincibilityDuration: 2.0,
			FlickerBaseHz: 4, FlickerMaxHz: 14,
			DropKnockback: 1.2,
		},
		Drop: config.DropConfig{
			OffsetEase: 7, RecenterRate: 0.8, InputDeadzone: 0.1,
			TiltMax: 18, BobAmplitude: 3, BobFrequency: 0.6,
			PlungeStart: 0.8, PlungeMaxMult: 4, PlungePoseBoost: 1.5,
		},
		Modifiers: config.ModifiersConfig{
			BoostWarningFraction: 0.8, MagnetRadius: 6, MagnetRate: 8,
		},
	}
}

func createTestPickups() *config.PickupsConfig {
	return &config.PickupsConfig{
		Boost:  config.BoostPickupConfig{Multiplier: 1.5, Duration: 3},
		Magnet: config.MagnetPickupConfig{Duration: 5},
		Drop: config.DropGateConfig{
			Duration: 2, Speed: 18, MoveRadius: 2.6, MoveSpeed: 6,
			ExitBoostMult: 1.8, ExitBoostDur: 2.5,
		},
	}
}

func createTestCourse() *config.CourseConfig {
	return &config.CourseConfig{
		ID: "test", Name: "Test Flume",
		Length: 2000, Radius: 4,
		Coins: []config.PlacedConfig{
			{Distance: 6, Angle: 270},
		},
		Hazards: []config.HazardConfig{
			{Type: "goo", Distance: 40, Angle: 270},
		},
		Gates: []config.GateConfig{
			{Type: "boost", Distance: 20},
			{Type: "magnet", Distance: 60},
			{Type: "drop", Distance: 100},
		},
	}
}

func createScene(t *testing.T, course *config.CourseConfig) *Riding {
	t.Helper()
	r := New(Params{
		Tuning:  createTestTuning(),
		Pickups: createTestPickups(),
		Course:  course,
		Seed:    1,
		ScreenW: 960, ScreenH: 540,
	})
	r.st = state.StateRiding
	return r
}

func rideTo(r *Riding, distance float64) {
	for i := 0; i < 100_000 && r.Controller().Rider().Distance < distance; i++ {
		r.Step(system.InputState{}, dt60)
	}
}

func TestRiding_StartsOnTitle(t *testing.T) {
	r := New(Params{
		Tuning:  createTestTuning(),
		Pickups: createTestPickups(),
		Course:  createTestCourse(),
	})
	assert.Equal(t, state.StateTitle, r.State())
}

func TestRiding_BoostGateFiresOnce(t *testing.T) {
	r := createScene(t, createTestCourse())

	rideTo(r, 21)
	rd := r.Controller().Rider()
	require.True(t, rd.Boost.Active, "crossing the boost gate arms the boost")
	assert.Equal(t, 1.5, rd.Boost.Multiplier)

	// Let it expire; re-running the same stretch must not re-fire.
	for i := 0; i < 200; i++ {
		r.Step(system.InputState{}, dt60)
	}
	assert.False(t, rd.Boost.Active, "the gate is one-shot")
}

func TestRiding_MagnetGateArmsTheMagnet(t *testing.T) {
	r := createScene(t, createTestCourse())

	rideTo(r, 61)
	assert.True(t, r.Controller().Rider().Magnet.Active)
}

func TestRiding_DropGateEntersDropMode(t *testing.T) {
	r := createScene(t, createTestCourse())

	rideTo(r, 101)
	rd := r.Controller().Rider()
	require.True(t, rd.IsDropping())
	assert.Equal(t, 2.6, rd.Drop.MoveRadius)

	// Ride out the 2s drop: back on the wall with the flush boost.
	for i := 0; i < 130; i++ {
		r.Step(system.InputState{}, dt60)
	}
	assert.False(t, rd.IsDropping())
	assert.True(t, rd.Boost.Active, "the flush exit boost applies")
}

func TestRiding_HazardOnPathStunsOnce(t *testing.T) {
	r := createScene(t, createTestCourse())

	rideTo(r, 41)
	rd := r.Controller().Rider()
	assert.NotEqual(t, entity.PhaseNormal, rd.Hit.Phase, "riding through goo hits")

	// The same hazard never re-triggers, even after the reaction ends.
	for i := 0; i < 260; i++ {
		r.Step(system.InputState{}, dt60)
	}
	require.Equal(t, entity.PhaseNormal, rd.Hit.Phase)
	rd.Distance = 39.5
	r.Step(system.InputState{}, dt60)
	assert.Equal(t, entity.PhaseNormal, rd.Hit.Phase)
}

func TestRiding_JumpClearsHazards(t *testing.T) {
	course := createTestCourse()
	course.Hazards[0].Distance = 10
	r := createScene(t, course)

	launched := false
	for i := 0; i < 600 && r.Controller().Rider().Distance < 12; i++ {
		in := system.InputState{}
		if !launched && r.Controller().Rider().Distance > 7 {
			in.JumpPressed = true
			launched = true
		}
		r.Step(in, dt60)
	}

	assert.Equal(t, entity.PhaseNormal, r.Controller().Rider().Hit.Phase,
		"an airborne rider sails over the hazard")
}

func TestRiding_HazardOffAngleMisses(t *testing.T) {
	course := createTestCourse()
	course.Hazards[0].Angle = 90 // tube ceiling; the rider stays at 270
	r := createScene(t, course)

	rideTo(r, 45)
	assert.Equal(t, entity.PhaseNormal, r.Controller().Rider().Hit.Phase)
}

func TestRiding_CoinPickup(t *testing.T) {
	r := createScene(t, createTestCourse())
	require.Equal(t, 1, r.world.CoinCount())

	rideTo(r, 10)

	assert.Zero(t, r.world.CoinCount(), "the bottom-row coin is swept up")
	assert.Equal(t, 10, r.Controller().Rider().Score)
}

func TestRiding_FinishAtCourseEnd(t *testing.T) {
	course := createTestCourse()
	course.Length = 30
	course.Hazards = nil
	course.Gates = nil
	r := createScene(t, course)

	for i := 0; i < 600 && r.State() != state.StateResults; i++ {
		_, err := r.Update(dt60)
		require.NoError(t, err)
	}
	// Update polls the keyboard only on state transitions; the riding
	// path itself is pure simulation, so the run completes headlessly.
	assert.Equal(t, state.StateResults, r.State())
}

func TestRiding_PublishReceivesSnapshots(t *testing.T) {
	var got []runner.Snapshot
	r := New(Params{
		Tuning:  createTestTuning(),
		Pickups: createTestPickups(),
		Course:  createTestCourse(),
		Publish: func(s runner.Snapshot) { got = append(got, s) },
		ScreenW: 960, ScreenH: 540,
	})
	r.st = state.StateRiding

	for i := 0; i < 5; i++ {
		r.Step(system.InputState{}, dt60)
	}

	require.Len(t, got, 5)
	assert.Greater(t, got[4].Distance, got[0].Distance)
	assert.Equal(t, "normal", got[0].HitPhase)
}
