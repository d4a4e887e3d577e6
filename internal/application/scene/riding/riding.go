// Package riding provides the demo's gameplay scene: it builds the
// course, steps the controller at the fixed simulation rate, fires gate
// and collision events, and draws the cross-section debug view.
package riding

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/younwookim/flume/internal/application/replay"
	"github.com/younwookim/flume/internal/application/runner"
	"github.com/younwookim/flume/internal/application/scene"
	"github.com/younwookim/flume/internal/application/state"
	"github.com/younwookim/flume/internal/application/system"
	"github.com/younwookim/flume/internal/domain/entity"
	"github.com/younwookim/flume/internal/domain/track"
	"github.com/younwookim/flume/internal/ecs"
	"github.com/younwookim/flume/internal/infrastructure/config"
)

const (
	pixelsPerUnit = 28.0
	pickupRange   = 1.2
	hazardWindow  = 0.8
	hazardArc     = 30.0 // degrees of cross-section a hazard covers
)

var (
	colorBG     = color.RGBA{18, 22, 38, 255}
	colorTube   = color.RGBA{90, 110, 150, 255}
	colorRider  = color.RGBA{120, 220, 120, 255}
	colorCoin   = color.RGBA{255, 215, 0, 255}
	colorHazard = color.RGBA{220, 70, 70, 255}
	colorFork   = color.RGBA{150, 120, 230, 255}
	colorDisk   = color.RGBA{70, 130, 180, 120}
	colorWater  = color.RGBA{30, 80, 140, 70}
)

// Params configures the riding scene.
type Params struct {
	Tuning  *config.TuningConfig
	Pickups *config.PickupsConfig
	Course  *config.CourseConfig
	Seed    int64

	// Input is the live source; nil selects the keyboard. A non-nil
	// Replayer overrides it.
	Input    system.Source
	Replayer *replay.Replayer
	Recorder *replay.Recorder

	// Publish receives a telemetry snapshot each tick, optional.
	Publish func(runner.Snapshot)

	Log *zap.Logger

	ScreenW, ScreenH int
}

// Riding is the gameplay scene.
type Riding struct {
	p      Params
	course *track.Course
	world  *ecs.World
	ctl    *runner.Controller
	gates  []system.Gate
	fx     *vfx
	log    *zap.Logger

	st       state.GameState
	hitsDone map[*entity.Hazard]bool
}

// New builds the scene: analytic course, populated world, seeded
// controller.
func New(p Params) *Riding {
	if p.Input == nil {
		p.Input = system.NewInputSystem()
	}
	if p.Log == nil {
		p.Log = zap.NewNop()
	}

	course := system.BuildCourse(p.Course)
	world := ecs.NewWorld()
	system.PopulateWorld(p.Course, course, world)

	fx := &vfx{}
	rng := rand.New(rand.NewSource(p.Seed))
	ctl := runner.New(p.Tuning, course, world, fx.hooks(), rng)

	return &Riding{
		p:        p,
		course:   course,
		world:    world,
		ctl:      ctl,
		gates:    system.Gates(p.Course),
		fx:       fx,
		log:      p.Log,
		st:       state.StateTitle,
		hitsDone: make(map[*entity.Hazard]bool),
	}
}

// Controller exposes the controller for tests.
func (r *Riding) Controller() *runner.Controller {
	return r.ctl
}

// State exposes the scene state for tests.
func (r *Riding) State() state.GameState {
	return r.st
}

// OnEnter logs the run parameters.
func (r *Riding) OnEnter() {
	r.log.Info("ride starting",
		zap.String("course", r.p.Course.ID),
		zap.Int64("seed", r.p.Seed),
		zap.Bool("replay", r.p.Replayer != nil),
	)
}

// OnExit stops the recorder.
func (r *Riding) OnExit() {
	if r.p.Recorder != nil {
		r.p.Recorder.Stop()
	}
}

// Update advances the scene one frame.
func (r *Riding) Update(dt float64) (scene.Scene, error) {
	switch r.st {
	case state.StateTitle:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			r.st = state.StateRiding
		}
		return nil, nil
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			r.st = state.StateRiding
		}
		return nil, nil
	case state.StateResults:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return nil, ebiten.Termination
		}
		return nil, nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		r.st = state.StatePaused
		return nil, nil
	}

	in, ok := r.nextInput()
	if !ok {
		r.finish("replay exhausted")
		return nil, nil
	}
	if r.p.Recorder != nil {
		r.p.Recorder.RecordFrame(toReplayInput(in))
	}

	r.Step(in, dt)

	if r.ctl.Rider().Distance >= r.course.Length {
		r.finish("course complete")
	}
	return nil, nil
}

// Step runs one simulation tick plus the scene-level events; split from
// Update so tests can drive it without the keyboard.
func (r *Riding) Step(in system.InputState, dt float64) {
	r.ctl.Update(in, dt)
	r.fireGates()
	r.checkHazards()
	r.collectCoins()
	r.fx.decay(dt)

	if r.p.Publish != nil {
		r.p.Publish(r.ctl.Snapshot())
	}
}

func (r *Riding) nextInput() (system.InputState, bool) {
	if r.p.Replayer != nil {
		in, ok := r.p.Replayer.Next()
		if !ok {
			return system.InputState{}, false
		}
		return fromReplayInput(in), true
	}
	return r.p.Input.Poll(), true
}

// fireGates triggers each gate once when the rider passes it.
func (r *Riding) fireGates() {
	d := r.ctl.Rider().Distance
	for i := range r.gates {
		g := &r.gates[i]
		if g.Triggered || d < g.Distance {
			continue
		}
		g.Triggered = true
		switch g.Type {
		case "boost":
			r.ctl.ApplySpeedBoost(r.p.Pickups.Boost.Multiplier, r.p.Pickups.Boost.Duration)
		case "magnet":
			r.ctl.ActivateCoinMagnet(r.p.Pickups.Magnet.Duration)
		case "drop":
			dg := r.p.Pickups.Drop
			r.ctl.EnterDrop(system.DropParams{
				Duration:      dg.Duration,
				Speed:         dg.Speed,
				MoveRadius:    dg.MoveRadius,
				MoveSpeed:     dg.MoveSpeed,
				ExitBoostMult: dg.ExitBoostMult,
				ExitBoostDur:  dg.ExitBoostDur,
			})
		}
		r.log.Debug("gate fired", zap.String("type", g.Type), zap.Float64("distance", g.Distance))
	}
}

// checkHazards hits the rider against hazards it passes through. Each
// hazard triggers once; the jump arc clears the rider over them.
func (r *Riding) checkHazards() {
	rd := r.ctl.Rider()
	if rd.IsAirborne() {
		return
	}
	r.world.HazardsNear(rd.Distance, hazardWindow, func(h *entity.Hazard) {
		if r.hitsDone[h] {
			return
		}
		if !rd.IsDropping() && math.Abs(entity.ShortestDelta(rd.Angle, h.Angle)) > hazardArc {
			return
		}
		r.hitsDone[h] = true
		r.ctl.TakeHit(h)
	})
}

// collectCoins picks up coins touching the rider.
func (r *Riding) collectCoins() {
	rd := r.ctl.Rider()
	var picked []ecs.ID
	var points int
	r.world.QueryNearby(rd.WorldPos, pickupRange, func(id ecs.ID, c *entity.Coin) {
		picked = append(picked, id)
		points += c.Value
	})
	for _, id := range picked {
		r.world.RemoveCoin(id)
	}
	if points > 0 {
		rd.Score += points
	}
}

func (r *Riding) finish(reason string) {
	r.st = state.StateResults
	r.log.Info("ride finished",
		zap.String("reason", reason),
		zap.Float64("distance", r.ctl.Rider().Distance),
		zap.Int("score", r.ctl.Rider().Score),
	)
}

// Draw renders the cross-section debug view and the HUD.
func (r *Riding) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	rd := r.ctl.Rider()
	snap := r.ctl.Snapshot()
	frame := r.ctl.Frame()

	cx := float32(r.p.ScreenW)/2 + float32((rand.Float64()*2-1)*r.fx.shake)
	cy := float32(r.p.ScreenH)/2 + float32((rand.Float64()*2-1)*(r.fx.shake+r.fx.rumble*3))
	tubeR := float32(frame.Radius * pixelsPerUnit)

	vector.StrokeCircle(screen, cx, cy, tubeR, 2, colorTube, true)

	if zone, _ := r.course.ForkAt(rd.Distance); zone != nil {
		vector.StrokeCircle(screen, cx, cy, tubeR+4, 1, colorFork, true)
	}

	r.drawPlacements(screen, cx, cy, tubeR, rd)

	if rd.IsDropping() {
		diskR := float32(rd.Drop.MoveRadius * pixelsPerUnit)
		vector.DrawFilledCircle(screen, cx, cy, diskR, colorDisk, true)
		mx := cx + float32(rd.Drop.Offset.X()*pixelsPerUnit)
		my := cy - float32(rd.Drop.Offset.Y()*pixelsPerUnit)
		vector.DrawFilledCircle(screen, mx, my, 6, colorRider, true)
	} else if snap.Visible {
		rad := rd.Angle * math.Pi / 180
		radius := frame.Radius
		if rd.Jump.Active {
			radius -= rd.Jump.Excursion
		}
		mx := cx + float32(math.Cos(rad)*radius*pixelsPerUnit)
		my := cy - float32(math.Sin(rad)*radius*pixelsPerUnit)
		vector.DrawFilledCircle(screen, mx, my, 6, colorRider, true)
	}

	if r.fx.underwater {
		vector.DrawFilledRect(screen, 0, 0, float32(r.p.ScreenW), float32(r.p.ScreenH), colorWater, false)
	}
	if r.fx.flashTimer > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(r.p.ScreenW), float32(r.p.ScreenH), r.fx.flash, false)
	}

	r.drawHUD(screen, snap)
}

// drawPlacements marks nearby coins and hazards on the cross-section.
func (r *Riding) drawPlacements(screen *ebiten.Image, cx, cy, tubeR float32, rd *entity.Rider) {
	r.world.EachHazard(func(h *entity.Hazard) {
		if math.Abs(h.Distance-rd.Distance) > 30 {
			return
		}
		rad := h.Angle * math.Pi / 180
		hx := cx + float32(math.Cos(rad))*tubeR
		hy := cy - float32(math.Sin(rad))*tubeR
		vector.DrawFilledCircle(screen, hx, hy, 4, colorHazard, true)
	})
	r.world.EachCoin(func(_ ecs.ID, c *entity.Coin) {
		rel := c.Pos.Sub(rd.WorldPos)
		if math.Abs(rel.Dot(r.ctl.Frame().Forward)) > 30 {
			return
		}
		px := cx + float32(rel.Dot(r.ctl.Frame().Right)*pixelsPerUnit)
		py := cy - float32(rel.Dot(r.ctl.Frame().Up)*pixelsPerUnit)
		vector.DrawFilledCircle(screen, px, py, 3, colorCoin, true)
	})
}

func (r *Riding) drawHUD(screen *ebiten.Image, snap runner.Snapshot) {
	switch r.st {
	case state.StateTitle:
		ebitenutil.DebugPrintAt(screen, "FLUME  --  press Enter to ride", 16, 16)
		return
	case state.StatePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED  --  press P to resume", 16, 16)
	case state.StateResults:
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("FINISHED  score %d  --  Esc to quit", snap.Score), 16, 16)
	}

	hud := fmt.Sprintf(
		"dist %6.1f  spd %5.1f  phase %s (%.0f%%)\nbranch %d  combo %d  score %d",
		snap.Distance, snap.Speed, snap.HitPhase, snap.HitProgress*100,
		snap.ForkBranch, snap.Combo, snap.Score,
	)
	if snap.BoostActive {
		hud += fmt.Sprintf("  BOOST %.0f%%", snap.BoostFraction*100)
	}
	if snap.MagnetActive {
		hud += "  MAGNET"
	}
	if snap.Dropping {
		hud += "  DROP"
	}
	ebitenutil.DebugPrintAt(screen, hud, 16, r.p.ScreenH-40)
}

func toReplayInput(in system.InputState) replay.Input {
	return replay.Input{
		Steer:         in.Steer,
		Throttle:      in.Throttle,
		JumpPressed:   in.JumpPressed,
		TrickForward:  in.TrickForward,
		TrickBackward: in.TrickBackward,
		StompPressed:  in.StompPressed,
		DropX:         in.DropX,
		DropY:         in.DropY,
	}
}

func fromReplayInput(in replay.Input) system.InputState {
	return system.InputState{
		Steer:         in.Steer,
		Throttle:      in.Throttle,
		JumpPressed:   in.JumpPressed,
		TrickForward:  in.TrickForward,
		TrickBackward: in.TrickBackward,
		StompPressed:  in.StompPressed,
		DropX:         in.DropX,
		DropY:         in.DropY,
	}
}
