// Package ebitenhost runs a choreo Scheduler inside an Ebitengine game loop.
//
// The host ticks the scheduler once per Ebitengine update with a fixed delta
// of 1/TPS seconds, scaled by the host Clock, then calls an optional update
// hook. Draw clears the screen to the background color and calls an optional
// draw hook.
//
//	sched := choreo.NewScheduler("game")
//	sched.Add(intro)
//	g := ebitenhost.NewGame(sched, ebitenhost.RunConfig{Title: "demo", Width: 640, Height: 480})
//	g.SetDrawFunc(func(screen *ebiten.Image) { ... })
//	log.Fatal(ebitenhost.Run(g))
package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/choreo"
)

// RunConfig holds window and loop settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    color.Color
	ShowFPS       bool
	// TPS overrides the Ebitengine tick rate when positive.
	TPS int
}

// Game implements ebiten.Game around a Scheduler.
type Game struct {
	sched *choreo.Scheduler
	clock *choreo.Clock
	cfg   RunConfig

	update func() error
	draw   func(screen *ebiten.Image)

	// tps reports the current tick rate; replaced in tests.
	tps func() int
}

// NewGame returns a Game ticking sched with a clock at time scale 1.
func NewGame(sched *choreo.Scheduler, cfg RunConfig) *Game {
	if cfg.Background == nil {
		cfg.Background = color.RGBA{26, 26, 38, 255}
	}
	return &Game{
		sched: sched,
		clock: choreo.NewClock(),
		cfg:   cfg,
		tps:   ebiten.TPS,
	}
}

// Scheduler returns the scheduler ticked by the game.
func (g *Game) Scheduler() *choreo.Scheduler { return g.sched }

// Clock returns the host clock. Set TimeScale or Paused on it to slow or
// freeze scaled tweens.
func (g *Game) Clock() *choreo.Clock { return g.clock }

// SetClock replaces the host clock, typically with Config.Clock().
func (g *Game) SetClock(c *choreo.Clock) {
	if c != nil {
		g.clock = c
	}
}

// SetUpdateFunc sets a hook called after the scheduler ticks.
func (g *Game) SetUpdateFunc(fn func() error) { g.update = fn }

// SetDrawFunc sets a hook called after the screen is cleared.
func (g *Game) SetDrawFunc(fn func(screen *ebiten.Image)) { g.draw = fn }

// Update ticks the scheduler by one fixed step. Implements ebiten.Game.
func (g *Game) Update() error {
	g.sched.Tick(g.clock.FixedFrame(g.tps()))
	if g.update != nil {
		return g.update()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	if g.draw != nil {
		g.draw(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nframe: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.sched.Frames()))
	}
}

// Layout returns the configured screen size. Implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width <= 0 || g.cfg.Height <= 0 {
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and blocks until the game exits.
func Run(g *Game) error {
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	}
	if g.cfg.TPS > 0 {
		ebiten.SetTPS(g.cfg.TPS)
	}
	return ebiten.RunGame(g)
}
