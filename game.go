package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs/render"
	"github.com/milk9111/ambient/prefabs"
	"github.com/milk9111/ambient/region"
)

// scrollStep is how far one wheel notch scrolls the page, in pixels.
const scrollStep = 40

const maxTickDelta = 0.1

type Game struct {
	frames int

	shapesFile string
	region     *region.Region
	watcher    *prefabs.Watcher
	tuning     *Tuning
	ui         *ebitenui.UI

	debug      bool
	dark       bool
	showTuning bool

	width, height float64
	scroll        float64
	pointerIn     bool
	lastX, lastY  int
	lastTick      time.Time
}

func NewGame(shapesFile string, watch, debug, dark bool) (*Game, error) {
	reg, err := prefabs.LoadRegistry(shapesFile)
	if err != nil {
		return nil, fmt.Errorf("load shapes %s: %w", shapesFile, err)
	}

	r := region.FromRegistry(reg, debug)
	if err := r.MountAll(); err != nil {
		return nil, err
	}
	log.Printf("region %s: %d shapes from %s", r.ID, reg.Len(), shapesFile)

	g := &Game{
		shapesFile: shapesFile,
		region:     r,
		debug:      debug,
		dark:       dark,
	}
	g.tuning = NewTuning(r, reg)
	g.ui = NewTuningUI(g.tuning)

	if watch {
		dirs := prefabs.WatchDirs()
		w, err := prefabs.NewWatcher(dirs...)
		switch {
		case err != nil:
			log.Printf("prefabs: watch %v: %v", dirs, err)
		case len(dirs) == 0:
			log.Printf("prefabs: no %s/ directory on disk, nothing to watch", prefabs.DiskDir)
			_ = w.Close()
		default:
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.pollReload()
	g.updatePointer()
	g.updateScroll()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showTuning = !g.showTuning
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.showTuning {
		g.ui.Update()
		g.tuning.Refresh()
	}

	// The hero section is visible while any of it is on screen.
	g.region.SetVisible(g.height > 0 && g.scroll < g.height)
	g.region.Update(g.tickDelta(time.Now()))
	return nil
}

// tickDelta is the wall time since the previous tick. With TPS synced to the
// display ebiten reports no fixed rate, so the clock is measured; long stalls
// (window dragged, laptop asleep) are capped at maxTickDelta.
func (g *Game) tickDelta(now time.Time) float64 {
	last := g.lastTick
	g.lastTick = now
	if last.IsZero() {
		return region.DefaultStep
	}
	return common.Clamp(now.Sub(last).Seconds(), 0, maxTickDelta)
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		c, ok := g.watcher.Poll()
		if !ok {
			break
		}
		log.Printf("prefabs: %s changed", c.Path)
		changed = true
	}
	select {
	case err := <-g.watcher.Errors:
		if err != nil {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}
	if !changed {
		return
	}

	reg, err := prefabs.LoadRegistry(g.shapesFile)
	if err != nil {
		log.Printf("prefabs: reload %s: %v", g.shapesFile, err)
		return
	}
	if err := g.region.ReloadRegistry(reg); err != nil {
		log.Printf("region %s: reload: %v", g.region.ID, err)
		return
	}
	render.ClearTextures()
	g.tuning.SetDefaults(reg)
}

// updatePointer forwards cursor motion; leaving the window or losing focus is
// a pointer-leave.
func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && float64(x) < g.width && float64(y) < g.height
	switch {
	case inside && (!g.pointerIn || x != g.lastX || y != g.lastY):
		g.region.PointerMove(float64(x), float64(y))
	case !inside && g.pointerIn:
		g.region.PointerLeave()
	}
	g.pointerIn = inside
	g.lastX, g.lastY = x, y
}

func (g *Game) updateScroll() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	g.scroll = common.Clamp(g.scroll-dy*scrollStep, 0, g.height)
	g.region.Scroll(g.scroll)
}

func (g *Game) Draw(screen *ebiten.Image) {
	pos, in := g.region.Pointer()
	render.Draw(screen, g.region.Samples(), render.Options{
		Dark:      g.dark,
		Debug:     g.debug,
		Radius:    g.region.Params().Radius,
		Pointer:   pos,
		PointerIn: in,
	})

	if g.showTuning {
		g.ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  shapes: %d  scroll: %.0f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), len(g.region.MountedIDs()), g.scroll))
	}
}

// Layout sizes the region to the window; a change re-measures every anchor.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.scroll = math.Min(g.scroll, h)
		g.region.Resize(w, h)
	}
	return outsideWidth, outsideHeight
}
