package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/region"
	"golang.org/x/image/colornames"
)

// Options is read-only state the sink needs besides the samples.
type Options struct {
	Dark  bool
	Debug bool
	// Radius is drawn as the influence ring in debug mode.
	Radius float64
	// Pointer is drawn when PointerIn is set.
	Pointer   cp.Vector
	PointerIn bool
}

// Draw paints samples in order. Each shape is translated by its float offset
// and scaled around its authored box; the measured anchor is only used by
// the debug overlay.
func Draw(screen *ebiten.Image, samples []region.Sample, opts Options) {
	screen.Fill(common.Background(opts.Dark))
	for _, s := range samples {
		drawShape(screen, s, opts.Dark)
	}
	if opts.Debug {
		drawDebug(screen, samples, opts)
	}
}

func drawShape(screen *ebiten.Image, s region.Sample, dark bool) {
	size := int(math.Ceil(s.Size))
	if size <= 0 {
		return
	}
	img := ShapeImage(s.Kind, s.Gradient, size, dark)

	scale := s.Scale
	if !(scale > 0) {
		scale = 1
	}
	half := float64(size) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(half, half)
	op.GeoM.Translate(s.X, s.Y+s.OffsetY)
	op.ColorScale.ScaleAlpha(float32(s.Opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func drawDebug(screen *ebiten.Image, samples []region.Sample, opts Options) {
	for _, s := range samples {
		if !s.Measured {
			continue
		}
		x, y := float32(s.Anchor.X), float32(s.Anchor.Y)
		vector.StrokeLine(screen, x-6, y, x+6, y, 1, colornames.Red, true)
		vector.StrokeLine(screen, x, y-6, x, y+6, 1, colornames.Red, true)
		if opts.Radius > 0 {
			vector.StrokeCircle(screen, x, y, float32(opts.Radius), 1, color.RGBA{R: 255, A: 64}, true)
		}
	}
	if opts.PointerIn {
		vector.StrokeCircle(screen, float32(opts.Pointer.X), float32(opts.Pointer.Y), 4, 1, colornames.Lime, true)
	}
}
