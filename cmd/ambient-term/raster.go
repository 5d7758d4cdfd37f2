package main

import (
	"image/color"
	"math"

	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs/component"
	"github.com/milk9111/ambient/region"
)

// Rasterize samples each cell centre against every shape and returns one
// colour per cell, row major.
func Rasterize(samples []region.Sample, cols, rows int, dark bool) []color.RGBA {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	bg := common.Background(dark)
	out := make([]color.RGBA, cols*rows)
	for i := range out {
		out[i] = bg
	}

	for _, s := range samples {
		if !(s.Size > 0) {
			continue
		}
		g := common.ParseGradient(s.Gradient, dark)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				px, py := cellCenter(col, row)
				u, v, ok := localPoint(s, px, py)
				if !ok || !Inside(s.Kind, u, v, s.Size) {
					continue
				}
				i := row*cols + col
				out[i] = blend(out[i], g.At(v/s.Size), s.Opacity)
			}
		}
	}
	return out
}

// localPoint maps a region point into the shape's unscaled box, undoing the
// float offset and the scale around the box centre.
func localPoint(s region.Sample, px, py float64) (float64, float64, bool) {
	scale := s.Scale
	if !(scale > 0) {
		scale = 1
	}
	half := s.Size / 2
	cx := s.X + half
	cy := s.Y + s.OffsetY + half
	u := (px-cx)/scale + half
	v := (py-cy)/scale + half
	if u < 0 || v < 0 || u > s.Size || v > s.Size {
		return 0, 0, false
	}
	return u, v, true
}

// Inside reports whether (u, v) in a size x size box lies within kind. The
// outlines match the ebiten sink's paths.
func Inside(kind string, u, v, size float64) bool {
	half := size / 2
	dx, dy := math.Abs(u-half), math.Abs(v-half)
	switch kind {
	case component.ShapeSquare:
		inset := size * 0.08
		return u >= inset && v >= inset && u <= size-inset && v <= size-inset
	case component.ShapeTriangle:
		return v >= 0 && v <= size && dx <= half*v/size
	case component.ShapeDiamond:
		return dx+dy <= half
	case component.ShapeHexagon:
		return dx <= half*math.Sqrt(3)/2 && dy <= half-dx/math.Sqrt(3)
	default:
		return dx*dx+dy*dy <= half*half
	}
}

func blend(dst, src color.RGBA, alpha float64) color.RGBA {
	a := common.Clamp(alpha, 0, 1)
	mix := func(d, s uint8) uint8 {
		return uint8(common.Lerp(float64(d), float64(s), a) + 0.5)
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xff}
}
