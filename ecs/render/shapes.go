package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs/component"
)

var whiteSubImage *ebiten.Image

// whiteSource is the solid source for DrawTriangles; vertex colours carry
// the gradient.
func whiteSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	}
	return whiteSubImage
}

// ShapeImage returns a size x size texture of kind filled with the gradient,
// cached by kind, gradient and size.
func ShapeImage(kind, gradient string, size int, dark bool) *ebiten.Image {
	if size < 1 {
		size = 1
	}
	key := textureKey{kind: kind, gradient: gradient, size: size, dark: dark}
	if img := cachedTexture(key); img != nil {
		return img
	}

	img := ebiten.NewImage(size, size)
	fillPath(img, ShapePath(kind, float32(size)), common.ParseGradient(gradient, dark), float32(size))
	storeTexture(key, img)
	return img
}

// ShapePath outlines kind inside a size x size box.
func ShapePath(kind string, size float32) *vector.Path {
	var p vector.Path
	half := size / 2
	switch kind {
	case component.ShapeSquare:
		inset := size * 0.08
		p.MoveTo(inset, inset)
		p.LineTo(size-inset, inset)
		p.LineTo(size-inset, size-inset)
		p.LineTo(inset, size-inset)
	case component.ShapeTriangle:
		p.MoveTo(half, 0)
		p.LineTo(size, size)
		p.LineTo(0, size)
	case component.ShapeDiamond:
		p.MoveTo(half, 0)
		p.LineTo(size, half)
		p.LineTo(half, size)
		p.LineTo(0, half)
	case component.ShapeHexagon:
		for i := 0; i < 6; i++ {
			a := float64(i)*math.Pi/3 - math.Pi/2
			x := half + half*float32(math.Cos(a))
			y := half + half*float32(math.Sin(a))
			if i == 0 {
				p.MoveTo(x, y)
				continue
			}
			p.LineTo(x, y)
		}
	default:
		p.Arc(half, half, half, 0, 2*math.Pi, vector.Clockwise)
	}
	p.Close()
	return &p
}

func fillPath(dst *ebiten.Image, p *vector.Path, g common.Gradient, size float32) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		c := g.At(float64(vs[i].DstY / size))
		a := float32(c.A) / 0xff
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R) / 0xff * a
		vs[i].ColorG = float32(c.G) / 0xff * a
		vs[i].ColorB = float32(c.B) / 0xff * a
		vs[i].ColorA = a
	}
	dst.DrawTriangles(vs, is, whiteSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
