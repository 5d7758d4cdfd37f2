package common

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Gradient is a two stop vertical gradient, From at the top.
type Gradient struct {
	From color.RGBA
	To   color.RGBA
}

var (
	defaultLight = Gradient{From: colornames.Lightskyblue, To: colornames.Plum}
	defaultDark  = Gradient{From: colornames.Slateblue, To: colornames.Darkslategray}
)

var (
	lightBackground = color.RGBA{R: 0xf8, G: 0xf7, B: 0xfc, A: 0xff}
	darkBackground  = color.RGBA{R: 0x12, G: 0x12, B: 0x1c, A: 0xff}
)

// Background is the page colour behind the field for the given theme.
func Background(dark bool) color.RGBA {
	if dark {
		return darkBackground
	}
	return lightBackground
}

// ParseGradient reads "from..to" colour tokens. Tokens are svg colour names
// or #rrggbb. A single token is a flat fill; anything unreadable falls back to
// the theme default.
func ParseGradient(token string, dark bool) Gradient {
	fallback := defaultLight
	if dark {
		fallback = defaultDark
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fallback
	}

	parts := strings.SplitN(token, "..", 2)
	from, ok := parseColor(parts[0])
	if !ok {
		return fallback
	}
	to := from
	if len(parts) == 2 {
		if c, ok := parseColor(parts[1]); ok {
			to = c
		}
	}
	return Gradient{From: from, To: to}
}

func parseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := hexNibble(s[1+i*2])
		lo, ok2 := hexNibble(s[2+i*2])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// At returns the colour at t in [0,1] from top to bottom.
func (g Gradient) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA{
		R: mix(g.From.R, g.To.R),
		G: mix(g.From.G, g.To.G),
		B: mix(g.From.B, g.To.B),
		A: mix(g.From.A, g.To.A),
	}
}
