package render

import "github.com/hajimehoshi/ebiten/v2"

// textureKey identifies one rasterized shape texture.
type textureKey struct {
	kind     string
	gradient string
	size     int
	dark     bool
}

var textures = map[textureKey]*ebiten.Image{}

func cachedTexture(key textureKey) *ebiten.Image {
	return textures[key]
}

func storeTexture(key textureKey, img *ebiten.Image) {
	if img == nil {
		return
	}
	textures[key] = img
}

// ClearTextures frees every cached texture. Called after a registry reload,
// when kinds, gradients and sizes may all have changed.
func ClearTextures() {
	for key, img := range textures {
		img.Deallocate()
		delete(textures, key)
	}
}

// CachedTextures returns the number of cached textures.
func CachedTextures() int {
	return len(textures)
}
