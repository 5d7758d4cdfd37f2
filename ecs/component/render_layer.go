package component

// RenderLayer is used to sort draw order deterministically.
// Primary shapes sit above fillers and are more opaque.
type RenderLayer struct {
	Index   int
	Opacity float64
}

var RenderLayerComponent = NewComponent[RenderLayer]()
