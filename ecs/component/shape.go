package component

const (
	ShapeCircle   = "circle"
	ShapeSquare   = "square"
	ShapeTriangle = "triangle"
	ShapeDiamond  = "diamond"
	ShapeHexagon  = "hexagon"
)

// Shape carries the authored descriptor fields the runtime needs.
// Left and Top are percentages of the containing region.
type Shape struct {
	ID       string
	Kind     string
	Gradient string
	Left     float64
	Top      float64
	Size     float64
	Primary  bool
}

var ShapeComponent = NewComponent[Shape]()
