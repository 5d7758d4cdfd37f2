package component

// Transform is the paint transform handed to the render sink. X and Y are the
// authored top-left corner in pixels; OffsetY and Scale are applied around the
// authored box (translate, then scale).
type Transform struct {
	X       float64
	Y       float64
	Size    float64
	OffsetY float64
	Scale   float64
}

var TransformComponent = NewComponent[Transform]()
