package component

import "github.com/jakecoffman/cp"

// Anchor is the measured viewport centre of a shape. It is only used for
// distance math, never as a paint origin.
type Anchor struct {
	Center   cp.Vector
	Measured bool
}

var AnchorComponent = NewComponent[Anchor]()
