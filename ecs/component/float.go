package component

// FloatRange is the authored vertical oscillation. Min <= Max after registry
// normalization; Delay and Duration are in seconds.
type FloatRange struct {
	Min      float64
	Max      float64
	Delay    float64
	Duration float64
}

var FloatRangeComponent = NewComponent[FloatRange]()

// FloatMotion exists only while a shape's float loop runs. Elapsed is the
// shape's own clock; there is no shared clock between shapes.
type FloatMotion struct {
	Elapsed float64
	Offset  float64
}

var FloatMotionComponent = NewComponent[FloatMotion]()

// Activation is the one-way latch for the float loop.
type Activation struct {
	Active bool
	// Tick is the region tick on which the latch closed.
	Tick uint64
}

var ActivationComponent = NewComponent[Activation]()
