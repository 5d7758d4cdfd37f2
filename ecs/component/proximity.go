package component

// Proximity holds the derived pointer-distance scale, in [1, 1+boost].
type Proximity struct {
	Scale float64
}

var ProximityComponent = NewComponent[Proximity]()
