package prefabs

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
)

const (
	ShapeCircle   = "circle"
	ShapeSquare   = "square"
	ShapeTriangle = "triangle"
	ShapeDiamond  = "diamond"
	ShapeHexagon  = "hexagon"

	DefaultRadius   = 200.0
	DefaultBoost    = 0.3
	DefaultDuration = 6.0
	DefaultWidth    = 1280.0
	DefaultHeight   = 720.0
)

var shapeKinds = map[string]bool{
	ShapeCircle:   true,
	ShapeSquare:   true,
	ShapeTriangle: true,
	ShapeDiamond:  true,
	ShapeHexagon:  true,
}

// ShapeDescriptor is an immutable, normalized shape. FloatMin <= FloatMax,
// Size >= 0, Delay >= 0 and Duration > 0 always hold.
type ShapeDescriptor struct {
	ID       string
	Kind     string
	Gradient string
	Left     float64
	Top      float64
	Size     float64
	FloatMin float64
	FloatMax float64
	Delay    float64
	Duration float64
	Primary  bool
}

// Issue is a configuration defect that was corrected at load time.
type Issue struct {
	ShapeID string
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s.%s: %s", i.ShapeID, i.Field, i.Message)
}

// Registry is the loaded, normalized set of shapes for one region.
type Registry struct {
	Name   string
	Width  float64
	Height float64
	Radius float64
	Boost  float64
	Issues []Issue

	shapes []ShapeDescriptor
	index  map[string]int
}

// LoadRegistry loads and normalizes a field file (embedded or on disk).
func LoadRegistry(filename string) (*Registry, error) {
	spec, err := LoadFieldSpec(filename)
	if err != nil {
		return nil, err
	}
	return NewRegistry(spec)
}

// NewRegistry normalizes spec. Only a broken filler script is an error;
// malformed shapes are clamped and recorded in Issues.
func NewRegistry(spec FieldSpec) (*Registry, error) {
	r := &Registry{
		Name:   spec.Name,
		Width:  positiveOr(spec.Width, DefaultWidth),
		Height: positiveOr(spec.Height, DefaultHeight),
		Radius: DefaultRadius,
		Boost:  DefaultBoost,
		index:  make(map[string]int),
	}
	if p := spec.Proximity.Radius; p != nil {
		r.Radius = *p
	}
	if p := spec.Proximity.Boost; p != nil {
		r.Boost = *p
	}

	shapes := append([]ShapeSpec(nil), spec.Shapes...)
	if spec.Fillers != nil && spec.Fillers.Count > 0 {
		fillers, err := RunFillerScript(spec.Fillers.Script, spec.Fillers.Count, spec.Fillers.Seed)
		if err != nil {
			return nil, fmt.Errorf("prefabs: fillers: %w", err)
		}
		shapes = append(shapes, fillers...)
	}

	for i, s := range shapes {
		d, issues := normalizeShape(i, s)
		d.ID = r.uniqueID(d.ID, &issues)
		r.index[d.ID] = len(r.shapes)
		r.shapes = append(r.shapes, d)
		r.Issues = append(r.Issues, issues...)
	}
	for _, issue := range r.Issues {
		log.Printf("prefabs: %s: %s", nameOr(r.Name), issue)
	}
	return r, nil
}

func (r *Registry) uniqueID(id string, issues *[]Issue) string {
	if _, taken := r.index[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, taken := r.index[candidate]; !taken {
			*issues = append(*issues, Issue{ShapeID: id, Field: "id", Message: "duplicate id renamed to " + candidate})
			return candidate
		}
	}
}

// Descriptors returns a copy of the shapes in authored order.
func (r *Registry) Descriptors() []ShapeDescriptor {
	if r == nil {
		return nil
	}
	return append([]ShapeDescriptor(nil), r.shapes...)
}

func (r *Registry) Lookup(id string) (ShapeDescriptor, bool) {
	if r == nil {
		return ShapeDescriptor{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return ShapeDescriptor{}, false
	}
	return r.shapes[i], true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.shapes)
}

func normalizeShape(i int, s ShapeSpec) (ShapeDescriptor, []Issue) {
	var issues []Issue
	id := strings.TrimSpace(s.ID)
	if id == "" {
		id = "shape-" + strconv.Itoa(i+1)
		issues = append(issues, Issue{ShapeID: id, Field: "id", Message: "missing id"})
	}
	note := func(field, msg string) {
		issues = append(issues, Issue{ShapeID: id, Field: field, Message: msg})
	}

	d := ShapeDescriptor{
		ID:       id,
		Kind:     strings.ToLower(strings.TrimSpace(s.Kind)),
		Gradient: s.Gradient,
		Left:     s.Left,
		Top:      s.Top,
		Size:     s.Size,
		Delay:    s.Delay,
		Duration: s.Duration,
		Primary:  s.Primary,
	}

	if !shapeKinds[d.Kind] {
		note("kind", fmt.Sprintf("unknown kind %q, using circle", s.Kind))
		d.Kind = ShapeCircle
	}
	d.Left = clampPercent(d.Left, "left", note)
	d.Top = clampPercent(d.Top, "top", note)

	if !finite(d.Size) || d.Size < 0 {
		note("size", fmt.Sprintf("invalid size %v, using 0", s.Size))
		d.Size = 0
	}

	switch len(s.Float) {
	case 0:
	case 2:
		d.FloatMin, d.FloatMax = s.Float[0], s.Float[1]
		if !finite(d.FloatMin) || !finite(d.FloatMax) {
			note("float", "non-finite range, using [0, 0]")
			d.FloatMin, d.FloatMax = 0, 0
		}
		if d.FloatMin > d.FloatMax {
			note("float", "range reversed, swapping")
			d.FloatMin, d.FloatMax = d.FloatMax, d.FloatMin
		}
	default:
		note("float", fmt.Sprintf("expected [min, max], got %d values", len(s.Float)))
	}

	if !finite(d.Delay) || d.Delay < 0 {
		note("delay", fmt.Sprintf("invalid delay %v, using 0", s.Delay))
		d.Delay = 0
	}
	if !finite(d.Duration) || d.Duration <= 0 {
		if s.Duration != 0 {
			note("duration", fmt.Sprintf("invalid duration %v, using %v", s.Duration, DefaultDuration))
		}
		d.Duration = DefaultDuration
	}
	return d, issues
}

func clampPercent(v float64, field string, note func(field, msg string)) float64 {
	switch {
	case !finite(v):
		note(field, "non-finite position, using 0")
		return 0
	case v < 0:
		note(field, fmt.Sprintf("%v%% clamped to 0", v))
		return 0
	case v > 100:
		note(field, fmt.Sprintf("%v%% clamped to 100", v))
		return 100
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveOr(v, fallback float64) float64 {
	if finite(v) && v > 0 {
		return v
	}
	return fallback
}

func nameOr(name string) string {
	if name == "" {
		return "field"
	}
	return name
}
