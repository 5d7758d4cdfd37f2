package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const DefaultFieldFile = "shapes.yaml"

// FieldSpec is the on-disk form of an animated region.
type FieldSpec struct {
	Name      string        `yaml:"name"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Proximity ProximitySpec `yaml:"proximity"`
	Fillers   *FillerSpec   `yaml:"fillers"`
	Shapes    []ShapeSpec   `yaml:"shapes"`
}

type ProximitySpec struct {
	Radius *float64 `yaml:"radius"`
	Boost  *float64 `yaml:"boost"`
}

// FillerSpec asks a tengo script for procedurally placed background shapes.
type FillerSpec struct {
	Script string `yaml:"script"`
	Count  int    `yaml:"count"`
	Seed   int    `yaml:"seed"`
}

// ShapeSpec is one authored shape. Left and Top are percentages; Float is the
// [min, max] vertical offset in pixels; Delay and Duration are seconds.
type ShapeSpec struct {
	ID       string    `yaml:"id"`
	Kind     string    `yaml:"kind"`
	Gradient string    `yaml:"gradient"`
	Left     float64   `yaml:"left"`
	Top      float64   `yaml:"top"`
	Size     float64   `yaml:"size"`
	Float    []float64 `yaml:"float"`
	Delay    float64   `yaml:"delay"`
	Duration float64   `yaml:"duration"`
	Primary  bool      `yaml:"primary"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadFieldSpec(filename string) (FieldSpec, error) {
	if filename == "" {
		filename = DefaultFieldFile
	}
	return LoadSpec[FieldSpec](filename)
}

// DecodeSpec re-decodes a loosely typed value (a script result, a yaml node
// decoded into any) into T.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}
