package prefabs

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const DefaultFillerScript = "fillers.tengo"

// RunFillerScript runs a tengo script with `count` and `seed` set and decodes
// the `shapes` array it leaves behind. Elements use the same keys as the
// yaml shape entries.
func RunFillerScript(name string, count, seed int) ([]ShapeSpec, error) {
	if name == "" {
		name = DefaultFillerScript
	}
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "text"))
	if err := script.Add("count", count); err != nil {
		return nil, err
	}
	if err := script.Add("seed", seed); err != nil {
		return nil, err
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	if !compiled.IsDefined("shapes") {
		return nil, fmt.Errorf("%s: no shapes defined", name)
	}

	raw := compiled.Get("shapes").Array()
	out := make([]ShapeSpec, 0, len(raw))
	for i, item := range raw {
		spec, err := DecodeSpec[ShapeSpec](item)
		if err != nil {
			return nil, fmt.Errorf("%s: shape %d: %w", name, i, err)
		}
		out = append(out, spec)
	}
	return out, nil
}
