package harness

import (
	"fmt"

	"github.com/roach88/motion/internal/interp"
)

// fieldValue converts a YAML-decoded value to the Go type of the named
// Node field.
func fieldValue(name string, v any) (any, error) {
	switch name {
	case FieldPosition:
		return toVec2(v)
	case FieldScale, FieldOpacity:
		return toFloat(v)
	case FieldVisible:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("field %q: want bool, got %T", name, v)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown field %q", name)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("want number, got %T", v)
	}
}

// toVec2 accepts {x: 1, y: 2} or [1, 2].
func toVec2(v any) (interp.Vec2, error) {
	switch val := v.(type) {
	case interp.Vec2:
		return val, nil
	case map[string]any:
		if len(val) != 2 {
			return interp.Vec2{}, fmt.Errorf("want {x, y}, got %d keys", len(val))
		}
		x, err := toFloat(val["x"])
		if err != nil {
			return interp.Vec2{}, fmt.Errorf("x: %w", err)
		}
		y, err := toFloat(val["y"])
		if err != nil {
			return interp.Vec2{}, fmt.Errorf("y: %w", err)
		}
		return interp.Vec2{X: x, Y: y}, nil
	case []any:
		if len(val) != 2 {
			return interp.Vec2{}, fmt.Errorf("want [x, y], got %d elements", len(val))
		}
		x, err := toFloat(val[0])
		if err != nil {
			return interp.Vec2{}, fmt.Errorf("x: %w", err)
		}
		y, err := toFloat(val[1])
		if err != nil {
			return interp.Vec2{}, fmt.Errorf("y: %w", err)
		}
		return interp.Vec2{X: x, Y: y}, nil
	default:
		return interp.Vec2{}, fmt.Errorf("want vector, got %T", v)
	}
}

// nodeValue reads the named field of n.
func nodeValue(n *Node, name string) (any, bool) {
	switch name {
	case FieldPosition:
		return n.Position, true
	case FieldScale:
		return n.Scale, true
	case FieldOpacity:
		return n.Opacity, true
	case FieldVisible:
		return n.Visible, true
	default:
		return nil, false
	}
}
