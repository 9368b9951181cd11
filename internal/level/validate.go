package level

import (
	"encoding/json"
	"fmt"
	"math"
)

const rootPath = "$"

// Required top-level keys, checked in this order.
var requiredKeys = []string{"scroll_speed", "floor_y", "player_x"}

// build validates a decoded tree and constructs a Spec.
// Rules run in a fixed order so the first reported failure is deterministic.
func build(root any) (*Spec, error) {
	obj, ok := asObject(root)
	if !ok {
		return nil, schemaErr(rootPath, "top-level value must be an object, got %s", typeName(root))
	}

	for _, key := range requiredKeys {
		if _, ok := obj[key]; !ok {
			return nil, schemaErr(key, "required field is missing")
		}
	}

	spec := &Spec{defaultObstacleWidth: DefaultObstacleWidth}
	var err error

	if spec.scrollSpeed, err = requireNumber(obj["scroll_speed"], "scroll_speed"); err != nil {
		return nil, err
	}
	if spec.scrollSpeed <= 0 {
		return nil, rangeErr("scroll_speed", "must be > 0, got %g", spec.scrollSpeed)
	}

	if spec.floorY, err = requireNumber(obj["floor_y"], "floor_y"); err != nil {
		return nil, err
	}
	if spec.floorY < 0 {
		return nil, rangeErr("floor_y", "must be >= 0, got %g", spec.floorY)
	}

	if spec.playerX, err = requireNumber(obj["player_x"], "player_x"); err != nil {
		return nil, err
	}
	if spec.playerX < 0 {
		return nil, rangeErr("player_x", "must be >= 0, got %g", spec.playerX)
	}

	if v, ok := obj["default_obstacle_width"]; ok {
		w, err := requireNumber(v, "default_obstacle_width")
		if err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, rangeErr("default_obstacle_width", "must be > 0, got %g", w)
		}
		spec.defaultObstacleWidth = w
	}

	if spec.obstacles, err = buildObstacles(obj, spec.defaultObstacleWidth); err != nil {
		return nil, err
	}

	if v, ok := obj["name"]; ok {
		name, isString := v.(string)
		if !isString {
			return nil, schemaErr("name", "must be a string, got %s", typeName(v))
		}
		spec.name = name
	}

	if spec.coins, err = buildCoins(obj); err != nil {
		return nil, err
	}
	if spec.portals, err = buildPortals(obj); err != nil {
		return nil, err
	}

	spec.placements = Place(spec.obstacles)
	return spec, nil
}

func buildObstacles(obj map[string]any, defaultWidth float64) ([]Obstacle, error) {
	items, err := optionalArray(obj, "obstacles")
	if err != nil {
		return nil, err
	}

	obstacles := make([]Obstacle, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("obstacles[%d]", i)
		entry, ok := asObject(item)
		if !ok {
			return nil, schemaErr(path, "must be an object, got %s", typeName(item))
		}

		gapVal, ok := entry["gap"]
		if !ok {
			return nil, schemaErr(path+".gap", "required field is missing")
		}
		gap, err := requireNumber(gapVal, path+".gap")
		if err != nil {
			return nil, err
		}
		if gap < 0 {
			return nil, rangeErr(path+".gap", "must be >= 0, got %g", gap)
		}

		width := defaultWidth
		if widthVal, ok := entry["width"]; ok {
			if width, err = requireNumber(widthVal, path+".width"); err != nil {
				return nil, err
			}
			if width <= 0 {
				return nil, rangeErr(path+".width", "must be > 0, got %g", width)
			}
		}

		obstacles = append(obstacles, Obstacle{Gap: gap, Width: width})
	}
	return obstacles, nil
}

func buildCoins(obj map[string]any) ([]Coin, error) {
	items, err := optionalArray(obj, "coins")
	if err != nil {
		return nil, err
	}

	coins := make([]Coin, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("coins[%d]", i)
		entry, ok := asObject(item)
		if !ok {
			return nil, schemaErr(path, "must be an object, got %s", typeName(item))
		}
		x, err := requireNonNegative(entry, path, "x")
		if err != nil {
			return nil, err
		}
		y, err := requireNonNegative(entry, path, "y")
		if err != nil {
			return nil, err
		}
		coins = append(coins, Coin{X: x, Y: y})
	}
	return coins, nil
}

func buildPortals(obj map[string]any) ([]SpeedPortal, error) {
	items, err := optionalArray(obj, "speed_portals")
	if err != nil {
		return nil, err
	}

	portals := make([]SpeedPortal, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("speed_portals[%d]", i)
		entry, ok := asObject(item)
		if !ok {
			return nil, schemaErr(path, "must be an object, got %s", typeName(item))
		}
		x, err := requireNonNegative(entry, path, "x")
		if err != nil {
			return nil, err
		}

		speedVal, ok := entry["speed"]
		if !ok {
			return nil, schemaErr(path+".speed", "required field is missing")
		}
		speed, err := requireNumber(speedVal, path+".speed")
		if err != nil {
			return nil, err
		}
		if speed <= 0 {
			return nil, rangeErr(path+".speed", "must be > 0, got %g", speed)
		}
		portals = append(portals, SpeedPortal{X: x, Speed: speed})
	}
	return portals, nil
}

// requireNonNegative reads a required numeric field that must be >= 0.
func requireNonNegative(entry map[string]any, parent, key string) (float64, error) {
	path := parent + "." + key
	v, ok := entry[key]
	if !ok {
		return 0, schemaErr(path, "required field is missing")
	}
	n, err := requireNumber(v, path)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, rangeErr(path, "must be >= 0, got %g", n)
	}
	return n, nil
}

// optionalArray returns the array under key, or nil when the key is absent.
func optionalArray(obj map[string]any, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, schemaErr(key, "must be an array, got %s", typeName(v))
	}
	return items, nil
}

// requireNumber converts a decoded scalar to float64.
// Non-numbers are schema errors; values that do not fit are range errors.
func requireNumber(v any, path string) (float64, error) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, rangeErr(path, "number %s is out of range", n.String())
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, schemaErr(path, "must be a number, got %s", typeName(v))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, rangeErr(path, "must be finite")
	}
	return f, nil
}

// asObject accepts both map shapes the JSON and YAML decoders produce.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// typeName describes a decoded value for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, int, int64, uint64:
		return "number"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
