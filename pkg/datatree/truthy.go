package datatree

import (
	"encoding/json"
	"math"
)

// Truthy applies the loose truthiness rules used by environment documents:
// nil, false, zero numbers, NaN and the empty string are falsy; every other
// value, including empty objects and arrays, is truthy.
func Truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case int:
		return typed != 0
	case int8:
		return typed != 0
	case int16:
		return typed != 0
	case int32:
		return typed != 0
	case int64:
		return typed != 0
	case uint:
		return typed != 0
	case uint8:
		return typed != 0
	case uint16:
		return typed != 0
	case uint32:
		return typed != 0
	case uint64:
		return typed != 0
	case float32:
		return typed != 0 && !math.IsNaN(float64(typed))
	case float64:
		return typed != 0 && !math.IsNaN(typed)
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return typed != ""
		}
		return f != 0 && !math.IsNaN(f)
	case Primitive:
		return Truthy(typed.Value)
	default:
		return true
	}
}
