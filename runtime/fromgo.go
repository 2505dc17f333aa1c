package runtime

import "sort"

// FromGo converts a plain Go value (the shape a host passes as
// initial template data: nil, bool, numeric types, string,
// []interface{}, map[string]interface{}, or an already-built Value)
// into the runtime's own tagged Value tree (spec.md §3.4's "host data
// enters as plain Go values" contract).
//
// A native Go map has no defined iteration order, so its keys are
// sorted for the resulting Map's Keys slice; a caller that needs a
// specific {{#each}} order over an object should build a *Map
// directly instead of going through FromGo.
func FromGo(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(x)
	case int:
		return Number(x)
	case int8:
		return Number(x)
	case int16:
		return Number(x)
	case int32:
		return Number(x)
	case int64:
		return Number(x)
	case uint:
		return Number(x)
	case uint8:
		return Number(x)
	case uint16:
		return Number(x)
	case uint32:
		return Number(x)
	case uint64:
		return Number(x)
	case []any:
		arr := make(Array, len(x))
		for i, elem := range x {
			arr[i] = FromGo(elem)
		}
		return arr
	case map[string]any:
		m := NewMap()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.Set(k, FromGo(x[k]))
		}
		return m
	default:
		return Undefined{}
	}
}

// ToGo converts a Value back into a plain Go value, the inverse of
// FromGo, for callers (helpers, hosts) that want to inspect runtime
// data without type-switching on the Value interface themselves.
func ToGo(v Value) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Undefined:
		return nil
	case Null:
		return nil
	case Bool:
		return bool(x)
	case Number:
		return float64(x)
	case String:
		return string(x)
	case SafeString:
		return string(x)
	case Array:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = ToGo(elem)
		}
		return out
	case *Map:
		out := make(map[string]any, len(x.Keys))
		for _, k := range x.Keys {
			out[k] = ToGo(x.Values[k])
		}
		return out
	default:
		return nil
	}
}
