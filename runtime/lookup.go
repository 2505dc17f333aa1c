package runtime

import "strconv"

// GetProperty resolves one path segment (a map key or an array index)
// against v. It never walks anything resembling a prototype chain:
// a miss is simply Undefined, not an error, matching spec.md §4.3.3's
// "safe property lookup" rule that a template can probe for an
// optional field without the interpreter panicking or erroring.
func GetProperty(v Value, segment string) Value {
	switch x := v.(type) {
	case *Map:
		if val, ok := x.Values[segment]; ok {
			return val
		}
		return Undefined{}
	case Array:
		if idx, err := strconv.Atoi(segment); err == nil {
			if idx >= 0 && idx < len(x) {
				return x[idx]
			}
		}
		if segment == "length" {
			return Number(len(x))
		}
		return Undefined{}
	default:
		return Undefined{}
	}
}

// GetPath resolves a full dotted path (already split into segments)
// by repeated GetProperty starting from root; an Undefined anywhere
// along the chain short-circuits to Undefined rather than resolving
// further segments against it.
func GetPath(root Value, segments []string) Value {
	cur := root
	for _, seg := range segments {
		if cur.Kind() == KindUndefined {
			return Undefined{}
		}
		cur = GetProperty(cur, seg)
	}
	return cur
}
