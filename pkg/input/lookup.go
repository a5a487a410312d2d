package input

import "maps"

// Lookup resolves raw field values.
//
// Lookup returns the value of name in src, or false when it is absent.
// All returns every submitted value of src; the map may be shared, do not modify it.
type Lookup interface {
	Lookup(src Source, name string) (any, bool)
	All(src Source) map[string]any
}

// Values is an in-memory Lookup keyed by source.
type Values map[Source]map[string]any

func (v Values) Lookup(src Source, name string) (any, bool) {
	fields, ok := v[src]
	if !ok {
		return nil, false
	}
	val, ok := fields[name]
	return val, ok
}

func (v Values) All(src Source) map[string]any {
	return maps.Clone(v[src])
}

// Normalize turns a multi-value form entry into the value a field sees:
// a single entry becomes a string, several stay a list.
func Normalize(values []string) any {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
