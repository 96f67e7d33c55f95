package privacy

import (
	"github.com/goliatone/go-dresscode/pkg/datatree"
)

// Filter prunes node down to the leaves visible at target. The boolean result
// is false when the whole subtree is dropped.
//
//   - arrays keep their surviving elements in order and are never dropped,
//     even when empty;
//   - leaves survive when their level does not exceed target, or when their
//     label is not a recognised level;
//   - objects drop keys whose child was dropped and are themselves dropped
//     when no key remains;
//   - primitives pass through untouched.
func Filter(node datatree.Node, target Level) (datatree.Node, bool) {
	switch typed := node.(type) {
	case nil:
		return datatree.Primitive{}, true
	case datatree.Array:
		return filterArray(typed, target), true
	case datatree.Leaf:
		return filterLeaf(typed, target)
	case *datatree.Object:
		return filterObject(typed, target)
	default:
		return node, true
	}
}

// FilterValue decodes raw environment data, filters it and converts the
// result back to plain values. A dropped or falsy root becomes an empty
// object so callers can always index into the result.
func FilterValue(data any, target Level) any {
	filtered, ok := Filter(datatree.FromValue(data), target)
	if !ok {
		return map[string]any{}
	}
	out := filtered.Interface()
	if !datatree.Truthy(out) {
		return map[string]any{}
	}
	return out
}

// Visible reports whether a leaf is visible at target.
//
// Labels outside low/medium/high are always visible (fail-open).
// TODO: confirm the fail-open rule with product before any release that
// exposes custom labels to end users.
func Visible(leaf datatree.Leaf, target Level) bool {
	ord := LeafOrdinal(leaf)
	return ord == UnknownOrdinal || ord <= target.Ordinal()
}

// LeafOrdinal returns the ordinal of the leaf's label. A falsy label (absent,
// null or empty) counts as low; a non-string label is unknown.
func LeafOrdinal(leaf datatree.Leaf) int {
	raw := leaf.Label()
	if !datatree.Truthy(raw) {
		return Low.Ordinal()
	}
	label, ok := raw.(string)
	if !ok {
		return UnknownOrdinal
	}
	return Ordinal(Level(label))
}

func filterArray(arr datatree.Array, target Level) datatree.Array {
	out := make(datatree.Array, 0, len(arr))
	for _, item := range arr {
		if filtered, ok := Filter(item, target); ok {
			out = append(out, filtered)
		}
	}
	return out
}

func filterLeaf(leaf datatree.Leaf, target Level) (datatree.Node, bool) {
	if !Visible(leaf, target) {
		return nil, false
	}
	return leaf.Clone(), true
}

func filterObject(obj *datatree.Object, target Level) (datatree.Node, bool) {
	if obj == nil {
		return nil, false
	}
	out := datatree.NewObject()
	for _, key := range obj.Keys {
		child, ok := obj.Get(key)
		if !ok {
			continue
		}
		if filtered, keep := Filter(child, target); keep {
			out.Set(key, filtered)
		}
	}
	if out.Len() == 0 {
		return nil, false
	}
	return out, true
}
