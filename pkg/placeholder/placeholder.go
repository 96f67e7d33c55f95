package placeholder

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-dresscode/pkg/datatree"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Path is an ordered list of field names addressed from the tree root.
type Path []string

// Strip removes one optional leading "{{" and one optional trailing "}}",
// independently of each other, then trims surrounding whitespace.
func Strip(expr string) string {
	body := strings.TrimPrefix(expr, openDelim)
	body = strings.TrimSuffix(body, closeDelim)
	return strings.TrimSpace(body)
}

// IsTemplated reports whether expr carries placeholder delimiters on both
// sides. Templates may also use bare dotted paths, so this is informational.
func IsTemplated(expr string) bool {
	trimmed := strings.TrimSpace(expr)
	return strings.HasPrefix(trimmed, openDelim) && strings.HasSuffix(trimmed, closeDelim)
}

// Parse turns an expression into a Path. Segments are neither trimmed nor
// checked for emptiness: "a..b" yields ["a", "", "b"]. An empty expression
// yields a nil Path.
func Parse(expr string) Path {
	if expr == "" {
		return nil
	}
	return Path(strings.Split(Strip(expr), "."))
}

// String joins the path back into dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Lookup walks root segment by segment. Walking stops as soon as the current
// value is falsy, in which case the result is undefined (ok == false). A value
// reached through the final segment is returned as-is, even when falsy.
func (p Path) Lookup(root any) (any, bool) {
	if len(p) == 0 {
		return nil, false
	}
	current := unwrap(root)
	for _, segment := range p {
		if !datatree.Truthy(current) {
			return nil, false
		}
		next, ok := index(current, segment)
		if !ok {
			return nil, false
		}
		current = unwrap(next)
	}
	if node, ok := current.(datatree.Node); ok {
		return node.Interface(), true
	}
	return current, true
}

// Resolve evaluates expr against root. Missing paths never panic; they
// resolve to (nil, false).
func Resolve(root any, expr string) (any, bool) {
	if expr == "" {
		return nil, false
	}
	return Parse(expr).Lookup(root)
}

func index(current any, segment string) (any, bool) {
	switch typed := current.(type) {
	case map[string]any:
		value, ok := typed[segment]
		return value, ok
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(typed) || strconv.Itoa(i) != segment {
			return nil, false
		}
		return typed[i], true
	case *datatree.Object:
		node, ok := typed.Get(segment)
		if !ok {
			return nil, false
		}
		return node, true
	case datatree.Array:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(typed) || strconv.Itoa(i) != segment {
			return nil, false
		}
		return typed[i], true
	case datatree.Leaf:
		value, ok := typed.Fields[segment]
		return value, ok
	default:
		return nil, false
	}
}

// unwrap lets callers resolve against either plain decoded values or a
// datatree. Leaves, objects and arrays are kept as nodes so they can still be
// indexed; primitives are unwrapped to their scalar.
func unwrap(v any) any {
	if p, ok := v.(datatree.Primitive); ok {
		return p.Value
	}
	return v
}
