package datatree

import (
	"fmt"
	"sort"
)

// Leaf keys recognised on environment data objects.
const (
	KeyValue        = "value"
	KeyPrivacyLevel = "privacy_level"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	KindPrimitive Kind = iota
	KindLeaf
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "primitive"
	}
}

// Node is one vertex of an environment data tree. The concrete variants are
// Leaf, Array, Object and Primitive; callers switch on Kind (or a type switch)
// instead of probing maps for well-known keys.
type Node interface {
	Kind() Kind
	// Interface converts the node back into plain Go values (map[string]any,
	// []any, scalars) suitable for JSON encoding or path resolution.
	Interface() any
}

// Leaf carries a value together with its sensitivity label. Fields holds the
// full object the leaf was decoded from so extra keys survive a round trip.
type Leaf struct {
	Fields map[string]any
}

// NewLeaf builds a leaf from a value and a privacy label.
func NewLeaf(value any, level string) Leaf {
	return Leaf{Fields: map[string]any{KeyValue: value, KeyPrivacyLevel: level}}
}

func (Leaf) Kind() Kind { return KindLeaf }

// Value returns the opaque payload of the leaf.
func (l Leaf) Value() any { return l.Fields[KeyValue] }

// Label returns the raw privacy_level entry. It is usually a string but is not
// guaranteed to be one.
func (l Leaf) Label() any { return l.Fields[KeyPrivacyLevel] }

// Clone returns a shallow copy of the leaf.
func (l Leaf) Clone() Leaf {
	out := make(map[string]any, len(l.Fields))
	for k, v := range l.Fields {
		out[k] = v
	}
	return Leaf{Fields: out}
}

func (l Leaf) Interface() any {
	return l.Clone().Fields
}

// Array is an ordered sequence of nodes.
type Array []Node

func (Array) Kind() Kind { return KindArray }

func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, item := range a {
		out[i] = item.Interface()
	}
	return out
}

// Object maps keys to child nodes. Keys keeps a stable iteration order.
type Object struct {
	Keys     []string
	Children map[string]Node
}

// NewObject returns an empty object ready for Set.
func NewObject() *Object {
	return &Object{Children: make(map[string]Node)}
}

func (*Object) Kind() Kind { return KindObject }

// Set inserts or replaces a child, appending new keys to the order.
func (o *Object) Set(key string, node Node) {
	if o.Children == nil {
		o.Children = make(map[string]Node)
	}
	if _, exists := o.Children[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Children[key] = node
}

// Get returns the child stored under key.
func (o *Object) Get(key string) (Node, bool) {
	if o == nil {
		return nil, false
	}
	node, ok := o.Children[key]
	return node, ok
}

// Len reports the number of children.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Keys)
}

func (o *Object) Interface() any {
	out := make(map[string]any, o.Len())
	if o == nil {
		return out
	}
	for _, key := range o.Keys {
		out[key] = o.Children[key].Interface()
	}
	return out
}

// Primitive wraps scalars (string, number, bool, nil) and any value the tree
// does not know how to traverse.
type Primitive struct {
	Value any
}

func (Primitive) Kind() Kind { return KindPrimitive }

func (p Primitive) Interface() any { return p.Value }

// IsLeafShape reports whether a decoded object should be treated as a leaf:
// it must contain both the value and privacy_level keys.
func IsLeafShape(m map[string]any) bool {
	if m == nil {
		return false
	}
	_, hasValue := m[KeyValue]
	_, hasLevel := m[KeyPrivacyLevel]
	return hasValue && hasLevel
}

// FromValue converts decoded JSON/YAML data into a Node. Leaf detection runs
// before generic object traversal. Object keys are sorted so the tree is
// deterministic regardless of map iteration order.
func FromValue(v any) Node {
	switch typed := v.(type) {
	case Node:
		return typed
	case map[string]any:
		if IsLeafShape(typed) {
			return Leaf{Fields: typed}.Clone()
		}
		obj := NewObject()
		for _, key := range sortedKeys(typed) {
			obj.Set(key, FromValue(typed[key]))
		}
		return obj
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, value := range typed {
			converted[fmt.Sprint(key)] = value
		}
		return FromValue(converted)
	case []any:
		arr := make(Array, len(typed))
		for i, item := range typed {
			arr[i] = FromValue(item)
		}
		return arr
	case []map[string]any:
		arr := make(Array, len(typed))
		for i, item := range typed {
			arr[i] = FromValue(item)
		}
		return arr
	default:
		return Primitive{Value: v}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
