package hydrate

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-dresscode/pkg/model"
)

// FieldHydrator replaces the dynamic fields of one element variant.
type FieldHydrator interface {
	Type() model.ElementType
	Hydrate(element model.Element, data any) model.Element
}

// FieldFunc hydrates a single string field of an element using the default
// fallback chain. Get and Set select the field.
type FieldFunc struct {
	ElementType model.ElementType
	Get         func(model.Element) string
	Set         func(*model.Element, string)
}

func (f FieldFunc) Type() model.ElementType { return f.ElementType }

func (f FieldFunc) Hydrate(element model.Element, data any) model.Element {
	out := element.Clone()
	value, _ := ResolveField(f.Get(element), data)
	f.Set(&out, value)
	return out
}

// TextField hydrates the text of text elements.
var TextField = FieldFunc{
	ElementType: model.ElementTypeText,
	Get:         func(e model.Element) string { return e.Text },
	Set:         func(e *model.Element, v string) { e.Text = v },
}

// ImageField hydrates the src of image elements.
var ImageField = FieldFunc{
	ElementType: model.ElementTypeImage,
	Get:         func(e model.Element) string { return e.Src },
	Set:         func(e *model.Element, v string) { e.Src = v },
}

// Registry maps element types to hydrators. New variants are registered here
// without touching the filter or resolver.
type Registry struct {
	mu        sync.RWMutex
	hydrators map[model.ElementType]FieldHydrator
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{hydrators: make(map[model.ElementType]FieldHydrator)}
}

// DefaultRegistry returns a registry holding the text and image hydrators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(TextField)
	r.MustRegister(ImageField)
	return r
}

// Register adds a hydrator by its Type(). Duplicate types return an error.
func (r *Registry) Register(h FieldHydrator) error {
	if h == nil {
		return fmt.Errorf("hydrate: hydrator is required")
	}
	kind := h.Type()
	if kind == "" {
		return fmt.Errorf("hydrate: hydrator type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hydrators[kind]; exists {
		return fmt.Errorf("hydrate: hydrator %q already registered", kind)
	}
	r.hydrators[kind] = h
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(h FieldHydrator) {
	if err := r.Register(h); err != nil {
		panic(err)
	}
}

// Get retrieves the hydrator for an element type.
func (r *Registry) Get(kind model.ElementType) (FieldHydrator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hydrators[kind]
	return h, ok
}

// List returns the registered element types in sorted order.
func (r *Registry) List() []model.ElementType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ElementType, 0, len(r.hydrators))
	for kind := range r.hydrators {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Hydrate returns a copy of element with its dynamic fields resolved against
// data. Elements without a registered hydrator come back as a plain copy.
func (r *Registry) Hydrate(element model.Element, data any) model.Element {
	if r == nil {
		return element.Clone()
	}
	h, ok := r.Get(element.Type)
	if !ok {
		return element.Clone()
	}
	return h.Hydrate(element, data)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Hydrate applies the default text/image hydrators.
func Hydrate(element model.Element, data any) model.Element {
	defaultOnce.Do(func() { defaultRegistry = DefaultRegistry() })
	return defaultRegistry.Hydrate(element, data)
}
