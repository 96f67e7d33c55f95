package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry stores encoders by name and file extension, providing discovery
// and duplication safeguards.
type Registry struct {
	mu         sync.RWMutex
	encoders   map[string]Encoder
	extensions map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		encoders:   make(map[string]Encoder),
		extensions: make(map[string]string),
	}
}

// DefaultEncoders returns a registry holding PNG and JPEG.
func DefaultEncoders() *Registry {
	r := NewRegistry()
	r.MustRegister(PNG)
	r.MustRegister(JPEG)
	return r
}

// Register adds an encoder by its Name(). Duplicate names or extensions
// return an error.
func (r *Registry) Register(encoder Encoder) error {
	if encoder == nil {
		return fmt.Errorf("render: encoder is required")
	}
	name := strings.ToLower(encoder.Name())
	if name == "" {
		return fmt.Errorf("render: encoder name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[name]; exists {
		return fmt.Errorf("render: encoder %q already registered", name)
	}
	for _, ext := range encoder.Extensions() {
		if owner, exists := r.extensions[strings.ToLower(ext)]; exists {
			return fmt.Errorf("render: extension %q already registered by %q", ext, owner)
		}
	}

	r.encoders[name] = encoder
	for _, ext := range encoder.Extensions() {
		r.extensions[strings.ToLower(ext)] = name
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(encoder Encoder) {
	if err := r.Register(encoder); err != nil {
		panic(err)
	}
}

// Get retrieves an encoder by name.
func (r *Registry) Get(name string) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encoder, ok := r.encoders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("render: encoder %q not found", name)
	}
	return encoder, nil
}

// ForPath picks the encoder registered for path's extension.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	name, ok := r.extensions[ext]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("render: no encoder for %q (known: %s)", path, strings.Join(r.List(), ", "))
	}
	return r.Get(name)
}

// List returns a sorted list of encoder names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an encoder is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.encoders[strings.ToLower(name)]
	return ok
}
