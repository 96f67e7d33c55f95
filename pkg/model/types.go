package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ElementType names a template element variant.
type ElementType string

const (
	ElementTypeText  ElementType = "text"
	ElementTypeImage ElementType = "image"
)

// BackgroundStatic is the only background mode composited by the renderer.
// Other modes (video, live camera feeds) are accepted and ignored.
const BackgroundStatic = "static"

// Element is one drawable entry of a template. Text and Src hold either a
// literal or a placeholder expression depending on Type. Every other key
// (x, y, width, height, fontSize, fill, ...) is kept in Props and passed
// through untouched.
type Element struct {
	ID    string         `json:"id,omitempty"`
	Type  ElementType    `json:"type"`
	Text  string         `json:"text,omitempty"`
	Src   string         `json:"src,omitempty"`
	Props map[string]any `json:"-"`
}

// Clone returns a shallow copy of the element, including its own Props map.
func (e Element) Clone() Element {
	out := e
	if e.Props != nil {
		out.Props = make(map[string]any, len(e.Props))
		for k, v := range e.Props {
			out.Props[k] = v
		}
	}
	return out
}

// Prop returns a pass-through property.
func (e Element) Prop(key string) (any, bool) {
	if e.Props == nil {
		return nil, false
	}
	v, ok := e.Props[key]
	return v, ok
}

var elementKeys = map[string]struct{}{"id": {}, "type": {}, "text": {}, "src": {}}

// MarshalJSON flattens Props next to the typed fields.
func (e Element) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Props)+4)
	for k, v := range e.Props {
		if _, reserved := elementKeys[k]; reserved {
			continue
		}
		out[k] = v
	}
	if e.ID != "" {
		out["id"] = e.ID
	}
	out["type"] = e.Type
	if e.Text != "" {
		out["text"] = e.Text
	}
	if e.Src != "" {
		out["src"] = e.Src
	}
	return json.Marshal(out)
}

// UnmarshalJSON collects unknown keys into Props.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode element: %w", err)
	}
	*e = Element{}
	for key, value := range raw {
		switch key {
		case "id":
			e.ID = stringify(value)
		case "type":
			e.Type = ElementType(stringify(value))
		case "text":
			e.Text = stringify(value)
		case "src":
			e.Src = stringify(value)
		default:
			if e.Props == nil {
				e.Props = make(map[string]any)
			}
			e.Props[key] = value
		}
	}
	return nil
}

// PropKeys lists Props keys in sorted order.
func (e Element) PropKeys() []string {
	keys := make([]string, 0, len(e.Props))
	for k := range e.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Background describes what is drawn beneath every element.
type Background struct {
	Mode string `json:"mode,omitempty"`
	Src  string `json:"src,omitempty"`
}

// IsStatic reports whether the background should be composited.
func (b Background) IsStatic() bool {
	return b.Mode == BackgroundStatic && b.Src != ""
}

// Template is a fixed-size layout. Elements are drawn in slice order, so the
// first element sits at the bottom.
type Template struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name,omitempty"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Elements   []Element   `json:"elements"`
	Background *Background `json:"background,omitempty"`
}

// Environment is a named data tree. Data is decoded JSON/YAML: objects,
// arrays and leaves shaped as {"value": ..., "privacy_level": ...}.
type Environment struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Data any    `json:"data"`
}

// Profile is a saved render configuration binding a template to an
// environment at a given privacy level.
type Profile struct {
	ID            string      `json:"id,omitempty"`
	Name          string      `json:"name,omitempty"`
	TemplateID    string      `json:"templateId"`
	EnvironmentID string      `json:"environmentId"`
	PrivacyLevel  string      `json:"privacyLevel"`
	Background    *Background `json:"background,omitempty"`
}

func stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
