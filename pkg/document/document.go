package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dresscode/pkg/model"
)

// Kind classifies a parsed document.
type Kind string

const (
	KindBundle      Kind = "bundle"
	KindTemplate    Kind = "template"
	KindEnvironment Kind = "environment"
	KindProfile     Kind = "profile"
)

// Bundle groups every record found in one or more documents.
type Bundle struct {
	Templates    []model.Template    `json:"templates,omitempty" yaml:"templates"`
	Environments []model.Environment `json:"environments,omitempty" yaml:"environments"`
	Profiles     []model.Profile     `json:"profiles,omitempty" yaml:"profiles"`
}

// Empty reports whether the bundle holds no records.
func (b Bundle) Empty() bool {
	return len(b.Templates) == 0 && len(b.Environments) == 0 && len(b.Profiles) == 0
}

// Merge appends other's records after b's.
func (b *Bundle) Merge(other Bundle) {
	b.Templates = append(b.Templates, other.Templates...)
	b.Environments = append(b.Environments, other.Environments...)
	b.Profiles = append(b.Profiles, other.Profiles...)
}

// Detect guesses the kind of a decoded top-level object.
func Detect(raw map[string]any) Kind {
	if hasAny(raw, "templates", "environments", "profiles") {
		return KindBundle
	}
	if hasAny(raw, "templateId", "environmentId") {
		return KindProfile
	}
	if hasAny(raw, "elements") || (hasAny(raw, "width") && hasAny(raw, "height")) {
		return KindTemplate
	}
	return KindEnvironment
}

// Parse decodes a JSON, JSON-with-comments or YAML document into a Bundle.
// Single templates, environments and profiles are wrapped in a one-record
// bundle. An environment document without a "data" key is taken as the data
// tree itself and named after source.
func Parse(data []byte, source string) (Bundle, Kind, error) {
	raw, err := decode(data, source)
	if err != nil {
		return Bundle{}, "", err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Bundle{}, "", fmt.Errorf("document: %s: top-level value must be an object", source)
	}

	kind := Detect(obj)
	var bundle Bundle
	switch kind {
	case KindBundle:
		err = convert(obj, &bundle)
	case KindTemplate:
		var tpl model.Template
		err = convert(obj, &tpl)
		bundle.Templates = []model.Template{tpl}
	case KindProfile:
		var profile model.Profile
		err = convert(obj, &profile)
		bundle.Profiles = []model.Profile{profile}
	default:
		bundle.Environments = []model.Environment{environmentFrom(obj, source)}
	}
	if err != nil {
		return Bundle{}, "", fmt.Errorf("document: %s: %w", source, err)
	}
	return bundle, kind, nil
}

// ParseTemplate decodes a single template document.
func ParseTemplate(data []byte, source string) (model.Template, error) {
	bundle, err := parseOne(data, source, KindTemplate)
	if err != nil {
		return model.Template{}, err
	}
	return bundle.Templates[0], nil
}

// ParseEnvironment decodes a single environment document.
func ParseEnvironment(data []byte, source string) (model.Environment, error) {
	raw, err := decode(data, source)
	if err != nil {
		return model.Environment{}, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return model.Environment{Name: baseName(source), Data: raw}, nil
	}
	return environmentFrom(obj, source), nil
}

// ParseProfile decodes a single profile document.
func ParseProfile(data []byte, source string) (model.Profile, error) {
	bundle, err := parseOne(data, source, KindProfile)
	if err != nil {
		return model.Profile{}, err
	}
	return bundle.Profiles[0], nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("document: read %s: %w", path, err)
	}
	bundle, _, err := Parse(data, path)
	return bundle, err
}

func parseOne(data []byte, source string, want Kind) (Bundle, error) {
	bundle, kind, err := Parse(data, source)
	if err != nil {
		return Bundle{}, err
	}
	if kind != want {
		return Bundle{}, fmt.Errorf("document: %s: expected a %s, found a %s", source, want, kind)
	}
	return bundle, nil
}

func decode(data []byte, source string) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("document: %s is empty", source)
	}

	var raw any
	if isYAML(source) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("document: parse %s: %w", source, err)
		}
		return normalise(raw), nil
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err == nil {
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err == nil {
		return normalise(raw), nil
	}
	return nil, fmt.Errorf("document: parse %s: invalid JSON or YAML", source)
}

// convert routes a decoded tree through encoding/json so model types apply
// their own JSON rules (Element props flattening).
func convert(src any, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func environmentFrom(obj map[string]any, source string) model.Environment {
	data, ok := obj["data"]
	if !ok {
		return model.Environment{Name: baseName(source), Data: obj}
	}
	env := model.Environment{Data: data}
	if id, ok := obj["id"].(string); ok {
		env.ID = id
	}
	if name, ok := obj["name"].(string); ok {
		env.Name = name
	}
	if env.Name == "" {
		env.Name = baseName(source)
	}
	return env
}

// normalise converts YAML mappings with non-string keys into
// map[string]any so the tree is JSON-compatible.
func normalise(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		for k, child := range typed {
			typed[k] = normalise(child)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, child := range typed {
			out[fmt.Sprint(k)] = normalise(child)
		}
		return out
	case []any:
		for i, child := range typed {
			typed[i] = normalise(child)
		}
		return typed
	default:
		return v
	}
}

func hasAny(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

func isYAML(source string) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func baseName(source string) string {
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
