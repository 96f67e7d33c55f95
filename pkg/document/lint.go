package document

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-dresscode/pkg/datatree"
	"github.com/goliatone/go-dresscode/pkg/model"
	"github.com/goliatone/go-dresscode/pkg/placeholder"
	"github.com/goliatone/go-dresscode/pkg/privacy"
)

// Violation is one problem found by Lint.
type Violation struct {
	Location []string
	Message  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s -> %s", strings.Join(v.Location, " > "), v.Message)
}

// Lint reports records that would render differently from what their author
// likely intended: empty canvases, unknown element types, unknown privacy
// labels, dangling profile references and placeholders that do not resolve
// against the profile's environment. Results are sorted by location.
func Lint(bundle Bundle) []Violation {
	var result []Violation
	for i, tpl := range bundle.Templates {
		result = append(result, lintTemplate(recordPath("template", tpl.ID, i), tpl)...)
	}
	for i, env := range bundle.Environments {
		result = append(result, lintEnvironment(recordPath("environment", env.ID, i), env)...)
	}
	for i, profile := range bundle.Profiles {
		result = append(result, lintProfile(recordPath("profile", profile.ID, i), profile, bundle)...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := strings.Join(result[i].Location, " > "), strings.Join(result[j].Location, " > ")
		if a == b {
			return result[i].Message < result[j].Message
		}
		return a < b
	})
	return result
}

func lintTemplate(path []string, tpl model.Template) []Violation {
	var result []Violation
	if tpl.Width <= 0 || tpl.Height <= 0 {
		result = append(result, Violation{path, fmt.Sprintf("canvas size must be positive, got %dx%d", tpl.Width, tpl.Height)})
	}
	if bg := tpl.Background; bg != nil {
		if bg.Mode != "" && !bg.IsStatic() {
			result = append(result, Violation{appendPath(path, "background"), fmt.Sprintf("background mode %q is not drawn", bg.Mode)})
		} else if bg.IsStatic() && strings.TrimSpace(bg.Src) == "" {
			result = append(result, Violation{appendPath(path, "background"), "static background has no src"})
		}
	}
	for i, element := range tpl.Elements {
		at := appendPath(path, elementName(element, i))
		switch element.Type {
		case model.ElementTypeText, model.ElementTypeImage:
		default:
			result = append(result, Violation{at, fmt.Sprintf("unknown element type %q is skipped", element.Type)})
		}
	}
	return result
}

func lintEnvironment(path []string, env model.Environment) []Violation {
	var result []Violation
	walkLeaves(datatree.FromValue(env.Data), nil, func(at []string, leaf datatree.Leaf) {
		if privacy.LeafOrdinal(leaf) != privacy.UnknownOrdinal {
			return
		}
		result = append(result, Violation{
			Location: append(appendPath(path, "data"), at...),
			Message:  fmt.Sprintf("privacy label %v is not low, medium or high; the value is visible at every level", leaf.Label()),
		})
	})
	return result
}

func lintProfile(path []string, profile model.Profile, bundle Bundle) []Violation {
	var result []Violation
	if profile.PrivacyLevel != "" {
		if _, err := privacy.ParseLevel(profile.PrivacyLevel); err != nil {
			result = append(result, Violation{path, err.Error()})
		}
	}

	tpl, tplErr := bundle.Template(context.Background(), profile.TemplateID)
	if tplErr != nil {
		result = append(result, Violation{path, fmt.Sprintf("template %q not found", profile.TemplateID)})
	}
	env, envErr := bundle.Environment(context.Background(), profile.EnvironmentID)
	if envErr != nil {
		result = append(result, Violation{path, fmt.Sprintf("environment %q not found", profile.EnvironmentID)})
	}
	if tplErr != nil || envErr != nil {
		return result
	}

	for i, element := range tpl.Elements {
		var expr string
		switch element.Type {
		case model.ElementTypeText:
			expr = element.Text
		case model.ElementTypeImage:
			expr = element.Src
		default:
			continue
		}
		if !placeholder.IsTemplated(expr) {
			continue
		}
		if _, ok := placeholder.Resolve(env.Data, expr); !ok {
			result = append(result, Violation{
				appendPath(path, elementName(element, i)),
				fmt.Sprintf("%s does not resolve in environment %q", strings.TrimSpace(expr), env.ID),
			})
		}
	}
	return result
}

func walkLeaves(node datatree.Node, at []string, visit func([]string, datatree.Leaf)) {
	switch typed := node.(type) {
	case datatree.Leaf:
		visit(at, typed)
	case datatree.Array:
		for i, child := range typed {
			walkLeaves(child, appendPath(at, strconv.Itoa(i)), visit)
		}
	case *datatree.Object:
		for _, key := range typed.Keys {
			walkLeaves(typed.Children[key], appendPath(at, key), visit)
		}
	}
}

func recordPath(kind, id string, index int) []string {
	if id == "" {
		return []string{kind, "#" + strconv.Itoa(index)}
	}
	return []string{kind, id}
}

func elementName(element model.Element, index int) string {
	if element.ID != "" {
		return "elements." + element.ID
	}
	return "elements." + strconv.Itoa(index)
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
