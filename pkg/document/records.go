package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-dresscode/pkg/model"
)

// ErrNotFound is returned when a bundle has no record with the requested id.
var ErrNotFound = errors.New("document: not found")

// Template returns the bundled template with id.
func (b Bundle) Template(_ context.Context, id string) (model.Template, error) {
	for _, tpl := range b.Templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return model.Template{}, fmt.Errorf("%w: template %q", ErrNotFound, id)
}

// Environment returns the bundled environment with id.
func (b Bundle) Environment(_ context.Context, id string) (model.Environment, error) {
	for _, env := range b.Environments {
		if env.ID == id {
			return env, nil
		}
	}
	return model.Environment{}, fmt.Errorf("%w: environment %q", ErrNotFound, id)
}

// Profile returns the bundled profile with id.
func (b Bundle) Profile(_ context.Context, id string) (model.Profile, error) {
	for _, profile := range b.Profiles {
		if profile.ID == id {
			return profile, nil
		}
	}
	return model.Profile{}, fmt.Errorf("%w: profile %q", ErrNotFound, id)
}
