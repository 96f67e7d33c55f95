package dresscode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-dresscode/pkg/composer"
	"github.com/goliatone/go-dresscode/pkg/model"
	"github.com/goliatone/go-dresscode/pkg/privacy"
)

// Request aliases composer.Request for callers that only import the root
// package.
type Request = composer.Request

// Option aliases composer.Option.
type Option = composer.Option

// Records resolves saved templates, environments and profiles by id. The
// SQLite store and document bundles both satisfy it.
type Records interface {
	Template(ctx context.Context, id string) (model.Template, error)
	Environment(ctx context.Context, id string) (model.Environment, error)
	Profile(ctx context.Context, id string) (model.Profile, error)
}

// NewComposer exposes the composer constructor from the top-level module.
func NewComposer(options ...Option) *composer.Composer {
	return composer.New(options...)
}

// Compose renders template with environment data filtered to level and
// returns a PNG data URL. background may be nil.
func Compose(ctx context.Context, template model.Template, environment model.Environment, level privacy.Level, background *model.Background, options ...Option) (string, error) {
	return composer.New(options...).Compose(ctx, Request{
		Template:     template,
		Data:         environment.Data,
		PrivacyLevel: level,
		Background:   background,
	})
}

// ProfileRequest resolves a saved profile into a composer request. When the
// profile has no background the template's own background is used.
func ProfileRequest(ctx context.Context, records Records, profileID string) (Request, error) {
	if records == nil {
		return Request{}, errors.New("dresscode: records are required")
	}
	if strings.TrimSpace(profileID) == "" {
		return Request{}, errors.New("dresscode: profile id is required")
	}

	profile, err := records.Profile(ctx, profileID)
	if err != nil {
		return Request{}, fmt.Errorf("dresscode: load profile: %w", err)
	}
	template, err := records.Template(ctx, profile.TemplateID)
	if err != nil {
		return Request{}, fmt.Errorf("dresscode: load template for profile %q: %w", profileID, err)
	}
	environment, err := records.Environment(ctx, profile.EnvironmentID)
	if err != nil {
		return Request{}, fmt.Errorf("dresscode: load environment for profile %q: %w", profileID, err)
	}

	background := profile.Background
	if background == nil {
		background = template.Background
	}
	return Request{
		Template:     template,
		Data:         environment.Data,
		PrivacyLevel: LevelOf(profile.PrivacyLevel),
		Background:   background,
	}, nil
}

// RenderProfile loads a saved profile with its template and environment and
// composes it.
func RenderProfile(ctx context.Context, records Records, profileID string, options ...Option) (string, error) {
	req, err := ProfileRequest(ctx, records, profileID)
	if err != nil {
		return "", err
	}
	return composer.New(options...).Compose(ctx, req)
}

// LevelOf normalises a stored level label. Unrecognised labels are kept as
// is, so the filter treats them as an unknown target level.
func LevelOf(raw string) privacy.Level {
	if level, err := privacy.ParseLevel(raw); err == nil {
		return level
	}
	return privacy.Level(raw)
}
