package dresscode

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/goliatone/go-dresscode/pkg/assets"
	"github.com/goliatone/go-dresscode/pkg/composer"
	"github.com/goliatone/go-dresscode/pkg/document"
	"github.com/goliatone/go-dresscode/pkg/model"
	"github.com/goliatone/go-dresscode/pkg/privacy"
	"github.com/goliatone/go-dresscode/pkg/testsupport"
)

func sampleBundle(t *testing.T) document.Bundle {
	t.Helper()
	bundle, err := document.LoadFS(SamplesFS())
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	return bundle
}

var offline = composer.WithLoader(assets.LoaderFunc(func(_ context.Context, src string) (image.Image, error) {
	if src == "" {
		return nil, nil
	}
	return nil, errors.New("offline")
}))

func TestSamplesFS(t *testing.T) {
	t.Parallel()

	bundle := sampleBundle(t)
	if len(bundle.Templates) != 1 || len(bundle.Environments) != 1 || len(bundle.Profiles) != 3 {
		t.Fatalf("unexpected sample bundle: %d templates, %d environments, %d profiles",
			len(bundle.Templates), len(bundle.Environments), len(bundle.Profiles))
	}
}

func TestProfileRequest_PrivacyLevels(t *testing.T) {
	t.Parallel()

	bundle := sampleBundle(t)
	c := NewComposer(offline)
	got := make(map[string][]string, len(bundle.Profiles))
	for _, profile := range bundle.Profiles {
		req, err := ProfileRequest(testsupport.Context(), bundle, profile.ID)
		if err != nil {
			t.Fatalf("%s: profile request: %v", profile.ID, err)
		}
		surface, err := c.BuildSurface(testsupport.Context(), req)
		if err != nil {
			t.Fatalf("%s: build surface: %v", profile.ID, err)
		}
		got[profile.ID] = surface.Texts()
		surface.Release()
	}

	const golden = "testdata/sample_texts.golden.json"
	testsupport.WriteGolden(t, golden, got)
	if diff := testsupport.CompareGoldenJSON(t, golden, got); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileRequest_BackgroundFallback(t *testing.T) {
	t.Parallel()

	tplBackground := &model.Background{Mode: model.BackgroundStatic, Src: "template.png"}
	profileBackground := &model.Background{Mode: model.BackgroundStatic, Src: "profile.png"}
	bundle := document.Bundle{
		Templates:    []model.Template{{ID: "t", Width: 10, Height: 10, Background: tplBackground}},
		Environments: []model.Environment{{ID: "e"}},
		Profiles: []model.Profile{
			{ID: "inherit", TemplateID: "t", EnvironmentID: "e", PrivacyLevel: " Medium "},
			{ID: "override", TemplateID: "t", EnvironmentID: "e", PrivacyLevel: "low", Background: profileBackground},
		},
	}

	req, err := ProfileRequest(context.Background(), bundle, "inherit")
	if err != nil {
		t.Fatalf("inherit: %v", err)
	}
	if req.Background != tplBackground || req.PrivacyLevel != privacy.Medium {
		t.Fatalf("unexpected inherit request: %+v", req)
	}

	req, err = ProfileRequest(context.Background(), bundle, "override")
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if req.Background != profileBackground {
		t.Fatalf("profile background should win, got %+v", req.Background)
	}
}

func TestProfileRequest_MissingRecords(t *testing.T) {
	t.Parallel()

	bundle := document.Bundle{Profiles: []model.Profile{{ID: "p", TemplateID: "missing"}}}
	if _, err := ProfileRequest(context.Background(), bundle, "nope"); !errors.Is(err, document.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for profile, got %v", err)
	}
	if _, err := ProfileRequest(context.Background(), bundle, "p"); !errors.Is(err, document.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for template, got %v", err)
	}
	if _, err := ProfileRequest(context.Background(), nil, "p"); err == nil {
		t.Fatalf("expected error for nil records")
	}
}

func TestRenderProfile(t *testing.T) {
	t.Parallel()

	url, err := RenderProfile(context.Background(), sampleBundle(t), "badge-internal", offline)
	if err != nil {
		t.Fatalf("render profile: %v", err)
	}
	img := testsupport.DecodeDataURL(t, url)
	if got := img.Bounds(); got != image.Rect(0, 0, 480, 200) {
		t.Fatalf("unexpected bounds %v", got)
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	tpl := model.Template{Width: 32, Height: 16, Elements: []model.Element{{Type: model.ElementTypeText, Text: "{{team}}"}}}
	env := model.Environment{Data: map[string]any{"team": "core"}}
	url, err := Compose(context.Background(), tpl, env, privacy.Low, nil, offline)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected data url: %.40s", url)
	}
}

func TestCompose_SampleFiles(t *testing.T) {
	t.Parallel()

	bundle := testsupport.LoadBundle(t, "samples")
	tpl := testsupport.MustTemplate(t, bundle, "badge")
	env := testsupport.MustEnvironment(t, bundle, "staff")

	url, err := Compose(testsupport.Context(), tpl, env, privacy.High, tpl.Background, offline)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	img := testsupport.DecodeDataURL(t, url)
	if got := img.Bounds(); got != image.Rect(0, 0, tpl.Width, tpl.Height) {
		t.Fatalf("unexpected bounds %v", got)
	}
}

func TestLevelOf(t *testing.T) {
	t.Parallel()

	if got := LevelOf(" HIGH "); got != privacy.High {
		t.Fatalf("expected high, got %q", got)
	}
	if got := LevelOf("secret"); got != privacy.Level("secret") {
		t.Fatalf("unknown labels should be kept, got %q", got)
	}
}
