package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dresscode/pkg/model"
)

func TestLint_CleanBundle(t *testing.T) {
	t.Parallel()

	bundle := Bundle{
		Templates: []model.Template{{
			ID: "badge", Width: 100, Height: 40,
			Elements: []model.Element{{ID: "name", Type: model.ElementTypeText, Text: "{{user.name}}"}},
		}},
		Environments: []model.Environment{{ID: "staff", Data: map[string]any{
			"user": map[string]any{"name": map[string]any{"value": "Ann", "privacy_level": "low"}},
		}}},
		Profiles: []model.Profile{{ID: "p", TemplateID: "badge", EnvironmentID: "staff", PrivacyLevel: "medium"}},
	}
	if got := Lint(bundle); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestLint_ReportsProblems(t *testing.T) {
	t.Parallel()

	bundle := Bundle{
		Templates: []model.Template{{
			ID: "badge", Width: 0, Height: 40,
			Background: &model.Background{Mode: model.BackgroundStatic},
			Elements: []model.Element{
				{ID: "name", Type: model.ElementTypeText, Text: "{{user.nickname}}"},
				{Type: "video"},
				{ID: "plain", Type: model.ElementTypeText, Text: "Hello"},
			},
		}},
		Environments: []model.Environment{{ID: "staff", Data: map[string]any{
			"user": map[string]any{"secret": map[string]any{"value": "x", "privacy_level": "restricted"}},
		}}},
		Profiles: []model.Profile{
			{ID: "p", TemplateID: "badge", EnvironmentID: "staff", PrivacyLevel: "top"},
			{ID: "q", TemplateID: "gone", EnvironmentID: "staff"},
		},
	}

	var got []string
	for _, v := range Lint(bundle) {
		got = append(got, v.String())
	}
	want := []string{
		"environment > staff > data > user > secret -> privacy label restricted is not low, medium or high; the value is visible at every level",
		`profile > p -> privacy: unknown level "top" (want low, medium or high)`,
		`profile > p > elements.name -> {{user.nickname}} does not resolve in environment "staff"`,
		`profile > q -> template "gone" not found`,
		"template > badge -> canvas size must be positive, got 0x40",
		"template > badge > background -> static background has no src",
		`template > badge > elements.1 -> unknown element type "video" is skipped`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}
