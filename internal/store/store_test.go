package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dresscode/pkg/model"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCollection_UpsertGeneratesIDAndReplacesInPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openMemory(t)

	first, err := s.Templates.Upsert(ctx, model.Template{Name: "badge", Width: 100, Height: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := s.Templates.Upsert(ctx, model.Template{ID: "poster", Name: "poster", Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, "poster", second.ID)

	first.Name = "badge v2"
	_, err = s.Templates.Upsert(ctx, first)
	require.NoError(t, err)

	all, err := s.Templates.Load(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "badge v2", all[0].Name)
	assert.Equal(t, "poster", all[1].ID)
}

func TestCollection_GetAndRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openMemory(t)

	env, err := s.Environments.Upsert(ctx, model.Environment{
		Name: "staff",
		Data: map[string]any{"user": map[string]any{"value": "Ann", "privacy_level": "low"}},
	})
	require.NoError(t, err)

	got, err := s.Environments.Get(ctx, env.ID)
	require.NoError(t, err)
	assert.Equal(t, "staff", got.Name)
	assert.Equal(t, map[string]any{"user": map[string]any{"value": "Ann", "privacy_level": "low"}}, got.Data)

	require.NoError(t, s.Environments.Remove(ctx, env.ID))
	_, err = s.Environments.Get(ctx, env.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Environments.Remove(ctx, env.ID), ErrNotFound)
}

func TestCollection_ImportMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openMemory(t)

	stored, err := s.Profiles.ImportMany(ctx, []model.Profile{
		{ID: "p1", Name: "public", TemplateID: "t", EnvironmentID: "e", PrivacyLevel: "low"},
		{Name: "internal", TemplateID: "t", EnvironmentID: "e", PrivacyLevel: "high"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "p1", stored[0].ID)
	assert.NotEmpty(t, stored[1].ID)

	all, err := s.Profiles.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, all)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dresscode.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	tpl := model.Template{
		ID:     "badge",
		Width:  300,
		Height: 100,
		Elements: []model.Element{
			{ID: "name", Type: model.ElementTypeText, Text: "{{user.name}}", Props: map[string]any{"x": 12.0, "fill": "#000"}},
		},
		Background: &model.Background{Mode: model.BackgroundStatic, Src: "bg.png"},
	}
	_, err = s.Templates.Upsert(ctx, tpl)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Templates.Get(ctx, "badge")
	require.NoError(t, err)
	assert.Equal(t, tpl, got)
	assert.Equal(t, path, reopened.Path())
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}
