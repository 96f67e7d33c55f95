package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const samplesDir = "../../samples"

type fakePrompts struct {
	selects []int
	asked   []SelectConfig
	err     error
}

func (f *fakePrompts) Select(_ context.Context, cfg SelectConfig) (int, error) {
	f.asked = append(f.asked, cfg)
	if f.err != nil {
		return 0, f.err
	}
	if len(f.selects) == 0 {
		return cfg.DefaultIndex, nil
	}
	next := f.selects[0]
	f.selects = f.selects[1:]
	return next, nil
}

func (f *fakePrompts) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	return cfg.Default, f.err
}

type harness struct {
	db      string
	dir     string
	prompts *fakePrompts
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{db: filepath.Join(dir, "test.db"), dir: dir, prompts: &fakePrompts{}}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := h.runBoth(t, args...)
	return out, err
}

func (h *harness) runBoth(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(
		WithOutput(&stdout, &stderr),
		WithPrompts(h.prompts),
		WithLogger(zap.NewNop()),
	)
	cmd.SetArgs(append([]string{"--database", h.db}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func readPNG(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")), "expected PNG signature in %s", path)
	return data
}

func TestImportListRemove(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "import", samplesDir)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 templates, 1 environments, 3 profiles")

	out, err = h.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "badge-public")
	assert.Contains(t, out, "480x200, 4 elements")
	assert.Contains(t, out, "Staff directory")

	out, err = h.run(t, "list", "profile")
	require.NoError(t, err)
	assert.NotContains(t, out, "480x200")
	assert.Equal(t, 3, strings.Count(out, "profile "))

	out, err = h.run(t, "remove", "profile", "badge-team")
	require.NoError(t, err)
	assert.Contains(t, out, "removed profile badge-team")

	out, err = h.run(t, "remove", "profile", "badge-team")
	require.NoError(t, err, "removing a missing id is idempotent")
	assert.Contains(t, out, "profile badge-team not found; nothing removed")

	out, err = h.run(t, "list", "profiles")
	require.NoError(t, err)
	assert.NotContains(t, out, "badge-team")

	_, err = h.run(t, "list", "widgets")
	assert.Error(t, err)
}

func TestRender_FromFiles(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(h.dir, "out", "badge.png")

	out, err := h.run(t, "render",
		"--template", filepath.Join(samplesDir, "badge.yaml"),
		"--environment", filepath.Join(samplesDir, "staff.yaml"),
		"--level", "high",
		"--out", target,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+target)
	readPNG(t, target)
}

func TestRender_JPEGOutput(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(h.dir, "badge.jpg")

	_, err := h.run(t, "render", "--bundle", samplesDir, "--profile", "badge-team", "--out", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xD8}), "expected JPEG SOI marker")

	_, err = h.run(t, "render", "--bundle", samplesDir, "--profile", "badge-team", "--out", filepath.Join(h.dir, "badge.svg"))
	assert.ErrorContains(t, err, "no encoder")
}

func TestRender_PrintsDataURL(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "render", "--bundle", samplesDir, "--profile", "badge-public")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"), "unexpected output %.40q", out)
}

func TestRender_ProfileFromStore(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "import", samplesDir)
	require.NoError(t, err)

	target := filepath.Join(h.dir, "team.png")
	_, err = h.run(t, "render", "--profile", "badge-team", "--level", "low", "--out", target)
	require.NoError(t, err)
	readPNG(t, target)

	_, err = h.run(t, "render", "--profile", "missing")
	assert.Error(t, err)
}

func TestRender_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "render", "--template", filepath.Join(samplesDir, "badge.yaml"))
	assert.ErrorContains(t, err, "--template and --environment are required")

	_, err = h.run(t, "render",
		"--template", filepath.Join(samplesDir, "badge.yaml"),
		"--environment", filepath.Join(samplesDir, "staff.yaml"),
		"--level", "secret",
	)
	assert.Error(t, err)
}

func TestPick(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "import", samplesDir)
	require.NoError(t, err)

	h.prompts.selects = []int{2, 0}
	target := filepath.Join(h.dir, "picked.png")
	_, err = h.run(t, "pick", "--out", target)
	require.NoError(t, err)
	readPNG(t, target)

	require.Len(t, h.prompts.asked, 2)
	assert.Equal(t, []string{"Public badge (badge-public)", "Team badge (badge-team)", "Internal badge (badge-internal)"}, h.prompts.asked[0].Options)
	assert.Equal(t, []string{"low", "medium", "high"}, h.prompts.asked[1].Options)
	assert.Equal(t, 2, h.prompts.asked[1].DefaultIndex, "level prompt should default to the profile level")
}

func TestPick_DefaultOutputName(t *testing.T) {
	h := newHarness(t)
	chdir(t, h.dir)

	h.prompts.selects = []int{1}
	_, err := h.run(t, "pick", "--bundle", mustAbs(t, samplesDir))
	require.NoError(t, err)
	readPNG(t, filepath.Join(h.dir, "badge-team-medium.png"))
}

func TestPick_Aborted(t *testing.T) {
	h := newHarness(t)
	h.prompts.err = ErrAborted

	_, err := h.run(t, "pick", "--bundle", samplesDir)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestPick_NoProfiles(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "pick")
	assert.ErrorContains(t, err, "no saved profiles")
}

func TestVersion_JSON(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info["version"])

	_, err = h.run(t, "version", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	h := newHarness(t)
	cfg := filepath.Join(h.dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("privacy:\n  default_level: bogus\n"), 0o644))

	_, err := h.run(t, "--config", cfg, "list")
	assert.ErrorContains(t, err, "privacy.default_level")
}

func TestWatchFiles_RerendersOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "template.yaml")
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(file, []byte("id: a\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{file}, 20*time.Millisecond, zap.NewNop(), func() error {
			changes <- struct{}{}
			return errors.New("render failures are logged, not fatal")
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(file, []byte("id: b\n"), 0o644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a re-render after the file changed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatch_RequiresFlags(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "watch", "--template", "a.yaml", "--environment", "b.yaml")
	assert.ErrorContains(t, err, "--out is required")
}

func TestLint(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "lint", samplesDir)
	require.NoError(t, err)
	assert.Contains(t, out, "no problems found")

	broken := filepath.Join(h.dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("profiles:\n  - id: orphan\n    templateId: nope\n    environmentId: staff\n"), 0o644))
	_, stderr, err := h.runBoth(t, "lint", samplesDir, broken)
	assert.ErrorContains(t, err, "1 problem(s)")
	assert.Contains(t, stderr, `profile > orphan -> template "nope" not found`)
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

// chdir changes the working directory for the rest of the test and restores
// it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
