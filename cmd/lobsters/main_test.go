package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/lobsters-cli/internal/config"
	"github.com/glabrego/lobsters-cli/internal/storage"
	"github.com/glabrego/lobsters-cli/internal/tui/view"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--version"}, &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "lobsters dev\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_Stats(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "read.db")

	repo, err := storage.NewRepository(db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))
	require.NoError(t, repo.MarkRead(ctx, "abc"))
	require.NoError(t, repo.MarkRead(ctx, "def"))
	require.NoError(t, repo.Close())

	var stdout, stderr bytes.Buffer
	code := run([]string{"--clean", "--database", db, "--stats"}, &stdout, &stderr)

	assert.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "2 posts marked read in "+db+" (schema v1)\n", stdout.String())
}

func TestRun_ConfigErrorIsFatal(t *testing.T) {
	dir := isolate(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"--config", filepath.Join(dir, "missing.toml")}, &stdout, &stderr)

	assert.Equal(t, exitFatal, code)
	assert.Contains(t, stderr.String(), config.ErrConfigNotFound.Error())
}

func TestRun_RequiresTerminal(t *testing.T) {
	dir := isolate(t)
	f, err := os.CreateTemp(dir, "stdout")
	require.NoError(t, err)
	defer f.Close()

	orig := os.Stdout
	os.Stdout = f
	defer func() { os.Stdout = orig }()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--clean", "--database", filepath.Join(dir, "x.db")}, &stdout, &stderr)

	assert.Equal(t, exitForced, code)
	assert.Contains(t, stderr.String(), "interactive terminal")
}

func TestUIOptions_MapsEveryToggle(t *testing.T) {
	on := config.Toggle{Enable: true}
	all := config.UI{
		Shortcuts: on, Downloaded: on, KeybindHints: on, ModeInfo: on, ScoreCount: on,
		CommentCount: on, SubmittedUser: on, SubmittedElapsed: on, Scrollbar: on, Header: on,
	}
	assert.Equal(t, view.DefaultUIOptions(), uiOptions(all))
	assert.Equal(t, view.UIOptions{}, uiOptions(config.UI{}))
}
