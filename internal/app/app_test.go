package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/engine"
	"github.com/tatianab/caveborn/internal/models"
)

type quitter struct{}

func (quitter) Display([]string) {}

func (quitter) Prompt(context.Context, []engine.Choice) (string, error) { return "quit", nil }

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "caveborn.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNew_SavesTranscript(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	logFile := filepath.Join(t.TempDir(), "game.log")
	path := writeConfig(t, "logging:\n  file: "+logFile+"\ntranscript:\n  dir: "+dir+"\n")

	ctx := context.Background()
	a, err := New(ctx, Options{ConfigPath: path})
	require.NoError(t, err)
	defer a.Close(ctx)
	assert.Equal(t, logFile, a.Config.Logging.File)

	rec := a.NewRecorder()
	pt, err := engine.Run(ctx, a.Director, quitter{}, character.Rogue, rec.Observe)
	require.NoError(t, err)

	written, err := a.SaveTranscript(rec, pt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, pt.ID+".yaml"), written)

	list, err := models.ListTranscripts(dir)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "QUIT", list[0].Status)
	assert.Equal(t, "Caveborn", list[0].Title)
}

func TestNew_TranscriptsDisabled(t *testing.T) {
	path := writeConfig(t, "logging:\n  file: "+filepath.Join(t.TempDir(), "game.log")+"\ntranscript:\n  enabled: false\n")
	ctx := context.Background()
	a, err := New(ctx, Options{ConfigPath: path})
	require.NoError(t, err)
	defer a.Close(ctx)

	written, err := a.SaveTranscript(a.NewRecorder(), &engine.Playthrough{})
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestNew_LogToFileDefault(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	ctx := context.Background()
	a, err := New(ctx, Options{LogToFile: true})
	require.NoError(t, err)
	defer a.Close(ctx)
	assert.Equal(t, DefaultLogFile, a.Config.Logging.File)
}

func TestNew_BadConfig(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: trace\n")
	_, err := New(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
}
