// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package environment_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newFilesystem(t *testing.T) *environment.Filesystem {
	t.Helper()
	root := t.TempDir()
	return &environment.Filesystem{
		MapsDir:   filepath.Join(root, "maps"),
		WorldsDir: filepath.Join(root, "worlds"),
		Loader:    headless.Loader{},
	}
}

func TestFilesystemLifecycle(t *testing.T) {
	ctx := context.Background()
	fsys := newFilesystem(t)
	writeFile(t, filepath.Join(fsys.MapsDir, "sky", "world", "level.dat"), "level")
	writeFile(t, filepath.Join(fsys.MapsDir, "sky", "world", "region", "r.0.0.mca"), "region")

	req := environment.NewRequest(3, "sky")
	assert.Equal(t, "TB-GAME-3", req.Name)

	require.NoError(t, fsys.Prepare(ctx, req))
	data, err := os.ReadFile(filepath.Join(fsys.WorldsDir, "TB-GAME-3", "region", "r.0.0.mca"))
	require.NoError(t, err)
	assert.Equal(t, "region", string(data))

	handle, err := fsys.Open(req)
	require.NoError(t, err)
	assert.Equal(t, "TB-GAME-3", handle.Name())
	assert.Equal(t, "TB-GAME-3", handle.LobbyName(), "without a lobby template the game world is the lobby")

	fsys.Close(handle)
	assert.True(t, handle.(*headless.World).Unloaded)

	require.NoError(t, fsys.Discard(ctx, req))
	assert.NoDirExists(t, filepath.Join(fsys.WorldsDir, "TB-GAME-3"))
}

func TestFilesystemSeparateLobby(t *testing.T) {
	ctx := context.Background()
	fsys := newFilesystem(t)
	writeFile(t, filepath.Join(fsys.MapsDir, "sky", "world", "level.dat"), "level")
	writeFile(t, filepath.Join(fsys.MapsDir, "sky", "lobby", "level.dat"), "lobby")

	req := environment.NewRequest(1, "sky")
	require.NoError(t, fsys.Prepare(ctx, req))

	handle, err := fsys.Open(req)
	require.NoError(t, err)
	assert.Equal(t, "TB-GAME-1-lobby", handle.LobbyName())

	require.NoError(t, fsys.Discard(ctx, req))
	assert.NoDirExists(t, filepath.Join(fsys.WorldsDir, "TB-GAME-1-lobby"))
}

func TestFilesystemPrepareMissingTemplate(t *testing.T) {
	fsys := newFilesystem(t)

	err := fsys.Prepare(context.Background(), environment.NewRequest(1, "nowhere"))
	assert.ErrorIs(t, err, environment.ErrTemplateMissing)
}

func TestFilesystemCleanupStale(t *testing.T) {
	fsys := newFilesystem(t)
	writeFile(t, filepath.Join(fsys.WorldsDir, "TB-GAME-9", "level.dat"), "old")
	writeFile(t, filepath.Join(fsys.WorldsDir, "world", "level.dat"), "keep")

	fsys.CleanupStale(logrus.NewEntry(logrus.New()))

	assert.NoDirExists(t, filepath.Join(fsys.WorldsDir, "TB-GAME-9"))
	assert.DirExists(t, filepath.Join(fsys.WorldsDir, "world"))
	assert.True(t, fsys.WorldExists("world"))
	assert.False(t, fsys.WorldExists("TB-GAME-9"))
}

func TestFilesystemImportTemplate(t *testing.T) {
	fsys := newFilesystem(t)
	writeFile(t, filepath.Join(fsys.WorldsDir, "arena", "level.dat"), "arena")

	require.NoError(t, fsys.ImportTemplate(context.Background(), "sky", "arena", ""))
	assert.FileExists(t, filepath.Join(fsys.MapsDir, "sky", "world", "level.dat"))
}
