// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package environment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
)

const lobbyDir = "lobby"

var ErrTemplateMissing = errors.New("map template missing")

// Loader loads and unloads cloned environments in the host.
type Loader interface {
	Load(worldsDir string, name string, lobby string) (Handle, error)
	Unload(handle Handle)
}

// Filesystem clones map templates from the maps directory into the worlds directory.
type Filesystem struct {
	MapsDir   string
	WorldsDir string
	Loader    Loader
}

func (f *Filesystem) templateDir(mapName string, sub string) string {
	return filepath.Join(f.MapsDir, mapName, sub)
}

func (f *Filesystem) Prepare(ctx context.Context, req Request) error {
	src := f.templateDir(req.Map, constants.MapWorldDir)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateMissing, src)
	}
	if err := copyDir(ctx, src, filepath.Join(f.WorldsDir, req.Name)); err != nil {
		return err
	}

	lobby := f.templateDir(req.Map, lobbyDir)
	if _, err := os.Stat(lobby); err == nil {
		if err := copyDir(ctx, lobby, filepath.Join(f.WorldsDir, req.LobbyName())); err != nil {
			return err
		}
	}

	return nil
}

func (f *Filesystem) Open(req Request) (Handle, error) {
	lobby := req.Name
	if _, err := os.Stat(filepath.Join(f.WorldsDir, req.LobbyName())); err == nil {
		lobby = req.LobbyName()
	}

	return f.Loader.Load(f.WorldsDir, req.Name, lobby)
}

func (f *Filesystem) Close(handle Handle) {
	f.Loader.Unload(handle)
}

func (f *Filesystem) Discard(ctx context.Context, req Request) error {
	if err := os.RemoveAll(filepath.Join(f.WorldsDir, req.Name)); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(f.WorldsDir, req.LobbyName()))
}

// WorldExists reports whether a world directory with name exists in the worlds directory.
func (f *Filesystem) WorldExists(name string) bool {
	info, err := os.Stat(filepath.Join(f.WorldsDir, name))
	return err == nil && info.IsDir()
}

// ImportTemplate copies a world of the worlds directory into the template of mapName.
func (f *Filesystem) ImportTemplate(ctx context.Context, mapName string, world string, lobby string) error {
	if err := copyDir(ctx, filepath.Join(f.WorldsDir, world), f.templateDir(mapName, constants.MapWorldDir)); err != nil {
		return err
	}
	if lobby == "" {
		return nil
	}
	return copyDir(ctx, filepath.Join(f.WorldsDir, lobby), f.templateDir(mapName, lobbyDir))
}

// CleanupStale removes environments left behind by a previous run.
func (f *Filesystem) CleanupStale(log *logrus.Entry) {
	entries, err := os.ReadDir(f.WorldsDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Warn("failed to scan worlds directory")
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.EnvironmentPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(f.WorldsDir, entry.Name())); err != nil {
			log.WithError(err).WithField("environment", entry.Name()).Warn("failed to remove stale environment")
			continue
		}
		log.WithField("environment", entry.Name()).Info("removed stale environment")
	}
}

func copyDir(ctx context.Context, src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		return copyFile(path, target)
	})
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
