// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package headless

import (
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
)

// World is an environment.Handle that keeps blocks in memory.
type World struct {
	name       string
	lobby      string
	lobbySpawn geom.Location

	Settings environment.Settings
	Unloaded bool
	blocks   map[geom.BlockPos]environment.Block
}

func NewWorld(name string, lobby string, lobbySpawn geom.Location) *World {
	return &World{
		name:       name,
		lobby:      lobby,
		lobbySpawn: lobbySpawn,
		blocks:     make(map[geom.BlockPos]environment.Block),
	}
}

func (w *World) Name() string              { return w.name }
func (w *World) LobbyName() string         { return w.lobby }
func (w *World) LobbySpawn() geom.Location { return w.lobbySpawn }

func (w *World) Configure(settings environment.Settings) {
	w.Settings = settings
}

func (w *World) SetBlocks(positions []geom.BlockPos, block environment.Block) {
	for _, pos := range positions {
		if block == environment.Air {
			delete(w.blocks, pos)
			continue
		}
		w.blocks[pos] = block
	}
}

// Block returns the block at pos, air when nothing was set.
func (w *World) Block(pos geom.BlockPos) environment.Block {
	if b, ok := w.blocks[pos]; ok {
		return b
	}
	return environment.Air
}

// BlockCount counts the non-air blocks set in the world.
func (w *World) BlockCount() int {
	return len(w.blocks)
}

// Loader opens headless worlds for the filesystem provider.
type Loader struct {
	LobbySpawn geom.Location
}

func (l Loader) Load(_ string, name string, lobby string) (environment.Handle, error) {
	return NewWorld(name, lobby, l.LobbySpawn), nil
}

func (l Loader) Unload(handle environment.Handle) {
	if w, ok := handle.(*World); ok {
		w.Unloaded = true
	}
}
