// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package environment

import (
	"context"
	"strconv"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

// Block identifies a block type understood by the host.
type Block string

const Air Block = "air"

// TeamGlass is the cage block of a team.
func TeamGlass(team models.TeamType) Block {
	return Block(team.Color() + "_stained_glass")
}

const TimeDay = 6000

// Settings are applied to an environment once it is opened.
type Settings struct {
	Time     int
	StopTime bool
	AutoSave bool
}

// MatchSettings freezes time at day and disables autosave.
var MatchSettings = Settings{Time: TimeDay, StopTime: true, AutoSave: false}

// Handle is an opened match environment.
type Handle interface {
	Name() string
	LobbyName() string
	LobbySpawn() geom.Location
	Configure(settings Settings)
	SetBlocks(positions []geom.BlockPos, block Block)
}

// Request describes one match environment. It only holds copied values so it can cross threads.
type Request struct {
	MatchID int64
	Map     string
	Name    string
}

// NewRequest names the environment of a match after its id.
func NewRequest(matchID int64, mapName string) Request {
	return Request{
		MatchID: matchID,
		Map:     mapName,
		Name:    constants.EnvironmentPrefix + strconv.FormatInt(matchID, 10),
	}
}

// LobbyName is the name of the separate lobby environment of the request.
func (r Request) LobbyName() string {
	return r.Name + "-lobby"
}

// Provider creates and destroys match environments.
type Provider interface {
	// Prepare copies the map template. Runs off the tick thread.
	Prepare(ctx context.Context, req Request) error
	// Open loads a prepared environment. Runs on the tick thread.
	Open(req Request) (Handle, error)
	// Close unloads an opened environment. Runs on the tick thread.
	Close(handle Handle)
	// Discard deletes the environment files. Runs off the tick thread.
	Discard(ctx context.Context, req Request) error
}

// Prepared is the result of a background Prepare.
type Prepared struct {
	Request Request
	Err     error
}

// Discarded is the result of a background Discard.
type Discarded struct {
	Request Request
	Err     error
}
