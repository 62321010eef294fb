// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

type GameMode int

const (
	// GameModeDefault is the server wide default mode players return to outside matches.
	GameModeDefault GameMode = iota
	GameModeSurvival
	GameModeAdventure
	GameModeSpectator
)

func (m GameMode) String() string {
	switch m {
	case GameModeSurvival:
		return "survival"
	case GameModeAdventure:
		return "adventure"
	case GameModeSpectator:
		return "spectator"
	default:
		return "default"
	}
}

// Kit is a predefined inventory handed out by the host.
type Kit int

const (
	// KitLobby holds the quit item.
	KitLobby Kit = iota
	// KitMatch is the team colored fighting kit: sword, bow, pickaxe, clay, golden apples, arrow and armor.
	KitMatch
	// KitEnd holds the play-again and back-to-lobby items.
	KitEnd
)

// Player is the host's handle on a connected player.
type Player interface {
	ID() string
	Name() string
	Online() bool

	DisplayName() string
	SetDisplayName(name string)
	NameTag() string
	SetNameTag(tag string)

	Position() geom.Vec3
	Health() float64
	// Teleport moves the player into the named environment.
	Teleport(environment string, loc geom.Location)
	TeleportToDefaultSpawn()
	SetGameMode(mode GameMode)

	// Reset clears inventory, armor and effects and restores health and food.
	Reset()
	SetHungerEnabled(enabled bool)
	GiveKit(kit Kit, team models.TeamType)
	SetScoreboard(active bool)

	SendMessage(message string)
	SendTitle(title string)
	SendSubtitle(subtitle string)
}
