// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package headless

import (
	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

// DefaultEnvironment is where players live outside of matches.
const DefaultEnvironment = constants.DefaultWorld

const maxHealth = 20

// Player is a session.Player without a game client. It records everything the engine asks of it.
type Player struct {
	id     string
	name   string
	online bool

	displayName string
	nameTag     string

	position    geom.Vec3
	health      float64
	Environment string
	Facing      geom.Location

	GameMode      session.GameMode
	HungerEnabled bool
	Scoreboard    bool
	Kit           session.Kit
	KitTeam       models.TeamType
	HasKit        bool
	Resets        int

	Messages  []string
	Titles    []string
	Subtitles []string
}

func NewPlayer(id string, name string) *Player {
	return &Player{
		id:          id,
		name:        name,
		online:      true,
		displayName: name,
		nameTag:     name,
		health:      maxHealth,
		Environment: DefaultEnvironment,
		GameMode:    session.GameModeDefault,
	}
}

func (p *Player) ID() string     { return p.id }
func (p *Player) Name() string   { return p.name }
func (p *Player) Online() bool   { return p.online }
func (p *Player) SetOnline(b bool) { p.online = b }

func (p *Player) DisplayName() string        { return p.displayName }
func (p *Player) SetDisplayName(name string) { p.displayName = name }
func (p *Player) NameTag() string            { return p.nameTag }
func (p *Player) SetNameTag(tag string)      { p.nameTag = tag }

func (p *Player) Position() geom.Vec3       { return p.position }
func (p *Player) SetPosition(pos geom.Vec3) { p.position = pos }
func (p *Player) Health() float64           { return p.health }
func (p *Player) SetHealth(h float64)       { p.health = h }

func (p *Player) Teleport(environment string, loc geom.Location) {
	p.Environment = environment
	p.Facing = loc
	p.position = loc.Vec3
}

func (p *Player) TeleportToDefaultSpawn() {
	p.Teleport(DefaultEnvironment, geom.Location{})
}

func (p *Player) SetGameMode(mode session.GameMode) { p.GameMode = mode }

func (p *Player) Reset() {
	p.Resets++
	p.HasKit = false
	p.health = maxHealth
}

func (p *Player) SetHungerEnabled(enabled bool) { p.HungerEnabled = enabled }

func (p *Player) GiveKit(kit session.Kit, team models.TeamType) {
	p.Kit = kit
	p.KitTeam = team
	p.HasKit = true
}

func (p *Player) SetScoreboard(active bool) { p.Scoreboard = active }

func (p *Player) SendMessage(message string)   { p.Messages = append(p.Messages, message) }
func (p *Player) SendTitle(title string)       { p.Titles = append(p.Titles, title) }
func (p *Player) SendSubtitle(subtitle string) { p.Subtitles = append(p.Subtitles, subtitle) }

// LastMessage returns the most recent chat message, or "".
func (p *Player) LastMessage() string {
	if len(p.Messages) == 0 {
		return ""
	}
	return p.Messages[len(p.Messages)-1]
}
