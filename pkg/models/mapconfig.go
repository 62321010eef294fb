// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validator "github.com/AccelByte/justice-input-validation-go"
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/utils"
)

// TeamMode is the team size preset of a map, matched case-insensitively.
type TeamMode string

const (
	ModeSolo    TeamMode = "Solo"
	ModeDoubles TeamMode = "Doubles"
	ModeTrios   TeamMode = "Trios"
	ModeSquads  TeamMode = "Squads"
)

// PlayersPerTeam maps the mode to a roster capacity. Unknown modes are solo.
func (m TeamMode) PlayersPerTeam() int {
	switch TeamMode(utils.Capitalize(string(m))) {
	case ModeDoubles:
		return 2
	case ModeTrios:
		return 3
	case ModeSquads:
		return 4
	default:
		return 1
	}
}

// TeamType names a team. Team types have a fixed enemy and color.
type TeamType string

const (
	TeamBlue TeamType = "Blue"
	TeamRed  TeamType = "Red"
)

// Enemy returns the opposing team type.
func (t TeamType) Enemy() TeamType {
	switch t {
	case TeamBlue:
		return TeamRed
	case TeamRed:
		return TeamBlue
	default:
		return ""
	}
}

// ChatColor is the formatting code prefixed to the names of team members.
func (t TeamType) ChatColor() string {
	switch t {
	case TeamBlue:
		return "§9"
	case TeamRed:
		return "§c"
	default:
		return "§f"
	}
}

// Color is the dye used for the team's cage glass, clay and armor.
func (t TeamType) Color() string {
	return strings.ToLower(string(t))
}

// TeamConfig is a team entry of a map file. Coordinates use the "x:y:z" and "x:y:z:yaw:pitch" formats.
type TeamConfig struct {
	MinGoal string `json:"min_goal" valid:"required"`
	MaxGoal string `json:"max_goal" valid:"required"`
	Spawn   string `json:"spawn"    valid:"required"`
}

// Goal returns the normalized goal region.
func (t TeamConfig) Goal() (geom.Region, error) {
	minGoal, err := geom.ParseVec3(t.MinGoal)
	if err != nil {
		return geom.Region{}, err
	}
	maxGoal, err := geom.ParseVec3(t.MaxGoal)
	if err != nil {
		return geom.Region{}, err
	}

	return geom.NewRegion(minGoal, maxGoal), nil
}

// SpawnLocation returns the spawn centered on its block.
func (t TeamConfig) SpawnLocation() (geom.Location, error) {
	loc, err := geom.ParseLocation(t.Spawn)
	if err != nil {
		return geom.Location{}, err
	}
	loc.Vec3 = loc.Vec3.Add(0.5, 0, 0.5)

	return loc, nil
}

// BridgeConfig bounds the buildable region.
type BridgeConfig struct {
	Min string `json:"bridge_min" valid:"required"`
	Max string `json:"bridge_max" valid:"required"`
}

func (b BridgeConfig) Region() (geom.Region, error) {
	minBridge, err := geom.ParseVec3(b.Min)
	if err != nil {
		return geom.Region{}, err
	}
	maxBridge, err := geom.ParseVec3(b.Max)
	if err != nil {
		return geom.Region{}, err
	}

	return geom.NewRegion(minBridge, maxBridge), nil
}

// MapConfig is the immutable definition of a map, stored as maps/<name>/data.json.
type MapConfig struct {
	Name          string                  `json:"name"           valid:"required"`
	Countdown     int                     `json:"countdown"      valid:"range(0|2147483647)"`
	Duration      int                     `json:"duration"       valid:"range(0|2147483647)"`
	GraceDuration int                     `json:"grace_duration" valid:"range(0|2147483647)"`
	EndDuration   int                     `json:"end_duration"   valid:"range(0|2147483647)"`
	Mode          TeamMode                `json:"mode"`
	Teams         map[TeamType]TeamConfig `json:"teams"          optional:"true"`
	Bridge        *BridgeConfig           `json:"bridge,omitempty" optional:"true"`
}

// Key is the lowercase lookup key of the map.
func (c *MapConfig) Key() string {
	return utils.NormalizeKey(c.Name)
}

func (c *MapConfig) PlayersPerTeam() int {
	return c.Mode.PlayersPerTeam()
}

func (c *MapConfig) MaxPlayers() int {
	return c.PlayersPerTeam() * len(c.Teams)
}

// MinPlayersPerTeam is floor(MaxPlayers/2) for every mode, solo included.
func (c *MapConfig) MinPlayersPerTeam() int {
	return c.MaxPlayers() / 2
}

// TeamTypes returns the configured team types in iteration order (lexical by name).
func (c *MapConfig) TeamTypes() []TeamType {
	types := make([]TeamType, 0, len(c.Teams))
	for t := range c.Teams {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Matches reports whether the map satisfies the filter. A filter missing either field matches anything.
func (c *MapConfig) Matches(filter MatchFilter) bool {
	if filter.Map == nil || filter.Mode == nil {
		return true
	}

	return strings.EqualFold(string(c.Mode), *filter.Mode) && strings.EqualFold(c.Name, *filter.Map)
}

// Playable reports whether the map has everything a match needs.
func (c *MapConfig) Playable() bool {
	return c.Validate() == nil && len(c.Teams) >= 2 && c.Bridge != nil
}

// Validate checks the field formats. Failures wrap ValidationErrorUnknownTeam or ValidationErrorInvalidMap.
func (c *MapConfig) Validate() error {
	err := c.validate()
	if err == nil || errors.Is(err, ValidationErrorUnknownTeam) {
		return err
	}

	return fmt.Errorf("%w: %w", ValidationErrorInvalidMap, err)
}

func (c *MapConfig) validate() error {
	if _, err := validator.ValidateStruct(c); err != nil {
		return err
	}

	for teamType, team := range c.Teams {
		if teamType.Enemy() == "" {
			return fmt.Errorf("%w: %s", ValidationErrorUnknownTeam, teamType)
		}
		if _, err := validator.ValidateStruct(team); err != nil {
			return fmt.Errorf("team %s: %w", teamType, err)
		}
		if _, err := team.Goal(); err != nil {
			return fmt.Errorf("team %s goal: %w", teamType, err)
		}
		if _, err := team.SpawnLocation(); err != nil {
			return fmt.Errorf("team %s spawn: %w", teamType, err)
		}
	}

	if c.Bridge != nil {
		if _, err := validator.ValidateStruct(c.Bridge); err != nil {
			return fmt.Errorf("bridge: %w", err)
		}
		if _, err := c.Bridge.Region(); err != nil {
			return fmt.Errorf("bridge: %w", err)
		}
	}

	return nil
}

func (c *MapConfig) SetDefaultValues() {
	if c.Mode == "" {
		c.Mode = ModeSolo
	}
	if c.Teams == nil {
		c.Teams = make(map[TeamType]TeamConfig)
	}
}

// Copy returns a deep copy, so callers may edit it without touching the stored map.
func (c *MapConfig) Copy() *MapConfig {
	copied, err := copystructure.Copy(c)
	if err != nil {
		logrus.Warn("failed to copy MapConfig:", err)
		return c
	}
	copyConfig, _ := copied.(*MapConfig)

	return copyConfig
}

// MatchFilter restricts matchmaking to a map and mode.
type MatchFilter struct {
	Map  *string `json:"map,omitempty"`
	Mode *string `json:"mode,omitempty"`
}
