// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"fmt"

	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

// Positions inside the sample map.
var (
	RedGoal    = geom.Vec3{X: 42.3, Y: 59, Z: 0.7}
	BlueGoal   = geom.Vec3{X: -42.3, Y: 59, Z: 0.7}
	BridgeMid  = geom.BlockPos{X: 0, Y: 64, Z: 0}
	OutOfBuild = geom.BlockPos{X: 0, Y: 120, Z: 0}
)

// SampleMapConfig returns a playable two team map. Blue defends the negative x side.
func SampleMapConfig(name string, mode models.TeamMode) *models.MapConfig {
	return &models.MapConfig{
		Name:          name,
		Countdown:     3,
		Duration:      60,
		GraceDuration: 2,
		EndDuration:   2,
		Mode:          mode,
		Teams: map[models.TeamType]models.TeamConfig{
			models.TeamRed:  {MinGoal: "40:58:-2", MaxGoal: "44:60:2", Spawn: "30:70:0:90:0"},
			models.TeamBlue: {MinGoal: "-44:58:-2", MaxGoal: "-40:60:2", Spawn: "-30:70:0:270:0"},
		},
		Bridge: &models.BridgeConfig{Min: "-45:50:-20", Max: "45:90:20"},
	}
}

// NewParticipant creates an online headless participant whose stats already loaded.
func NewParticipant(i int) (*session.Participant, *headless.Player) {
	player := headless.NewPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i))
	p := session.NewParticipant(player)
	p.Stats.Loaded = true

	return p, player
}
