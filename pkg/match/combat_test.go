// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

func TestHandleDamage(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(h *harness, inst *Instance, red, blue *session.Participant)
		event    func(red, blue *session.Participant) DamageEvent
		expected DamageOutcome
		deaths   int
		kills    int
		message  string
	}{
		{
			name: "fall damage is ignored",
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), Cause: CauseFall, Amount: 100}
			},
			expected: DamageCancelled,
		},
		{
			name: "no damage outside round",
			setup: func(h *harness, inst *Instance, red, blue *session.Participant) {
				inst.phase = PhaseGrace
			},
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), AttackerID: red.ID(), Cause: CauseEntityAttack, Amount: 100}
			},
			expected: DamageCancelled,
		},
		{
			name: "non lethal hit",
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), AttackerID: red.ID(), Cause: CauseEntityAttack, Amount: 5}
			},
			expected: DamageAllowed,
		},
		{
			name: "lethal hit",
			setup: func(h *harness, inst *Instance, red, blue *session.Participant) {
				h.players[blue.ID()].SetHealth(3)
			},
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), AttackerID: red.ID(), Cause: CauseEntityAttack, Amount: 5}
			},
			expected: DamageCancelled,
			deaths:   1,
			kills:    1,
			message:  "slain by",
		},
		{
			name: "lethal arrow",
			setup: func(h *harness, inst *Instance, red, blue *session.Participant) {
				h.players[blue.ID()].SetHealth(3)
			},
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), AttackerID: red.ID(), Cause: CauseProjectile, Amount: 5}
			},
			expected: DamageCancelled,
			deaths:   1,
			kills:    1,
			message:  "shot by",
		},
		{
			name: "void right at the end of the credit window",
			setup: func(h *harness, inst *Instance, red, blue *session.Participant) {
				blue.RecordDamage(red.ID(), h.clock.Now())
				h.clock.Advance(15 * time.Second)
			},
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), Cause: CauseVoid, Amount: 1}
			},
			expected: DamageCancelled,
			deaths:   1,
			kills:    1,
			message:  "knocked into the void",
		},
		{
			name: "void after the credit window",
			setup: func(h *harness, inst *Instance, red, blue *session.Participant) {
				blue.RecordDamage(red.ID(), h.clock.Now())
				h.clock.Advance(16 * time.Second)
			},
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), Cause: CauseVoid, Amount: 1}
			},
			expected: DamageCancelled,
			deaths:   1,
			message:  "fell into the void",
		},
		{
			name: "void after a hit by a player who went offline",
			setup: func(h *harness, inst *Instance, red, blue *session.Participant) {
				blue.RecordDamage(red.ID(), h.clock.Now())
				h.players[red.ID()].SetOnline(false)
			},
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), Cause: CauseVoid, Amount: 1}
			},
			expected: DamageCancelled,
			deaths:   1,
			message:  "fell into the void",
		},
		{
			name: "lethal damage of another cause",
			event: func(red, blue *session.Participant) DamageEvent {
				return DamageEvent{VictimID: blue.ID(), Cause: CauseOther, Amount: 100}
			},
			expected: DamageCancelled,
			deaths:   1,
			message:  "died",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			h := newHarness(t)
			inst, red, blue := h.soloRound(t)
			if testCase.setup != nil {
				testCase.setup(h, inst, red, blue)
			}

			outcome := inst.HandleDamage(h.scope, blue, testCase.event(red, blue))

			assert.Equal(t, testCase.expected, outcome)
			assert.Equal(t, testCase.deaths, blue.Stats.Deaths)
			assert.Equal(t, testCase.kills, red.Stats.Kills)
			assert.Equal(t, testCase.kills, red.Match.Kills)
			bluePlayer := h.players[blue.ID()]
			if testCase.message != "" {
				assert.Contains(t, bluePlayer.LastMessage(), testCase.message)
			}
			if testCase.deaths > 0 {
				assert.Equal(t, inst.Teams().Get(models.TeamBlue).Spawn, bluePlayer.Facing)
				assert.Equal(t, session.KitMatch, bluePlayer.Kit)
				assert.Equal(t, float64(20), bluePlayer.Health())
			}
			_, killed := h.events.Last(events.TopicKill)
			assert.Equal(t, testCase.kills > 0, killed)
		})
	}
}

func TestNonLethalHitRecordsDamager(t *testing.T) {
	h := newHarness(t)
	inst, red, blue := h.soloRound(t)

	inst.HandleDamage(h.scope, blue, DamageEvent{VictimID: blue.ID(), AttackerID: red.ID(), Cause: CauseEntityAttack, Amount: 1})

	damager, ok := blue.RecentDamager(h.clock.Now(), 15*time.Second)
	require.True(t, ok)
	assert.Equal(t, red.ID(), damager)
}

func TestTeammatesCannotHurtEachOther(t *testing.T) {
	h := newHarness(t)
	inst := h.readyInstance(t, models.ModeDoubles)
	for i := 1; i <= 4; i++ {
		p, _ := h.participant(i)
		require.True(t, inst.Join(h.scope, p, false))
	}
	require.True(t, inst.Start(h.scope))
	members := inst.Teams().Get(models.TeamRed).Members()
	victim, attacker := h.sessions[members[0]], h.sessions[members[1]]

	outcome := inst.HandleDamage(h.scope, victim, DamageEvent{VictimID: victim.ID(), AttackerID: attacker.ID(), Cause: CauseEntityAttack, Amount: 100})

	assert.Equal(t, DamageCancelled, outcome)
	assert.Equal(t, 0, victim.Stats.Deaths)
	assert.Empty(t, victim.Match.LastDamager)
}

func TestVoidInLobbyReturnsToLobbySpawn(t *testing.T) {
	h := newHarness(t)
	inst := h.readyInstance(t, models.ModeSolo)
	p, player := h.participant(1)
	require.True(t, inst.Join(h.scope, p, false))
	player.TeleportToDefaultSpawn()

	outcome := inst.HandleDamage(h.scope, p, DamageEvent{VictimID: p.ID(), Cause: CauseVoid, Amount: 4})

	assert.Equal(t, DamageCancelled, outcome)
	assert.Equal(t, "TB-GAME-1-lobby", player.Environment)
	assert.Equal(t, h.provider.LobbySpawn, player.Facing)
	assert.Equal(t, 0, p.Stats.Deaths)
}
