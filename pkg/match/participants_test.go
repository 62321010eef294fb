// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/testsetup"
)

func TestJoinWhileProvisioningIsQueued(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	h := newHarness(t)
	inst := h.loadingInstance(t, models.ModeSolo)
	p1, _ := h.participant(1)
	p2, _ := h.participant(2)
	p3, _ := h.participant(3)

	g.Expect(inst.Join(h.scope, p1, false)).To(BeTrue())
	g.Expect(inst.Join(h.scope, p2, false)).To(BeTrue())
	g.Expect(inst.Join(h.scope, p3, false)).To(BeFalse(), "queue is capped at max players")

	g.Expect(p1.Match.Queued).To(BeTrue())
	g.Expect(p1.InMatch()).To(BeFalse())
	g.Expect(inst.Queue().Len()).To(Equal(2))
	g.Expect(inst.Teams()).To(BeNil())
	g.Expect(inst.ParticipantCount()).To(Equal(0))

	inst.Tick(h.scope)
	g.Expect(inst.Queue().Len()).To(Equal(2), "loading matches do not drain")

	h.finishProvisioning(t, inst)
	g.Expect(inst.Queue().Len()).To(Equal(2), "the drain waits for the next tick")

	inst.Tick(h.scope)
	g.Expect(inst.Queue().Len()).To(Equal(0))
	g.Expect(inst.ParticipantCount()).To(Equal(2))
	g.Expect(p1.IsIn(inst.ID())).To(BeTrue())
	g.Expect(p1.Match.Queued).To(BeFalse())
	for _, roster := range inst.Teams().All() {
		g.Expect(roster.Size()).To(Equal(1))
	}
	g.Expect(h.directory.rerouted).To(BeEmpty())
}

func TestQueueDrainDropsOfflineAndReroutesUnplaced(t *testing.T) {
	h := newHarness(t)
	inst := h.readyInstance(t, models.ModeSolo)
	entries := []QueueEntry{{PlayerID: "p1"}, {PlayerID: "p2"}, {PlayerID: "p3"}, {PlayerID: "p4", Attempts: 2}, {PlayerID: "p5"}}
	for i, entry := range entries {
		p, _ := h.participant(i + 1)
		p.Match.Queued = true
		require.True(t, inst.queue.Add(entry))
	}
	h.players["p2"].SetOnline(false)

	inst.Tick(h.scope)

	assert.Equal(t, []string{"p1", "p3"}, participantIDs(inst))
	assert.False(t, h.sessions["p2"].InMatch(), "offline players are dropped")
	assert.False(t, h.sessions["p2"].Match.Queued)
	require.Len(t, h.directory.rerouted, 2)
	assert.Equal(t, QueueEntry{PlayerID: "p4", Attempts: 3}, h.directory.rerouted[0])
	assert.Equal(t, QueueEntry{PlayerID: "p5", Attempts: 1}, h.directory.rerouted[1])
	assert.False(t, h.sessions["p5"].Match.Queued)
}

func participantIDs(inst *Instance) []string {
	ids := make([]string, 0, inst.ParticipantCount())
	for _, p := range inst.Participants() {
		ids = append(ids, p.ID())
	}
	return ids
}

func TestTeamCapacity(t *testing.T) {
	h := newHarness(t)
	inst := h.readyInstance(t, models.ModeDoubles)

	for i := 1; i <= 4; i++ {
		p, _ := h.participant(i)
		require.True(t, inst.Join(h.scope, p, false))
	}
	extra, _ := h.participant(5)

	assert.False(t, inst.IsFree(false))
	assert.False(t, inst.Join(h.scope, extra, false))
	assert.False(t, extra.InMatch())
	for _, roster := range inst.Teams().All() {
		assert.Equal(t, 2, roster.Size())
		assert.LessOrEqual(t, roster.Size(), inst.Config().PlayersPerTeam())
	}
}

func TestJoinRejections(t *testing.T) {
	testCases := []struct {
		name    string
		prepare func(h *harness, inst *Instance, p *session.Participant, player *headless.Player)
	}{
		{
			name: "already in another match",
			prepare: func(h *harness, inst *Instance, p *session.Participant, player *headless.Player) {
				p.Match.MatchID = 99
			},
		},
		{
			name: "offline",
			prepare: func(h *harness, inst *Instance, p *session.Participant, player *headless.Player) {
				player.SetOnline(false)
			},
		},
		{
			name: "match already started",
			prepare: func(h *harness, inst *Instance, p *session.Participant, player *headless.Player) {
				inst.phase = PhaseRound
			},
		},
		{
			name: "match destroyed",
			prepare: func(h *harness, inst *Instance, p *session.Participant, player *headless.Player) {
				inst.Destroy(h.scope, "test")
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			h := newHarness(t)
			inst := h.readyInstance(t, models.ModeSolo)
			p, player := h.participant(1)
			testCase.prepare(h, inst, p, player)

			assert.False(t, inst.Join(h.scope, p, false))
			assert.Equal(t, 0, inst.ParticipantCount())
		})
	}
}

func TestJoinLeaveRestoresParticipant(t *testing.T) {
	testCases := []struct {
		name        string
		announced   bool
		environment string
		gameMode    session.GameMode
	}{
		{name: "announced", announced: true, environment: headless.DefaultEnvironment, gameMode: session.GameModeDefault},
		{name: "silent", announced: false, environment: "TB-GAME-1-lobby", gameMode: session.GameModeAdventure},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			h := newHarness(t)
			inst := h.readyInstance(t, models.ModeSolo)
			p, player := h.participant(1)
			other, otherPlayer := h.participant(2)
			require.True(t, inst.Join(h.scope, other, false))
			player.SetHealth(4)

			require.True(t, inst.Join(h.scope, p, false))
			assert.NotEqual(t, "Player1", player.DisplayName())
			assert.True(t, player.HasKit)
			assert.True(t, player.Scoreboard)
			assert.Equal(t, "TB-GAME-1-lobby", player.Environment)
			assert.Equal(t, session.StatePlaying, p.Match.State)
			assert.Contains(t, otherPlayer.LastMessage(), "joined")

			team := p.Match.Team
			require.True(t, inst.Leave(h.scope, p, testCase.announced))

			assert.Equal(t, "Player1", player.DisplayName())
			assert.Equal(t, "Player1", player.NameTag())
			assert.False(t, player.HasKit)
			assert.False(t, player.Scoreboard)
			assert.Equal(t, float64(20), player.Health())
			assert.Equal(t, session.MatchState{}, p.Match)
			assert.False(t, inst.Has(p.ID()))
			assert.False(t, inst.Teams().Get(team).Has(p.ID()))
			assert.Equal(t, testCase.environment, player.Environment)
			assert.Equal(t, testCase.gameMode, player.GameMode)
			if testCase.announced {
				assert.Contains(t, otherPlayer.LastMessage(), "quit")
			} else {
				assert.Contains(t, otherPlayer.LastMessage(), "joined")
			}

			assert.False(t, inst.Leave(h.scope, p, true), "second leave is rejected")
			assert.Equal(t,
				[]string{events.TopicMatchCreated, events.TopicParticipantJoined, events.TopicParticipantJoined, events.TopicParticipantLeft},
				h.events.Topics())
		})
	}
}

func TestLeaveDuringEndIsSilent(t *testing.T) {
	h := newHarness(t)
	inst, red, blue := h.soloRound(t)
	inst.CalculateResults(h.scope)
	require.Equal(t, PhaseEnd, inst.Phase())
	bluePlayer := h.players[blue.ID()]
	before := len(bluePlayer.Messages)

	require.True(t, inst.Leave(h.scope, red, true))

	assert.Len(t, bluePlayer.Messages, before)
}

func TestDequeue(t *testing.T) {
	h := newHarness(t)
	inst := h.loadingInstance(t, models.ModeSolo)
	p, _ := h.participant(1)
	require.True(t, inst.Join(h.scope, p, false))

	assert.True(t, inst.Dequeue(p.ID()))
	assert.False(t, inst.Dequeue(p.ID()))
	assert.Equal(t, 0, inst.Queue().Len())
}
