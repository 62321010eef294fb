// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"math/rand"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-bridge-match/pkg/config"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/testsetup"
)

type stubDirectory struct {
	deregistered []int64
	rerouted     []QueueEntry
}

func (d *stubDirectory) Deregister(_ *envelope.Scope, matchID int64) {
	d.deregistered = append(d.deregistered, matchID)
}

func (d *stubDirectory) Reroute(_ *envelope.Scope, entries []QueueEntry) {
	d.rerouted = append(d.rerouted, entries...)
}

type sessionTable map[string]*session.Participant

func (s sessionTable) Get(playerID string) (*session.Participant, bool) {
	p, ok := s[playerID]
	return p, ok
}

type harness struct {
	scope     *envelope.Scope
	host      *Host
	executor  *testsetup.ManualExecutor
	provider  *testsetup.FakeProvider
	events    *testsetup.RecordingPublisher
	clock     *clockwork.FakeClock
	directory *stubDirectory
	sessions  sessionTable
	players   map[string]*headless.Player
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.LobbyCountdownEnabled = false

	h := &harness{
		scope:     testsetup.NewTestScope(),
		executor:  testsetup.NewManualExecutor(),
		provider:  testsetup.NewFakeProvider(),
		events:    &testsetup.RecordingPublisher{},
		clock:     clockwork.NewFakeClock(),
		directory: &stubDirectory{},
		sessions:  sessionTable{},
		players:   map[string]*headless.Player{},
	}
	h.host = &Host{
		Config:      cfg,
		Executor:    h.executor,
		Environment: h.provider,
		Messages:    messages.Default(),
		Metrics:     testsetup.NewMetrics(),
		Events:      h.events,
		Clock:       h.clock,
		Rand:        rand.New(rand.NewSource(7)),
		Sessions:    h.sessions,
		Directory:   h.directory,
	}

	return h
}

func (h *harness) participant(i int) (*session.Participant, *headless.Player) {
	p, player := testsetup.NewParticipant(i)
	h.sessions[p.ID()] = p
	h.players[p.ID()] = player

	return p, player
}

// loadingInstance returns a match whose environment is still provisioning.
func (h *harness) loadingInstance(t *testing.T, mode models.TeamMode) *Instance {
	t.Helper()
	inst, err := New(h.scope, 1, testsetup.SampleMapConfig("Arena1", mode), h.host)
	require.NoError(t, err)
	require.True(t, inst.Loading())

	return inst
}

// finishProvisioning runs the background prepare and hands its result to the instance.
func (h *harness) finishProvisioning(t *testing.T, inst *Instance) {
	t.Helper()
	h.executor.RunPending()
	for _, result := range h.executor.Drain() {
		if prepared, ok := result.(environment.Prepared); ok {
			inst.OnPrepared(h.scope, prepared)
		}
	}
}

func (h *harness) readyInstance(t *testing.T, mode models.TeamMode) *Instance {
	t.Helper()
	inst := h.loadingInstance(t, mode)
	h.finishProvisioning(t, inst)
	require.False(t, inst.Loading())

	return inst
}

func (h *harness) world(inst *Instance) *headless.World {
	return h.provider.Worlds[inst.ID()]
}

// soloRound returns a started solo match and its red and blue participants.
func (h *harness) soloRound(t *testing.T) (*Instance, *session.Participant, *session.Participant) {
	t.Helper()
	inst := h.readyInstance(t, models.ModeSolo)
	p1, _ := h.participant(1)
	p2, _ := h.participant(2)
	require.True(t, inst.Join(h.scope, p1, false))
	require.True(t, inst.Join(h.scope, p2, false))
	require.True(t, inst.Start(h.scope))

	red, blue := p1, p2
	if p1.Match.Team == models.TeamBlue {
		red, blue = p2, p1
	}
	require.Equal(t, models.TeamRed, red.Match.Team)
	require.Equal(t, models.TeamBlue, blue.Match.Team)

	return inst, red, blue
}
