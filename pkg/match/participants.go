// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

// Filter restricts matchmaking to the map and mode of this instance.
func (i *Instance) Filter() models.MatchFilter {
	name, mode := i.config.Name, string(i.config.Mode)
	return models.MatchFilter{Map: &name, Mode: &mode}
}

// Join puts p into the match. While the environment is provisioning the join is deferred to the queue.
func (i *Instance) Join(scope *envelope.Scope, p *session.Participant, fromQueue bool) bool {
	return i.join(scope, p, fromQueue, QueueEntry{PlayerID: p.ID(), Filter: i.Filter()})
}

// Requeue is Join for a rerouted queue entry, keeping its filter and attempt count.
func (i *Instance) Requeue(scope *envelope.Scope, p *session.Participant, entry QueueEntry) bool {
	return i.join(scope, p, false, entry)
}

func (i *Instance) join(scope *envelope.Scope, p *session.Participant, fromQueue bool, entry QueueEntry) bool {
	scope = scope.NewChildScope("Instance.Join").WithMatch(i.id, i.config.Name).WithPlayer(p.ID())
	defer scope.Finish()

	if !i.IsFree(fromQueue) {
		return i.reject(scope, constants.ReasonMatchNotFree)
	}
	if p.InMatch() {
		return i.reject(scope, constants.ReasonAlreadyInMatch)
	}
	if !p.Online() {
		return i.reject(scope, constants.ReasonOffline)
	}

	if i.loading {
		if p.Match.Queued || !i.queue.Add(entry) {
			return i.reject(scope, constants.ReasonAlreadyQueued)
		}
		p.Match.Queued = true
		scope.Log.WithField("queued", i.queue.Len()).Debug("match is provisioning, join deferred")
		return true
	}

	roster := i.teams.AssignRandom(i.host.Rand)
	if roster == nil {
		return i.reject(scope, constants.ReasonNoTeam)
	}

	player := p.Player()
	player.Reset()
	player.GiveKit(session.KitLobby, roster.Type)
	player.SetHungerEnabled(false)
	player.SetGameMode(session.GameModeAdventure)
	player.SetScoreboard(true)

	roster.Add(p)
	p.Match.MatchID = i.id
	p.Match.State = session.StatePlaying
	p.Match.Queued = false
	p.Match.PrevDisplayName = player.DisplayName()
	p.Match.PrevNameTag = player.NameTag()

	player.SetDisplayName(roster.Type.ChatColor() + p.Match.PrevDisplayName)
	player.SetNameTag(roster.Type.ChatColor() + p.Match.PrevNameTag)
	player.Teleport(i.env.LobbyName(), i.env.LobbySpawn())

	i.participants = append(i.participants, p)

	subs := i.headcount()
	subs[messages.TokenPlayer] = player.DisplayName()
	i.broadcast(messages.KindMessage, constants.MsgPlayerJoin, subs)
	i.publish(events.TopicParticipantJoined, func(e *events.Event) {
		e.PlayerID = p.ID()
		e.Team = string(roster.Type)
	})
	scope.Log.WithField("team", roster.Type).Info("participant joined")

	return true
}

// Leave removes p from the match and restores its pre-match state. Announced departures also send p back to
// the default area.
func (i *Instance) Leave(scope *envelope.Scope, p *session.Participant, announced bool) bool {
	if i.destroyed || !p.IsIn(i.id) {
		return false
	}
	idx := i.participantIndex(p.ID())
	if idx < 0 {
		return false
	}

	player := p.Player()
	player.Reset()

	teamType := p.Match.Team
	if roster := i.teams.Get(teamType); roster != nil {
		roster.Remove(p)
	}
	player.SetScoreboard(false)

	prevName, prevTag := p.Match.PrevDisplayName, p.Match.PrevNameTag
	p.ClearMatch()
	player.SetHungerEnabled(false)
	player.SetDisplayName(prevName)
	player.SetNameTag(prevTag)

	i.participants = append(i.participants[:idx], i.participants[idx+1:]...)

	if announced {
		player.TeleportToDefaultSpawn()
		player.SetGameMode(session.GameModeDefault)
	}
	if announced && i.phase != PhaseEnd {
		subs := i.headcount()
		subs[messages.TokenPlayer] = prevName
		i.broadcast(messages.KindMessage, constants.MsgPlayerQuit, subs)
	}

	i.publish(events.TopicParticipantLeft, func(e *events.Event) {
		e.PlayerID = p.ID()
		e.Team = string(teamType)
	})
	scope.Log.WithFields(logrus.Fields{
		envelope.MatchIDLogField:  i.id,
		envelope.PlayerIDLogField: p.ID(),
		"announced":               announced,
	}).Debug("participant left")

	return true
}

// Dequeue drops a pending join of playerID.
func (i *Instance) Dequeue(playerID string) bool {
	if i.destroyed {
		return false
	}
	return i.queue.Remove(playerID)
}

// drainQueue moves pending joins into the match. Entries that cannot be placed are rerouted, offline players
// are dropped.
func (i *Instance) drainQueue(scope *envelope.Scope) {
	if i.queue.Len() == 0 {
		return
	}

	var reroute []QueueEntry
	for _, entry := range i.queue.Drain() {
		p, ok := i.host.Sessions.Get(entry.PlayerID)
		if !ok {
			continue
		}
		p.Match.Queued = false
		if !p.Online() {
			continue
		}
		if i.join(scope, p, true, entry) || p.InMatch() {
			continue
		}
		entry.Attempts++
		reroute = append(reroute, entry)
	}

	if len(reroute) > 0 {
		i.host.Directory.Reroute(scope, reroute)
	}
}

func (i *Instance) reject(scope *envelope.Scope, reason string) bool {
	i.host.Metrics.JoinRejected(i.config.Name, reason)
	scope.Log.WithField("reason", reason).Debug("join rejected")

	return false
}
