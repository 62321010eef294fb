// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"strconv"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

func (i *Instance) tickPreStart(scope *envelope.Scope) {
	if !i.host.Config.LobbyCountdownEnabled {
		return
	}
	if !i.teams.CanStart(i.config.MinPlayersPerTeam()) {
		i.countdown = false
		i.phaseTimer = i.config.Countdown
		return
	}

	i.countdown = true
	if i.phaseTimer <= 0 {
		i.Start(scope)
		return
	}
	if i.phaseTimer == i.config.Countdown || i.phaseTimer <= 5 || i.phaseTimer%10 == 0 {
		i.broadcast(messages.KindMessage, constants.MsgCountdown, messages.Substitutions{
			messages.TokenCountdown: strconv.Itoa(i.phaseTimer),
		})
	}
	i.phaseTimer--
}

// CountingDown reports whether the lobby countdown is running.
func (i *Instance) CountingDown() bool {
	return i.countdown
}

// Start moves a ready match from PreStart into its first Round.
// A match that is still loading records the request and starts on the first tick after its queue drains.
func (i *Instance) Start(scope *envelope.Scope) bool {
	if i.destroyed || i.phase != PhasePreStart {
		return false
	}
	if i.loading {
		i.pendingStart = true
		return true
	}
	scope = scope.NewChildScope("Instance.Start").WithMatch(i.id, i.config.Name)
	defer scope.Finish()

	i.countdown = false
	i.pendingStart = false
	i.timeLeft = i.config.Duration
	i.enterRound(true)

	i.publish(events.TopicMatchStarted, nil)
	scope.Log.WithField("participants", len(i.participants)).Info("match started")

	return true
}

func (i *Instance) enterRound(fromLobby bool) {
	i.phase = PhaseRound
	i.teams.ClearCages(i.env)

	for _, p := range i.participants {
		player := p.Player()
		if fromLobby {
			if roster := i.teams.Get(p.Match.Team); roster != nil {
				player.Teleport(i.env.Name(), roster.Spawn)
			}
			player.Reset()
			player.GiveKit(session.KitMatch, p.Match.Team)
		}
		player.SetGameMode(session.GameModeSurvival)
	}

	i.broadcast(messages.KindTitle, constants.MsgFightTitle, nil)
	i.broadcast(messages.KindSubtitle, constants.MsgFightSubtitle, nil)
	i.broadcast(messages.KindMessage, constants.MsgFightMessage, nil)
}

func (i *Instance) enterGrace() {
	i.phase = PhaseGrace
	i.phaseTimer = i.config.GraceDuration
	i.announced = false
	i.teams.BuildCages(i.env)

	for _, p := range i.participants {
		player := p.Player()
		if roster := i.teams.Get(p.Match.Team); roster != nil {
			player.Teleport(i.env.Name(), roster.Spawn)
		}
		player.Reset()
		player.GiveKit(session.KitMatch, p.Match.Team)
		player.SetGameMode(session.GameModeAdventure)
	}
}

func (i *Instance) tickGrace(_ *envelope.Scope) {
	if i.phaseTimer <= 0 {
		i.enterRound(false)
		return
	}

	if !i.announced {
		if scorer, ok := i.host.Sessions.Get(i.lastScorer); ok {
			i.broadcast(messages.KindTitle, constants.MsgGraceTitle, messages.Substitutions{
				messages.TokenPlayer: scorer.Player().DisplayName(),
			})
		}
		i.announced = true
	}

	subs := messages.Substitutions{messages.TokenCountdown: strconv.Itoa(i.phaseTimer)}
	i.broadcast(messages.KindSubtitle, constants.MsgGraceSubtitle, subs)
	i.broadcast(messages.KindMessage, constants.MsgGraceMessage, subs)
	i.phaseTimer--
}

func (i *Instance) tickRound(scope *envelope.Scope) {
	i.checkPositions(scope)
}

func (i *Instance) tickEnd(scope *envelope.Scope) {
	if i.phaseTimer > 0 {
		i.phaseTimer--
		return
	}
	i.Destroy(scope, constants.DestroyReasonFinished)
}
