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
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/team"
)

// MovementTick runs the positional scoring checks of a Round.
func (i *Instance) MovementTick(scope *envelope.Scope) {
	if i.destroyed || i.loading || i.phase != PhaseRound {
		return
	}
	i.checkPositions(scope)
}

// checkPositions stops as soon as a goal moves the match out of Round.
func (i *Instance) checkPositions(scope *envelope.Scope) {
	snapshot := i.snapshot()
	defer i.release(snapshot)

	for _, p := range snapshot {
		if i.phase != PhaseRound {
			return
		}
		if roster := i.teams.ByPosition(p.Player().Position().Floor()); roster != nil {
			i.CheckScore(scope, p, roster)
		}
	}
}

// CheckScore handles p standing inside the region of roster. Entering an enemy region scores a goal,
// entering the own region sends p back to its spawn.
func (i *Instance) CheckScore(scope *envelope.Scope, p *session.Participant, roster *team.Roster) {
	if i.destroyed || i.phase != PhaseRound || !p.IsIn(i.id) {
		return
	}
	own := i.teams.Get(p.Match.Team)
	if own == nil {
		return
	}
	if roster == own {
		p.Player().Teleport(i.env.Name(), own.Spawn)
		return
	}

	p.AddGoal()
	own.AddGoal()
	i.host.Metrics.GoalScored(i.config.Name, string(own.Type))
	i.publish(events.TopicGoalScored, func(e *events.Event) {
		e.PlayerID = p.ID()
		e.Team = string(own.Type)
		e.Scores = i.teams.Scores()
	})
	scope.Log.WithFields(logrus.Fields{
		envelope.MatchIDLogField:  i.id,
		envelope.PlayerIDLogField: p.ID(),
		"team":                    own.Type,
		"goals":                   own.Goals,
	}).Info("goal scored")

	if i.teams.ReachedGoals(constants.GoalThreshold) {
		i.CalculateResults(scope)
		return
	}

	i.lastScorer = p.ID()
	i.enterGrace()
}

// CalculateResults picks the winner, rewards every participant and moves the match to End.
func (i *Instance) CalculateResults(scope *envelope.Scope) {
	if i.destroyed || i.loading || i.phase == PhaseEnd {
		return
	}

	winner := i.teams.Winner()
	if winner != nil {
		i.winner = winner.Type
	}
	i.teams.ClearCages(i.env)

	for _, p := range i.participants {
		player := p.Player()
		player.Reset()
		if roster := i.teams.Get(p.Match.Team); roster != nil {
			player.Teleport(i.env.Name(), roster.Spawn)
		}
		if winner != nil && p.Match.Team == winner.Type {
			p.AddWin()
		} else {
			p.AddLoss()
		}
		player.SetGameMode(session.GameModeSpectator)
		player.GiveKit(session.KitEnd, p.Match.Team)
	}

	subs := messages.Substitutions{messages.TokenScores: i.scoreLine()}
	if winner != nil {
		subs[messages.TokenTeam] = string(winner.Type)
		i.broadcast(messages.KindTitle, constants.MsgWinnerTitle, subs)
		i.broadcast(messages.KindMessage, constants.MsgWinnerMessage, subs)
	} else {
		i.broadcast(messages.KindMessage, constants.MsgDrawMessage, subs)
	}

	i.phase = PhaseEnd
	i.phaseTimer = i.config.EndDuration

	i.publish(events.TopicMatchEnded, func(e *events.Event) {
		e.Winner = string(i.winner)
		e.Scores = i.teams.Scores()
	})
	scope.Log.WithFields(logrus.Fields{
		envelope.MatchIDLogField: i.id,
		envelope.MapLogField:     i.config.Name,
		"winner":                 i.winner,
	}).Info("match ended")
}
