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
)

type DamageCause int

const (
	CauseOther DamageCause = iota
	CauseVoid
	CauseFall
	CauseEntityAttack
	CauseProjectile
)

// DamageEvent is a damage report from the input port. AttackerID is empty when no player caused it.
type DamageEvent struct {
	VictimID   string
	AttackerID string
	Cause      DamageCause
	Amount     float64
}

type DamageOutcome int

const (
	DamageAllowed DamageOutcome = iota
	DamageCancelled
)

// HandleDamage applies the match combat rules to a damage event against victim. Lethal damage never kills:
// the victim respawns at its team spawn and the damager is credited.
func (i *Instance) HandleDamage(scope *envelope.Scope, victim *session.Participant, event DamageEvent) DamageOutcome {
	if i.destroyed || i.loading || !victim.IsIn(i.id) {
		return DamageAllowed
	}
	player := victim.Player()

	if event.Cause == CauseVoid && i.phase == PhasePreStart {
		player.Teleport(i.env.LobbyName(), i.env.LobbySpawn())
		return DamageCancelled
	}
	if event.Cause == CauseFall || i.phase != PhaseRound {
		return DamageCancelled
	}

	now := i.host.Clock.Now()
	var attacker *session.Participant
	if event.AttackerID != "" {
		a, ok := i.host.Sessions.Get(event.AttackerID)
		if ok && a.IsIn(i.id) {
			if a.Match.Team == victim.Match.Team {
				return DamageCancelled
			}
			attacker = a
			victim.RecordDamage(a.ID(), now)
		}
	}

	if event.Cause != CauseVoid && player.Health() > event.Amount {
		return DamageAllowed
	}

	key := constants.MsgDeathDefault
	switch event.Cause {
	case CauseVoid:
		key = constants.MsgDeathVoid
	case CauseEntityAttack:
		key = constants.MsgDeathSlain
	case CauseProjectile:
		key = constants.MsgDeathShot
	}

	credited := attacker
	if event.Cause == CauseVoid && credited == nil {
		window := i.host.Config.KillCreditWindow()
		if damagerID, ok := victim.RecentDamager(now, window); ok {
			if d, ok := i.host.Sessions.Get(damagerID); ok && d.Online() && d.IsIn(i.id) {
				credited = d
				key = constants.MsgDeathKnocked
			}
		}
	}

	subs := messages.Substitutions{messages.TokenPlayer: player.DisplayName()}
	if credited != nil {
		credited.AddKill()
		subs[messages.TokenAttacker] = credited.Player().DisplayName()
		i.publish(events.TopicKill, func(e *events.Event) {
			e.PlayerID = credited.ID()
			e.Team = string(credited.Match.Team)
			e.Extra = map[string]string{"victim": victim.ID()}
		})
	}

	player.Reset()
	player.GiveKit(session.KitMatch, victim.Match.Team)
	if roster := i.teams.Get(victim.Match.Team); roster != nil {
		player.Teleport(i.env.Name(), roster.Spawn)
	}
	victim.AddDeath()
	victim.Match.LastDamager = ""
	i.broadcast(messages.KindMessage, key, subs)

	scope.Log.WithFields(logrus.Fields{
		envelope.MatchIDLogField:  i.id,
		envelope.PlayerIDLogField: victim.ID(),
		"cause":                   event.Cause,
		"credited":                credited != nil,
	}).Debug("participant died")

	return DamageCancelled
}
