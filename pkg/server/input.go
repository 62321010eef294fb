// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"

	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/match"
	"github.com/AccelByte/extend-bridge-match/pkg/matchmaker"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

// The methods below are the input port of the host. They are safe to call from any goroutine.
// Actions of players outside of a match are left to the host and reported as allowed.

func (l *Loop) Login(ctx context.Context, player session.Player) error {
	return l.Do(ctx, "Loop.Login", func(scope *envelope.Scope) {
		p := l.registry.Sessions().Login(scope, player)
		if !l.config.QueueOnLogin {
			return
		}
		if _, err := l.registry.Queue(scope, p, models.MatchFilter{}); err != nil {
			scope.Log.WithError(err).WithField(envelope.PlayerIDLogField, p.ID()).Warn("failed to queue on login")
		}
	})
}

// Logout takes the player out of its match or queue and saves its stats.
func (l *Loop) Logout(ctx context.Context, playerID string) error {
	var found bool
	err := l.Do(ctx, "Loop.Logout", func(scope *envelope.Scope) {
		p, ok := l.registry.Sessions().Get(playerID)
		if !ok {
			return
		}
		found = true
		l.registry.Leave(scope, p)
		l.registry.Sessions().Logout(scope, playerID)
	})

	return l.result(err, found)
}

// Queue places the player into a match of filter and returns its id.
func (l *Loop) Queue(ctx context.Context, playerID string, filter models.MatchFilter) (int64, error) {
	var (
		matchID  int64
		queueErr error
	)
	err := l.Do(ctx, "Loop.Queue", func(scope *envelope.Scope) {
		p, ok := l.registry.Sessions().Get(playerID)
		if !ok {
			queueErr = ErrUnknownPlayer
			return
		}
		inst, err := l.registry.Queue(scope, p, filter)
		if err != nil {
			queueErr = err
			return
		}
		matchID = inst.ID()
	})
	if err != nil {
		return 0, err
	}

	return matchID, queueErr
}

func (l *Loop) Damage(ctx context.Context, event match.DamageEvent) (match.DamageOutcome, error) {
	outcome := match.DamageAllowed
	err := l.Do(ctx, "Loop.Damage", func(scope *envelope.Scope) {
		victim, ok := l.registry.Sessions().Get(event.VictimID)
		if !ok {
			return
		}
		if inst, ok := l.registry.InstanceOf(victim); ok {
			outcome = inst.HandleDamage(scope, victim, event)
		}
	})

	return outcome, err
}

func (l *Loop) PlaceBlock(ctx context.Context, playerID string, pos geom.BlockPos) (bool, error) {
	return l.inMatch(ctx, "Loop.PlaceBlock", playerID, func(inst *match.Instance, p *session.Participant) bool {
		return inst.PlaceBlock(p, pos)
	})
}

func (l *Loop) BreakBlock(ctx context.Context, playerID string, pos geom.BlockPos) (bool, error) {
	return l.inMatch(ctx, "Loop.BreakBlock", playerID, func(inst *match.Instance, p *session.Participant) bool {
		return inst.BreakBlock(p, pos)
	})
}

func (l *Loop) InventoryChange(ctx context.Context, playerID string) (bool, error) {
	return l.inMatch(ctx, "Loop.InventoryChange", playerID, func(inst *match.Instance, p *session.Participant) bool {
		return inst.AllowInventoryChange(p)
	})
}

// Chat reports whether the match delivered the message. The host broadcasts unhandled messages itself.
func (l *Loop) Chat(ctx context.Context, playerID string, message string) (bool, error) {
	var handled bool
	err := l.Do(ctx, "Loop.Chat", func(scope *envelope.Scope) {
		p, ok := l.registry.Sessions().Get(playerID)
		if !ok {
			return
		}
		if inst, ok := l.registry.InstanceOf(p); ok {
			handled = inst.Chat(p, message)
		}
	})

	return handled, err
}

func (l *Loop) UseItem(ctx context.Context, playerID string, item matchmaker.Item) (bool, error) {
	var used bool
	err := l.Do(ctx, "Loop.UseItem", func(scope *envelope.Scope) {
		if p, ok := l.registry.Sessions().Get(playerID); ok {
			used = l.registry.UseItem(scope, p, item)
		}
	})

	return used, err
}

func (l *Loop) inMatch(ctx context.Context, name string, playerID string, action func(inst *match.Instance, p *session.Participant) bool) (bool, error) {
	allowed := true
	err := l.Do(ctx, name, func(scope *envelope.Scope) {
		p, ok := l.registry.Sessions().Get(playerID)
		if !ok {
			return
		}
		if inst, ok := l.registry.InstanceOf(p); ok {
			allowed = action(inst, p)
		}
	})

	return allowed, err
}

func (l *Loop) result(err error, found bool) error {
	if err != nil {
		return err
	}
	if !found {
		return ErrUnknownPlayer
	}
	return nil
}
