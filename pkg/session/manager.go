// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/async"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/storage"
)

// StatsLoaded is produced by the background stats load of a session.
type StatsLoaded struct {
	PlayerID string
	Stats    models.Stats
	Found    bool
	Err      error
}

// StatsSaved is produced by the background stats save of a session that already left.
type StatsSaved struct {
	PlayerID string
	Created  bool
	Err      error
}

// Manager owns the sessions of connected players. It is only used from the tick thread.
type Manager struct {
	sessions map[string]*Participant
	store    storage.StatsStore
	executor async.Executor
}

func NewManager(store storage.StatsStore, executor async.Executor) *Manager {
	return &Manager{
		sessions: make(map[string]*Participant),
		store:    store,
		executor: executor,
	}
}

// Login creates the session of player and starts loading its stats in the background.
// An existing session of the same id is returned as is.
func (m *Manager) Login(scope *envelope.Scope, player Player) *Participant {
	if p, ok := m.sessions[player.ID()]; ok {
		return p
	}

	p := NewParticipant(player)
	m.sessions[player.ID()] = p

	playerID := player.ID()
	store := m.store
	m.executor.Submit("loadStats", func(ctx context.Context) any {
		stats, err := store.Load(ctx, playerID)
		if errors.Is(err, storage.ErrStatsNotFound) {
			return StatsLoaded{PlayerID: playerID}
		}
		if err != nil {
			return StatsLoaded{PlayerID: playerID, Err: err}
		}
		return StatsLoaded{PlayerID: playerID, Stats: *stats, Found: true}
	})
	scope.Log.WithField(envelope.PlayerIDLogField, playerID).Debug("session created")

	return p
}

// Logout removes the session and persists its stats if needed.
// The caller must have removed the participant from any match first.
func (m *Manager) Logout(scope *envelope.Scope, playerID string) (*Participant, bool) {
	p, ok := m.sessions[playerID]
	if !ok {
		return nil, false
	}
	delete(m.sessions, playerID)

	m.save(scope, p)

	return p, true
}

// save writes dirty stats of a loaded session. Unregistered players get their row created.
func (m *Manager) save(scope *envelope.Scope, p *Participant) {
	if !p.Stats.Loaded {
		return
	}
	create := !p.Stats.Registered
	if !create && !p.Stats.Dirty {
		return
	}

	playerID, name, stats := p.ID(), p.Name(), p.Stats.Stats
	store := m.store
	m.executor.Submit("saveStats", func(ctx context.Context) any {
		var err error
		if create {
			err = store.Create(ctx, playerID, name, stats)
		} else {
			err = store.Update(ctx, playerID, name, stats)
		}
		return StatsSaved{PlayerID: playerID, Created: create, Err: err}
	})
	p.Stats.Dirty = false
	p.Stats.Registered = true

	scope.Log.WithFields(logrus.Fields{envelope.PlayerIDLogField: playerID, "create": create}).Debug("stats save scheduled")
}

// Apply consumes background results addressed to sessions. It reports whether result was handled.
func (m *Manager) Apply(scope *envelope.Scope, result any) bool {
	switch r := result.(type) {
	case StatsLoaded:
		log := scope.Log.WithField(envelope.PlayerIDLogField, r.PlayerID)
		p, ok := m.sessions[r.PlayerID]
		if !ok {
			log.Debug("stats loaded for a session that already left")
			return true
		}
		if r.Err != nil {
			log.WithError(r.Err).Error("failed to load stats, session keeps empty stats and will not be saved")
			return true
		}
		// counters gathered before the load finished are kept on top of the stored ones
		streak := r.Stats.WinStreak + p.Stats.WinStreak
		if p.Stats.Losses > 0 {
			streak = p.Stats.WinStreak
		}
		p.Stats.Wins += r.Stats.Wins
		p.Stats.WinStreak = streak
		p.Stats.Losses += r.Stats.Losses
		p.Stats.Kills += r.Stats.Kills
		p.Stats.Deaths += r.Stats.Deaths
		p.Stats.Loaded = true
		p.Stats.Registered = r.Found
		return true
	case StatsSaved:
		log := scope.Log.WithField(envelope.PlayerIDLogField, r.PlayerID)
		if r.Err != nil {
			log.WithError(r.Err).Error("failed to save stats")
			return true
		}
		log.Debug("stats saved")
		return true
	default:
		return false
	}
}

func (m *Manager) Get(playerID string) (*Participant, bool) {
	p, ok := m.sessions[playerID]
	return p, ok
}

// Lookup finds a session by player name, case-insensitively.
func (m *Manager) Lookup(name string) (*Participant, bool) {
	for _, p := range m.sessions {
		if strings.EqualFold(p.Name(), name) {
			return p, true
		}
	}
	return nil, false
}

func (m *Manager) Count() int {
	return len(m.sessions)
}

// SaveAll schedules a save of every session. Used on shutdown.
func (m *Manager) SaveAll(scope *envelope.Scope) {
	for _, p := range m.sessions {
		m.save(scope, p)
	}
}
