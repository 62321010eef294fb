// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"time"

	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

type State int

const (
	StateIdle State = iota
	StatePlaying
)

// PersistedStats are the lifetime counters plus their persistence bookkeeping.
type PersistedStats struct {
	models.Stats

	// Loaded is false until the background load finished.
	Loaded bool
	// Registered is true when a stats row exists in storage.
	Registered bool
	// Dirty is set by every counter change.
	Dirty bool
}

// MatchState lives only while the player is queued for or inside a match.
type MatchState struct {
	MatchID int64
	Team    models.TeamType
	State   State
	Queued  bool
	Goals   int
	Kills   int

	PrevDisplayName string
	PrevNameTag     string

	LastDamager   string
	LastDamagedAt time.Time
}

// Participant is a connected player together with its stats and match state.
type Participant struct {
	player Player

	Stats PersistedStats
	Match MatchState
}

func NewParticipant(player Player) *Participant {
	return &Participant{player: player}
}

func (p *Participant) ID() string {
	return p.player.ID()
}

func (p *Participant) Name() string {
	return p.player.Name()
}

func (p *Participant) Player() Player {
	return p.player
}

func (p *Participant) Online() bool {
	return p.player.Online()
}

func (p *Participant) InMatch() bool {
	return p.Match.MatchID != 0
}

func (p *Participant) IsIn(matchID int64) bool {
	return matchID != 0 && p.Match.MatchID == matchID
}

// ClearMatch forgets every match scoped field.
func (p *Participant) ClearMatch() {
	p.Match = MatchState{}
}

func (p *Participant) AddGoal() {
	p.Match.Goals++
}

func (p *Participant) AddKill() {
	p.Match.Kills++
	p.Stats.Kills++
	p.Stats.Dirty = true
}

func (p *Participant) AddDeath() {
	p.Stats.Deaths++
	p.Stats.Dirty = true
}

// AddWin increments wins and the win streak.
func (p *Participant) AddWin() {
	p.Stats.Wins++
	p.Stats.WinStreak++
	p.Stats.Dirty = true
}

// AddLoss increments losses and breaks the win streak.
func (p *Participant) AddLoss() {
	p.Stats.Losses++
	p.Stats.WinStreak = 0
	p.Stats.Dirty = true
}

func (p *Participant) RecordDamage(damagerID string, at time.Time) {
	p.Match.LastDamager = damagerID
	p.Match.LastDamagedAt = at
}

// RecentDamager returns the last damager if the hit happened within window before now.
func (p *Participant) RecentDamager(now time.Time, window time.Duration) (string, bool) {
	if p.Match.LastDamager == "" {
		return "", false
	}
	if now.Sub(p.Match.LastDamagedAt) > window {
		return "", false
	}

	return p.Match.LastDamager, true
}
