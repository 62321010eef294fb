// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package team

import (
	"fmt"
	"math/rand"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

// Registry holds the rosters of a match in a fixed iteration order.
type Registry struct {
	rosters []*Roster
}

// NewRegistry builds one roster per configured team, each capped at the mode's players per team.
func NewRegistry(cfg *models.MapConfig) (*Registry, error) {
	registry := &Registry{}
	for _, teamType := range cfg.TeamTypes() {
		roster, err := NewRoster(teamType, cfg.Teams[teamType], cfg.PlayersPerTeam())
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", teamType, err)
		}
		registry.rosters = append(registry.rosters, roster)
	}

	return registry, nil
}

func (r *Registry) All() []*Roster {
	return r.rosters
}

func (r *Registry) Get(teamType models.TeamType) *Roster {
	i := pie.FindFirstUsing(r.rosters, func(roster *Roster) bool { return roster.Type == teamType })
	if i < 0 {
		return nil
	}
	return r.rosters[i]
}

// AssignRandom picks the least populated roster that is not full, breaking ties randomly.
// It returns nil when every roster is full.
func (r *Registry) AssignRandom(rng *rand.Rand) *Roster {
	candidates := pie.Filter(r.rosters, func(roster *Roster) bool { return !roster.IsFull() })
	if len(candidates) == 0 {
		return nil
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	candidates = pie.SortStableUsing(candidates, func(a, b *Roster) bool { return a.Size() < b.Size() })

	return candidates[0]
}

// HasOpenSlot reports whether a new member can still be assigned to some roster.
func (r *Registry) HasOpenSlot() bool {
	return pie.Any(r.rosters, func(roster *Roster) bool { return !roster.IsFull() })
}

// CanStart reports whether every roster has at least minPerTeam members and none is empty.
func (r *Registry) CanStart(minPerTeam int) bool {
	return pie.All(r.rosters, func(roster *Roster) bool {
		return !roster.IsEmpty() && roster.Size() >= minPerTeam
	})
}

func (r *Registry) NonEmpty() []*Roster {
	return pie.Filter(r.rosters, func(roster *Roster) bool { return !roster.IsEmpty() })
}

// ByPosition returns the first roster whose goal region contains pos.
func (r *Registry) ByPosition(pos geom.BlockPos) *Roster {
	for _, roster := range r.rosters {
		if roster.Goal.Contains(pos) {
			return roster
		}
	}
	return nil
}

func (r *Registry) Enemy(roster *Roster) *Roster {
	return r.Get(roster.Type.Enemy())
}

// ReachedGoals reports whether any roster scored at least threshold goals.
func (r *Registry) ReachedGoals(threshold int) bool {
	return pie.Any(r.rosters, func(roster *Roster) bool { return roster.Goals >= threshold })
}

// Winner returns the non-empty roster with strictly the most goals. On a tie the first one in order wins.
func (r *Registry) Winner() *Roster {
	var winner *Roster
	for _, roster := range r.NonEmpty() {
		if winner == nil || roster.Goals > winner.Goals {
			winner = roster
		}
	}
	return winner
}

func (r *Registry) Scores() map[string]int {
	scores := make(map[string]int, len(r.rosters))
	for _, roster := range r.rosters {
		scores[string(roster.Type)] = roster.Goals
	}
	return scores
}

// BuildCages builds every roster's cage in its team glass.
func (r *Registry) BuildCages(handle environment.Handle) {
	for _, roster := range r.rosters {
		roster.BuildCage(handle, environment.TeamGlass(roster.Type))
	}
}

func (r *Registry) ClearCages(handle environment.Handle) {
	for _, roster := range r.rosters {
		roster.BuildCage(handle, environment.Air)
	}
}
