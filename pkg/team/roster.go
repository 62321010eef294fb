// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package team

import (
	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/utils"
)

// Roster is one team of a match: its members, goal region, spawn and score.
type Roster struct {
	Type  models.TeamType
	Spawn geom.Location
	Goal  geom.Region
	Goals int

	capacity int
	members  []string
}

func NewRoster(teamType models.TeamType, cfg models.TeamConfig, capacity int) (*Roster, error) {
	goal, err := cfg.Goal()
	if err != nil {
		return nil, err
	}
	spawn, err := cfg.SpawnLocation()
	if err != nil {
		return nil, err
	}

	return &Roster{
		Type:     teamType,
		Spawn:    spawn,
		Goal:     goal,
		capacity: capacity,
	}, nil
}

func (r *Roster) Capacity() int {
	return r.capacity
}

func (r *Roster) Size() int {
	return len(r.members)
}

func (r *Roster) IsEmpty() bool {
	return len(r.members) == 0
}

func (r *Roster) IsFull() bool {
	return len(r.members) >= r.capacity
}

func (r *Roster) Has(playerID string) bool {
	return utils.Contains(r.members, playerID)
}

// Members returns the member ids in join order.
func (r *Roster) Members() []string {
	return append([]string(nil), r.members...)
}

// Add puts p on the roster. It fails when the roster is full, p is already a member or p is on another team.
func (r *Roster) Add(p *session.Participant) bool {
	if r.IsFull() || r.Has(p.ID()) || p.Match.Team != "" {
		return false
	}
	r.members = append(r.members, p.ID())
	p.Match.Team = r.Type

	return true
}

func (r *Roster) Remove(p *session.Participant) bool {
	for i, id := range r.members {
		if id != p.ID() {
			continue
		}
		r.members = append(r.members[:i], r.members[i+1:]...)
		if p.Match.Team == r.Type {
			p.Match.Team = ""
		}
		return true
	}

	return false
}

func (r *Roster) AddGoal() {
	r.Goals++
}

// BuildCage surrounds the spawn with block. Air removes the cage.
func (r *Roster) BuildCage(handle environment.Handle, block environment.Block) {
	handle.SetBlocks(geom.CageShell(r.Spawn.Vec3, constants.CageWidth, constants.CageHeight), block)
}
