// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker provides the process-wide match registry of the bridge match engine: the table of
// known maps and live matches, and the matchmaking entry point that places participants into them.
package matchmaker

import (
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/match"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

/*
Matchmaker places participants into matches. A request carries one or more candidates and an optional
map/mode filter. Live matches that satisfy the filter, are still free and have room for every candidate
are preferred, picking one of them at random to spread load. When none qualifies a new match is created
from the filtered map, or from a random playable map when the filter names no usable map, and the
candidates are queued into it while its environment is provisioning.

Every method must be called from the tick thread. Background work (environment provisioning, stats
persistence) reports back through results that Tick applies, so no match is ever touched concurrently.
*/
type Matchmaker interface {
	// FindOrCreate returns the match the candidates were placed into.
	// It only fails when no playable map exists.
	FindOrCreate(scope *envelope.Scope, candidates []*session.Participant, filter models.MatchFilter) (*match.Instance, error)

	// Queue places a single participant. It fails when the participant is offline, already in a match
	// or already queued.
	Queue(scope *envelope.Scope, p *session.Participant, filter models.MatchFilter) (*match.Instance, error)

	// Tick applies finished background results, then ticks every live match in registration order.
	Tick(scope *envelope.Scope)

	// MovementTick runs the positional scoring checks of every match in Round.
	MovementTick(scope *envelope.Scope)
}
