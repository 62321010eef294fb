// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"time"
)

// TickInfo stores the counters of the registry tick loop
type TickInfo struct {
	Timestamp          time.Time `json:"timestamp"`
	TickID             int64     `json:"tickID"`
	ActiveMatches      int       `json:"activeMatches"`
	MatchesCreated     int       `json:"matchesCreated"`
	MatchesDestroyed   int       `json:"matchesDestroyed"`
	ParticipantsPlaced int       `json:"participantsPlaced"`
	Rerouted           int       `json:"rerouted"`
	RerouteDropped     int       `json:"rerouteDropped"`
	TotalQueued        int       `json:"totalQueued"`
	OrphanedDiscards   int       `json:"orphanedDiscards"`
}
