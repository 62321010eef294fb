// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"math/rand"

	"github.com/jonboulle/clockwork"

	"github.com/AccelByte/extend-bridge-match/pkg/async"
	"github.com/AccelByte/extend-bridge-match/pkg/config"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/metrics"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

// Sessions resolves connected participants by player id.
type Sessions interface {
	Get(playerID string) (*session.Participant, bool)
}

// Directory is the registry side of an instance: where it deregisters and sends players it cannot place.
type Directory interface {
	Deregister(scope *envelope.Scope, matchID int64)
	Reroute(scope *envelope.Scope, entries []QueueEntry)
}

// Host carries everything an instance needs from the process. One Host is shared by every instance.
type Host struct {
	Config      *config.Config
	Executor    async.Executor
	Environment environment.Provider
	Messages    *messages.Catalog
	Metrics     metrics.MatchMetrics
	Events      events.Publisher
	Clock       clockwork.Clock
	Rand        *rand.Rand
	Sessions    Sessions
	Directory   Directory
}
