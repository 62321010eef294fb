// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package events

import (
	"time"
)

const (
	TopicMatchCreated      = "match.created"
	TopicMatchStarted      = "match.started"
	TopicGoalScored        = "match.goal"
	TopicMatchEnded        = "match.ended"
	TopicMatchDestroyed    = "match.destroyed"
	TopicParticipantJoined = "participant.joined"
	TopicParticipantLeft   = "participant.left"
	TopicKill              = "participant.kill"
)

// Topics lists every lifecycle topic.
var Topics = []string{
	TopicMatchCreated,
	TopicMatchStarted,
	TopicGoalScored,
	TopicMatchEnded,
	TopicMatchDestroyed,
	TopicParticipantJoined,
	TopicParticipantLeft,
	TopicKill,
}

// Event is the JSON payload of every lifecycle message.
type Event struct {
	Topic     string            `json:"topic"`
	MatchID   int64             `json:"match_id"`
	Map       string            `json:"map"`
	Mode      string            `json:"mode"`
	PlayerID  string            `json:"player_id,omitempty"`
	Team      string            `json:"team,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Scores    map[string]int    `json:"scores,omitempty"`
	Winner    string            `json:"winner,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Publisher sends lifecycle events. Publishing never blocks the tick thread for long and
// failures are logged by the implementation, not returned to game logic.
type Publisher interface {
	Publish(event Event)
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(Event) {}
