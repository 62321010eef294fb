// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

// QueueEntry is a pending join. Attempts counts how often the entry was rerouted already.
type QueueEntry struct {
	PlayerID string
	Filter   models.MatchFilter
	Attempts int
}

// Queue holds the joins of a match that is still provisioning. Entries are unique per player.
type Queue struct {
	entries []QueueEntry
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Add(entry QueueEntry) bool {
	if q.Exists(entry.PlayerID) {
		return false
	}
	q.entries = append(q.entries, entry)

	return true
}

func (q *Queue) Exists(playerID string) bool {
	return q.index(playerID) >= 0
}

func (q *Queue) Remove(playerID string) bool {
	i := q.index(playerID)
	if i < 0 {
		return false
	}
	q.entries = append(q.entries[:i], q.entries[i+1:]...)

	return true
}

func (q *Queue) Len() int {
	return len(q.entries)
}

// Entries returns a copy of the pending entries in arrival order.
func (q *Queue) Entries() []QueueEntry {
	return append([]QueueEntry(nil), q.entries...)
}

// Drain empties the queue and returns what it held.
func (q *Queue) Drain() []QueueEntry {
	entries := q.entries
	q.entries = nil

	return entries
}

func (q *Queue) index(playerID string) int {
	return pie.FindFirstUsing(q.entries, func(e QueueEntry) bool {
		return e.PlayerID == playerID
	})
}
