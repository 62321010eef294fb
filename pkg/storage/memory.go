// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

type memoryRecord struct {
	name  string
	stats models.Stats
}

// MemoryStatsStore keeps stats in process. Used when no database is configured and in tests.
type MemoryStatsStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{records: make(map[string]memoryRecord)}
}

func (m *MemoryStatsStore) Load(_ context.Context, playerID string) (*models.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[playerID]
	if !ok {
		return nil, ErrStatsNotFound
	}
	stats := record.stats

	return &stats, nil
}

func (m *MemoryStatsStore) Create(_ context.Context, playerID string, name string, stats models.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[playerID]; ok {
		return fmt.Errorf("stats of player %s already exist", playerID)
	}
	m.records[playerID] = memoryRecord{name: name, stats: stats}

	return nil
}

func (m *MemoryStatsStore) Update(_ context.Context, playerID string, name string, stats models.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[playerID]; !ok {
		return ErrStatsNotFound
	}
	m.records[playerID] = memoryRecord{name: name, stats: stats}

	return nil
}
