// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"
	"errors"

	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/geom"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
)

var ErrProvisionFailed = errors.New("provision failed")

// FakeProvider opens headless worlds and records every provider call.
type FakeProvider struct {
	FailPrepare bool
	FailOpen    bool
	LobbySpawn  geom.Location

	Prepared  []environment.Request
	Worlds    map[int64]*headless.World
	Closed    []string
	Discarded []environment.Request
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		LobbySpawn: geom.Location{Vec3: geom.Vec3{X: 0.5, Y: 100, Z: 0.5}},
		Worlds:     make(map[int64]*headless.World),
	}
}

func (f *FakeProvider) Prepare(_ context.Context, req environment.Request) error {
	f.Prepared = append(f.Prepared, req)
	if f.FailPrepare {
		return ErrProvisionFailed
	}
	return nil
}

func (f *FakeProvider) Open(req environment.Request) (environment.Handle, error) {
	if f.FailOpen {
		return nil, ErrProvisionFailed
	}
	world := headless.NewWorld(req.Name, req.LobbyName(), f.LobbySpawn)
	f.Worlds[req.MatchID] = world

	return world, nil
}

func (f *FakeProvider) Close(handle environment.Handle) {
	f.Closed = append(f.Closed, handle.Name())
	if w, ok := handle.(*headless.World); ok {
		w.Unloaded = true
	}
}

func (f *FakeProvider) Discard(_ context.Context, req environment.Request) error {
	f.Discarded = append(f.Discarded, req)
	return nil
}
