// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/config"
	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/matchmaker"
)

var (
	ErrStopped       = errors.New("game loop is not running")
	ErrUnknownPlayer = errors.New("unknown player")
)

type command struct {
	name string
	fn   func(scope *envelope.Scope)
	done chan struct{}
}

// Loop is the tick thread. It owns the registry: ticks and every command passed to Do run on the
// goroutine of Run, one at a time.
type Loop struct {
	registry *matchmaker.Registry
	config   *config.Config
	clock    clockwork.Clock

	commands chan command
	stopChan chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

func NewLoop(cfg *config.Config, registry *matchmaker.Registry, clock clockwork.Clock) *Loop {
	return &Loop{
		registry: registry,
		config:   cfg,
		clock:    clock,
		commands: make(chan command),
		stopChan: make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Run ticks the registry until ctx is done or Stop is called. On exit every match is destroyed and
// every session saved.
func (l *Loop) Run(ctx context.Context) {
	l.running.Store(true)
	defer close(l.stopped)

	matchTicker := l.clock.NewTicker(l.config.MatchTickInterval())
	defer matchTicker.Stop()
	movementTicker := l.clock.NewTicker(l.config.MovementTickInterval())
	defer movementTicker.Stop()

	logrus.WithFields(logrus.Fields{
		"matchTick":    l.config.MatchTickInterval(),
		"movementTick": l.config.MovementTickInterval(),
	}).Info("game loop started")

	for {
		select {
		case <-ctx.Done():
			l.shutdown(context.Background())
			return
		case <-l.stopChan:
			l.shutdown(ctx)
			return
		case <-matchTicker.Chan():
			l.run(ctx, constants.MatchTickFunction, l.registry.Tick)
		case <-movementTicker.Chan():
			l.run(ctx, constants.MovementTickFunction, l.registry.MovementTick)
		case cmd := <-l.commands:
			l.run(ctx, cmd.name, cmd.fn)
			close(cmd.done)
		}
	}
}

// Stop ends Run and waits until the shutdown finished. A loop that never ran is only marked stopped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
	if !l.running.Load() {
		return
	}
	<-l.stopped
}

// Done is closed once Run returned.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

// Do runs fn on the tick thread and waits for it to return.
func (l *Loop) Do(ctx context.Context, name string, fn func(scope *envelope.Scope)) error {
	cmd := command{name: name, fn: fn, done: make(chan struct{})}

	select {
	case l.commands <- cmd:
	case <-l.stopped:
		return ErrStopped
	case <-l.stopChan:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// an accepted command always completes before Run can return
	<-cmd.done

	return nil
}

func (l *Loop) run(ctx context.Context, name string, fn func(scope *envelope.Scope)) {
	scope := envelope.NewRootScope(ctx, name, "")
	defer scope.Finish()

	defer func() {
		if r := recover(); r != nil {
			scope.Log.WithField("panic", fmt.Sprint(r)).Error("game loop task panicked")
		}
	}()

	fn(scope)
}

func (l *Loop) shutdown(ctx context.Context) {
	l.run(ctx, "Loop.Shutdown", func(scope *envelope.Scope) {
		l.registry.Shutdown(scope)
		l.registry.Sessions().SaveAll(scope)
		scope.Log.Info("game loop stopped")
	})
}
