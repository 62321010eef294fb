// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"context"
	"errors"
	"fmt"

	"github.com/elliotchance/pie/v2"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/maps"
	"github.com/AccelByte/extend-bridge-match/pkg/match"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
)

var (
	ErrAlreadyInMatch = errors.New("participant is already in a match")
	ErrAlreadyQueued  = errors.New("participant is already queued")
	ErrOffline        = errors.New("participant is offline")
	ErrNotPlaced      = errors.New("participant could not be placed")
)

// Item is a hotbar item the host reports as used.
type Item int

const (
	ItemQuit Item = iota
	ItemBackToLobby
	ItemPlayAgain
)

// Registry owns the map store and every live match. Matches are ticked in registration order.
type Registry struct {
	maps     *maps.Store
	host     *match.Host
	sessions *session.Manager
	pool     *models.Pool

	instances []*match.Instance
	byID      map[int64]*match.Instance
	lastID    int64

	ticking bool
	pending []match.QueueEntry
	info    TickInfo
}

var _ Matchmaker = (*Registry)(nil)

// NewRegistry wires the registry into host as the directory of every match it creates.
func NewRegistry(store *maps.Store, host *match.Host, sessions *session.Manager) *Registry {
	r := &Registry{
		maps:     store,
		host:     host,
		sessions: sessions,
		pool:     models.NewPool(),
		byID:     make(map[int64]*match.Instance),
	}
	host.Directory = r
	host.Sessions = sessions

	return r
}

func (r *Registry) Maps() *maps.Store {
	return r.maps
}

func (r *Registry) Sessions() *session.Manager {
	return r.sessions
}

func (r *Registry) Get(matchID int64) (*match.Instance, bool) {
	inst, ok := r.byID[matchID]
	return inst, ok
}

// Instances returns the live matches in registration order.
func (r *Registry) Instances() []*match.Instance {
	return append([]*match.Instance(nil), r.instances...)
}

func (r *Registry) Len() int {
	return len(r.instances)
}

// InstanceOf returns the match p plays in.
func (r *Registry) InstanceOf(p *session.Participant) (*match.Instance, bool) {
	if !p.InMatch() {
		return nil, false
	}
	return r.Get(p.Match.MatchID)
}

func (r *Registry) IsFree(inst *match.Instance, fromQueue bool) bool {
	return inst.IsFree(fromQueue)
}

func (r *Registry) Info() TickInfo {
	return r.info
}

func (r *Registry) FindOrCreate(scope *envelope.Scope, candidates []*session.Participant, filter models.MatchFilter) (*match.Instance, error) {
	scope = scope.NewChildScope("Registry.FindOrCreate")
	defer scope.Finish()

	entries := pie.Map(candidates, func(p *session.Participant) match.QueueEntry {
		return match.QueueEntry{PlayerID: p.ID(), Filter: filter}
	})

	return r.place(scope, candidates, entries, filter)
}

func (r *Registry) place(scope *envelope.Scope, candidates []*session.Participant, entries []match.QueueEntry, filter models.MatchFilter) (*match.Instance, error) {
	eligible := pie.Filter(r.instances, func(inst *match.Instance) bool {
		return inst.Config().Matches(filter) && inst.IsFree(false) && inst.EmptySlots() >= len(candidates)
	})

	var inst *match.Instance
	if len(eligible) > 0 {
		inst = eligible[r.host.Rand.Intn(len(eligible))]
	} else {
		cfg, err := r.maps.Select(r.host.Rand, filter)
		if err != nil {
			return nil, err
		}
		inst, err = r.create(scope, cfg)
		if err != nil {
			return nil, err
		}
	}

	for idx, p := range candidates {
		if inst.Requeue(scope, p, entries[idx]) {
			r.info.ParticipantsPlaced++
		}
	}

	return inst, nil
}

func (r *Registry) create(scope *envelope.Scope, cfg *models.MapConfig) (*match.Instance, error) {
	id := r.lastID + 1
	inst, err := match.New(scope, id, cfg, r.host)
	if err != nil {
		return nil, err
	}
	r.lastID = id
	r.instances = append(r.instances, inst)
	r.byID[id] = inst
	r.info.MatchesCreated++

	return inst, nil
}

func (r *Registry) Queue(scope *envelope.Scope, p *session.Participant, filter models.MatchFilter) (*match.Instance, error) {
	switch {
	case !p.Online():
		return nil, ErrOffline
	case p.InMatch():
		return nil, ErrAlreadyInMatch
	case p.Match.Queued:
		return nil, ErrAlreadyQueued
	}

	inst, err := r.FindOrCreate(scope, []*session.Participant{p}, filter)
	if err != nil {
		p.Player().SendMessage(r.host.Messages.Translate(constants.MsgQueueFailed, nil))
		return nil, err
	}
	if !p.IsIn(inst.ID()) && !inst.Queue().Exists(p.ID()) {
		return nil, ErrNotPlaced
	}
	if inst.Loading() {
		p.Player().SendMessage(r.host.Messages.Translate(constants.MsgQueueJoined, messages.Substitutions{
			messages.TokenMap: inst.Config().Name,
		}))
	}

	return inst, nil
}

// Leave takes p out of its match or any match queue. Used on logout.
func (r *Registry) Leave(scope *envelope.Scope, p *session.Participant) bool {
	if inst, ok := r.InstanceOf(p); ok {
		return inst.Leave(scope, p, true)
	}
	if !p.Match.Queued {
		return false
	}
	for _, inst := range r.instances {
		if inst.Dequeue(p.ID()) {
			break
		}
	}
	p.Match.Queued = false

	return true
}

// UseItem handles the quit, back-to-lobby and play-again items.
func (r *Registry) UseItem(scope *envelope.Scope, p *session.Participant, item Item) bool {
	inst, ok := r.InstanceOf(p)
	if !ok {
		return false
	}

	switch item {
	case ItemQuit, ItemBackToLobby:
		return inst.Leave(scope, p, true)
	case ItemPlayAgain:
		filter := inst.Filter()
		if !inst.Leave(scope, p, true) {
			return false
		}
		_, err := r.Queue(scope, p, filter)
		return err == nil
	default:
		return false
	}
}

// Start moves a match out of PreStart without waiting for the lobby countdown.
func (r *Registry) Start(scope *envelope.Scope, matchID int64) bool {
	inst, ok := r.Get(matchID)
	if !ok {
		return false
	}
	return inst.Start(scope)
}

// End destroys a match on administrative request.
func (r *Registry) End(scope *envelope.Scope, matchID int64) bool {
	inst, ok := r.Get(matchID)
	if !ok {
		return false
	}
	inst.Destroy(scope, constants.DestroyReasonAdministrativeEnd)

	return true
}

func (r *Registry) Tick(scope *envelope.Scope) {
	start := r.host.Clock.Now()
	r.info.TickID++

	r.ticking = true
	r.applyResults(scope)

	ids := r.snapshotIDs()
	for _, id := range ids {
		if inst, ok := r.Get(id); ok {
			inst.Tick(scope)
		}
	}
	r.pool.MatchIDs.Put(ids[:0])
	r.ticking = false

	r.flushReroutes(scope)

	queued := 0
	for _, inst := range r.instances {
		queued += inst.Queue().Len()
	}
	r.info.Timestamp = r.host.Clock.Now()
	r.info.ActiveMatches = len(r.instances)
	r.info.TotalQueued = queued
	r.host.Metrics.ActiveMatches(len(r.instances))
	r.host.Metrics.QueuedParticipants(queued)
	r.host.Metrics.AddTickElapsedTimeMs(constants.MatchTickFunction, r.host.Clock.Since(start))
}

func (r *Registry) MovementTick(scope *envelope.Scope) {
	start := r.host.Clock.Now()

	r.ticking = true
	ids := r.snapshotIDs()
	for _, id := range ids {
		if inst, ok := r.Get(id); ok {
			inst.MovementTick(scope)
		}
	}
	r.pool.MatchIDs.Put(ids[:0])
	r.ticking = false

	r.flushReroutes(scope)
	r.host.Metrics.AddTickElapsedTimeMs(constants.MovementTickFunction, r.host.Clock.Since(start))
}

func (r *Registry) snapshotIDs() []int64 {
	ids := r.pool.MatchIDs.Get()[:0]
	for _, inst := range r.instances {
		ids = append(ids, inst.ID())
	}

	return ids
}

// applyResults resolves every finished background result against the live registry.
func (r *Registry) applyResults(scope *envelope.Scope) {
	for _, result := range r.host.Executor.Drain() {
		switch res := result.(type) {
		case environment.Prepared:
			inst, ok := r.Get(res.Request.MatchID)
			if !ok {
				r.discardOrphan(scope, res)
				continue
			}
			inst.OnPrepared(scope, res)
		case environment.Discarded:
			log := scope.Log.WithFields(logrus.Fields{
				envelope.MatchIDLogField: res.Request.MatchID,
				"environment":            res.Request.Name,
			})
			if res.Err != nil {
				log.WithError(res.Err).Warn("failed to delete match environment")
				continue
			}
			log.Debug("match environment deleted")
		default:
			if !r.sessions.Apply(scope, result) {
				scope.Log.WithField("result", fmt.Sprintf("%T", result)).Warn("unknown background result")
			}
		}
	}
}

// discardOrphan deletes an environment whose match was destroyed while it was being prepared.
func (r *Registry) discardOrphan(scope *envelope.Scope, res environment.Prepared) {
	r.info.OrphanedDiscards++
	scope.Log.WithField(envelope.MatchIDLogField, res.Request.MatchID).Debug("environment prepared for a destroyed match")
	if res.Err != nil {
		return
	}

	req := res.Request
	provider := r.host.Environment
	r.host.Executor.Submit("discardEnvironment", func(ctx context.Context) any {
		return environment.Discarded{Request: req, Err: provider.Discard(ctx, req)}
	})
}

// Deregister removes a destroyed match. Called by the match itself.
func (r *Registry) Deregister(scope *envelope.Scope, matchID int64) {
	if _, ok := r.byID[matchID]; !ok {
		return
	}
	delete(r.byID, matchID)
	r.instances = pie.Filter(r.instances, func(inst *match.Instance) bool { return inst.ID() != matchID })
	r.info.MatchesDestroyed++

	scope.Log.WithFields(logrus.Fields{envelope.MatchIDLogField: matchID, "active": len(r.instances)}).Debug("match deregistered")
}

// Reroute sends entries that a match could not place through matchmaking again. While a tick is running
// the entries wait until every match was ticked.
func (r *Registry) Reroute(scope *envelope.Scope, entries []match.QueueEntry) {
	r.pending = append(r.pending, entries...)
	if !r.ticking {
		r.flushReroutes(scope)
	}
}

func (r *Registry) flushReroutes(scope *envelope.Scope) {
	for len(r.pending) > 0 {
		entries := r.pending
		r.pending = nil

		for _, entry := range entries {
			p, ok := r.sessions.Get(entry.PlayerID)
			if !ok || !p.Online() || p.InMatch() || p.Match.Queued {
				continue
			}
			log := scope.Log.WithFields(logrus.Fields{envelope.PlayerIDLogField: entry.PlayerID, "attempts": entry.Attempts})

			if entry.Attempts > r.host.Config.MaxRequeueAttempts {
				r.info.RerouteDropped++
				p.Player().SendMessage(r.host.Messages.Translate(constants.MsgQueueFailed, nil))
				log.Info("participant could not be placed, giving up")
				continue
			}

			p.Player().SendMessage(r.host.Messages.Translate(constants.MsgQueueCancelled, nil))
			if _, err := r.place(scope, []*session.Participant{p}, []match.QueueEntry{entry}, entry.Filter); err != nil {
				p.Player().SendMessage(r.host.Messages.Translate(constants.MsgQueueFailed, nil))
				log.WithError(err).Warn("failed to reroute participant")
				continue
			}
			r.info.Rerouted++
		}
	}
}

// Shutdown destroys every match. Queued participants are not rerouted.
func (r *Registry) Shutdown(scope *envelope.Scope) {
	for _, inst := range r.Instances() {
		inst.Destroy(scope, constants.DestroyReasonRegistryShutdown)
	}
	r.pending = nil
}
