// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/typ.v4/sync2"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/environment"
	"github.com/AccelByte/extend-bridge-match/pkg/events"
	"github.com/AccelByte/extend-bridge-match/pkg/ledger"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/team"
)

var participantSlices = sync2.Pool[[]*session.Participant]{
	New: func() []*session.Participant {
		return make([]*session.Participant, 0, 8)
	},
}

// Instance is one running match. It is only touched from the tick thread.
type Instance struct {
	id     int64
	config *models.MapConfig
	host   *Host

	phase      Phase
	timeLeft   int
	phaseTimer int
	countdown  bool
	announced  bool
	lastScorer string
	winner     models.TeamType

	loading      bool
	prepared     bool
	destroyed    bool
	pendingStart bool

	request      environment.Request
	env          environment.Handle
	teams        *team.Registry
	ledger       *ledger.BlockLedger
	queue        *Queue
	participants []*session.Participant
}

// New creates a match of cfg and starts provisioning its environment in the background.
// The instance stays loading until the Prepared result is handed to OnPrepared.
func New(scope *envelope.Scope, id int64, cfg *models.MapConfig, host *Host) (*Instance, error) {
	if cfg.Bridge == nil {
		return nil, fmt.Errorf("map %s: %w", cfg.Name, models.ValidationErrorNotPlayable)
	}
	region, err := cfg.Bridge.Region()
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", cfg.Name, err)
	}

	i := &Instance{
		id:         id,
		config:     cfg,
		host:       host,
		phase:      PhasePreStart,
		timeLeft:   cfg.Duration,
		phaseTimer: cfg.Countdown,
		loading:    true,
		request:    environment.NewRequest(id, cfg.Name),
		ledger:     ledger.New(region),
		queue:      NewQueue(),
	}

	req := i.request
	provider := host.Environment
	host.Executor.Submit("prepareEnvironment", func(ctx context.Context) any {
		return environment.Prepared{Request: req, Err: provider.Prepare(ctx, req)}
	})

	host.Metrics.MatchCreated(cfg.Name, string(cfg.Mode))
	i.publish(events.TopicMatchCreated, nil)
	scope.Log.WithFields(logrus.Fields{
		envelope.MatchIDLogField: id,
		envelope.MapLogField:     cfg.Name,
		"environment":            req.Name,
	}).Info("match created, provisioning environment")

	return i, nil
}

func (i *Instance) ID() int64 {
	return i.id
}

func (i *Instance) Config() *models.MapConfig {
	return i.config
}

func (i *Instance) Phase() Phase {
	return i.phase
}

func (i *Instance) Loading() bool {
	return i.loading
}

func (i *Instance) Destroyed() bool {
	return i.destroyed
}

// TimeLeft is the remaining match clock in seconds.
func (i *Instance) TimeLeft() int {
	return i.timeLeft
}

// FormatTimeLeft renders the match clock as mm:ss.
func (i *Instance) FormatTimeLeft() string {
	return fmt.Sprintf("%02d:%02d", i.timeLeft/60, i.timeLeft%60)
}

// Winner is the winning team once results were calculated.
func (i *Instance) Winner() models.TeamType {
	return i.winner
}

func (i *Instance) Teams() *team.Registry {
	return i.teams
}

func (i *Instance) Ledger() *ledger.BlockLedger {
	return i.ledger
}

func (i *Instance) Queue() *Queue {
	return i.queue
}

func (i *Instance) Environment() environment.Handle {
	return i.env
}

func (i *Instance) Participants() []*session.Participant {
	return append([]*session.Participant(nil), i.participants...)
}

func (i *Instance) ParticipantCount() int {
	return len(i.participants)
}

func (i *Instance) Has(playerID string) bool {
	return i.participantIndex(playerID) >= 0
}

// EmptySlots is the number of players the match can still take.
func (i *Instance) EmptySlots() int {
	return i.config.MaxPlayers() - len(i.participants) - i.queue.Len()
}

// IsFree reports whether a new participant may join. fromQueue exempts the provisioning queue cap.
func (i *Instance) IsFree(fromQueue bool) bool {
	if i.destroyed || i.phase != PhasePreStart {
		return false
	}
	if !i.loading && !i.teams.HasOpenSlot() {
		return false
	}
	if len(i.participants) >= i.config.MaxPlayers() {
		return false
	}
	if i.loading && !fromQueue && i.queue.Len() >= i.config.MaxPlayers() {
		return false
	}

	return true
}

// OnPrepared finishes provisioning on the tick thread: the environment is opened and configured and the
// rosters are created. Any failure destroys the instance.
func (i *Instance) OnPrepared(scope *envelope.Scope, result environment.Prepared) {
	scope = scope.NewChildScope("Instance.OnPrepared").WithMatch(i.id, i.config.Name)
	defer scope.Finish()

	if i.destroyed || !i.loading {
		return
	}
	i.prepared = true

	if result.Err != nil {
		scope.Log.WithError(result.Err).Error("failed to prepare match environment")
		i.Destroy(scope, constants.DestroyReasonProvisionFailed)
		return
	}

	handle, err := i.host.Environment.Open(result.Request)
	if err != nil {
		scope.Log.WithError(err).Error("failed to open match environment")
		i.Destroy(scope, constants.DestroyReasonProvisionFailed)
		return
	}
	i.env = handle
	handle.Configure(environment.MatchSettings)

	teams, err := team.NewRegistry(i.config)
	if err != nil {
		scope.Log.WithError(err).Error("failed to create team rosters")
		i.Destroy(scope, constants.DestroyReasonProvisionFailed)
		return
	}
	i.teams = teams
	i.loading = false

	scope.Log.WithField("queued", i.queue.Len()).Info("match environment ready")
}

// Tick advances the match by one coarse tick.
func (i *Instance) Tick(scope *envelope.Scope) {
	if i.destroyed || i.loading {
		return
	}

	if i.phase == PhasePreStart {
		i.drainQueue(scope)
		if i.pendingStart {
			i.pendingStart = false
			i.Start(scope)
		}
	}

	nonEmpty := len(i.teams.NonEmpty())
	if nonEmpty < constants.MinTeamsPerGame && i.phase != PhaseEnd && i.phase != PhasePreStart {
		if nonEmpty == 0 {
			i.Destroy(scope, constants.DestroyReasonAbandoned)
		} else {
			i.CalculateResults(scope)
		}
		return
	}

	if i.phase == PhaseRound || i.phase == PhaseGrace {
		if i.timeLeft > 0 {
			i.timeLeft--
		} else {
			i.CalculateResults(scope)
			return
		}
	}

	switch i.phase {
	case PhasePreStart:
		i.tickPreStart(scope)
	case PhaseGrace:
		i.tickGrace(scope)
	case PhaseRound:
		i.tickRound(scope)
	case PhaseEnd:
		i.tickEnd(scope)
	}
}

// Destroy removes every participant, deregisters the instance and releases its environment.
// It is a no-op on an already destroyed instance.
func (i *Instance) Destroy(scope *envelope.Scope, reason string) {
	if i.destroyed {
		return
	}
	id := i.id
	log := scope.Log.WithFields(logrus.Fields{
		envelope.MatchIDLogField: id,
		envelope.MapLogField:     i.config.Name,
		"reason":                 reason,
	})

	snapshot := i.snapshot()
	for _, p := range snapshot {
		i.Leave(scope, p, false)
		p.Player().TeleportToDefaultSpawn()
		p.Player().SetGameMode(session.GameModeDefault)
	}
	i.release(snapshot)

	pending := i.queue.Drain()
	for _, entry := range pending {
		if p, ok := i.host.Sessions.Get(entry.PlayerID); ok {
			p.Match.Queued = false
		}
	}

	i.destroyed = true
	i.host.Directory.Deregister(scope, id)

	if i.env != nil {
		i.host.Environment.Close(i.env)
	}
	if i.prepared {
		req := i.request
		provider := i.host.Environment
		i.host.Executor.Submit("discardEnvironment", func(ctx context.Context) any {
			return environment.Discarded{Request: req, Err: provider.Discard(ctx, req)}
		})
	}

	i.host.Metrics.MatchDestroyed(i.config.Name, string(i.config.Mode), reason)
	i.publish(events.TopicMatchDestroyed, func(e *events.Event) { e.Reason = reason })

	i.env = nil
	i.teams = nil
	i.ledger = nil
	i.participants = nil
	i.loading = true

	if len(pending) > 0 && reason != constants.DestroyReasonRegistryShutdown {
		for idx := range pending {
			pending[idx].Attempts++
		}
		i.host.Directory.Reroute(scope, pending)
	}
	i.queue = NewQueue()

	log.Info("match destroyed")
}

// Snapshot is a read-only view of the instance for the admin surface.
type Snapshot struct {
	ID           int64          `json:"id"`
	Map          string         `json:"map"`
	Mode         string         `json:"mode"`
	Phase        string         `json:"phase"`
	Loading      bool           `json:"loading"`
	TimeLeft     string         `json:"time_left"`
	Participants []string       `json:"participants"`
	Queued       int            `json:"queued"`
	Scores       map[string]int `json:"scores,omitempty"`
	Winner       string         `json:"winner,omitempty"`
}

func (i *Instance) Snapshot() Snapshot {
	names := pie.Map(i.participants, func(p *session.Participant) string {
		return p.Name()
	})
	s := Snapshot{
		ID:           i.id,
		Map:          i.config.Name,
		Mode:         string(i.config.Mode),
		Phase:        i.phase.String(),
		Loading:      i.loading,
		TimeLeft:     i.FormatTimeLeft(),
		Participants: names,
		Queued:       i.queue.Len(),
		Winner:       string(i.winner),
	}
	if i.teams != nil {
		s.Scores = i.teams.Scores()
	}

	return s
}

// snapshot copies the participant list so handlers may remove participants while iterating.
// The slice goes back to the pool with release.
func (i *Instance) snapshot() []*session.Participant {
	s := participantSlices.Get()
	return append(s[:0], i.participants...)
}

func (i *Instance) release(s []*session.Participant) {
	for idx := range s {
		s[idx] = nil
	}
	participantSlices.Put(s[:0])
}

func (i *Instance) participantIndex(playerID string) int {
	return pie.FindFirstUsing(i.participants, func(p *session.Participant) bool {
		return p.ID() == playerID
	})
}

func (i *Instance) broadcast(kind messages.Kind, key string, subs messages.Substitutions) {
	messages.Broadcast(i.host.Messages, i.players(), kind, key, subs)
}

func (i *Instance) players() []session.Player {
	return pie.Map(i.participants, func(p *session.Participant) session.Player {
		return p.Player()
	})
}

func (i *Instance) headcount() messages.Substitutions {
	return messages.Substitutions{
		messages.TokenCount: strconv.Itoa(len(i.participants)),
		messages.TokenMax:   strconv.Itoa(i.config.MaxPlayers()),
	}
}

func (i *Instance) scoreLine() string {
	if i.teams == nil {
		return ""
	}
	parts := make([]string, 0, len(i.teams.All()))
	for _, roster := range i.teams.All() {
		parts = append(parts, fmt.Sprintf("%s %d", roster.Type, roster.Goals))
	}

	return strings.Join(parts, " - ")
}

func (i *Instance) publish(topic string, mutate func(e *events.Event)) {
	e := events.Event{
		Topic:     topic,
		MatchID:   i.id,
		Map:       i.config.Name,
		Mode:      string(i.config.Mode),
		Timestamp: i.host.Clock.Now().UTC().Truncate(time.Millisecond),
	}
	if mutate != nil {
		mutate(&e)
	}
	i.host.Events.Publish(e)
}
