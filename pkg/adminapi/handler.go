// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package adminapi is the operator HTTP surface: map setup, live match inspection and /metrics.
// Every read and write of engine state runs on the tick thread through server.Loop.Do.
package adminapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-openapi/swag"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/maps"
	"github.com/AccelByte/extend-bridge-match/pkg/match"
	"github.com/AccelByte/extend-bridge-match/pkg/matchmaker"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/server"
	"github.com/AccelByte/extend-bridge-match/pkg/utils"
)

const (
	defaultCountdown     = 10
	defaultDuration      = 300
	defaultGraceDuration = 5
	defaultEndDuration   = 10
)

type Handler struct {
	loop     *server.Loop
	registry *matchmaker.Registry
	importer maps.WorldImporter
	router   chi.Router
}

func NewHandler(loop *server.Loop, registry *matchmaker.Registry, importer maps.WorldImporter, gatherer prometheus.Gatherer) *Handler {
	h := &Handler{
		loop:     loop,
		registry: registry,
		importer: importer,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Route("/maps", func(r chi.Router) {
		r.Get("/", h.listMaps)
		r.Post("/", h.createMap)
		r.Delete("/{name}", h.removeMap)
		r.Put("/{name}/teams/{team}", h.setTeam)
		r.Put("/{name}/bridge", h.setBridge)
	})
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", h.listMatches)
		r.Get("/info", h.tickInfo)
		r.Post("/{id}/start", h.startMatch)
		r.Delete("/{id}", h.endMatch)
	})
	h.router = r

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	select {
	case <-h.loop.Done():
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "stopped"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handler) listMaps(w http.ResponseWriter, r *http.Request) {
	var configs []*models.MapConfig
	err := h.loop.Do(r.Context(), "Admin.ListMaps", func(*envelope.Scope) {
		for _, cfg := range h.registry.Maps().All() {
			configs = append(configs, cfg.Copy())
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapListResponse{Maps: configs})
}

func (h *Handler) createMap(w http.ResponseWriter, r *http.Request) {
	var body createMapRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, badRequest(err))
		return
	}

	var (
		created   *models.MapConfig
		createErr error
	)
	err := h.loop.Do(r.Context(), "Admin.CreateMap", func(scope *envelope.Scope) {
		created, createErr = h.registry.Maps().CreateMap(scope.Ctx, h.importer, body.toCreateRequest())
		if createErr == nil {
			scope.Log.WithField(envelope.MapLogField, created.Name).Info("map created")
			created = created.Copy()
		}
	})
	if err == nil {
		err = createErr
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) removeMap(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var removed bool
	err := h.loop.Do(r.Context(), "Admin.RemoveMap", func(*envelope.Scope) {
		removed = h.registry.Maps().Remove(name)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !removed {
		writeError(w, maps.ErrMapNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setTeam(w http.ResponseWriter, r *http.Request) {
	teamType, ok := parseTeam(chi.URLParam(r, "team"))
	if !ok {
		writeError(w, badRequest(models.ValidationErrorUnknownTeam))
		return
	}
	var body models.TeamConfig
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, badRequest(err))
		return
	}

	h.editMap(w, r, "Admin.SetTeam", func(store *maps.Store, name string) (*models.MapConfig, error) {
		return store.SetTeam(name, teamType, body)
	})
}

func (h *Handler) setBridge(w http.ResponseWriter, r *http.Request) {
	var body models.BridgeConfig
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, badRequest(err))
		return
	}

	h.editMap(w, r, "Admin.SetBridge", func(store *maps.Store, name string) (*models.MapConfig, error) {
		return store.SetBridge(name, body)
	})
}

func (h *Handler) editMap(w http.ResponseWriter, r *http.Request, op string, edit func(store *maps.Store, name string) (*models.MapConfig, error)) {
	name := chi.URLParam(r, "name")
	var (
		edited  *models.MapConfig
		editErr error
	)
	err := h.loop.Do(r.Context(), op, func(scope *envelope.Scope) {
		edited, editErr = edit(h.registry.Maps(), name)
		if editErr == nil {
			scope.Log.WithFields(logrus.Fields{envelope.MapLogField: edited.Name, "playable": edited.Playable()}).Info("map updated")
			edited = edited.Copy()
		}
	})
	if err == nil {
		err = editErr
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, edited)
}

func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request) {
	snapshots := make([]match.Snapshot, 0)
	err := h.loop.Do(r.Context(), "Admin.ListMatches", func(*envelope.Scope) {
		for _, inst := range h.registry.Instances() {
			snapshots = append(snapshots, inst.Snapshot())
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchListResponse{Matches: snapshots})
}

func (h *Handler) tickInfo(w http.ResponseWriter, r *http.Request) {
	var info matchmaker.TickInfo
	err := h.loop.Do(r.Context(), "Admin.TickInfo", func(*envelope.Scope) {
		info = h.registry.Info()
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) startMatch(w http.ResponseWriter, r *http.Request) {
	h.matchAction(w, r, "Admin.StartMatch", h.registry.Start, errNotStartable)
}

func (h *Handler) endMatch(w http.ResponseWriter, r *http.Request) {
	h.matchAction(w, r, "Admin.EndMatch", h.registry.End, errMatchNotFound)
}

func (h *Handler) matchAction(w http.ResponseWriter, r *http.Request, op string, action func(scope *envelope.Scope, matchID int64) bool, failure error) {
	matchID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, badRequest(err))
		return
	}

	var (
		done     bool
		snapshot *match.Snapshot
	)
	err = h.loop.Do(r.Context(), op, func(scope *envelope.Scope) {
		done = action(scope.WithMatch(matchID, ""), matchID)
		if inst, ok := h.registry.Get(matchID); ok {
			s := inst.Snapshot()
			snapshot = &s
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !done {
		if snapshot == nil {
			failure = errMatchNotFound
		}
		writeError(w, failure)
		return
	}
	if snapshot == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func parseTeam(value string) (models.TeamType, bool) {
	teamType := models.TeamType(utils.Capitalize(value))
	if teamType.Enemy() == "" {
		return "", false
	}
	return teamType, true
}

type createMapRequest struct {
	Name          string  `json:"name"`
	Lobby         *string `json:"lobby,omitempty"`
	World         string  `json:"world"`
	Countdown     *int    `json:"countdown,omitempty"`
	Duration      *int    `json:"duration,omitempty"`
	GraceDuration *int    `json:"grace_duration,omitempty"`
	EndDuration   *int    `json:"end_duration,omitempty"`
	Mode          *string `json:"mode,omitempty"`
}

func (c createMapRequest) toCreateRequest() maps.CreateRequest {
	req := maps.CreateRequest{
		Name:          c.Name,
		Lobby:         swag.StringValue(c.Lobby),
		World:         c.World,
		Countdown:     defaultCountdown,
		Duration:      defaultDuration,
		GraceDuration: defaultGraceDuration,
		EndDuration:   defaultEndDuration,
		Mode:          models.ModeSolo,
	}
	if c.Countdown != nil {
		req.Countdown = swag.IntValue(c.Countdown)
	}
	if c.Duration != nil {
		req.Duration = swag.IntValue(c.Duration)
	}
	if c.GraceDuration != nil {
		req.GraceDuration = swag.IntValue(c.GraceDuration)
	}
	if c.EndDuration != nil {
		req.EndDuration = swag.IntValue(c.EndDuration)
	}
	if mode := swag.StringValue(c.Mode); mode != "" {
		req.Mode = models.TeamMode(mode)
	}

	return req
}

type mapListResponse struct {
	Maps []*models.MapConfig `json:"maps"`
}

type matchListResponse struct {
	Matches []match.Snapshot `json:"matches"`
}
