// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package adminapi

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-bridge-match/pkg/config"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/headless"
	"github.com/AccelByte/extend-bridge-match/pkg/maps"
	"github.com/AccelByte/extend-bridge-match/pkg/match"
	"github.com/AccelByte/extend-bridge-match/pkg/matchmaker"
	"github.com/AccelByte/extend-bridge-match/pkg/messages"
	"github.com/AccelByte/extend-bridge-match/pkg/metrics"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/server"
	"github.com/AccelByte/extend-bridge-match/pkg/session"
	"github.com/AccelByte/extend-bridge-match/pkg/storage"
	"github.com/AccelByte/extend-bridge-match/pkg/testsetup"
)

type fakeImporter struct {
	worlds   map[string]bool
	imported []string
}

func (f *fakeImporter) WorldExists(name string) bool {
	return f.worlds[name]
}

func (f *fakeImporter) ImportTemplate(_ context.Context, mapName string, _ string, _ string) error {
	f.imported = append(f.imported, mapName)
	return nil
}

type apiFixture struct {
	server   *httptest.Server
	loop     *server.Loop
	registry *matchmaker.Registry
	executor *testsetup.ManualExecutor
	importer *fakeImporter
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := maps.NewStore(t.TempDir())
	require.NoError(t, store.Add(testsetup.SampleMapConfig("Arena1", models.ModeSolo), false))

	cfg := config.Default()
	cfg.LobbyCountdownEnabled = false
	promRegistry := prometheus.NewRegistry()
	clock := clockwork.NewFakeClock()

	f := &apiFixture{
		executor: testsetup.NewManualExecutor(),
		importer: &fakeImporter{worlds: map[string]bool{"castle": true, "castle-lobby": true}},
	}
	host := &match.Host{
		Config:      cfg,
		Executor:    f.executor,
		Environment: testsetup.NewFakeProvider(),
		Messages:    messages.Default(),
		Metrics:     metrics.NewMetrics(promRegistry),
		Events:      &testsetup.RecordingPublisher{},
		Clock:       clock,
		Rand:        rand.New(rand.NewSource(9)),
	}
	f.registry = matchmaker.NewRegistry(store, host, session.NewManager(storage.NewMemoryStatsStore(), f.executor))
	f.loop = server.NewLoop(cfg, f.registry, clock)
	go f.loop.Run(context.Background())
	t.Cleanup(f.loop.Stop)

	f.server = httptest.NewServer(NewHandler(f.loop, f.registry, f.importer, promRegistry))
	t.Cleanup(f.server.Close)

	return f
}

func (f *apiFixture) call(t *testing.T, method string, path string, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

// queue logs a player in and queues it, then provisions its match.
func (f *apiFixture) queue(t *testing.T, playerID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.loop.Login(ctx, headless.NewPlayer(playerID, "Player-"+playerID)))
	_, err := f.loop.Queue(ctx, playerID, models.MatchFilter{})
	require.NoError(t, err)
}

func (f *apiFixture) settle(t *testing.T) {
	t.Helper()
	require.NoError(t, f.loop.Do(context.Background(), "settle", func(scope *envelope.Scope) {
		f.executor.RunPending()
		f.registry.Tick(scope)
	}))
}

func TestHealth(t *testing.T) {
	f := newAPI(t)

	status, body := f.call(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	f.loop.Stop()
	status, _ = f.call(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = f.call(t, http.MethodGet, "/maps", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestCreateMap(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "created with defaults", body: `{"name":"Castle","world":"castle","lobby":"castle-lobby"}`, wantStatus: http.StatusCreated},
		{name: "name exists", body: `{"name":"arena1","world":"castle"}`, wantStatus: http.StatusConflict},
		{name: "world missing", body: `{"name":"Castle","world":"ruins"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "lobby is world", body: `{"name":"Castle","world":"castle","lobby":"castle"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "default world", body: `{"name":"Castle","world":"world"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "negative duration", body: `{"name":"Castle","world":"castle","duration":-1}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "malformed body", body: `{"name":`, wantStatus: http.StatusBadRequest},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			f := newAPI(t)

			status, body := f.call(t, http.MethodPost, "/maps", testCase.body)

			require.Equal(t, testCase.wantStatus, status, string(body))
			if status != http.StatusCreated {
				var resp errorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.NotEmpty(t, resp.ErrorMessage)
				return
			}
			var cfg models.MapConfig
			require.NoError(t, json.Unmarshal(body, &cfg))
			assert.Equal(t, "Castle", cfg.Name)
			assert.Equal(t, defaultDuration, cfg.Duration)
			assert.Equal(t, models.ModeSolo, cfg.Mode)
			assert.False(t, cfg.Playable())
			assert.Equal(t, []string{"Castle"}, f.importer.imported)
		})
	}
}

func TestSetupMakesMapPlayable(t *testing.T) {
	f := newAPI(t)
	status, _ := f.call(t, http.MethodPost, "/maps", `{"name":"Castle","world":"castle","mode":"doubles"}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = f.call(t, http.MethodPut, "/maps/castle/teams/red", `{"min_goal":"40:58:-2","max_goal":"44:60:2","spawn":"30:70:0:90:0"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = f.call(t, http.MethodPut, "/maps/castle/teams/BLUE", `{"min_goal":"-44:58:-2","max_goal":"-40:60:2","spawn":"-30:70:0:270:0"}`)
	require.Equal(t, http.StatusOK, status)
	status, body := f.call(t, http.MethodPut, "/maps/castle/bridge", `{"bridge_min":"-45:50:-20","bridge_max":"45:90:20"}`)
	require.Equal(t, http.StatusOK, status)

	var cfg models.MapConfig
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.True(t, cfg.Playable())
	assert.Len(t, cfg.Teams, 2)

	status, body = f.call(t, http.MethodGet, "/maps", "")
	require.Equal(t, http.StatusOK, status)
	var list mapListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	names := make([]string, 0, len(list.Maps))
	for _, m := range list.Maps {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Arena1", "Castle"}, names)
}

func TestSetTeamRejections(t *testing.T) {
	f := newAPI(t)

	status, _ := f.call(t, http.MethodPut, "/maps/arena1/teams/green", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.call(t, http.MethodPut, "/maps/nowhere/teams/red", `{"min_goal":"0:0:0","max_goal":"1:1:1","spawn":"0:0:0"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.call(t, http.MethodPut, "/maps/arena1/teams/red", `{"min_goal":"0:0","max_goal":"1:1:1","spawn":"0:0:0"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRemoveMap(t *testing.T) {
	f := newAPI(t)

	status, _ := f.call(t, http.MethodDelete, "/maps/ARENA1", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = f.call(t, http.MethodDelete, "/maps/arena1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMatchLifecycle(t *testing.T) {
	f := newAPI(t)
	f.queue(t, "p1")
	f.queue(t, "p2")

	status, body := f.call(t, http.MethodGet, "/matches", "")
	require.Equal(t, http.StatusOK, status)
	var list matchListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Matches, 1)
	assert.True(t, list.Matches[0].Loading)
	assert.Equal(t, 2, list.Matches[0].Queued)

	status, _ = f.call(t, http.MethodPost, "/matches/1/start", "")
	assert.Equal(t, http.StatusConflict, status, "the environment is still provisioning")

	f.settle(t)
	status, body = f.call(t, http.MethodPost, "/matches/1/start", "")
	require.Equal(t, http.StatusOK, status)
	var snapshot match.Snapshot
	require.NoError(t, json.Unmarshal(body, &snapshot))
	assert.Equal(t, "round", snapshot.Phase)
	assert.Len(t, snapshot.Participants, 2)

	status, _ = f.call(t, http.MethodPost, "/matches/7/start", "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = f.call(t, http.MethodPost, "/matches/abc/start", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.call(t, http.MethodDelete, "/matches/1", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = f.call(t, http.MethodDelete, "/matches/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = f.call(t, http.MethodGet, "/matches/info", "")
	require.Equal(t, http.StatusOK, status)
	var info matchmaker.TickInfo
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, 1, info.MatchesCreated)
	assert.Equal(t, 1, info.MatchesDestroyed)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPI(t)
	f.queue(t, "p1")
	f.settle(t)

	status, body := f.call(t, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "bridge_active_matches 1")
	assert.Contains(t, string(body), `bridge_matches_created_total{map="Arena1",mode="Solo"} 1`)
}
