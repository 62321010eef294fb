// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/elliotchance/pie/v2"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/constants"
	"github.com/AccelByte/extend-bridge-match/pkg/envelope"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/utils"
)

var (
	ErrNoMaps       = errors.New("no playable maps configured")
	ErrMapNotFound  = errors.New("map not found")
	ErrMapExists    = errors.New("map already exists")
	ErrWorldMissing = errors.New("world does not exist")
	ErrLobbyIsWorld = errors.New("lobby and world must be different worlds")
	ErrDefaultWorld = errors.New("the default world cannot be used as a map")
)

// WorldImporter copies host worlds into the maps directory.
type WorldImporter interface {
	WorldExists(name string) bool
	ImportTemplate(ctx context.Context, mapName string, world string, lobby string) error
}

// Store holds every known map keyed by its lowercase name. It is only used from the tick thread.
type Store struct {
	dir  string
	maps map[string]*models.MapConfig
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, maps: make(map[string]*models.MapConfig)}
}

// Load reads every <dir>/<name>/data.json. Maps that fail to parse are skipped and logged.
func Load(scope *envelope.Scope, dir string) (*Store, error) {
	s := NewStore(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create maps directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		log := scope.Log.WithField(envelope.MapLogField, entry.Name())

		cfg, err := readMap(filepath.Join(dir, entry.Name(), constants.MapDataFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			log.WithError(err).Warn("failed to load map, skipping")
			continue
		}
		if !cfg.Playable() {
			log.Warn("map is not set up completely, it will not be used for matches")
		}
		s.maps[cfg.Key()] = cfg
	}

	scope.Log.WithFields(logrus.Fields{"maps": len(s.maps), "playable": len(s.Playable())}).Info("maps loaded")

	return s, nil
}

func readMap(path string) (*models.MapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &models.MapConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	cfg.SetDefaultValues()
	if cfg.Name == "" {
		return nil, fmt.Errorf("%s: map has no name", path)
	}

	return cfg, nil
}

func (s *Store) Get(name string) (*models.MapConfig, bool) {
	cfg, ok := s.maps[utils.NormalizeKey(name)]
	return cfg, ok
}

func (s *Store) Len() int {
	return len(s.maps)
}

// All returns every map ordered by key.
func (s *Store) All() []*models.MapConfig {
	keys := pie.Sort(pie.Keys(s.maps))
	return pie.Map(keys, func(key string) *models.MapConfig { return s.maps[key] })
}

func (s *Store) Names() []string {
	return pie.Map(s.All(), func(cfg *models.MapConfig) string { return cfg.Name })
}

// Playable returns the maps a match can be created from, ordered by key.
func (s *Store) Playable() []*models.MapConfig {
	return pie.Filter(s.All(), func(cfg *models.MapConfig) bool { return cfg.Playable() })
}

// Select picks the map a new match is created from: the filtered map when it exists and is playable,
// otherwise a random playable map, preferring the filtered mode.
func (s *Store) Select(rng *rand.Rand, filter models.MatchFilter) (*models.MapConfig, error) {
	if filter.Map != nil {
		if cfg, ok := s.Get(*filter.Map); ok && cfg.Playable() {
			return cfg, nil
		}
	}

	playable := s.Playable()
	if len(playable) == 0 {
		return nil, ErrNoMaps
	}
	if filter.Mode != nil {
		sameMode := pie.Filter(playable, func(cfg *models.MapConfig) bool {
			return strings.EqualFold(string(cfg.Mode), *filter.Mode)
		})
		if len(sameMode) > 0 {
			playable = sameMode
		}
	}

	return playable[rng.Intn(len(playable))], nil
}

// Add stores cfg and writes its data file. An existing map is replaced only with overwrite.
func (s *Store) Add(cfg *models.MapConfig, overwrite bool) error {
	cfg.SetDefaultValues()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, ok := s.maps[cfg.Key()]; ok && !overwrite {
		return fmt.Errorf("%w: %s", ErrMapExists, cfg.Name)
	}
	if err := s.persist(cfg); err != nil {
		return err
	}
	s.maps[cfg.Key()] = cfg

	return nil
}

func (s *Store) persist(cfg *models.MapConfig) error {
	dir := filepath.Join(s.dir, cfg.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create map directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, constants.MapDataFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write map data: %w", err)
	}

	return nil
}

// Remove forgets a map. Its files stay on disk.
func (s *Store) Remove(name string) bool {
	key := utils.NormalizeKey(name)
	if _, ok := s.maps[key]; !ok {
		return false
	}
	delete(s.maps, key)

	return true
}

// CreateRequest is the admin call that registers a new map from host worlds.
type CreateRequest struct {
	Name          string          `json:"name"`
	Lobby         string          `json:"lobby"`
	World         string          `json:"world"`
	Countdown     int             `json:"countdown"`
	Duration      int             `json:"duration"`
	GraceDuration int             `json:"grace_duration"`
	EndDuration   int             `json:"end_duration"`
	Mode          models.TeamMode `json:"mode"`
}

// CreateMap imports the worlds of req as a map template and stores a map without teams or bridge.
// The map becomes playable once its teams and bridge are set.
func (s *Store) CreateMap(ctx context.Context, importer WorldImporter, req CreateRequest) (*models.MapConfig, error) {
	if _, ok := s.Get(req.Name); ok {
		return nil, fmt.Errorf("%w: %s", ErrMapExists, req.Name)
	}
	if strings.EqualFold(req.World, constants.DefaultWorld) {
		return nil, ErrDefaultWorld
	}
	if !importer.WorldExists(req.World) {
		return nil, fmt.Errorf("%w: %s", ErrWorldMissing, req.World)
	}
	if req.Lobby != "" && strings.EqualFold(req.Lobby, req.World) {
		return nil, ErrLobbyIsWorld
	}
	if req.Lobby != "" && !importer.WorldExists(req.Lobby) {
		return nil, fmt.Errorf("%w: %s", ErrWorldMissing, req.Lobby)
	}

	if err := importer.ImportTemplate(ctx, req.Name, req.World, req.Lobby); err != nil {
		return nil, fmt.Errorf("failed to import map template: %w", err)
	}

	cfg := &models.MapConfig{
		Name:          req.Name,
		Countdown:     req.Countdown,
		Duration:      req.Duration,
		GraceDuration: req.GraceDuration,
		EndDuration:   req.EndDuration,
		Mode:          req.Mode,
	}
	if err := s.Add(cfg, false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetTeam replaces one team entry of a map.
func (s *Store) SetTeam(name string, teamType models.TeamType, team models.TeamConfig) (*models.MapConfig, error) {
	return s.edit(name, func(cfg *models.MapConfig) {
		cfg.Teams[teamType] = team
	})
}

// SetBridge replaces the build region of a map.
func (s *Store) SetBridge(name string, bridge models.BridgeConfig) (*models.MapConfig, error) {
	return s.edit(name, func(cfg *models.MapConfig) {
		cfg.Bridge = &bridge
	})
}

// edit applies change to a copy so running matches keep the config they were created from.
func (s *Store) edit(name string, change func(cfg *models.MapConfig)) (*models.MapConfig, error) {
	current, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMapNotFound, name)
	}
	cfg := current.Copy()
	cfg.SetDefaultValues()
	change(cfg)
	if err := s.Add(cfg, true); err != nil {
		return nil, err
	}

	return cfg, nil
}
