// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	MapsDirectory          string `env:"MAPS_DIRECTORY"            envDefault:"data/maps"   envDocs:"directory holding one <name>/data.json and <name>/world per map"`
	WorldsDirectory        string `env:"WORLDS_DIRECTORY"          envDefault:"data/worlds" envDocs:"directory where match environments are cloned to"`
	MessagesFile           string `env:"MESSAGES_FILE"             envDefault:""            envDocs:"optional yaml message catalog overriding the embedded one"`
	MatchTickIntervalMs    int    `env:"MATCH_TICK_INTERVAL_MS"    envDefault:"1000"        envDocs:"coarse match tick interval in milliseconds"`
	MovementTickIntervalMs int    `env:"MOVEMENT_TICK_INTERVAL_MS" envDefault:"50"          envDocs:"fine movement tick interval in milliseconds"`
	ProvisionWorkers       int    `env:"PROVISION_WORKERS"         envDefault:"4"           envDocs:"max concurrent background tasks (environment clone/delete, stats io)"`
	ResultBufferSize       int    `env:"RESULT_BUFFER_SIZE"        envDefault:"256"         envDocs:"capacity of the background result channel drained by the tick loop"`
	KillCreditWindowSecond int    `env:"KILL_CREDIT_WINDOW_SECOND" envDefault:"15"          envDocs:"seconds after a hit during which a void death is credited to the hitter"`
	LobbyCountdownEnabled  bool   `env:"LOBBY_COUNTDOWN_ENABLED"   envDefault:"true"        envDocs:"start matches automatically once every team has enough players"`
	QueueOnLogin           bool   `env:"QUEUE_ON_LOGIN"            envDefault:"false"       envDocs:"queue players into a match as soon as they log in"`
	MaxRequeueAttempts     int    `env:"MAX_REQUEUE_ATTEMPTS"      envDefault:"3"           envDocs:"how many times a participant that could not be placed is routed through matchmaking again"`
	DatabaseDSN            string `env:"DATABASE_DSN"              envDefault:""            envDocs:"postgres dsn for player stats (empty keeps stats in memory)"`
	AdminListenAddress     string `env:"ADMIN_LISTEN_ADDRESS"      envDefault:":8080"       envDocs:"listen address of the admin http api and /metrics"`
	LogLevel               string `env:"LOG_LEVEL"                 envDefault:"info"        envDocs:"logrus level"`
	LogJSON                bool   `env:"LOG_JSON"                  envDefault:"false"       envDocs:"log with the json formatter"`
	ZipkinEndpoint         string `env:"ZIPKIN_ENDPOINT"           envDefault:""            envDocs:"zipkin collector url (empty disables trace export)"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaultValues()

	return cfg, nil
}

// Default returns a configuration with every field at its documented default.
func Default() *Config {
	cfg := &Config{
		MapsDirectory:          "data/maps",
		WorldsDirectory:        "data/worlds",
		MatchTickIntervalMs:    1000,
		MovementTickIntervalMs: 50,
		ProvisionWorkers:       4,
		ResultBufferSize:       256,
		KillCreditWindowSecond: 15,
		LobbyCountdownEnabled:  true,
		MaxRequeueAttempts:     3,
		AdminListenAddress:     ":8080",
		LogLevel:               "info",
	}

	return cfg
}

// SetDefaultValues replaces non-positive knobs with usable values.
func (c *Config) SetDefaultValues() {
	if c.MatchTickIntervalMs <= 0 {
		c.MatchTickIntervalMs = 1000
	}
	if c.MovementTickIntervalMs <= 0 {
		c.MovementTickIntervalMs = 50
	}
	if c.ProvisionWorkers <= 0 {
		c.ProvisionWorkers = 1
	}
	if c.ResultBufferSize <= 0 {
		c.ResultBufferSize = 1
	}
	if c.KillCreditWindowSecond < 0 {
		c.KillCreditWindowSecond = 0
	}
	if c.MaxRequeueAttempts < 0 {
		c.MaxRequeueAttempts = 0
	}
}

func (c *Config) MatchTickInterval() time.Duration {
	return time.Duration(c.MatchTickIntervalMs) * time.Millisecond
}

func (c *Config) MovementTickInterval() time.Duration {
	return time.Duration(c.MovementTickIntervalMs) * time.Millisecond
}

func (c *Config) KillCreditWindow() time.Duration {
	return time.Duration(c.KillCreditWindowSecond) * time.Second
}
