// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua

import (
	"log/slog"
	"os"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/steam"
)

// steamAppIDEnv is the Valve-defined environment variable the native SDK
// reads to learn which app is running outside a Steam launch.
const steamAppIDEnv = "SteamAppId"

// Config assembles a Plugin.
type Config struct {
	// Client is the Steam connection. Required.
	Client steam.Client
	// Lua is the runtime the module is served to. Required.
	Lua *lua.LState
	// AppID optionally names the running app. When the SteamAppId
	// environment variable is also set and disagrees, the environment wins
	// (the native SDK only ever reads the environment) and the conflict is
	// logged.
	AppID steam.AppID
	// Log defaults to slog.Default().
	Log *slog.Logger
	// Metrics may be nil to disable instrumentation.
	Metrics *bridge.Metrics
	// Registry defaults to the process-wide one.
	Registry *bridge.Registry
	// Runnable gates event delivery; nil means always runnable.
	Runnable func() bool
}

func (c Config) validate() error {
	if c.Client == nil {
		return oops.In("steamlua").New("config: Client is required")
	}
	if c.Lua == nil {
		return oops.In("steamlua").New("config: Lua is required")
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// resolveAppID reconciles an explicitly configured app ID with the
// SteamAppId environment variable.
func resolveAppID(explicit steam.AppID, log *slog.Logger) steam.AppID {
	env := os.Getenv(steamAppIDEnv)
	if env == "" {
		if explicit == 0 {
			log.Warn("no app ID configured and SteamAppId is unset; the Steam client decides")
			return 0
		}
		// Surface the configured ID to the native SDK the only way it
		// accepts one.
		os.Setenv(steamAppIDEnv, explicit.String())
		return explicit
	}

	envID, err := steam.ParseAppID(env)
	if err != nil {
		log.Warn("SteamAppId is not a valid app ID", "value", env)
		return explicit
	}
	if explicit != 0 && explicit != envID {
		log.Warn("configured app ID conflicts with SteamAppId; environment wins",
			"configured", explicit.String(), "environment", envID.String())
	}
	return envID
}
