// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

// Package steamlua exposes the Steamworks feature set to a gopher-lua
// runtime as the module "plugin.steamworks".
//
// The module follows scripting conventions throughout: 64-bit Steam IDs
// cross the boundary as decimal strings, asynchronous results arrive as
// event tables through registered listeners, and failures surface as
// false/nil returns plus a log line, never as Lua errors.
package steamlua

import (
	"log/slog"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/errutil"
	"github.com/steamlua/steamlua/pkg/steam"
)

// ModuleName is what scripts pass to require.
const ModuleName = "plugin.steamworks"

// Plugin binds one Lua state to the Steam client. Create it with New,
// expose it with Preload, drive it with Poll once per frame, and Close it
// when the runtime goes away.
type Plugin struct {
	ctx    *bridge.Context
	client steam.Client
	log    *slog.Logger
}

// New connects to the Steam client and builds the runtime context. A
// client that is not running is not an error here; every entry point will
// simply report failure until it comes up, matching how games behave when
// launched outside Steam.
func New(cfg Config) (*Plugin, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	resolveAppID(cfg.AppID, log)

	if err := cfg.Client.Init(); err != nil {
		errutil.LogError(log, "steam client init failed; entry points will report failure until it comes up",
			oops.In("steamlua").Hint("is the Steam client running?").Wrap(err))
	}

	ctx, err := bridge.NewContext(bridge.Config{
		Client:   cfg.Client,
		Lua:      cfg.Lua,
		Log:      log,
		Metrics:  cfg.Metrics,
		Registry: cfg.Registry,
		Runnable: cfg.Runnable,
	})
	if err != nil {
		return nil, err
	}

	p := &Plugin{ctx: ctx, client: cfg.Client, log: log}
	if utils, ok := cfg.Client.Utils(); ok {
		utils.SetWarningMessageHook(p.onSteamWarning)
	}
	return p, nil
}

// Preload registers the module so scripts can require it.
func (p *Plugin) Preload(L *lua.LState) {
	L.PreloadModule(ModuleName, p.loader)
}

// Poll pumps Steam callbacks and delivers queued events. Returns true when
// the host should redraw for the overlay. Call once per frame from the
// designated goroutine.
func (p *Plugin) Poll() (redraw bool) {
	return p.ctx.Poll()
}

// Close tears the binding down. Pending events and in-flight requests are
// dropped; the Steam connection itself closes when the last plugin
// instance in the process does.
func (p *Plugin) Close() {
	p.ctx.Close()
}

func (p *Plugin) onSteamWarning(severity int, message string) {
	if severity > 0 {
		p.log.Warn("steam client diagnostic", "message", message)
		return
	}
	p.log.Info("steam client diagnostic", "message", message)
}

// loader builds the module table: one entry per binding function, plus
// read-only virtual properties served through the metatable.
func (p *Plugin) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"getAchievementInfo":        p.getAchievementInfo,
		"getAchievementNames":       p.getAchievementNames,
		"getAchievementImageInfo":   p.getAchievementImageInfo,
		"getUserInfo":               p.getUserInfo,
		"getUserImageInfo":          p.getUserImageInfo,
		"getUserStatValue":          p.getUserStatValue,
		"setUserStatValues":         p.setUserStatValues,
		"requestActivePlayerCount":  p.requestActivePlayerCount,
		"requestLeaderboardEntries": p.requestLeaderboardEntries,
		"requestLeaderboardInfo":    p.requestLeaderboardInfo,
		"requestSetHighScore":       p.requestSetHighScore,
		"requestUserProgress":       p.requestUserProgress,
		"resetUserProgress":         p.resetUserProgress,
		"resetUserStats":            p.resetUserStats,
		"setAchievementProgress":    p.setAchievementProgress,
		"setAchievementUnlocked":    p.setAchievementUnlocked,
		"setNotificationPosition":   p.setNotificationPosition,
		"showGameOverlay":           p.showGameOverlay,
		"showStoreOverlay":          p.showStoreOverlay,
		"showUserOverlay":           p.showUserOverlay,
		"showWebOverlay":            p.showWebOverlay,
		"isDlcInstalled":            p.isDlcInstalled,
		"addEventListener":          p.addEventListener,
		"removeEventListener":       p.removeEventListener,
	})

	meta := L.NewTable()
	meta.RawSetString("__index", L.NewFunction(p.propertyIndex))
	meta.RawSetString("__newindex", L.NewFunction(func(L *lua.LState) int {
		// Assignments to the module are silently ignored.
		return 0
	}))
	L.SetMetatable(mod, meta)

	L.Push(mod)
	return 1
}

// propertyIndex serves the read-only virtual properties. Unknown keys
// resolve to nil like any Lua table.
func (p *Plugin) propertyIndex(L *lua.LState) int {
	key := L.CheckString(2)
	switch key {
	case "appId":
		utils, ok := p.client.Utils()
		if !ok {
			L.Push(lua.LString("0"))
			return 1
		}
		L.Push(lua.LString(utils.AppID().String()))
	case "appOwnerSteamId":
		apps, ok := p.client.Apps()
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(apps.AppOwner().String()))
	case "userSteamId":
		user, ok := p.client.User()
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(user.SteamID().String()))
	case "isLoggedOn":
		_, ok := p.client.User()
		L.Push(lua.LBool(ok))
	case "canShowOverlay":
		utils, ok := p.client.Utils()
		L.Push(lua.LBool(ok && utils.IsOverlayEnabled()))
	default:
		L.Push(lua.LNil)
	}
	return 1
}

// addEventListener subscribes a listener to a named plugin event.
func (p *Plugin) addEventListener(L *lua.LState) int {
	event := L.CheckString(1)
	listener := L.Get(2)
	ok := p.ctx.Dispatcher().AddListener(event, listener)
	if !ok {
		p.log.Error("addEventListener requires an event name and a function or table listener",
			"event", event)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// removeEventListener drops a previously registered listener.
func (p *Plugin) removeEventListener(L *lua.LState) int {
	event := L.CheckString(1)
	listener := L.Get(2)
	L.Push(lua.LBool(p.ctx.Dispatcher().RemoveListener(event, listener)))
	return 1
}
