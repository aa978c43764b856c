// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/pkg/steam"
)

// Overlay dialog names accepted by showGameOverlay and showUserOverlay.
// Passed to the SDK verbatim; unknown names open the overlay's main page,
// which is also what the SDK itself does.
var overlayDialogs = map[string]bool{
	"Friends":           true,
	"Community":         true,
	"Players":           true,
	"Settings":          true,
	"OfficialGameGroup": true,
	"Stats":             true,
	"Achievements":      true,
	"chat":              true,
	"steamid":           true,
}

var notificationPositions = map[string]steam.NotificationPosition{
	"topLeft":     steam.PositionTopLeft,
	"topRight":    steam.PositionTopRight,
	"bottomLeft":  steam.PositionBottomLeft,
	"bottomRight": steam.PositionBottomRight,
}

// showGameOverlay([overlayName]) opens the Steam overlay, optionally on a
// specific page. An overlayStatus event follows when it actually appears.
func (p *Plugin) showGameOverlay(L *lua.LState) int {
	dialog := L.OptString(1, "")
	if dialog != "" && !overlayDialogs[dialog] {
		p.log.Warn("unrecognized overlay name; opening main page", "overlay", dialog)
		dialog = ""
	}
	friends, ok := p.overlayTarget()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	friends.ActivateGameOverlay(dialog)
	L.Push(lua.LTrue)
	return 1
}

// showStoreOverlay([appId]) opens the store page for an app, defaulting to
// the running one.
func (p *Plugin) showStoreOverlay(L *lua.LState) int {
	friends, ok := p.overlayTarget()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}

	var app steam.AppID
	if arg := L.Get(1); arg != lua.LNil {
		s, isStr := arg.(lua.LString)
		if !isStr {
			p.log.Error("app IDs must be decimal strings", "got", arg.Type().String())
			L.Push(lua.LFalse)
			return 1
		}
		parsed, err := steam.ParseAppID(string(s))
		if err != nil {
			p.log.Error("malformed app ID", "value", string(s))
			L.Push(lua.LFalse)
			return 1
		}
		app = parsed
	} else if utils, utilsOK := p.client.Utils(); utilsOK {
		app = utils.AppID()
	}

	friends.ActivateGameOverlayToStore(app)
	L.Push(lua.LTrue)
	return 1
}

// showUserOverlay(userSteamId [, overlayName]) opens an overlay page about
// another user, defaulting to their profile.
func (p *Plugin) showUserOverlay(L *lua.LState) int {
	user, ok := p.optionalUser(L, 1)
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	dialog := L.OptString(2, "steamid")
	if !overlayDialogs[dialog] {
		p.log.Warn("unrecognized overlay name; opening profile", "overlay", dialog)
		dialog = "steamid"
	}
	friends, ok := p.overlayTarget()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	friends.ActivateGameOverlayToUser(dialog, user)
	L.Push(lua.LTrue)
	return 1
}

// showWebOverlay([url]) opens the overlay web browser.
func (p *Plugin) showWebOverlay(L *lua.LState) int {
	url := L.OptString(1, "")
	friends, ok := p.overlayTarget()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	friends.ActivateGameOverlayToWebPage(url)
	L.Push(lua.LTrue)
	return 1
}

// setNotificationPosition(position) picks the screen corner used for
// overlay toasts: "topLeft", "topRight", "bottomLeft" or "bottomRight".
func (p *Plugin) setNotificationPosition(L *lua.LState) int {
	name := L.CheckString(1)
	pos, known := notificationPositions[name]
	if !known {
		p.log.Error("unknown notification position", "position", name)
		L.Push(lua.LFalse)
		return 1
	}
	utils, ok := p.client.Utils()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	utils.SetOverlayNotificationPosition(pos)
	L.Push(lua.LTrue)
	return 1
}

// isDlcInstalled(appId) reports whether downloadable content is installed.
func (p *Plugin) isDlcInstalled(L *lua.LState) int {
	raw := L.CheckString(1)
	app, err := steam.ParseAppID(raw)
	if err != nil {
		p.log.Error("malformed app ID", "value", raw)
		L.Push(lua.LFalse)
		return 1
	}
	apps, ok := p.client.Apps()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(apps.IsDlcInstalled(app)))
	return 1
}

// overlayTarget returns the Friends interface when the overlay can be
// summoned at all.
func (p *Plugin) overlayTarget() (steam.Friends, bool) {
	utils, ok := p.client.Utils()
	if !ok || !utils.IsOverlayEnabled() {
		return nil, false
	}
	return p.client.Friends()
}
