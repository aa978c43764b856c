// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/steam"
)

// getAchievementInfo(achievementName [, userSteamId]) returns a table
// describing one achievement, or nil when the name is unknown or the SDK
// is down.
func (p *Plugin) getAchievementInfo(L *lua.LState) int {
	name := L.CheckString(1)
	user, ok := p.optionalUser(L, 2)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	achieved, unlockTime, ok := us.UserAchievement(user, name)
	if !ok {
		p.log.Error("unknown achievement", "achievement", name)
		L.Push(lua.LNil)
		return 1
	}

	info := L.NewTable()
	info.RawSetString("achievementName", lua.LString(name))
	info.RawSetString("localizedName", lua.LString(us.AchievementDisplayAttribute(name, "name")))
	info.RawSetString("localizedDescription", lua.LString(us.AchievementDisplayAttribute(name, "desc")))
	info.RawSetString("hidden", lua.LBool(us.AchievementDisplayAttribute(name, "hidden") == "1"))
	info.RawSetString("unlocked", lua.LBool(achieved))
	if achieved {
		info.RawSetString("unlockTime", lua.LNumber(unlockTime))
	}
	L.Push(info)
	return 1
}

// getAchievementNames() returns the array of achievement names the app
// ships with.
func (p *Plugin) getAchievementNames(L *lua.LState) int {
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	names := L.NewTable()
	for i := 0; i < us.NumAchievements(); i++ {
		names.RawSetInt(i+1, lua.LString(us.AchievementName(i)))
	}
	L.Push(names)
	return 1
}

// getAchievementImageInfo(achievementName) returns the icon's image info,
// or nil when the icon is not cached yet; in that case a fetch starts and
// an achievementImageUpdate event follows.
func (p *Plugin) getAchievementImageInfo(L *lua.LState) int {
	name := L.CheckString(1)
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	utils, ok := p.client.Utils()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	handle := us.AchievementIcon(name)
	if handle == 0 {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(bridge.LookupImageInfo(utils, handle).ToLua(L))
	return 1
}

// setAchievementProgress(achievementName, value, maxValue) shows the
// "progress toward" overlay toast. It does not unlock anything.
func (p *Plugin) setAchievementProgress(L *lua.LState) int {
	name := L.CheckString(1)
	value := L.CheckNumber(2)
	maxValue := L.CheckNumber(3)
	if value < 0 || maxValue <= 0 || value > maxValue {
		p.log.Error("achievement progress out of range",
			"achievement", name, "value", float64(value), "max", float64(maxValue))
		L.Push(lua.LFalse)
		return 1
	}
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(us.IndicateAchievementProgress(name, uint32(value), uint32(maxValue))))
	return 1
}

// setAchievementUnlocked(achievementName) unlocks an achievement and
// commits it. An achievementInfoUpdate event follows the commit.
func (p *Plugin) setAchievementUnlocked(L *lua.LState) int {
	name := L.CheckString(1)
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	if !us.SetAchievement(name) {
		p.log.Error("unknown achievement", "achievement", name)
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(us.StoreStats()))
	return 1
}

// optionalUser reads an optional decimal Steam ID argument, defaulting to
// the logged-on user. The second return is false when the argument is
// present but malformed, or no user is available.
func (p *Plugin) optionalUser(L *lua.LState, n int) (steam.ID, bool) {
	arg := L.Get(n)
	if arg == lua.LNil {
		user, ok := p.client.User()
		if !ok {
			return 0, false
		}
		return user.SteamID(), true
	}
	s, ok := arg.(lua.LString)
	if !ok {
		p.log.Error("steam IDs must be decimal strings", "got", arg.Type().String())
		return 0, false
	}
	id, err := steam.ParseID(string(s))
	if err != nil {
		p.log.Error("malformed steam ID", "value", string(s))
		return 0, false
	}
	return id, true
}
