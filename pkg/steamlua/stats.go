// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/steam"
)

// getUserStatValue(params) reads one stat. params is a table with string
// fields statName and type ("int", "float" or "averageRate"), plus an
// optional userSteamId. Returns the value or nil.
func (p *Plugin) getUserStatValue(L *lua.LState) int {
	params := L.CheckTable(1)
	name := lua.LVAsString(params.RawGetString("statName"))
	typ, typOK := bridge.ParseStatValueType(lua.LVAsString(params.RawGetString("type")))
	if name == "" || !typOK {
		p.log.Error("getUserStatValue requires statName and a valid type")
		L.Push(lua.LNil)
		return 1
	}

	user := p.localUserOr(params.RawGetString("userSteamId"))
	if !user.Valid() {
		L.Push(lua.LNil)
		return 1
	}
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	switch typ {
	case bridge.StatValueInt:
		if v, ok := us.UserStatInt(user, name); ok {
			L.Push(lua.LNumber(v))
			return 1
		}
	case bridge.StatValueFloat, bridge.StatValueAverageRate:
		if v, ok := us.UserStatFloat(user, name); ok {
			L.Push(lua.LNumber(v))
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

// setUserStatValues(stats) writes a batch of stats for the logged-on user
// and commits them with a single store. stats is an array of tables with
// statName, type and value fields. Malformed elements are skipped with a
// diagnostic; the valid remainder is still written (partial success).
// Returns false only when nothing could be written or the commit failed.
func (p *Plugin) setUserStatValues(L *lua.LState) int {
	stats := L.CheckTable(1)
	us, ok := p.client.UserStats()
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}

	written := 0
	for i := 1; i <= stats.Len(); i++ {
		entry, ok := stats.RawGetInt(i).(*lua.LTable)
		if !ok {
			p.log.Error("stat entry is not a table", "index", i)
			continue
		}
		name := lua.LVAsString(entry.RawGetString("statName"))
		typ, typOK := bridge.ParseStatValueType(lua.LVAsString(entry.RawGetString("type")))
		value := entry.RawGetString("value")
		num, numOK := value.(lua.LNumber)
		if name == "" || !typOK || !numOK {
			p.log.Error("stat entry requires statName, type and a numeric value", "index", i)
			continue
		}

		switch typ {
		case bridge.StatValueInt:
			if us.SetStatInt(name, int32(num)) {
				written++
			}
		case bridge.StatValueFloat:
			if us.SetStatFloat(name, float32(num)) {
				written++
			}
		case bridge.StatValueAverageRate:
			session, sessionOK := entry.RawGetString("sessionTimeLength").(lua.LNumber)
			if !sessionOK || session <= 0 {
				p.log.Error("averageRate stat requires a positive sessionTimeLength", "index", i, "stat", name)
				continue
			}
			if us.UpdateAvgRateStat(name, float64(num), float64(session)) {
				written++
			}
		}
	}

	if written == 0 {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(us.StoreStats()))
	return 1
}

// requestUserProgress([userSteamId]) asks the backend for a user's stats
// and achievements; a userProgressUpdate event follows.
func (p *Plugin) requestUserProgress(L *lua.LState) int {
	var user steam.ID
	if arg := L.Get(1); arg != lua.LNil {
		u, ok := p.optionalUser(L, 1)
		if !ok {
			L.Push(lua.LFalse)
			return 1
		}
		user = u
	}
	L.Push(lua.LBool(p.ctx.RequestUserProgress(user)))
	return 1
}

// resetUserProgress() wipes the logged-on user's stats and achievements.
func (p *Plugin) resetUserProgress(L *lua.LState) int {
	L.Push(lua.LBool(p.resetStats(true)))
	return 1
}

// resetUserStats() wipes stats only, leaving achievements unlocked.
func (p *Plugin) resetUserStats(L *lua.LState) int {
	L.Push(lua.LBool(p.resetStats(false)))
	return 1
}

func (p *Plugin) resetStats(achievementsToo bool) bool {
	us, ok := p.client.UserStats()
	if !ok {
		return false
	}
	return us.ResetAllStats(achievementsToo)
}

// requestActivePlayerCount(listener) asks for the concurrent-player count;
// the listener receives one activePlayerCount event.
func (p *Plugin) requestActivePlayerCount(L *lua.LState) int {
	listener := L.Get(1)
	L.Push(lua.LBool(p.ctx.RequestActivePlayerCount(listener)))
	return 1
}

// localUserOr parses an optional userSteamId value, falling back to the
// logged-on user. Returns the zero ID on failure.
func (p *Plugin) localUserOr(v lua.LValue) steam.ID {
	if v == lua.LNil {
		user, ok := p.client.User()
		if !ok {
			return 0
		}
		return user.SteamID()
	}
	s, ok := v.(lua.LString)
	if !ok {
		p.log.Error("steam IDs must be decimal strings", "got", v.Type().String())
		return 0
	}
	id, err := steam.ParseID(string(s))
	if err != nil {
		p.log.Error("malformed steam ID", "value", string(s))
		return 0
	}
	return id
}
