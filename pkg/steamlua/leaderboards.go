// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/steam"
)

var playerScopes = map[string]steam.DataRequest{
	"Global":           steam.DataRequestGlobal,
	"GlobalAroundUser": steam.DataRequestGlobalAroundUser,
	"FriendsOnly":      steam.DataRequestFriends,
}

// requestLeaderboardEntries(params) downloads a slice of a leaderboard.
// params: leaderboardName (string), listener, and optionally playerScope
// ("Global", "GlobalAroundUser" or "FriendsOnly"), startIndex, endIndex.
// Index defaults depend on the scope: Global gets 1..25, GlobalAroundUser
// gets -12..12, FriendsOnly ignores the range. The listener receives one
// leaderboardEntries event.
func (p *Plugin) requestLeaderboardEntries(L *lua.LState) int {
	params := L.CheckTable(1)
	name := lua.LVAsString(params.RawGetString("leaderboardName"))
	listener := params.RawGetString("listener")
	if name == "" || listener == lua.LNil {
		p.log.Error("requestLeaderboardEntries requires leaderboardName and listener")
		L.Push(lua.LFalse)
		return 1
	}

	scope := steam.DataRequestGlobal
	if s := lua.LVAsString(params.RawGetString("playerScope")); s != "" {
		var known bool
		if scope, known = playerScopes[s]; !known {
			p.log.Error("unknown playerScope", "playerScope", s)
			L.Push(lua.LFalse)
			return 1
		}
	}

	start, end := bridge.DefaultEntryRange(scope)
	if scope != steam.DataRequestFriends {
		if v, ok := params.RawGetString("startIndex").(lua.LNumber); ok {
			start = int(v)
		}
		if v, ok := params.RawGetString("endIndex").(lua.LNumber); ok {
			end = int(v)
		}
	}

	L.Push(lua.LBool(p.ctx.RequestLeaderboardEntries(name, scope, start, end, listener)))
	return 1
}

// requestLeaderboardInfo(params) fetches a board's entry count, sort
// method and display type. params: leaderboardName, listener. The listener
// receives one leaderboardInfo event.
func (p *Plugin) requestLeaderboardInfo(L *lua.LState) int {
	params := L.CheckTable(1)
	name := lua.LVAsString(params.RawGetString("leaderboardName"))
	listener := params.RawGetString("listener")
	if name == "" || listener == lua.LNil {
		p.log.Error("requestLeaderboardInfo requires leaderboardName and listener")
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(p.ctx.RequestLeaderboardInfo(name, listener)))
	return 1
}

// requestSetHighScore(params) uploads a score with keep-best policy.
// params: leaderboardName, value, listener. The listener receives one
// setHighScore event carrying scoreChanged and, when the score improved,
// currentGlobalRank and previousGlobalRank.
func (p *Plugin) requestSetHighScore(L *lua.LState) int {
	params := L.CheckTable(1)
	name := lua.LVAsString(params.RawGetString("leaderboardName"))
	listener := params.RawGetString("listener")
	value, valueOK := params.RawGetString("value").(lua.LNumber)
	if name == "" || listener == lua.LNil || !valueOK {
		p.log.Error("requestSetHighScore requires leaderboardName, value and listener")
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(p.ctx.SetHighScore(name, int32(value), listener)))
	return 1
}
