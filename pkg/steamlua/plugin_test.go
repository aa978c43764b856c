// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/steam"
	"github.com/steamlua/steamlua/pkg/steam/steamsim"
	"github.com/steamlua/steamlua/pkg/steamlua"
)

const me steam.ID = 76561197960287930

type world struct {
	L      *lua.LState
	sim    *steamsim.Sim
	plugin *steamlua.Plugin
}

func newWorld(t *testing.T, mutate func(*steamsim.Sim)) *world {
	t.Helper()
	sim := steamsim.New()
	sim.SetAppID(480)
	sim.SetLoggedOnUser(me, "gabe", 42)
	if mutate != nil {
		mutate(sim)
	}

	L := lua.NewState()
	t.Cleanup(L.Close)

	plugin, err := steamlua.New(steamlua.Config{
		Client:   sim,
		Lua:      L,
		AppID:    480,
		Registry: bridge.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(plugin.Close)

	plugin.Preload(L)
	require.NoError(t, L.DoString(`steamworks = require("plugin.steamworks")`))
	return &world{L: L, sim: sim, plugin: plugin}
}

func (w *world) lua(t *testing.T, script string) {
	t.Helper()
	require.NoError(t, w.L.DoString(script))
}

func (w *world) global(name string) lua.LValue {
	return w.L.GetGlobal(name)
}

func TestVirtualProperties(t *testing.T) {
	w := newWorld(t, nil)
	w.lua(t, `
		appId = steamworks.appId
		userSteamId = steamworks.userSteamId
		isLoggedOn = steamworks.isLoggedOn
		canShowOverlay = steamworks.canShowOverlay
		nothing = steamworks.noSuchProperty
	`)
	assert.Equal(t, "480", lua.LVAsString(w.global("appId")))
	assert.Equal(t, me.String(), lua.LVAsString(w.global("userSteamId")))
	assert.Equal(t, lua.LTrue, w.global("isLoggedOn"))
	assert.Equal(t, lua.LTrue, w.global("canShowOverlay"))
	assert.Equal(t, lua.LNil, w.global("nothing"))
}

func TestPropertiesAreReadOnly(t *testing.T) {
	w := newWorld(t, nil)
	w.lua(t, `
		steamworks.appId = "999"
		steamworks.invented = 7
		appId = steamworks.appId
		invented = steamworks.invented
	`)
	assert.Equal(t, "480", lua.LVAsString(w.global("appId")))
	assert.Equal(t, lua.LNil, w.global("invented"))
}

func TestScoreUploadScenario(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) {
		s.CreateLeaderboard("Feet Traveled", steam.SortMethodDescending, steam.DisplayTypeNumeric,
			steam.LeaderboardEntry{User: 1001, Score: 900},
		)
	})
	w.lua(t, `
		delivered = 0
		ok = steamworks.requestSetHighScore{
			leaderboardName = "Feet Traveled",
			value = 500,
			listener = function(event)
				delivered = delivered + 1
				scoreChanged = event.scoreChanged
				currentGlobalRank = event.currentGlobalRank
				previousGlobalRank = event.previousGlobalRank
				isError = event.isError
			end,
		}
	`)
	require.Equal(t, lua.LTrue, w.global("ok"))

	// Name resolution and upload each take one poll cycle.
	w.plugin.Poll()
	w.plugin.Poll()
	w.plugin.Poll()

	assert.Equal(t, float64(1), float64(lua.LVAsNumber(w.global("delivered"))),
		"exactly one delivery per request")
	assert.Equal(t, lua.LFalse, w.global("isError"))
	assert.Equal(t, lua.LTrue, w.global("scoreChanged"))
	assert.Equal(t, float64(2), float64(lua.LVAsNumber(w.global("currentGlobalRank"))))
}

func TestLeaderboardEntriesScenario(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) {
		var rows []steam.LeaderboardEntry
		for i := int32(1); i <= 30; i++ {
			rows = append(rows, steam.LeaderboardEntry{User: steam.ID(5000 + i), Score: 4000 - i})
		}
		s.CreateLeaderboard("Feet Traveled", steam.SortMethodDescending, steam.DisplayTypeNumeric, rows...)
	})
	w.lua(t, `
		ok = steamworks.requestLeaderboardEntries{
			leaderboardName = "Feet Traveled",
			playerScope = "Global",
			startIndex = 1,
			endIndex = 15,
			listener = function(event)
				count = #event.entries
				firstUser = event.entries[1].userSteamId
				firstRank = event.entries[1].globalRank
				firstScore = event.entries[1].score
			end,
		}
	`)
	require.Equal(t, lua.LTrue, w.global("ok"))
	w.plugin.Poll()
	w.plugin.Poll()

	assert.Equal(t, float64(15), float64(lua.LVAsNumber(w.global("count"))))
	assert.Equal(t, steam.ID(5001).String(), lua.LVAsString(w.global("firstUser")))
	assert.Equal(t, float64(1), float64(lua.LVAsNumber(w.global("firstRank"))))
	assert.Equal(t, float64(3999), float64(lua.LVAsNumber(w.global("firstScore"))))
}

func TestAchievementSurface(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) {
		s.DefineAchievement("ACH_WIN_ONE_GAME", "Winner", "Win your first game", false)
		s.DefineAchievement("ACH_SECRET", "Secret", "Hidden one", true)
		s.SetUnlocked(me, "ACH_WIN_ONE_GAME", 1700000000)
	})
	w.lua(t, `
		names = steamworks.getAchievementNames()
		info = steamworks.getAchievementInfo("ACH_WIN_ONE_GAME")
		missing = steamworks.getAchievementInfo("ACH_NOPE")
	`)
	names := w.global("names").(*lua.LTable)
	assert.Equal(t, 2, names.Len())
	assert.Equal(t, "ACH_WIN_ONE_GAME", lua.LVAsString(names.RawGetInt(1)))

	info := w.global("info").(*lua.LTable)
	assert.Equal(t, "Winner", lua.LVAsString(info.RawGetString("localizedName")))
	assert.Equal(t, lua.LTrue, info.RawGetString("unlocked"))
	assert.Equal(t, float64(1700000000), float64(lua.LVAsNumber(info.RawGetString("unlockTime"))))
	assert.Equal(t, lua.LFalse, info.RawGetString("hidden"))
	assert.Equal(t, lua.LNil, w.global("missing"))
}

func TestUnlockDeliversAchievementInfoUpdate(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) {
		s.DefineAchievement("ACH_TRAVEL_FAR", "Traveler", "Walk a lot", false)
	})
	w.lua(t, `
		updates = {}
		steamworks.addEventListener("achievementInfoUpdate", function(event)
			updates[#updates + 1] = event.achievementName
		end)
		ok = steamworks.setAchievementUnlocked("ACH_TRAVEL_FAR")
	`)
	require.Equal(t, lua.LTrue, w.global("ok"))
	w.plugin.Poll()

	updates := w.global("updates").(*lua.LTable)
	require.Equal(t, 1, updates.Len())
	assert.Equal(t, "ACH_TRAVEL_FAR", lua.LVAsString(updates.RawGetInt(1)))
}

func TestStatBatchWritePartialSuccess(t *testing.T) {
	w := newWorld(t, nil)
	w.lua(t, `
		saves = 0
		steamworks.addEventListener("userProgressSave", function(event)
			saves = saves + 1
			saveError = event.isError
		end)
		ok = steamworks.setUserStatValues{
			{ statName = "feet_traveled", type = "float", value = 512.5 },
			{ statName = "games_won", type = "int", value = 3 },
			{ statName = "broken", type = "nonsense", value = 1 },
		}
		feet = steamworks.getUserStatValue{ statName = "feet_traveled", type = "float" }
		games = steamworks.getUserStatValue{ statName = "games_won", type = "int" }
	`)
	assert.Equal(t, lua.LTrue, w.global("ok"), "valid entries must be written despite the bad one")
	assert.Equal(t, float64(512.5), float64(lua.LVAsNumber(w.global("feet"))))
	assert.Equal(t, float64(3), float64(lua.LVAsNumber(w.global("games"))))

	w.plugin.Poll()
	assert.Equal(t, float64(1), float64(lua.LVAsNumber(w.global("saves"))))
	assert.Equal(t, lua.LFalse, w.global("saveError"))
}

func TestActivePlayerCountFromLua(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) { s.SetPlayerCount(4242) })
	w.lua(t, `
		ok = steamworks.requestActivePlayerCount(function(event)
			count = event.count
			isError = event.isError
		end)
	`)
	require.Equal(t, lua.LTrue, w.global("ok"))
	w.plugin.Poll()
	assert.Equal(t, float64(4242), float64(lua.LVAsNumber(w.global("count"))))
	assert.Equal(t, lua.LFalse, w.global("isError"))
}

func TestMicrotransactionEvent(t *testing.T) {
	w := newWorld(t, nil)
	w.lua(t, `
		steamworks.addEventListener("microtransactionAuthorization", function(event)
			orderId = event.orderId
			authorized = event.authorized
		end)
	`)
	w.sim.AuthorizeMicroTxn(900913, true)
	w.plugin.Poll()

	assert.Equal(t, "900913", lua.LVAsString(w.global("orderId")))
	assert.Equal(t, lua.LTrue, w.global("authorized"))
}

func TestOverlayRoundTrip(t *testing.T) {
	w := newWorld(t, nil)
	w.lua(t, `
		phases = {}
		steamworks.addEventListener("overlayStatus", function(event)
			phases[#phases + 1] = event.phase
		end)
		shown = steamworks.showGameOverlay("Friends")
	`)
	require.Equal(t, lua.LTrue, w.global("shown"))

	assert.True(t, w.plugin.Poll(), "overlay up: host must redraw")
	w.sim.CloseOverlay()
	assert.True(t, w.plugin.Poll(), "redraw persists one tick past close")
	assert.False(t, w.plugin.Poll())

	phases := w.global("phases").(*lua.LTable)
	require.Equal(t, 2, phases.Len())
	assert.Equal(t, "shown", lua.LVAsString(phases.RawGetInt(1)))
	assert.Equal(t, "hidden", lua.LVAsString(phases.RawGetInt(2)))
}

func TestDlcAndNotificationPosition(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) { s.SetDlcInstalled(570, true) })
	w.lua(t, `
		installed = steamworks.isDlcInstalled("570")
		notInstalled = steamworks.isDlcInstalled("571")
		posOK = steamworks.setNotificationPosition("bottomRight")
		posBad = steamworks.setNotificationPosition("middle")
	`)
	assert.Equal(t, lua.LTrue, w.global("installed"))
	assert.Equal(t, lua.LFalse, w.global("notInstalled"))
	assert.Equal(t, lua.LTrue, w.global("posOK"))
	assert.Equal(t, lua.LFalse, w.global("posBad"))
	assert.Equal(t, steam.PositionBottomRight, w.sim.NotificationPosition())
}

func TestUserInfoStringIDsRoundTrip(t *testing.T) {
	const buddy steam.ID = 76561197960287931
	w := newWorld(t, func(s *steamsim.Sim) {
		s.AddUser(buddy, "buddy", steam.PersonaStateAway, steam.RelationshipFriend)
		s.SetNickname(buddy, "bud")
	})
	w.lua(t, `
		info = steamworks.getUserInfo("76561197960287931")
		bad = steamworks.getUserInfo("not-a-number")
	`)
	info := w.global("info").(*lua.LTable)
	assert.Equal(t, buddy.String(), lua.LVAsString(info.RawGetString("userSteamId")))
	assert.Equal(t, "buddy", lua.LVAsString(info.RawGetString("name")))
	assert.Equal(t, "bud", lua.LVAsString(info.RawGetString("nickname")))
	assert.Equal(t, "away", lua.LVAsString(info.RawGetString("status")))
	assert.Equal(t, "friend", lua.LVAsString(info.RawGetString("relationship")))
	assert.Equal(t, lua.LNil, w.global("bad"))
}

func TestEverythingFailsWhenClientIsDown(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) { s.SetRunning(false) })
	w.lua(t, `
		isLoggedOn = steamworks.isLoggedOn
		canShowOverlay = steamworks.canShowOverlay
		info = steamworks.getUserInfo()
		names = steamworks.getAchievementNames()
		score = steamworks.requestSetHighScore{
			leaderboardName = "Feet Traveled", value = 1, listener = function() end,
		}
		count = steamworks.requestActivePlayerCount(function() end)
	`)
	assert.Equal(t, lua.LFalse, w.global("isLoggedOn"))
	assert.Equal(t, lua.LFalse, w.global("canShowOverlay"))
	assert.Equal(t, lua.LNil, w.global("info"))
	assert.Equal(t, lua.LNil, w.global("names"))
	assert.Equal(t, lua.LFalse, w.global("score"))
	assert.Equal(t, lua.LFalse, w.global("count"))
}

func TestCloseDropsInFlightDeliveries(t *testing.T) {
	w := newWorld(t, func(s *steamsim.Sim) { s.SetPlayerCount(1) })
	w.lua(t, `
		fired = false
		ok = steamworks.requestActivePlayerCount(function() fired = true end)
	`)
	require.Equal(t, lua.LTrue, w.global("ok"))

	w.plugin.Close()
	w.sim.RunCallbacks()
	assert.Equal(t, lua.LFalse, w.global("fired"))
}

func TestRemoveEventListener(t *testing.T) {
	w := newWorld(t, nil)
	w.lua(t, `
		hits = 0
		listener = function(event) hits = hits + 1 end
		steamworks.addEventListener("overlayStatus", listener)
		removed = steamworks.removeEventListener("overlayStatus", listener)
	`)
	assert.Equal(t, lua.LTrue, w.global("removed"))

	w.sim.PushEvent(steam.GameOverlayActivated{Active: true})
	w.plugin.Poll()
	assert.Equal(t, float64(0), float64(lua.LVAsNumber(w.global("hits"))))
}
