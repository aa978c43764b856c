// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package main

import (
	"github.com/steamlua/steamlua/pkg/steam"
	"github.com/steamlua/steamlua/pkg/steam/steamsim"
)

// Demo account IDs. The local user is Valve's documented example SteamID.
const (
	demoUser    steam.ID = 76561197960287930
	demoFriend1 steam.ID = 76561197960265729
	demoFriend2 steam.ID = 76561197960265731
	demoFriend3 steam.ID = 76561197960265733
)

// demoWorld seeds an in-memory Steam client with enough state for the
// example scripts: a logged-on user with friends, a handful of
// achievements and stats, a leaderboard, and an authorized purchase.
func demoWorld(app steam.AppID) *steamsim.Sim {
	sim := steamsim.New()
	sim.SetRunning(true)
	sim.SetAppID(app)
	sim.SetLoggedOnUser(demoUser, "gaben", 42)
	sim.SetAppOwner(demoUser)
	sim.SetOverlayEnabled(true)

	sim.AddUser(demoFriend1, "alyx", steam.PersonaStateOnline, steam.RelationshipFriend)
	sim.AddUser(demoFriend2, "barney", steam.PersonaStateAway, steam.RelationshipFriend)
	sim.SetNickname(demoFriend2, "barn")
	// No profile data cached for this one; fetching it exercises the
	// userInfoUpdate round trip.
	sim.AddUnknownUser(demoFriend3, "gman", steam.PersonaStateOffline)

	sim.DefineAchievement("ACH_WIN_ONE_GAME", "First Victory", "Win your first game.", false)
	sim.DefineAchievement("ACH_WIN_100_GAMES", "Veteran", "Win 100 games.", false)
	sim.DefineAchievement("ACH_SECRET", "???", "It's a secret.", true)
	sim.SetUnlocked(demoUser, "ACH_WIN_ONE_GAME", 1700000000)

	sim.SetStat(demoUser, "games_won", 37)
	sim.SetStat(demoUser, "games_played", 112)
	sim.SetFloatStat(demoUser, "win_ratio", 0.33)

	sim.CreateLeaderboard("Feet Traveled", steam.SortMethodDescending, steam.DisplayTypeNumeric,
		steam.LeaderboardEntry{User: demoFriend1, Score: 9000},
		steam.LeaderboardEntry{User: demoFriend2, Score: 4500},
		steam.LeaderboardEntry{User: demoUser, Score: 1200},
	)

	sim.SetPlayerCount(5174)
	sim.SetDlcInstalled(app+1, true)
	sim.AuthorizeMicroTxn(900913, true)

	return sim
}
