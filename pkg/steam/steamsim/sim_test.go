// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamlua/steamlua/pkg/steam"
)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	s := New()
	s.SetAppID(480)
	s.SetLoggedOnUser(76561197960287930, "gabe", 42)
	require.NoError(t, s.Init())
	return s
}

func TestCompletionsWaitForPump(t *testing.T) {
	s := newTestSim(t)
	us, ok := s.UserStats()
	require.True(t, ok)
	s.SetPlayerCount(1234)

	var got int32
	call := us.GetNumberOfCurrentPlayers()
	require.True(t, s.RegisterCallResult(call, func(payload any, ioFailure bool) {
		require.False(t, ioFailure)
		got = payload.(steam.NumberOfCurrentPlayers).Players
	}))

	assert.Zero(t, got, "nothing may fire before RunCallbacks")
	s.RunCallbacks()
	assert.Equal(t, int32(1234), got)
}

func TestRequestsDuringPumpDeliverNextPump(t *testing.T) {
	s := newTestSim(t)
	us, _ := s.UserStats()
	s.SetPlayerCount(7)

	var second bool
	first := us.GetNumberOfCurrentPlayers()
	require.True(t, s.RegisterCallResult(first, func(any, bool) {
		// Issue a follow-up from within the pump.
		next := us.GetNumberOfCurrentPlayers()
		require.True(t, s.RegisterCallResult(next, func(any, bool) { second = true }))
	}))

	s.RunCallbacks()
	assert.False(t, second, "follow-up must wait for the next pump")
	s.RunCallbacks()
	assert.True(t, second)
}

func TestCallResultsAreOneShot(t *testing.T) {
	s := newTestSim(t)
	us, _ := s.UserStats()

	calls := 0
	call := us.GetNumberOfCurrentPlayers()
	require.True(t, s.RegisterCallResult(call, func(any, bool) { calls++ }))
	assert.False(t, s.RegisterCallResult(call, func(any, bool) {}),
		"a claimed call must reject a second handler")

	s.RunCallbacks()
	s.RunCallbacks()
	assert.Equal(t, 1, calls)
}

func TestIOFailureCarriesNoPayload(t *testing.T) {
	s := newTestSim(t)
	us, _ := s.UserStats()
	s.FailNextCallResult()

	var failed bool
	call := us.FindLeaderboard("anything")
	require.True(t, s.RegisterCallResult(call, func(payload any, ioFailure bool) {
		failed = ioFailure
	}))
	s.RunCallbacks()
	assert.True(t, failed)
}

func TestEntryBlocksExpireWithTheirPump(t *testing.T) {
	s := newTestSim(t)
	us, _ := s.UserStats()
	s.CreateLeaderboard("Feet Traveled", steam.SortMethodDescending, steam.DisplayTypeNumeric,
		steam.LeaderboardEntry{User: 1001, Score: 300},
		steam.LeaderboardEntry{User: 1002, Score: 200},
	)

	find := us.FindLeaderboard("Feet Traveled")
	var board steam.LeaderboardHandle
	require.True(t, s.RegisterCallResult(find, func(payload any, _ bool) {
		board = payload.(steam.LeaderboardFindResult).Board
	}))
	s.RunCallbacks()
	require.NotZero(t, board)

	var entries steam.EntriesHandle
	dl := us.DownloadLeaderboardEntries(board, steam.DataRequestGlobal, 1, 10)
	require.True(t, s.RegisterCallResult(dl, func(payload any, _ bool) {
		res := payload.(steam.LeaderboardScoresDownloaded)
		entries = res.Entries
		row, ok := us.DownloadedEntry(entries, 0)
		require.True(t, ok)
		assert.Equal(t, int32(300), row.Score)
		assert.Equal(t, int32(1), row.GlobalRank)
	}))
	s.RunCallbacks()

	_, ok := us.DownloadedEntry(entries, 0)
	assert.False(t, ok, "entry block must not survive its pump")
}

func TestKeepBestUpload(t *testing.T) {
	s := newTestSim(t)
	us, _ := s.UserStats()
	me := steam.ID(76561197960287930)
	s.CreateLeaderboard("High Score", steam.SortMethodDescending, steam.DisplayTypeNumeric,
		steam.LeaderboardEntry{User: me, Score: 500},
	)

	find := us.FindLeaderboard("High Score")
	var board steam.LeaderboardHandle
	require.True(t, s.RegisterCallResult(find, func(payload any, _ bool) {
		board = payload.(steam.LeaderboardFindResult).Board
	}))
	s.RunCallbacks()

	var res steam.LeaderboardScoreUploaded
	up := us.UploadLeaderboardScore(board, steam.UploadScoreKeepBest, 400)
	require.True(t, s.RegisterCallResult(up, func(payload any, _ bool) {
		res = payload.(steam.LeaderboardScoreUploaded)
	}))
	s.RunCallbacks()

	assert.True(t, res.Success)
	assert.False(t, res.ScoreChanged, "a worse score must not replace the best")
	assert.Equal(t, int32(500), res.Score)
}

func TestLargeAvatarLoadsAsynchronously(t *testing.T) {
	s := newTestSim(t)
	fr, ok := s.Friends()
	require.True(t, ok)
	buddy := steam.ID(76561197960287931)
	s.AddUser(buddy, "buddy", steam.PersonaStateOnline, steam.RelationshipFriend)

	require.Equal(t, steam.ImageHandlePending, fr.LargeFriendAvatar(buddy))

	var loaded steam.AvatarImageLoaded
	cancel := s.RegisterCallback(func(event any) {
		if e, isAvatar := event.(steam.AvatarImageLoaded); isAvatar {
			loaded = e
		}
	})
	defer cancel()

	s.RunCallbacks()
	assert.Equal(t, buddy, loaded.User)
	assert.Equal(t, int32(184), loaded.Width)
	assert.Equal(t, loaded.Image, fr.LargeFriendAvatar(buddy),
		"after the load the handle must come straight from the cache")
}

func TestRequestUserInformationPopulatesCache(t *testing.T) {
	s := newTestSim(t)
	fr, _ := s.Friends()
	stranger := steam.ID(76561197960287999)
	s.AddUnknownUser(stranger, "stranger", steam.PersonaStateOnline)

	assert.Equal(t, "[unknown]", fr.FriendPersonaName(stranger))
	require.True(t, fr.RequestUserInformation(stranger, false))
	s.RunCallbacks()

	assert.Equal(t, "stranger", fr.FriendPersonaName(stranger))
	assert.NotZero(t, fr.SmallFriendAvatar(stranger))
	assert.False(t, fr.RequestUserInformation(stranger, false),
		"cached users must not trigger another fetch")
}

func TestNotRunningClientHidesAllInterfaces(t *testing.T) {
	s := newTestSim(t)
	s.SetRunning(false)

	require.Error(t, s.Init())
	_, ok := s.UserStats()
	assert.False(t, ok)
	_, ok = s.Friends()
	assert.False(t, ok)
	_, ok = s.User()
	assert.False(t, ok)
}
