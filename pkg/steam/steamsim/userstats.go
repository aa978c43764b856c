// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamsim

import "github.com/steamlua/steamlua/pkg/steam"

type userStats struct{ s *Sim }

var _ steam.UserStats = (*userStats)(nil)

func (u *userStats) StatInt(name string) (int32, bool) {
	return u.UserStatInt(u.s.userID, name)
}

func (u *userStats) StatFloat(name string) (float32, bool) {
	return u.UserStatFloat(u.s.userID, name)
}

func (u *userStats) UserStatInt(user steam.ID, name string) (int32, bool) {
	v, ok := u.s.statsFor(user)[name]
	if !ok || v.isFloat {
		return 0, false
	}
	return v.intVal, true
}

func (u *userStats) UserStatFloat(user steam.ID, name string) (float32, bool) {
	v, ok := u.s.statsFor(user)[name]
	if !ok || !v.isFloat {
		return 0, false
	}
	return v.floatVal, true
}

func (u *userStats) SetStatInt(name string, value int32) bool {
	if !u.s.userID.Valid() {
		return false
	}
	u.s.statsFor(u.s.userID)[name] = statValue{intVal: value}
	return true
}

func (u *userStats) SetStatFloat(name string, value float32) bool {
	if !u.s.userID.Valid() {
		return false
	}
	u.s.statsFor(u.s.userID)[name] = statValue{floatVal: value, isFloat: true}
	return true
}

func (u *userStats) UpdateAvgRateStat(name string, count float64, sessionLength float64) bool {
	if !u.s.userID.Valid() || sessionLength <= 0 {
		return false
	}
	// The real SDK maintains a windowed average server-side. A session-local
	// rate is close enough for a simulation.
	u.s.statsFor(u.s.userID)[name] = statValue{
		floatVal: float32(count / sessionLength),
		isFloat:  true,
	}
	return true
}

func (u *userStats) StoreStats() bool {
	if !u.s.userID.Valid() {
		return false
	}
	u.s.queueCallback(steam.UserStatsStored{Game: u.s.gameID(), Result: steam.ResultOK})
	for _, name := range u.s.pendingStore {
		u.s.queueCallback(steam.UserAchievementStored{
			Game: u.s.gameID(),
			Name: name,
		})
	}
	u.s.pendingStore = nil
	return true
}

func (u *userStats) ResetAllStats(achievementsToo bool) bool {
	if !u.s.userID.Valid() {
		return false
	}
	u.s.stats[u.s.userID] = make(map[string]statValue)
	if achievementsToo {
		u.s.achStates[u.s.userID] = make(map[string]achievementState)
	}
	u.s.queueCallback(steam.UserStatsReceived{
		Game:   u.s.gameID(),
		Result: steam.ResultOK,
		User:   u.s.userID,
	})
	return true
}

func (u *userStats) Achievement(name string) (achieved bool, unlockTime uint32, ok bool) {
	return u.UserAchievement(u.s.userID, name)
}

func (u *userStats) UserAchievement(user steam.ID, name string) (achieved bool, unlockTime uint32, ok bool) {
	if _, defined := u.s.achievements[name]; !defined {
		return false, 0, false
	}
	st := u.s.achStatesFor(user)[name]
	return st.achieved, st.unlockTime, true
}

func (u *userStats) SetAchievement(name string) bool {
	if _, defined := u.s.achievements[name]; !defined || !u.s.userID.Valid() {
		return false
	}
	states := u.s.achStatesFor(u.s.userID)
	if st := states[name]; !st.achieved {
		states[name] = achievementState{achieved: true, unlockTime: 1700000000}
		u.s.pendingStore = append(u.s.pendingStore, name)
	}
	return true
}

func (u *userStats) IndicateAchievementProgress(name string, cur, max uint32) bool {
	if _, defined := u.s.achievements[name]; !defined || !u.s.userID.Valid() {
		return false
	}
	u.s.queueCallback(steam.UserAchievementStored{
		Game:        u.s.gameID(),
		Name:        name,
		CurProgress: cur,
		MaxProgress: max,
	})
	return true
}

func (u *userStats) NumAchievements() int {
	return len(u.s.achOrder)
}

func (u *userStats) AchievementName(index int) string {
	if index < 0 || index >= len(u.s.achOrder) {
		return ""
	}
	return u.s.achOrder[index]
}

func (u *userStats) AchievementDisplayAttribute(name, key string) string {
	def, ok := u.s.achievements[name]
	if !ok {
		return ""
	}
	switch key {
	case "name":
		return def.displayName
	case "desc":
		return def.description
	case "hidden":
		if def.hidden {
			return "1"
		}
		return "0"
	}
	return ""
}

func (u *userStats) AchievementIcon(name string) steam.ImageHandle {
	def, ok := u.s.achievements[name]
	if !ok {
		return 0
	}
	if def.iconCached {
		return def.icon
	}
	// First ask starts an async fetch; the handle arrives via callback.
	st := u.s.achStatesFor(u.s.userID)[name]
	handle := u.s.newImage(64, 64)
	u.s.pending = append(u.s.pending, delivery{
		payload: steam.UserAchievementIconFetched{
			Game:     u.s.gameID(),
			Name:     name,
			Achieved: st.achieved,
			Icon:     handle,
		},
		broadcast: true,
		apply: func() {
			def.icon = handle
			def.iconCached = true
		},
	})
	return 0
}

func (u *userStats) RequestCurrentStats() bool {
	if !u.s.userID.Valid() {
		return false
	}
	u.s.queueCallback(steam.UserStatsReceived{
		Game:   u.s.gameID(),
		Result: steam.ResultOK,
		User:   u.s.userID,
	})
	return true
}

func (u *userStats) RequestUserStats(user steam.ID) steam.APICall {
	result := steam.ResultOK
	if _, known := u.s.users[user]; !known {
		result = steam.ResultFail
	}
	return u.s.queueCallResult(steam.UserStatsReceived{
		Game:   u.s.gameID(),
		Result: result,
		User:   user,
	}, true)
}

func (u *userStats) GetNumberOfCurrentPlayers() steam.APICall {
	return u.s.queueCallResult(steam.NumberOfCurrentPlayers{
		Success: u.s.playerCountKnown,
		Players: u.s.playerCount,
	}, false)
}

func (u *userStats) FindLeaderboard(name string) steam.APICall {
	b, found := u.s.boards[name]
	var handle steam.LeaderboardHandle
	if found {
		handle = b.handle
	}
	return u.s.queueCallResult(steam.LeaderboardFindResult{
		Board: handle,
		Found: found,
	}, false)
}

func (u *userStats) LeaderboardName(b steam.LeaderboardHandle) string {
	if board, ok := u.s.boardsByID[b]; ok {
		return board.name
	}
	return ""
}

func (u *userStats) LeaderboardEntryCount(b steam.LeaderboardHandle) int {
	if board, ok := u.s.boardsByID[b]; ok {
		return len(board.entries)
	}
	return 0
}

func (u *userStats) LeaderboardSortMethod(b steam.LeaderboardHandle) steam.SortMethod {
	if board, ok := u.s.boardsByID[b]; ok {
		return board.sort
	}
	return steam.SortMethodNone
}

func (u *userStats) LeaderboardDisplayType(b steam.LeaderboardHandle) steam.DisplayType {
	if board, ok := u.s.boardsByID[b]; ok {
		return board.display
	}
	return steam.DisplayTypeNone
}

func (u *userStats) DownloadLeaderboardEntries(b steam.LeaderboardHandle, scope steam.DataRequest, start, end int) steam.APICall {
	board, ok := u.s.boardsByID[b]
	if !ok {
		return u.s.queueCallResult(steam.LeaderboardScoresDownloaded{Board: b}, false)
	}

	var block []steam.LeaderboardEntry
	switch scope {
	case steam.DataRequestGlobalAroundUser:
		center := u.s.rankOf(board, u.s.userID)
		if center > 0 {
			lo := center + int32(start) // start is negative or zero
			hi := center + int32(end)
			block = sliceRanks(board.entries, lo, hi)
		}
	case steam.DataRequestFriends:
		for _, e := range board.entries {
			p, known := u.s.users[e.User]
			if e.User == u.s.userID || (known && p.relationship == steam.RelationshipFriend) {
				block = append(block, e)
			}
		}
	default:
		block = sliceRanks(board.entries, int32(start), int32(end))
	}

	entries := u.s.nextEntries
	u.s.nextEntries++
	call := u.s.queueCallResult(steam.LeaderboardScoresDownloaded{
		Board:   b,
		Entries: entries,
		Count:   int32(len(block)),
	}, false)
	u.s.pending[len(u.s.pending)-1].apply = func() {
		u.s.entryBlocks[entries] = block
		u.s.staleBlocks = append(u.s.staleBlocks, entries)
	}
	return call
}

func (u *userStats) UploadLeaderboardScore(b steam.LeaderboardHandle, method steam.UploadScoreMethod, score int32) steam.APICall {
	board, ok := u.s.boardsByID[b]
	if !ok || !u.s.userID.Valid() {
		return u.s.queueCallResult(steam.LeaderboardScoreUploaded{Board: b}, false)
	}

	prevRank := u.s.rankOf(board, u.s.userID)
	changed := true
	if method == steam.UploadScoreKeepBest && prevRank > 0 {
		old := board.entries[prevRank-1].Score
		if !betterScore(board.sort, score, old) {
			changed = false
			score = old
		}
	}
	if changed {
		u.s.placeScore(board, u.s.userID, score)
	}
	return u.s.queueCallResult(steam.LeaderboardScoreUploaded{
		Success:        true,
		Board:          b,
		Score:          score,
		ScoreChanged:   changed,
		GlobalRankNew:  u.s.rankOf(board, u.s.userID),
		GlobalRankPrev: prevRank,
	}, false)
}

func (u *userStats) DownloadedEntry(entries steam.EntriesHandle, index int) (steam.LeaderboardEntry, bool) {
	block, ok := u.s.entryBlocks[entries]
	if !ok || index < 0 || index >= len(block) {
		return steam.LeaderboardEntry{}, false
	}
	return block[index], true
}

// rankOf returns the 1-based global rank of a user, 0 when absent.
func (s *Sim) rankOf(b *board, user steam.ID) int32 {
	for _, e := range b.entries {
		if e.User == user {
			return e.GlobalRank
		}
	}
	return 0
}

// placeScore inserts or moves the user's entry and renumbers ranks.
func (s *Sim) placeScore(b *board, user steam.ID, score int32) {
	kept := b.entries[:0]
	for _, e := range b.entries {
		if e.User != user {
			kept = append(kept, e)
		}
	}
	b.entries = kept

	pos := len(b.entries)
	for i, e := range b.entries {
		if betterScore(b.sort, score, e.Score) {
			pos = i
			break
		}
	}
	b.entries = append(b.entries, steam.LeaderboardEntry{})
	copy(b.entries[pos+1:], b.entries[pos:])
	b.entries[pos] = steam.LeaderboardEntry{User: user, Score: score}
	for i := range b.entries {
		b.entries[i].GlobalRank = int32(i + 1)
	}
}

func betterScore(sort steam.SortMethod, a, b int32) bool {
	if sort == steam.SortMethodAscending {
		return a < b
	}
	return a > b
}

// sliceRanks clips a 1-based inclusive rank range against the board.
func sliceRanks(entries []steam.LeaderboardEntry, lo, hi int32) []steam.LeaderboardEntry {
	if lo < 1 {
		lo = 1
	}
	if hi > int32(len(entries)) {
		hi = int32(len(entries))
	}
	if lo > hi {
		return nil
	}
	return entries[lo-1 : hi]
}
