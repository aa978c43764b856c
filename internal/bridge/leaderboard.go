// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/pkg/steam"
)

// DefaultEntryRange returns the index range used when a caller does not
// give one. Friends queries ignore the range entirely; the SDK returns
// every friend regardless.
func DefaultEntryRange(scope steam.DataRequest) (start, end int) {
	switch scope {
	case steam.DataRequestGlobalAroundUser:
		return -12, 12
	default:
		return 1, 25
	}
}

// resolveBoard runs an operation against a leaderboard handle, resolving
// the name first when it is not cached.
//
// On a cache miss this issues a find request and saves act as a
// continuation; the continuation re-invokes the original operation with
// the now-cached handle, so the caller observes the same behavior either
// way, just one poll cycle later. A failed find (business or I/O) instead
// delivers makeFailure's task straight to the original listener, with the
// I/O flag folded into the usual isError field. Concurrent resolutions for
// one name are not deduplicated; resolution is idempotent and cheap.
func (c *Context) resolveBoard(name string, op string, listener lua.LValue,
	makeFailure func() Task, act func(board steam.LeaderboardHandle)) bool {

	if board, hit := c.boards[name]; hit {
		act(board)
		return true
	}

	us, ok := c.client.UserStats()
	if !ok {
		return false
	}
	return c.registerCall(us.FindLeaderboard(name), op, func(payload any, ioFailure bool) {
		if ioFailure {
			c.enqueueFor(listener, makeFailure())
			return
		}
		res := payload.(steam.LeaderboardFindResult)
		if !res.Found {
			c.log.Debug("leaderboard not found", "leaderboard", name, "op", op)
			c.enqueueFor(listener, makeFailure())
			return
		}
		c.boards[name] = res.Board
		act(res.Board)
	})
}

// RequestLeaderboardInfo answers the listener with a leaderboardInfo event
// carrying the board's metadata.
func (c *Context) RequestLeaderboardInfo(name string, listener lua.LValue) bool {
	fail := func() Task {
		return LeaderboardInfoTask{taskBase: taskBase{IsError: true}, Name: name}
	}
	return c.resolveBoard(name, "leaderboardInfo", listener, fail,
		func(board steam.LeaderboardHandle) {
			us, ok := c.client.UserStats()
			if !ok {
				c.enqueueFor(listener, fail())
				return
			}
			c.enqueueFor(listener, LeaderboardInfoTask{
				Name:       name,
				EntryCount: us.LeaderboardEntryCount(board),
				Sort:       us.LeaderboardSortMethod(board),
				Display:    us.LeaderboardDisplayType(board),
			})
		})
}

// RequestLeaderboardEntries downloads a slice of a board and answers the
// listener with a leaderboardEntries event.
func (c *Context) RequestLeaderboardEntries(name string, scope steam.DataRequest, start, end int, listener lua.LValue) bool {
	fail := func() Task {
		return LeaderboardEntriesTask{taskBase: taskBase{IsError: true}, Name: name}
	}
	return c.resolveBoard(name, "leaderboardEntries", listener, fail,
		func(board steam.LeaderboardHandle) {
			us, ok := c.client.UserStats()
			if !ok {
				c.enqueueFor(listener, fail())
				return
			}
			call := us.DownloadLeaderboardEntries(board, scope, start, end)
			if !c.registerCall(call, "leaderboardEntries", func(payload any, ioFailure bool) {
				if ioFailure {
					c.enqueueFor(listener, fail())
					return
				}
				res := payload.(steam.LeaderboardScoresDownloaded)
				// Rows must be copied out now; the entries handle dies when
				// this handler returns.
				rows := make([]steam.LeaderboardEntry, 0, res.Count)
				for i := 0; i < int(res.Count); i++ {
					if row, ok := us.DownloadedEntry(res.Entries, i); ok {
						rows = append(rows, row)
					}
				}
				c.enqueueFor(listener, LeaderboardEntriesTask{Name: name, Entries: rows})
			}) {
				c.enqueueFor(listener, fail())
			}
		})
}

// SetHighScore uploads a score with keep-best policy and answers the
// listener with a setHighScore event.
func (c *Context) SetHighScore(name string, score int32, listener lua.LValue) bool {
	fail := func() Task {
		return SetHighScoreTask{taskBase: taskBase{IsError: true}, Name: name, Score: score}
	}
	return c.resolveBoard(name, "setHighScore", listener, fail,
		func(board steam.LeaderboardHandle) {
			us, ok := c.client.UserStats()
			if !ok {
				c.enqueueFor(listener, fail())
				return
			}
			call := us.UploadLeaderboardScore(board, steam.UploadScoreKeepBest, score)
			if !c.registerCall(call, "setHighScore", func(payload any, ioFailure bool) {
				if ioFailure {
					c.enqueueFor(listener, fail())
					return
				}
				res := payload.(steam.LeaderboardScoreUploaded)
				c.enqueueFor(listener, SetHighScoreTask{
					taskBase:     taskBase{IsError: !res.Success},
					Name:         name,
					Score:        score,
					ScoreChanged: res.ScoreChanged,
					CurrentRank:  res.GlobalRankNew,
					PreviousRank: res.GlobalRankPrev,
				})
			}) {
				c.enqueueFor(listener, fail())
			}
		})
}
