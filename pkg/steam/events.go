// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steam

// Callback payload structs, one per native event this binding consumes.
//
// Payloads are delivered by value during RunCallbacks. Any handle they carry
// (EntriesHandle, ImageHandle) may be invalidated by the SDK as soon as the
// handler returns, so handlers must copy out everything they need before
// returning.

// GameOverlayActivated fires when the Steam overlay is shown or hidden.
type GameOverlayActivated struct {
	Active bool
}

// PersonaStateChange fires when information about a tracked user changes.
type PersonaStateChange struct {
	User  ID
	Flags PersonaChange
}

// AvatarImageLoaded fires when an avatar image download completes.
type AvatarImageLoaded struct {
	User   ID
	Image  ImageHandle
	Width  int32
	Height int32
}

// MicroTxnAuthorizationResponse fires when the user approves or declines a
// microtransaction started by the app's backend.
type MicroTxnAuthorizationResponse struct {
	App        AppID
	OrderID    uint64
	Authorized bool
}

// NumberOfCurrentPlayers is the call-result payload for
// UserStats.GetNumberOfCurrentPlayers.
type NumberOfCurrentPlayers struct {
	Success bool
	Players int32
}

// UserStatsReceived fires when stats for a user arrive from the backend.
type UserStatsReceived struct {
	Game   GameID
	Result Result
	User   ID
}

// UserStatsStored fires after StoreStats commits.
type UserStatsStored struct {
	Game   GameID
	Result Result
}

// UserStatsUnloaded fires when the SDK evicts a user's stats from its cache.
type UserStatsUnloaded struct {
	User ID
}

// UserAchievementStored fires after an achievement unlock or progress update
// is persisted.
type UserAchievementStored struct {
	Game             GameID
	Name             string
	GroupAchievement bool
	CurProgress      uint32
	MaxProgress      uint32
}

// UserAchievementIconFetched fires when an achievement icon requested via
// UserStats.AchievementIcon becomes available.
type UserAchievementIconFetched struct {
	Game     GameID
	Name     string
	Achieved bool
	Icon     ImageHandle
}

// LeaderboardFindResult is the call-result payload for
// UserStats.FindLeaderboard.
type LeaderboardFindResult struct {
	Board LeaderboardHandle
	Found bool
}

// LeaderboardScoresDownloaded is the call-result payload for
// UserStats.DownloadLeaderboardEntries. Entries must be read out with
// UserStats.DownloadedEntry before the handler returns.
type LeaderboardScoresDownloaded struct {
	Board   LeaderboardHandle
	Entries EntriesHandle
	Count   int32
}

// LeaderboardScoreUploaded is the call-result payload for
// UserStats.UploadLeaderboardScore.
type LeaderboardScoreUploaded struct {
	Success          bool
	Board            LeaderboardHandle
	Score            int32
	ScoreChanged     bool
	GlobalRankNew    int32
	GlobalRankPrev   int32
}
