// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steam

// CallbackFunc receives global callback payloads (one of the structs in
// events.go) during RunCallbacks.
type CallbackFunc func(event any)

// CallResultFunc receives the payload of a completed asynchronous request.
// ioFailure is true when the call-result mechanism itself failed or timed
// out; in that case the payload is the zero value of its type.
type CallResultFunc func(payload any, ioFailure bool)

// Client is the process-wide connection to the Steam client.
//
// All methods must be called from the single designated thread that pumps
// RunCallbacks; the contract mirrors the native SDK, which is not safe for
// concurrent use across independent polling loops.
//
// Accessors return ok=false when the Steam client is not running or the user
// is not logged in. Callers treat that as an ordinary, recoverable failure.
type Client interface {
	// Init establishes the connection. Called once per process, before any
	// accessor is used.
	Init() error

	// Shutdown tears the connection down. Called once, after the last
	// runtime context is gone.
	Shutdown()

	// RunCallbacks synchronously delivers every callback and call-result
	// completion observed since the previous pump to the registered
	// handlers. Completions produced by requests issued *during* a pump are
	// held for the next one.
	RunCallbacks()

	// RegisterCallback subscribes fn to all global callbacks. The returned
	// cancel func removes the subscription.
	RegisterCallback(fn CallbackFunc) (cancel func())

	// RegisterCallResult attaches a one-shot handler to an in-flight
	// request. Returns false if call is APICallInvalid or already claimed.
	RegisterCallResult(call APICall, fn CallResultFunc) bool

	UserStats() (UserStats, bool)
	Friends() (Friends, bool)
	Utils() (Utils, bool)
	User() (User, bool)
	Apps() (Apps, bool)
}

// UserStats is the stats, achievements and leaderboards interface.
type UserStats interface {
	// Cached stat access. ok=false means the stat is unknown or has a
	// different type.
	StatInt(name string) (int32, bool)
	StatFloat(name string) (float32, bool)
	UserStatInt(user ID, name string) (int32, bool)
	UserStatFloat(user ID, name string) (float32, bool)

	SetStatInt(name string, value int32) bool
	SetStatFloat(name string, value float32) bool
	UpdateAvgRateStat(name string, countThisSession float64, sessionSeconds float64) bool
	StoreStats() bool
	ResetAllStats(achievementsToo bool) bool

	// Achievement queries against the local cache.
	Achievement(name string) (achieved bool, unlockTime uint32, ok bool)
	UserAchievement(user ID, name string) (achieved bool, unlockTime uint32, ok bool)
	SetAchievement(name string) bool
	IndicateAchievementProgress(name string, cur, max uint32) bool
	NumAchievements() int
	AchievementName(index int) string
	// AchievementDisplayAttribute returns the localized "name", "desc" or
	// "hidden" attribute, or "" when unknown.
	AchievementDisplayAttribute(name, key string) string
	// AchievementIcon returns the cached icon handle, or 0 when a fetch has
	// been started; a UserAchievementIconFetched callback follows.
	AchievementIcon(name string) ImageHandle

	RequestCurrentStats() bool
	RequestUserStats(user ID) APICall
	GetNumberOfCurrentPlayers() APICall

	FindLeaderboard(name string) APICall
	LeaderboardName(board LeaderboardHandle) string
	LeaderboardEntryCount(board LeaderboardHandle) int
	LeaderboardSortMethod(board LeaderboardHandle) SortMethod
	LeaderboardDisplayType(board LeaderboardHandle) DisplayType
	DownloadLeaderboardEntries(board LeaderboardHandle, scope DataRequest, start, end int) APICall
	UploadLeaderboardScore(board LeaderboardHandle, method UploadScoreMethod, score int32) APICall
	// DownloadedEntry reads one row from an entries block. Only valid while
	// the LeaderboardScoresDownloaded callback is being handled.
	DownloadedEntry(entries EntriesHandle, index int) (LeaderboardEntry, bool)
}

// Friends is the social and overlay interface.
type Friends interface {
	PersonaName() string
	FriendPersonaName(user ID) string
	PlayerNickname(user ID) string
	FriendSteamLevel(user ID) int
	PersonaState() PersonaState
	FriendPersonaState(user ID) PersonaState
	FriendRelationship(user ID) FriendRelationship

	SmallFriendAvatar(user ID) ImageHandle
	MediumFriendAvatar(user ID) ImageHandle
	// LargeFriendAvatar may return ImageHandlePending when the download has
	// already been started.
	LargeFriendAvatar(user ID) ImageHandle
	// RequestUserInformation returns true when a request was sent, false
	// when the user's info is already cached.
	RequestUserInformation(user ID, nameOnly bool) bool

	ActivateGameOverlay(dialog string)
	ActivateGameOverlayToUser(dialog string, user ID)
	ActivateGameOverlayToWebPage(url string)
	ActivateGameOverlayToStore(app AppID)
}

// Utils is the utility interface.
type Utils interface {
	AppID() AppID
	ImageSize(image ImageHandle) (width, height uint32, ok bool)
	IsOverlayEnabled() bool
	// OverlayNeedsPresent reports whether the overlay wants the host to
	// render a frame, polled once per tick.
	OverlayNeedsPresent() bool
	SetOverlayNotificationPosition(pos NotificationPosition)
	// SetWarningMessageHook routes SDK diagnostics; severity 0 is info,
	// 1 is warning.
	SetWarningMessageHook(fn func(severity int, message string))
}

// User is the logged-in user interface.
type User interface {
	SteamID() ID
	PlayerSteamLevel() int
}

// Apps is the application/DLC interface.
type Apps interface {
	AppOwner() ID
	IsDlcInstalled(app AppID) bool
}
