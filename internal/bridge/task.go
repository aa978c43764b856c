// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import (
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/pkg/steam"
)

func formatUint64(v uint64) string { return strconv.FormatUint(v, 10) }

// Event names delivered to script listeners. Fixed strings, part of the
// script-facing API.
const (
	EventOverlayStatus    = "overlayStatus"
	EventMicroTxnAuth     = "microtransactionAuthorization"
	EventActivePlayers    = "activePlayerCount"
	EventUserInfoUpdate   = "userInfoUpdate"
	EventUserProgress     = "userProgressUpdate"
	EventUserProgressSave = "userProgressSave"
	EventUserProgressGone = "userProgressUnload"
	EventAchievementInfo  = "achievementInfoUpdate"
	EventAchievementImage = "achievementImageUpdate"
	EventLeaderboardInfo  = "leaderboardInfo"
	EventLeaderboardRows  = "leaderboardEntries"
	EventSetHighScore     = "setHighScore"
)

// Task is a one-shot adapter from an already-copied native payload to a
// script-facing event table. A task owns every byte it serializes; nothing
// in it may point back into SDK-owned memory. Tasks live in the pending
// queue until a poll delivers them, and are dropped without delivery when
// the owning context closes first.
type Task interface {
	EventName() string

	// fill writes the variant's fields into the event table. The "name" and
	// "isError" fields are handled by the dispatcher.
	fill(L *lua.LState, tbl *lua.LTable)

	// failed reports whether the event carries the error flag.
	failed() bool
}

// taskBase carries the error flag shared by every variant.
type taskBase struct {
	IsError bool
}

func (t taskBase) failed() bool { return t.IsError }

// OverlayStatusTask reports the Steam overlay opening or closing.
type OverlayStatusTask struct {
	taskBase
	Shown bool
}

func (OverlayStatusTask) EventName() string { return EventOverlayStatus }

func (t OverlayStatusTask) fill(L *lua.LState, tbl *lua.LTable) {
	phase := "hidden"
	if t.Shown {
		phase = "shown"
	}
	tbl.RawSetString("phase", lua.LString(phase))
}

// MicroTxnAuthTask reports the player approving or declining a purchase in
// the overlay.
type MicroTxnAuthTask struct {
	taskBase
	App        steam.AppID
	OrderID    uint64
	Authorized bool
}

func (MicroTxnAuthTask) EventName() string { return EventMicroTxnAuth }

func (t MicroTxnAuthTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("appId", lua.LString(t.App.String()))
	tbl.RawSetString("orderId", lua.LString(formatUint64(t.OrderID)))
	tbl.RawSetString("authorized", lua.LBool(t.Authorized))
}

// ActivePlayerCountTask carries the concurrent-player figure.
type ActivePlayerCountTask struct {
	taskBase
	Count int32
}

func (ActivePlayerCountTask) EventName() string { return EventActivePlayers }

func (t ActivePlayerCountTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("count", lua.LNumber(t.Count))
}

// UserInfoUpdateTask reports persona changes for a tracked user. The three
// per-size avatar booleans come from the SDK's single avatar bit; the large
// flag is additionally synthesized by the avatar chain (the SDK never
// notifies for large avatars directly).
type UserInfoUpdateTask struct {
	taskBase
	User                steam.ID
	NameChanged         bool
	NicknameChanged     bool
	StatusChanged       bool
	RelationshipChanged bool
	SmallAvatarChanged  bool
	MediumAvatarChanged bool
	LargeAvatarChanged  bool
}

func (UserInfoUpdateTask) EventName() string { return EventUserInfoUpdate }

func (t UserInfoUpdateTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("userSteamId", lua.LString(t.User.String()))
	tbl.RawSetString("nameChanged", lua.LBool(t.NameChanged))
	tbl.RawSetString("nicknameChanged", lua.LBool(t.NicknameChanged))
	tbl.RawSetString("statusChanged", lua.LBool(t.StatusChanged))
	tbl.RawSetString("relationshipChanged", lua.LBool(t.RelationshipChanged))
	tbl.RawSetString("smallAvatarChanged", lua.LBool(t.SmallAvatarChanged))
	tbl.RawSetString("mediumAvatarChanged", lua.LBool(t.MediumAvatarChanged))
	tbl.RawSetString("largeAvatarChanged", lua.LBool(t.LargeAvatarChanged))
}

// changed reports whether the task carries any flag worth dispatching.
func (t UserInfoUpdateTask) changed() bool {
	return t.NameChanged || t.NicknameChanged || t.StatusChanged ||
		t.RelationshipChanged || t.SmallAvatarChanged ||
		t.MediumAvatarChanged || t.LargeAvatarChanged
}

// UserProgressUpdateTask reports stats/achievement data for a user becoming
// available locally.
type UserProgressUpdateTask struct {
	taskBase
	User steam.ID
}

func (UserProgressUpdateTask) EventName() string { return EventUserProgress }

func (t UserProgressUpdateTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("userSteamId", lua.LString(t.User.String()))
}

// UserProgressSaveTask reports a StoreStats commit finishing.
type UserProgressSaveTask struct {
	taskBase
	User steam.ID
}

func (UserProgressSaveTask) EventName() string { return EventUserProgressSave }

func (t UserProgressSaveTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("userSteamId", lua.LString(t.User.String()))
}

// UserProgressUnloadTask reports the SDK evicting a remote user's stats.
type UserProgressUnloadTask struct {
	taskBase
	User steam.ID
}

func (UserProgressUnloadTask) EventName() string { return EventUserProgressGone }

func (t UserProgressUnloadTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("userSteamId", lua.LString(t.User.String()))
}

// AchievementInfoTask reports an achievement unlock or progress milestone
// being persisted.
type AchievementInfoTask struct {
	taskBase
	Name        string
	Group       bool
	CurProgress uint32
	MaxProgress uint32
}

func (AchievementInfoTask) EventName() string { return EventAchievementInfo }

func (t AchievementInfoTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("achievementName", lua.LString(t.Name))
	tbl.RawSetString("isGroupAchievement", lua.LBool(t.Group))
	tbl.RawSetString("currentProgress", lua.LNumber(t.CurProgress))
	tbl.RawSetString("maxProgress", lua.LNumber(t.MaxProgress))
}

// AchievementImageTask reports an achievement icon fetch finishing. Image
// dimensions are resolved at serialization time; if the SDK has evicted the
// handle by then the info degrades to invalid instead of failing.
type AchievementImageTask struct {
	taskBase
	Name     string
	Unlocked bool
	Image    ImageInfo
}

func (AchievementImageTask) EventName() string { return EventAchievementImage }

func (t AchievementImageTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("achievementName", lua.LString(t.Name))
	tbl.RawSetString("unlocked", lua.LBool(t.Unlocked))
	tbl.RawSetString("imageInfo", t.Image.ToLua(L))
}

// LeaderboardInfoTask carries a board's metadata after resolution.
type LeaderboardInfoTask struct {
	taskBase
	Name       string
	EntryCount int
	Sort       steam.SortMethod
	Display    steam.DisplayType
}

func (LeaderboardInfoTask) EventName() string { return EventLeaderboardInfo }

func (t LeaderboardInfoTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("leaderboardName", lua.LString(t.Name))
	if t.IsError {
		return
	}
	tbl.RawSetString("entryCount", lua.LNumber(t.EntryCount))
	tbl.RawSetString("sortMethod", lua.LString(t.Sort.String()))
	tbl.RawSetString("displayType", lua.LString(t.Display.String()))
}

// LeaderboardEntriesTask carries a downloaded block of rows. Rows are deep
// copies made while the SDK's entries handle was still valid.
type LeaderboardEntriesTask struct {
	taskBase
	Name    string
	Entries []steam.LeaderboardEntry
}

func (LeaderboardEntriesTask) EventName() string { return EventLeaderboardRows }

func (t LeaderboardEntriesTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("leaderboardName", lua.LString(t.Name))
	if t.IsError {
		return
	}
	rows := L.NewTable()
	for i, e := range t.Entries {
		row := L.NewTable()
		row.RawSetString("userSteamId", lua.LString(e.User.String()))
		row.RawSetString("globalRank", lua.LNumber(e.GlobalRank))
		row.RawSetString("score", lua.LNumber(e.Score))
		rows.RawSetInt(i+1, row)
	}
	tbl.RawSetString("entries", rows)
}

// SetHighScoreTask reports a score upload finishing.
type SetHighScoreTask struct {
	taskBase
	Name         string
	Score        int32
	ScoreChanged bool
	CurrentRank  int32
	PreviousRank int32
}

func (SetHighScoreTask) EventName() string { return EventSetHighScore }

func (t SetHighScoreTask) fill(L *lua.LState, tbl *lua.LTable) {
	tbl.RawSetString("leaderboardName", lua.LString(t.Name))
	if t.IsError {
		return
	}
	tbl.RawSetString("attemptedScore", lua.LNumber(t.Score))
	tbl.RawSetString("scoreChanged", lua.LBool(t.ScoreChanged))
	if t.ScoreChanged {
		tbl.RawSetString("currentGlobalRank", lua.LNumber(t.CurrentRank))
		tbl.RawSetString("previousGlobalRank", lua.LNumber(t.PreviousRank))
	}
}
