// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

// Package steam defines the boundary contract with the Steamworks SDK.
//
// The rest of the repository talks to Steam exclusively through the Client
// interface and the value types declared here. A production embedding
// supplies a cgo-backed implementation; tests and the demo CLI use the
// in-memory implementation in the steamsim subpackage.
package steam

import (
	"strconv"

	"github.com/samber/oops"
)

// ID is a 64-bit Steam account identifier.
//
// Lua numbers cannot represent all 64-bit integers, so IDs always cross the
// scripting boundary as decimal strings. ParseID and ID.String are the only
// sanctioned conversions.
type ID uint64

// Valid reports whether the ID refers to an actual account.
func (id ID) Valid() bool { return id != 0 }

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseID converts a decimal string into an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, oops.In("steam").With("value", s).Hint("steam IDs are decimal strings").Wrap(err)
	}
	return ID(n), nil
}

// AppID identifies an application on Steam.
type AppID uint32

func (a AppID) String() string { return strconv.FormatUint(uint64(a), 10) }

// ParseAppID converts a decimal string into an AppID.
func ParseAppID(s string) (AppID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, oops.In("steam").With("value", s).Hint("app IDs are decimal strings").Wrap(err)
	}
	return AppID(n), nil
}

// GameID is the app identity attached to stats/achievement callbacks.
// Events carrying a GameID other than the running app's must be ignored.
type GameID uint64

// GameIDFor returns the GameID form of an AppID.
func GameIDFor(app AppID) GameID { return GameID(app) }

// LeaderboardHandle is an opaque, process-stable reference to a named
// leaderboard. Zero means "not resolved".
type LeaderboardHandle uint64

func (h LeaderboardHandle) String() string { return strconv.FormatUint(uint64(h), 10) }

// EntriesHandle references a downloaded block of leaderboard entries.
// It is only valid while the LeaderboardScoresDownloaded callback that
// produced it is being handled; the SDK frees the block afterwards.
type EntriesHandle uint64

// ImageHandle references an image in the Steam client's image cache.
type ImageHandle int32

// ImageHandlePending is returned by LargeFriendAvatar when the download has
// already been started; an AvatarImageLoaded callback follows.
const ImageHandlePending ImageHandle = -1

// APICall identifies an in-flight asynchronous request (a call-result).
type APICall uint64

// APICallInvalid is returned when an asynchronous request could not be issued.
const APICallInvalid APICall = 0

// Result is the SDK's operation result code.
type Result int32

// Result codes used by this binding. The SDK defines many more; anything not
// listed here is surfaced to scripts as its raw integer value.
const (
	ResultOK                 Result = 1
	ResultFail               Result = 2
	ResultInvalidParam       Result = 8
	ResultAccessDenied       Result = 15
	ResultTimeout            Result = 16
	ResultServiceUnavailable Result = 20
)

// SortMethod is a leaderboard's configured sort order.
type SortMethod int32

const (
	SortMethodNone SortMethod = iota
	SortMethodAscending
	SortMethodDescending
)

func (m SortMethod) String() string {
	switch m {
	case SortMethodNone:
		return "none"
	case SortMethodAscending:
		return "ascending"
	case SortMethodDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// DisplayType is a leaderboard's configured score display format.
type DisplayType int32

const (
	DisplayTypeNone DisplayType = iota
	DisplayTypeNumeric
	DisplayTypeTimeSeconds
	DisplayTypeTimeMilliSeconds
)

func (t DisplayType) String() string {
	switch t {
	case DisplayTypeNone:
		return "none"
	case DisplayTypeNumeric:
		return "numeric"
	case DisplayTypeTimeSeconds:
		return "seconds"
	case DisplayTypeTimeMilliSeconds:
		return "milliseconds"
	default:
		return "unknown"
	}
}

// DataRequest selects which slice of a leaderboard to download.
type DataRequest int32

const (
	DataRequestGlobal DataRequest = iota
	DataRequestGlobalAroundUser
	DataRequestFriends
)

// UploadScoreMethod controls how an uploaded score interacts with the
// user's existing entry.
type UploadScoreMethod int32

const (
	UploadScoreKeepBest UploadScoreMethod = iota + 1
	UploadScoreForceUpdate
)

// PersonaState is a user's presence status.
type PersonaState int32

const (
	PersonaStateOffline PersonaState = iota
	PersonaStateOnline
	PersonaStateBusy
	PersonaStateAway
	PersonaStateSnooze
	PersonaStateLookingToTrade
	PersonaStateLookingToPlay
)

func (s PersonaState) String() string {
	switch s {
	case PersonaStateOffline:
		return "offline"
	case PersonaStateOnline:
		return "online"
	case PersonaStateBusy:
		return "busy"
	case PersonaStateAway:
		return "away"
	case PersonaStateSnooze:
		return "snooze"
	case PersonaStateLookingToTrade:
		return "lookingToTrade"
	case PersonaStateLookingToPlay:
		return "lookingToPlay"
	default:
		return "unknown"
	}
}

// FriendRelationship describes the logged-in user's relationship to
// another account.
type FriendRelationship int32

const (
	RelationshipNone FriendRelationship = iota
	RelationshipBlocked
	RelationshipRequestRecipient
	RelationshipFriend
	RelationshipRequestInitiator
	RelationshipIgnored
	RelationshipIgnoredFriend
	RelationshipSuggested
)

func (r FriendRelationship) String() string {
	switch r {
	case RelationshipNone:
		return "none"
	case RelationshipBlocked:
		return "blocked"
	case RelationshipRequestRecipient:
		return "requestRecipient"
	case RelationshipFriend:
		return "friend"
	case RelationshipRequestInitiator:
		return "requestInitiator"
	case RelationshipIgnored:
		return "ignored"
	case RelationshipIgnoredFriend:
		return "ignoredFriend"
	case RelationshipSuggested:
		return "suggested"
	default:
		return "unknown"
	}
}

// NotificationPosition is the screen corner used for overlay toasts.
type NotificationPosition int32

const (
	PositionTopLeft NotificationPosition = iota
	PositionTopRight
	PositionBottomLeft
	PositionBottomRight
)

// PersonaChange is the bitmask delivered with PersonaStateChange callbacks.
type PersonaChange uint32

const (
	PersonaChangeName         PersonaChange = 1 << 0
	PersonaChangeStatus       PersonaChange = 1 << 1
	PersonaChangeComeOnline   PersonaChange = 1 << 2
	PersonaChangeGoneOffline  PersonaChange = 1 << 3
	PersonaChangeGamePlayed   PersonaChange = 1 << 4
	PersonaChangeGameServer   PersonaChange = 1 << 5
	PersonaChangeAvatar       PersonaChange = 1 << 6
	PersonaChangeRelationship PersonaChange = 1 << 10
	PersonaChangeNickname     PersonaChange = 1 << 16
)

// Has reports whether all bits of flag are set.
func (c PersonaChange) Has(flag PersonaChange) bool { return c&flag == flag }

// LeaderboardEntry is one row downloaded from a leaderboard. Unlike the
// handles above it is a plain value and safe to retain.
type LeaderboardEntry struct {
	User       ID
	GlobalRank int32
	Score      int32
}
