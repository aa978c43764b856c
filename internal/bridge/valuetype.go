// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import "github.com/steamlua/steamlua/pkg/steam"

// StatValueType identifies how a stat value is stored and updated.
type StatValueType int

const (
	StatValueUnknown StatValueType = iota
	StatValueInt
	StatValueFloat
	StatValueAverageRate
)

var statValueNames = map[string]StatValueType{
	"int":         StatValueInt,
	"float":       StatValueFloat,
	"averageRate": StatValueAverageRate,
}

// ParseStatValueType maps a script-facing type string to its StatValueType.
func ParseStatValueType(name string) (StatValueType, bool) {
	t, ok := statValueNames[name]
	return t, ok
}

func (t StatValueType) String() string {
	switch t {
	case StatValueInt:
		return "int"
	case StatValueFloat:
		return "float"
	case StatValueAverageRate:
		return "averageRate"
	default:
		return "unknown"
	}
}

// UserImageType identifies one of the fixed avatar sizes Steam serves.
type UserImageType int

const (
	UserImageUnknown UserImageType = iota
	UserImageSmallAvatar
	UserImageMediumAvatar
	UserImageLargeAvatar
)

var userImageNames = map[string]UserImageType{
	"smallAvatar":  UserImageSmallAvatar,
	"mediumAvatar": UserImageMediumAvatar,
	"largeAvatar":  UserImageLargeAvatar,
}

// ParseUserImageType maps a script-facing image type string to its
// UserImageType.
func ParseUserImageType(name string) (UserImageType, bool) {
	t, ok := userImageNames[name]
	return t, ok
}

func (t UserImageType) String() string {
	switch t {
	case UserImageSmallAvatar:
		return "smallAvatar"
	case UserImageMediumAvatar:
		return "mediumAvatar"
	case UserImageLargeAvatar:
		return "largeAvatar"
	default:
		return "unknown"
	}
}

// PixelSize returns the nominal dimensions Steam serves for this avatar
// size. Actual image data is always square at these sizes.
func (t UserImageType) PixelSize() (width, height uint32) {
	switch t {
	case UserImageSmallAvatar:
		return 32, 32
	case UserImageMediumAvatar:
		return 64, 64
	case UserImageLargeAvatar:
		return 184, 184
	default:
		return 0, 0
	}
}

// Fetch reads the avatar handle for a user from the Friends interface.
func (t UserImageType) Fetch(friends steam.Friends, user steam.ID) steam.ImageHandle {
	switch t {
	case UserImageSmallAvatar:
		return friends.SmallFriendAvatar(user)
	case UserImageMediumAvatar:
		return friends.MediumFriendAvatar(user)
	case UserImageLargeAvatar:
		return friends.LargeFriendAvatar(user)
	default:
		return 0
	}
}
