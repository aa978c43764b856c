// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamlua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
)

// getUserInfo([userSteamId]) returns a table describing a user, or nil.
// Data for users Steam has not cached locally is incomplete until a
// userInfoUpdate event reports its arrival.
func (p *Plugin) getUserInfo(L *lua.LState) int {
	user, ok := p.optionalUser(L, 1)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	friends, ok := p.client.Friends()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	info := L.NewTable()
	info.RawSetString("userSteamId", lua.LString(user.String()))
	info.RawSetString("name", lua.LString(friends.FriendPersonaName(user)))
	info.RawSetString("nickname", lua.LString(friends.PlayerNickname(user)))
	info.RawSetString("steamLevel", lua.LNumber(friends.FriendSteamLevel(user)))
	info.RawSetString("status", lua.LString(friends.FriendPersonaState(user).String()))
	info.RawSetString("relationship", lua.LString(friends.FriendRelationship(user).String()))
	L.Push(info)
	return 1
}

// getUserImageInfo(imageType [, userSteamId]) returns image info for one
// of the fixed avatar sizes ("smallAvatar", "mediumAvatar" or
// "largeAvatar"). When the avatar is not cached the returned info is
// invalid, a fetch starts in the background, and a userInfoUpdate event
// announces availability.
func (p *Plugin) getUserImageInfo(L *lua.LState) int {
	typeName := L.CheckString(1)
	typ, known := bridge.ParseUserImageType(typeName)
	if !known {
		p.log.Error("unknown image type", "imageType", typeName)
		L.Push(lua.LNil)
		return 1
	}
	user, ok := p.optionalUser(L, 2)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	info, ok := p.ctx.UserImageInfo(user, typ)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(info.ToLua(L))
	return 1
}
