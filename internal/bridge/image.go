// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/pkg/steam"
)

// ImageInfo is the script-facing description of an image in the Steam
// client's cache. It carries the handle and pixel dimensions, never pixel
// data; the host fetches pixels itself if it wants a texture.
type ImageInfo struct {
	Handle steam.ImageHandle
	Width  uint32
	Height uint32
}

// Valid reports whether the info describes a loaded image. A zero handle
// means "not loaded", ImageHandlePending means "download in flight", and
// either way the dimensions are meaningless.
func (i ImageInfo) Valid() bool {
	return i.Handle != 0 && i.Handle != steam.ImageHandlePending && i.Width > 0 && i.Height > 0
}

// LookupImageInfo resolves a handle's dimensions through Utils. Handles the
// SDK has evicted come back invalid rather than as an error.
func LookupImageInfo(utils steam.Utils, handle steam.ImageHandle) ImageInfo {
	if handle == 0 || handle == steam.ImageHandlePending {
		return ImageInfo{Handle: handle}
	}
	w, h, ok := utils.ImageSize(handle)
	if !ok {
		return ImageInfo{Handle: handle}
	}
	return ImageInfo{Handle: handle, Width: w, Height: h}
}

// ToLua converts the info into the table shape scripts receive.
func (i ImageInfo) ToLua(L *lua.LState) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("imageHandle", lua.LNumber(i.Handle))
	tbl.RawSetString("pixelWidth", lua.LNumber(i.Width))
	tbl.RawSetString("pixelHeight", lua.LNumber(i.Height))
	tbl.RawSetString("isValid", lua.LBool(i.Valid()))
	return tbl
}
