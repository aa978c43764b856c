// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamsim

import "github.com/steamlua/steamlua/pkg/steam"

type utils struct{ s *Sim }

var _ steam.Utils = (*utils)(nil)

func (u *utils) AppID() steam.AppID { return u.s.appID }

func (u *utils) ImageSize(handle steam.ImageHandle) (width, height uint32, ok bool) {
	dims, ok := u.s.images[handle]
	if !ok {
		return 0, 0, false
	}
	return dims[0], dims[1], true
}

func (u *utils) IsOverlayEnabled() bool { return u.s.overlayEnabled }

func (u *utils) OverlayNeedsPresent() bool { return u.s.overlayVisible }

func (u *utils) SetOverlayNotificationPosition(pos steam.NotificationPosition) {
	u.s.notificationPos = pos
}

func (u *utils) SetWarningMessageHook(fn func(severity int, message string)) {
	u.s.warningHook = fn
}

type user struct{ s *Sim }

var _ steam.User = (*user)(nil)

func (u *user) SteamID() steam.ID { return u.s.userID }

func (u *user) PlayerSteamLevel() int {
	if p, ok := u.s.users[u.s.userID]; ok {
		return p.level
	}
	return 0
}

type apps struct{ s *Sim }

var _ steam.Apps = (*apps)(nil)

func (a *apps) AppOwner() steam.ID { return a.s.owner }

func (a *apps) IsDlcInstalled(app steam.AppID) bool { return a.s.dlc[app] }
