// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamsim

import "github.com/steamlua/steamlua/pkg/steam"

type friends struct{ s *Sim }

var _ steam.Friends = (*friends)(nil)

func (f *friends) PersonaName() string {
	if p, ok := f.s.users[f.s.userID]; ok {
		return p.name
	}
	return ""
}

func (f *friends) FriendPersonaName(user steam.ID) string {
	p, ok := f.s.users[user]
	if !ok || !p.cached {
		return "[unknown]"
	}
	return p.name
}

func (f *friends) PlayerNickname(user steam.ID) string {
	if p, ok := f.s.users[user]; ok {
		return p.nickname
	}
	return ""
}

func (f *friends) PersonaState() steam.PersonaState {
	if p, ok := f.s.users[f.s.userID]; ok {
		return p.state
	}
	return steam.PersonaStateOffline
}

func (f *friends) FriendSteamLevel(user steam.ID) int {
	p, ok := f.s.users[user]
	if !ok || !p.cached {
		return 0
	}
	return p.level
}

func (f *friends) FriendPersonaState(user steam.ID) steam.PersonaState {
	p, ok := f.s.users[user]
	if !ok || !p.cached {
		return steam.PersonaStateOffline
	}
	return p.state
}

func (f *friends) FriendRelationship(user steam.ID) steam.FriendRelationship {
	if p, ok := f.s.users[user]; ok {
		return p.relationship
	}
	return steam.RelationshipNone
}

func (f *friends) SmallFriendAvatar(user steam.ID) steam.ImageHandle {
	p, ok := f.s.users[user]
	if !ok || !p.cached {
		return 0
	}
	return p.smallAvatar
}

func (f *friends) MediumFriendAvatar(user steam.ID) steam.ImageHandle {
	p, ok := f.s.users[user]
	if !ok || !p.cached {
		return 0
	}
	return p.mediumAvatar
}

// LargeFriendAvatar returns the cached handle, or ImageHandlePending after
// starting an async download. The AvatarImageLoaded callback carries the
// real handle once the pump delivers it.
func (f *friends) LargeFriendAvatar(user steam.ID) steam.ImageHandle {
	p, ok := f.s.users[user]
	if !ok || !p.cached {
		return 0
	}
	if p.largeLoaded {
		return p.largeAvatar
	}
	if !p.largeStarted {
		p.largeStarted = true
		handle := f.s.newImage(184, 184)
		f.s.pending = append(f.s.pending, delivery{
			payload:   steam.AvatarImageLoaded{User: user, Image: handle, Width: 184, Height: 184},
			broadcast: true,
			apply: func() {
				p.largeAvatar = handle
				p.largeLoaded = true
			},
		})
	}
	return steam.ImageHandlePending
}

// RequestUserInformation returns true when a fetch was started, false when
// everything asked for is already cached.
func (f *friends) RequestUserInformation(user steam.ID, nameOnly bool) bool {
	p := f.s.profileFor(user)
	if p.cached {
		return false
	}
	flags := steam.PersonaChangeName
	f.s.pending = append(f.s.pending, delivery{
		payload:   steam.PersonaStateChange{User: user, Flags: flags | steam.PersonaChangeAvatar},
		broadcast: true,
		apply: func() {
			p.cached = true
			if !nameOnly {
				p.smallAvatar = f.s.newImage(32, 32)
				p.mediumAvatar = f.s.newImage(64, 64)
			}
		},
	})
	return true
}

func (f *friends) ActivateGameOverlay(dialog string) {
	f.showOverlay()
}

func (f *friends) ActivateGameOverlayToUser(dialog string, user steam.ID) {
	f.showOverlay()
}

func (f *friends) ActivateGameOverlayToWebPage(url string) {
	f.showOverlay()
}

func (f *friends) ActivateGameOverlayToStore(app steam.AppID) {
	f.showOverlay()
}

func (f *friends) showOverlay() {
	if !f.s.overlayEnabled {
		return
	}
	f.s.pending = append(f.s.pending, delivery{
		payload:   steam.GameOverlayActivated{Active: true},
		broadcast: true,
		apply:     func() { f.s.overlayVisible = true },
	})
}
