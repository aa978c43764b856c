// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steamsim

import "github.com/steamlua/steamlua/pkg/steam"

// Fixture setters. These mutate the simulated world directly; anything a
// game would observe asynchronously is still routed through the delivery
// queue so tests exercise the real pump ordering.

// SetRunning toggles whether the simulated Steam client is reachable. When
// false every accessor returns ok=false, matching a dead or absent client.
func (s *Sim) SetRunning(running bool) { s.running = running }

// SetAppID sets the running app and, implicitly, the game ID stamped on
// stats and achievement completions.
func (s *Sim) SetAppID(app steam.AppID) { s.appID = app }

// SetAppOwner sets the account that owns the app license.
func (s *Sim) SetAppOwner(id steam.ID) { s.owner = id }

// SetLoggedOnUser sets the local account. A zero id simulates a logged-off
// client, which makes User() report ok=false.
func (s *Sim) SetLoggedOnUser(id steam.ID, name string, level int) {
	s.userID = id
	if !id.Valid() {
		return
	}
	p := s.profileFor(id)
	p.name = name
	p.level = level
	p.state = steam.PersonaStateOnline
	p.cached = true
	if s.owner == 0 {
		s.owner = id
	}
}

// AddUser registers a remote account whose persona data is already cached,
// with small and medium avatars allocated at the standard sizes.
func (s *Sim) AddUser(id steam.ID, name string, state steam.PersonaState, rel steam.FriendRelationship) {
	p := s.profileFor(id)
	p.name = name
	p.state = state
	p.relationship = rel
	p.cached = true
	p.smallAvatar = s.newImage(32, 32)
	p.mediumAvatar = s.newImage(64, 64)
}

// AddUnknownUser registers a remote account with nothing cached locally.
// Persona and avatar data arrive only after RequestUserInformation.
func (s *Sim) AddUnknownUser(id steam.ID, name string, state steam.PersonaState) {
	p := s.profileFor(id)
	p.name = name
	p.state = state
}

// SetNickname sets the local player's nickname for a remote account.
func (s *Sim) SetNickname(id steam.ID, nickname string) {
	s.profileFor(id).nickname = nickname
}

// DefineAchievement registers an achievement the app ships with.
func (s *Sim) DefineAchievement(name, displayName, description string, hidden bool) {
	if _, exists := s.achievements[name]; !exists {
		s.achOrder = append(s.achOrder, name)
	}
	s.achievements[name] = &achievementDef{
		displayName: displayName,
		description: description,
		hidden:      hidden,
	}
}

// SetStat seeds a server-side integer stat for a user.
func (s *Sim) SetStat(id steam.ID, name string, value int32) {
	s.statsFor(id)[name] = statValue{intVal: value}
}

// SetFloatStat seeds a server-side float stat for a user.
func (s *Sim) SetFloatStat(id steam.ID, name string, value float32) {
	s.statsFor(id)[name] = statValue{floatVal: value, isFloat: true}
}

// SetUnlocked marks an achievement as already earned by a user.
func (s *Sim) SetUnlocked(id steam.ID, name string, unlockTime uint32) {
	s.achStatesFor(id)[name] = achievementState{achieved: true, unlockTime: unlockTime}
}

// CreateLeaderboard registers a board. Entries must be given best-first;
// global ranks are assigned from the slice order.
func (s *Sim) CreateLeaderboard(name string, sort steam.SortMethod, display steam.DisplayType, entries ...steam.LeaderboardEntry) {
	b := &board{
		handle:  s.nextBoard,
		name:    name,
		sort:    sort,
		display: display,
	}
	s.nextBoard++
	for i, e := range entries {
		e.GlobalRank = int32(i + 1)
		b.entries = append(b.entries, e)
	}
	s.boards[name] = b
	s.boardsByID[b.handle] = b
}

// SetPlayerCount seeds the concurrent-player figure reported by
// GetNumberOfCurrentPlayers.
func (s *Sim) SetPlayerCount(n int32) {
	s.playerCount = n
	s.playerCountKnown = true
}

// SetDlcInstalled marks downloadable content as installed.
func (s *Sim) SetDlcInstalled(app steam.AppID, installed bool) { s.dlc[app] = installed }

// SetOverlayEnabled toggles whether the overlay can be summoned at all.
func (s *Sim) SetOverlayEnabled(enabled bool) { s.overlayEnabled = enabled }

// CloseOverlay simulates the player dismissing the overlay. Delivered on
// the next pump.
func (s *Sim) CloseOverlay() {
	s.pending = append(s.pending, delivery{
		payload:   steam.GameOverlayActivated{Active: false},
		broadcast: true,
		apply:     func() { s.overlayVisible = false },
	})
}

// FailNextCallResult makes the next issued async operation complete with
// the IO-failure flag set instead of a real payload.
func (s *Sim) FailNextCallResult() { s.failNext = true }

// AuthorizeMicroTxn queues the authorization response the Steam overlay
// would send after the player confirms or cancels a purchase.
func (s *Sim) AuthorizeMicroTxn(orderID uint64, authorized bool) {
	s.queueCallback(steam.MicroTxnAuthorizationResponse{
		App:        s.appID,
		OrderID:    orderID,
		Authorized: authorized,
	})
}

// PushEvent queues an arbitrary callback payload for the next pump. Tests
// use it to inject events the simulated world would not produce itself,
// such as callbacks stamped with a foreign game ID.
func (s *Sim) PushEvent(event any) { s.queueCallback(event) }

// ChangePersona queues a persona-state change notification for a user.
func (s *Sim) ChangePersona(id steam.ID, flags steam.PersonaChange) {
	s.queueCallback(steam.PersonaStateChange{User: id, Flags: flags})
}

// NotificationPosition reports the last position set through Utils.
func (s *Sim) NotificationPosition() steam.NotificationPosition { return s.notificationPos }

// OverlayVisible reports whether the simulated overlay is currently up.
func (s *Sim) OverlayVisible() bool { return s.overlayVisible }

// PendingDeliveries reports how many completions await the next pump.
func (s *Sim) PendingDeliveries() int { return len(s.pending) }

// Warn invokes the installed warning hook, if any.
func (s *Sim) Warn(severity int, message string) {
	if s.warningHook != nil {
		s.warningHook(severity, message)
	}
}
