// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

// Package steamsim provides an in-memory steam.Client for tests and demos.
//
// The simulator reproduces the delivery semantics the binding depends on:
// asynchronous results queue up and are only delivered during RunCallbacks,
// completions produced while a pump is in progress are held for the next
// pump, call-result handlers fire exactly once, and downloaded leaderboard
// entry blocks are invalidated as soon as the pump that delivered them ends.
package steamsim

import (
	"github.com/samber/oops"

	"github.com/steamlua/steamlua/pkg/steam"
)

type profile struct {
	name         string
	nickname     string
	level        int
	state        steam.PersonaState
	relationship steam.FriendRelationship

	// cached reports whether small/medium avatar data is locally available.
	cached       bool
	smallAvatar  steam.ImageHandle
	mediumAvatar steam.ImageHandle
	largeAvatar  steam.ImageHandle
	largeLoaded  bool
	largeStarted bool
}

type achievementDef struct {
	displayName string
	description string
	hidden      bool
	icon        steam.ImageHandle
	iconCached  bool
}

type achievementState struct {
	achieved   bool
	unlockTime uint32
}

type board struct {
	handle  steam.LeaderboardHandle
	name    string
	sort    steam.SortMethod
	display steam.DisplayType
	entries []steam.LeaderboardEntry // sorted best-first, GlobalRank = index+1
}

type statValue struct {
	intVal   int32
	floatVal float32
	isFloat  bool
}

// delivery is one queued callback or call-result completion.
type delivery struct {
	payload   any
	call      steam.APICall // 0 = not a call-result
	broadcast bool          // also deliver to global callback subscribers
	ioFailure bool
	apply     func() // state mutation that becomes visible at delivery time
}

// Sim is an in-memory Steam client. The zero value is not usable; call New.
// Like the real SDK it is single-threaded: all methods, including the test
// helpers, must be called from the goroutine that pumps RunCallbacks.
type Sim struct {
	running bool

	appID      steam.AppID
	owner      steam.ID
	userID     steam.ID
	orderedIDs []steam.ID
	users      map[steam.ID]*profile

	overlayEnabled   bool
	overlayVisible   bool
	notificationPos  steam.NotificationPosition
	warningHook      func(severity int, message string)
	dlc              map[steam.AppID]bool
	playerCount      int32
	playerCountKnown bool

	images    map[steam.ImageHandle][2]uint32
	nextImage steam.ImageHandle

	stats        map[steam.ID]map[string]statValue
	achievements map[string]*achievementDef
	achOrder     []string
	achStates    map[steam.ID]map[string]achievementState
	pendingStore []string // achievements touched since the last StoreStats

	boards        map[string]*board
	boardsByID    map[steam.LeaderboardHandle]*board
	nextBoard     steam.LeaderboardHandle
	entryBlocks   map[steam.EntriesHandle][]steam.LeaderboardEntry
	nextEntries   steam.EntriesHandle
	staleBlocks   []steam.EntriesHandle // invalidated when the current pump ends

	callbacks      map[int]steam.CallbackFunc
	nextCallbackID int
	callResults    map[steam.APICall]steam.CallResultFunc
	nextCall       steam.APICall
	pending        []delivery
	failNext       bool
}

// New creates a running simulator with no users, stats or leaderboards.
func New() *Sim {
	return &Sim{
		running:        true,
		overlayEnabled: true,
		users:          make(map[steam.ID]*profile),
		dlc:            make(map[steam.AppID]bool),
		images:         make(map[steam.ImageHandle][2]uint32),
		nextImage:      100,
		stats:          make(map[steam.ID]map[string]statValue),
		achievements:   make(map[string]*achievementDef),
		achStates:      make(map[steam.ID]map[string]achievementState),
		boards:         make(map[string]*board),
		boardsByID:     make(map[steam.LeaderboardHandle]*board),
		nextBoard:      1000,
		entryBlocks:    make(map[steam.EntriesHandle][]steam.LeaderboardEntry),
		nextEntries:    1,
		callbacks:      make(map[int]steam.CallbackFunc),
		callResults:    make(map[steam.APICall]steam.CallResultFunc),
		nextCall:       1,
	}
}

var _ steam.Client = (*Sim)(nil)

// Init implements steam.Client.
func (s *Sim) Init() error {
	if !s.running {
		return oops.In("steamsim").New("steam client is not running")
	}
	return nil
}

// Shutdown implements steam.Client.
func (s *Sim) Shutdown() {
	s.pending = nil
	s.callResults = make(map[steam.APICall]steam.CallResultFunc)
}

// RunCallbacks drains every delivery queued before this pump began.
func (s *Sim) RunCallbacks() {
	n := len(s.pending)
	batch := s.pending[:n]
	s.pending = append([]delivery(nil), s.pending[n:]...)

	for _, d := range batch {
		if d.apply != nil {
			d.apply()
		}
		if d.call != 0 {
			if fn, ok := s.callResults[d.call]; ok {
				delete(s.callResults, d.call)
				fn(d.payload, d.ioFailure)
			}
		}
		if d.broadcast && !d.ioFailure {
			for _, fn := range s.callbacks {
				fn(d.payload)
			}
		}
	}

	// Entry blocks only live for the pump that delivered them.
	for _, h := range s.staleBlocks {
		delete(s.entryBlocks, h)
	}
	s.staleBlocks = nil
}

// RegisterCallback implements steam.Client.
func (s *Sim) RegisterCallback(fn steam.CallbackFunc) (cancel func()) {
	s.nextCallbackID++
	id := s.nextCallbackID
	s.callbacks[id] = fn
	return func() { delete(s.callbacks, id) }
}

// RegisterCallResult implements steam.Client.
func (s *Sim) RegisterCallResult(call steam.APICall, fn steam.CallResultFunc) bool {
	if call == steam.APICallInvalid {
		return false
	}
	if _, claimed := s.callResults[call]; claimed {
		return false
	}
	s.callResults[call] = fn
	return true
}

// UserStats implements steam.Client.
func (s *Sim) UserStats() (steam.UserStats, bool) {
	if !s.running {
		return nil, false
	}
	return &userStats{s}, true
}

// Friends implements steam.Client.
func (s *Sim) Friends() (steam.Friends, bool) {
	if !s.running {
		return nil, false
	}
	return &friends{s}, true
}

// Utils implements steam.Client.
func (s *Sim) Utils() (steam.Utils, bool) {
	if !s.running {
		return nil, false
	}
	return &utils{s}, true
}

// User implements steam.Client.
func (s *Sim) User() (steam.User, bool) {
	if !s.running || !s.userID.Valid() {
		return nil, false
	}
	return &user{s}, true
}

// Apps implements steam.Client.
func (s *Sim) Apps() (steam.Apps, bool) {
	if !s.running {
		return nil, false
	}
	return &apps{s}, true
}

// queueCallResult queues a targeted completion and returns its handle.
func (s *Sim) queueCallResult(payload any, broadcast bool) steam.APICall {
	call := s.nextCall
	s.nextCall++
	io := s.failNext
	s.failNext = false
	s.pending = append(s.pending, delivery{
		payload:   payload,
		call:      call,
		broadcast: broadcast,
		ioFailure: io,
	})
	return call
}

// queueCallback queues a broadcast-only delivery.
func (s *Sim) queueCallback(payload any) {
	s.pending = append(s.pending, delivery{payload: payload, broadcast: true})
}

func (s *Sim) gameID() steam.GameID { return steam.GameIDFor(s.appID) }

func (s *Sim) newImage(w, h uint32) steam.ImageHandle {
	handle := s.nextImage
	s.nextImage++
	s.images[handle] = [2]uint32{w, h}
	return handle
}

func (s *Sim) profileFor(id steam.ID) *profile {
	p, ok := s.users[id]
	if !ok {
		p = &profile{state: steam.PersonaStateOffline}
		s.users[id] = p
		s.orderedIDs = append(s.orderedIDs, id)
	}
	return p
}

func (s *Sim) statsFor(id steam.ID) map[string]statValue {
	m, ok := s.stats[id]
	if !ok {
		m = make(map[string]statValue)
		s.stats[id] = m
	}
	return m
}

func (s *Sim) achStatesFor(id steam.ID) map[string]achievementState {
	m, ok := s.achStates[id]
	if !ok {
		m = make(map[string]achievementState)
		s.achStates[id] = m
	}
	return m
}
