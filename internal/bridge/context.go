// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge

import (
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/pkg/steam"
)

// pendingTask is one queue slot: a serialized-on-delivery task plus an
// optional target. A nil listener broadcasts through the dispatcher
// registry; a non-nil one answers exactly the caller that issued the
// originating request.
type pendingTask struct {
	task     Task
	listener lua.LValue
}

// Config assembles a Context.
type Config struct {
	Client steam.Client
	Lua    *lua.LState
	Log    *slog.Logger
	// Metrics may be nil to disable instrumentation.
	Metrics *Metrics
	// Registry defaults to DefaultRegistry.
	Registry *Registry
	// Runnable gates delivery of queued events; nil means always runnable.
	// Hosts that suspend (backgrounded app) supply their own.
	Runnable func() bool
}

// Context is the per-runtime coordinator. It owns the dispatcher, the FIFO
// queue of pending dispatch tasks, the leaderboard handle cache and the
// large-avatar fetch chain.
//
// All methods must be called from the designated goroutine; this is checked
// at registration, not per call.
type Context struct {
	client     steam.Client
	dispatcher *Dispatcher
	log        *slog.Logger
	metrics    *Metrics
	registry   *Registry
	runnable   func() bool

	queue []pendingTask

	// boards maps leaderboard names to resolved handles. Populated lazily,
	// never evicted; Steam handles are stable for the process lifetime.
	boards map[string]steam.LeaderboardHandle

	// largeAvatarWaiting holds users whose large avatar has been requested
	// but is not yet fetchable. Each entry produces exactly one
	// large-avatar-changed notification, then leaves the set.
	largeAvatarWaiting map[steam.ID]struct{}

	// renderedLastTick keeps the overlay redraw signal up for one tick
	// after the overlay stops asking, so the host repaints the frame the
	// overlay vacated.
	renderedLastTick bool

	closed         bool
	cancelCallback func()
}

// NewContext wires a context to a Steam client and registers it with the
// process-wide registry.
func NewContext(cfg Config) (*Context, error) {
	if cfg.Client == nil || cfg.Lua == nil {
		return nil, oops.In("bridge").New("client and lua state are required")
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry
	}
	if cfg.Runnable == nil {
		cfg.Runnable = func() bool { return true }
	}

	c := &Context{
		client:             cfg.Client,
		dispatcher:         NewDispatcher(cfg.Lua, cfg.Log, cfg.Metrics),
		log:                cfg.Log,
		metrics:            cfg.Metrics,
		registry:           cfg.Registry,
		runnable:           cfg.Runnable,
		boards:             make(map[string]steam.LeaderboardHandle),
		largeAvatarWaiting: make(map[steam.ID]struct{}),
	}
	if err := cfg.Registry.Register(c); err != nil {
		return nil, err
	}
	c.cancelCallback = cfg.Client.RegisterCallback(c.onCallback)
	return c, nil
}

// Dispatcher exposes the listener registry for addEventListener and
// removeEventListener.
func (c *Context) Dispatcher() *Dispatcher { return c.dispatcher }

// Client exposes the Steam client for synchronous accessor calls.
func (c *Context) Client() steam.Client { return c.client }

// Log returns the context's logger.
func (c *Context) Log() *slog.Logger { return c.log }

// Closed reports whether Close has run.
func (c *Context) Closed() bool { return c.closed }

// Poll pumps the Steam client, drains the pending queue if the host is
// runnable, and reports whether the host should redraw for the overlay.
func (c *Context) Poll() (redraw bool) {
	if c.closed {
		return false
	}
	if c.metrics != nil {
		c.metrics.PollTicks.Inc()
	}

	c.client.RunCallbacks()

	if c.runnable() {
		c.drain()
	}

	needsPresent := false
	if utils, ok := c.client.Utils(); ok {
		needsPresent = utils.OverlayNeedsPresent()
	}
	redraw = needsPresent || c.renderedLastTick
	c.renderedLastTick = needsPresent
	return redraw
}

// drain delivers every task queued before this drain began, in FIFO order.
// Tasks enqueued while draining wait for the next poll.
func (c *Context) drain() {
	n := len(c.queue)
	batch := c.queue[:n]
	c.queue = append([]pendingTask(nil), c.queue[n:]...)
	for _, p := range batch {
		if p.listener != nil {
			c.dispatcher.DispatchTo(p.listener, p.task)
		} else {
			c.dispatcher.Dispatch(p.task)
		}
	}
}

// enqueue appends a broadcast task.
func (c *Context) enqueue(task Task) { c.enqueueFor(nil, task) }

// enqueueFor appends a task targeted at one listener.
func (c *Context) enqueueFor(listener lua.LValue, task Task) {
	if c.closed {
		if c.metrics != nil {
			c.metrics.TasksDropped.Inc()
		}
		return
	}
	c.queue = append(c.queue, pendingTask{task: task, listener: listener})
	if c.metrics != nil {
		c.metrics.TasksQueued.WithLabelValues(task.EventName()).Inc()
	}
}

// Close tears the context down. Queued tasks and in-flight call results
// are dropped silently; if this was the last live context the Steam client
// is shut down with it.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.cancelCallback()
	if c.metrics != nil && len(c.queue) > 0 {
		c.metrics.TasksDropped.Add(float64(len(c.queue)))
	}
	c.queue = nil
	c.dispatcher.RemoveAll()
	if c.registry.Release(c) {
		c.client.Shutdown()
	}
}

// registerCall attaches a one-shot continuation to an in-flight request.
// Results arriving after Close are dropped without delivery.
func (c *Context) registerCall(call steam.APICall, op string, fn steam.CallResultFunc) bool {
	if call == steam.APICallInvalid {
		return false
	}
	requestID := ulid.Make().String()
	c.log.Debug("async request issued", "op", op, "request_id", requestID)
	ok := c.client.RegisterCallResult(call, func(payload any, ioFailure bool) {
		if c.metrics != nil {
			c.metrics.CallsInFlight.Dec()
		}
		if c.closed {
			c.log.Debug("dropping result for closed context", "op", op, "request_id", requestID)
			return
		}
		fn(payload, ioFailure)
	})
	if ok && c.metrics != nil {
		c.metrics.CallsInFlight.Inc()
	}
	return ok
}

// gameID returns the running app's game identity, or 0 when the SDK is
// unreachable.
func (c *Context) gameID() steam.GameID {
	utils, ok := c.client.Utils()
	if !ok {
		return 0
	}
	return steam.GameIDFor(utils.AppID())
}

// localUser returns the logged-on account, zero when logged off.
func (c *Context) localUser() steam.ID {
	user, ok := c.client.User()
	if !ok {
		return 0
	}
	return user.SteamID()
}

// onCallback converts global Steam callbacks into queued dispatch tasks.
// Payloads are copied into tasks here; nothing downstream touches
// SDK-owned memory.
func (c *Context) onCallback(event any) {
	if c.closed {
		return
	}
	switch e := event.(type) {
	case steam.GameOverlayActivated:
		c.enqueue(OverlayStatusTask{Shown: e.Active})

	case steam.MicroTxnAuthorizationResponse:
		if utils, ok := c.client.Utils(); ok && e.App != utils.AppID() {
			return
		}
		c.enqueue(MicroTxnAuthTask{App: e.App, OrderID: e.OrderID, Authorized: e.Authorized})

	case steam.PersonaStateChange:
		c.onPersonaChange(e)

	case steam.AvatarImageLoaded:
		c.onAvatarLoaded(e)

	case steam.UserStatsReceived:
		if e.Game != c.gameID() {
			return
		}
		c.enqueue(UserProgressUpdateTask{
			taskBase: taskBase{IsError: e.Result != steam.ResultOK},
			User:     e.User,
		})

	case steam.UserStatsStored:
		if e.Game != c.gameID() {
			return
		}
		c.enqueue(UserProgressSaveTask{
			taskBase: taskBase{IsError: e.Result != steam.ResultOK},
			User:     c.localUser(),
		})

	case steam.UserStatsUnloaded:
		c.enqueue(UserProgressUnloadTask{User: e.User})

	case steam.UserAchievementStored:
		if e.Game != c.gameID() {
			return
		}
		c.enqueue(AchievementInfoTask{
			Name:        e.Name,
			Group:       e.GroupAchievement,
			CurProgress: e.CurProgress,
			MaxProgress: e.MaxProgress,
		})

	case steam.UserAchievementIconFetched:
		if e.Game != c.gameID() {
			return
		}
		task := AchievementImageTask{
			Name:     e.Name,
			Unlocked: e.Achieved,
			Image:    ImageInfo{Handle: e.Icon},
		}
		if utils, ok := c.client.Utils(); ok {
			task.Image = LookupImageInfo(utils, e.Icon)
		}
		c.enqueue(task)
	}
}

// onPersonaChange expands the SDK's change bitmask into the script-facing
// booleans and advances the large-avatar chain when the avatar bit is set.
func (c *Context) onPersonaChange(e steam.PersonaStateChange) {
	task := UserInfoUpdateTask{
		User:            e.User,
		NameChanged:     e.Flags.Has(steam.PersonaChangeName),
		NicknameChanged: e.Flags.Has(steam.PersonaChangeNickname),
		StatusChanged: e.Flags.Has(steam.PersonaChangeStatus) ||
			e.Flags.Has(steam.PersonaChangeComeOnline) ||
			e.Flags.Has(steam.PersonaChangeGoneOffline),
		RelationshipChanged: e.Flags.Has(steam.PersonaChangeRelationship),
	}

	if e.Flags.Has(steam.PersonaChangeAvatar) {
		task.SmallAvatarChanged = true
		task.MediumAvatarChanged = true
		if _, waiting := c.largeAvatarWaiting[e.User]; waiting {
			// The SDK never notifies for large avatars; once the small one
			// is in, probe whether the large became fetchable and fold the
			// synthesized flag into this event.
			if friends, ok := c.client.Friends(); ok {
				switch h := friends.LargeFriendAvatar(e.User); h {
				case 0, steam.ImageHandlePending:
					// still in flight; AvatarImageLoaded finishes the chain
				default:
					task.LargeAvatarChanged = true
					delete(c.largeAvatarWaiting, e.User)
				}
			}
		}
	}

	if task.changed() {
		c.enqueue(task)
	}
}

// onAvatarLoaded completes the large-avatar chain for a waiting user.
// Loads of the small or medium sizes are announced via persona changes, so
// anything below the large dimensions is ignored here.
func (c *Context) onAvatarLoaded(e steam.AvatarImageLoaded) {
	if _, waiting := c.largeAvatarWaiting[e.User]; !waiting {
		return
	}
	largeW, largeH := UserImageLargeAvatar.PixelSize()
	if uint32(e.Width) < largeW || uint32(e.Height) < largeH {
		return
	}
	delete(c.largeAvatarWaiting, e.User)
	c.enqueue(UserInfoUpdateTask{User: e.User, LargeAvatarChanged: true})
}

// UserImageInfo resolves an avatar handle for a user, starting fetches as
// needed. A large avatar whose lower sizes are not cached yet is never
// returned synchronously; the caller gets pending info and later exactly
// one userInfoUpdate event with largeAvatarChanged set.
func (c *Context) UserImageInfo(user steam.ID, typ UserImageType) (ImageInfo, bool) {
	friends, ok := c.client.Friends()
	if !ok {
		return ImageInfo{}, false
	}
	utils, ok := c.client.Utils()
	if !ok {
		return ImageInfo{}, false
	}

	handle := typ.Fetch(friends, user)
	if typ == UserImageLargeAvatar {
		switch handle {
		case 0:
			// Lower sizes not cached; pull the user's info first, then the
			// next persona change or image load advances the chain.
			c.largeAvatarWaiting[user] = struct{}{}
			friends.RequestUserInformation(user, false)
			return ImageInfo{Handle: steam.ImageHandlePending}, true
		case steam.ImageHandlePending:
			c.largeAvatarWaiting[user] = struct{}{}
			return ImageInfo{Handle: steam.ImageHandlePending}, true
		}
	} else if handle == 0 {
		// Not cached; request and let userInfoUpdate announce arrival.
		friends.RequestUserInformation(user, false)
		return ImageInfo{}, true
	}
	return LookupImageInfo(utils, handle), true
}

// RequestActivePlayerCount asks for the concurrent-player figure and
// answers the listener with an activePlayerCount event.
func (c *Context) RequestActivePlayerCount(listener lua.LValue) bool {
	us, ok := c.client.UserStats()
	if !ok {
		return false
	}
	return c.registerCall(us.GetNumberOfCurrentPlayers(), "activePlayerCount",
		func(payload any, ioFailure bool) {
			task := ActivePlayerCountTask{taskBase: taskBase{IsError: true}}
			if !ioFailure {
				res := payload.(steam.NumberOfCurrentPlayers)
				task.IsError = !res.Success
				task.Count = res.Players
			}
			c.enqueueFor(listener, task)
		})
}

// RequestUserProgress asks the backend for a user's stats and achievement
// data. Results arrive through the global userProgressUpdate event, not a
// targeted listener; a zero user means the logged-on one.
func (c *Context) RequestUserProgress(user steam.ID) bool {
	us, ok := c.client.UserStats()
	if !ok {
		return false
	}
	if !user.Valid() || user == c.localUser() {
		return us.RequestCurrentStats()
	}
	return us.RequestUserStats(user) != steam.APICallInvalid
}
