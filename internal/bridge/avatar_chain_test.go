// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package bridge_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/pkg/steam"
	"github.com/steamlua/steamlua/pkg/steam/steamsim"
)

func TestAvatarChain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Avatar Fetch Chain Suite")
}

var _ = Describe("large avatar fetch chain", func() {
	const me = steam.ID(76561197960287930)
	const buddy = steam.ID(76561197960287931)

	var (
		L   *lua.LState
		sim *steamsim.Sim
		ctx *bridge.Context

		updates []*lua.LTable
	)

	largeChanged := func() []*lua.LTable {
		var out []*lua.LTable
		for _, ev := range updates {
			if lua.LVAsBool(ev.RawGetString("largeAvatarChanged")) {
				out = append(out, ev)
			}
		}
		return out
	}

	BeforeEach(func() {
		L = lua.NewState()
		sim = steamsim.New()
		sim.SetAppID(480)
		sim.SetLoggedOnUser(me, "gabe", 42)

		var err error
		ctx, err = bridge.NewContext(bridge.Config{
			Client:   sim,
			Lua:      L,
			Registry: bridge.NewRegistry(),
		})
		Expect(err).NotTo(HaveOccurred())

		updates = nil
		ctx.Dispatcher().AddListener(bridge.EventUserInfoUpdate, L.NewFunction(func(L *lua.LState) int {
			updates = append(updates, L.CheckTable(1))
			return 0
		}))
	})

	AfterEach(func() {
		ctx.Close()
		L.Close()
	})

	When("the user's lower avatar sizes are already cached", func() {
		BeforeEach(func() {
			sim.AddUser(buddy, "buddy", steam.PersonaStateOnline, steam.RelationshipFriend)
		})

		It("never returns a valid large handle synchronously", func() {
			info, ok := ctx.UserImageInfo(buddy, bridge.UserImageLargeAvatar)
			Expect(ok).To(BeTrue())
			Expect(info.Valid()).To(BeFalse())
			Expect(info.Handle).To(Equal(steam.ImageHandlePending))
		})

		It("delivers exactly one largeAvatarChanged notification", func() {
			_, _ = ctx.UserImageInfo(buddy, bridge.UserImageLargeAvatar)
			for i := 0; i < 4; i++ {
				ctx.Poll()
			}
			Expect(largeChanged()).To(HaveLen(1))
			ev := largeChanged()[0]
			Expect(lua.LVAsString(ev.RawGetString("userSteamId"))).To(Equal(buddy.String()))
		})

		It("serves the large avatar from the cache afterwards", func() {
			_, _ = ctx.UserImageInfo(buddy, bridge.UserImageLargeAvatar)
			ctx.Poll()
			ctx.Poll()

			info, ok := ctx.UserImageInfo(buddy, bridge.UserImageLargeAvatar)
			Expect(ok).To(BeTrue())
			Expect(info.Valid()).To(BeTrue())
			Expect(info.Width).To(Equal(uint32(184)))
			Expect(info.Height).To(Equal(uint32(184)))
		})
	})

	When("nothing about the user is cached yet", func() {
		BeforeEach(func() {
			sim.AddUnknownUser(buddy, "buddy", steam.PersonaStateOnline)
		})

		It("pulls user info first, then completes the chain", func() {
			info, ok := ctx.UserImageInfo(buddy, bridge.UserImageLargeAvatar)
			Expect(ok).To(BeTrue())
			Expect(info.Handle).To(Equal(steam.ImageHandlePending))

			// Persona data lands first; the large flag must not fire yet.
			ctx.Poll()
			Expect(updates).NotTo(BeEmpty())
			Expect(largeChanged()).To(BeEmpty())

			// The follow-up download lands on a later cycle.
			for i := 0; i < 4; i++ {
				ctx.Poll()
			}
			Expect(largeChanged()).To(HaveLen(1))
		})

		It("announces small avatar arrival through the persona event", func() {
			info, ok := ctx.UserImageInfo(buddy, bridge.UserImageSmallAvatar)
			Expect(ok).To(BeTrue())
			Expect(info.Valid()).To(BeFalse())

			ctx.Poll()
			Expect(updates).To(HaveLen(1))
			Expect(lua.LVAsBool(updates[0].RawGetString("smallAvatarChanged"))).To(BeTrue())
			Expect(lua.LVAsBool(updates[0].RawGetString("largeAvatarChanged"))).To(BeFalse())

			info, ok = ctx.UserImageInfo(buddy, bridge.UserImageSmallAvatar)
			Expect(ok).To(BeTrue())
			Expect(info.Valid()).To(BeTrue())
			Expect(info.Width).To(Equal(uint32(32)))
		})
	})
})
