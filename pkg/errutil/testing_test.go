// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/steamlua/steamlua/pkg/errutil"
)

func TestAssertErrorDomain_MatchingDomain(t *testing.T) {
	err := oops.In("bridge").Errorf("test error")
	// Should not fail
	errutil.AssertErrorDomain(t, err, "bridge")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("user_id", "123").Errorf("test error")
	// Should not fail
	errutil.AssertErrorContext(t, err, "user_id", "123")
}
