// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package steam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDRoundTrip(t *testing.T) {
	// Above 2^53, where float64 loses integer precision.
	const raw = "76561197960287930"
	id, err := ParseID(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.String())
	assert.True(t, id.Valid())
}

func TestParseIDRejectsNonNumeric(t *testing.T) {
	for _, bad := range []string{"", "abc", "-1", "12.5", "0x10"} {
		_, err := ParseID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "ascending", SortMethodAscending.String())
	assert.Equal(t, "milliseconds", DisplayTypeTimeMilliSeconds.String())
	assert.Equal(t, "lookingToTrade", PersonaStateLookingToTrade.String())
	assert.Equal(t, "requestRecipient", RelationshipRequestRecipient.String())
	assert.Equal(t, "unknown", PersonaState(99).String())
}

func TestPersonaChangeHas(t *testing.T) {
	flags := PersonaChangeName | PersonaChangeAvatar
	assert.True(t, flags.Has(PersonaChangeAvatar))
	assert.True(t, flags.Has(PersonaChangeName|PersonaChangeAvatar))
	assert.False(t, flags.Has(PersonaChangeNickname))
}
