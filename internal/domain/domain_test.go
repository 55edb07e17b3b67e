package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticipant(t *testing.T) {
	p, err := NewParticipant("alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "alice@example.com", p.ContactHint)

	_, err = NewParticipant("", "")
	assert.ErrorIs(t, err, ErrDisplayNameEmpty)

	_, err = NewParticipant(strings.Repeat("x", MaxDisplayNameLen+1), "")
	assert.ErrorIs(t, err, ErrDisplayNameTooLong)
}

func TestNormalizeRoomCode(t *testing.T) {
	assert.Equal(t, RoomCode("ABCD1234"), NormalizeRoomCode("abcd1234"))
	assert.Equal(t, RoomCode("ABCD1234"), NormalizeRoomCode("  AbCd1234 "))
}
