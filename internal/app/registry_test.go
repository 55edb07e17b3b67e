package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetnexa/meetnexa/internal/domain"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("c1", &fakeConn{}))
	assert.ErrorIs(t, r.Register("c1", &fakeConn{}), domain.ErrDuplicateConnection)

	info, ok := r.Lookup("c1")
	require.True(t, ok)
	assert.Empty(t, info.Participant.Name)
	assert.Empty(t, info.Room)

	r.SetIdentity("c1", domain.Participant{Name: "alice", ContactHint: "alice@example.com"})
	r.SetRoom("c1", "ROOM")
	info, ok = r.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, "alice", info.Participant.Name)
	assert.Equal(t, "alice@example.com", info.Participant.ContactHint)
	assert.Equal(t, domain.RoomCode("ROOM"), info.Room)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("c1", &fakeConn{}))
	r.SetRoom("c1", "ROOM")

	room, inRoom := r.Unregister("c1")
	assert.True(t, inRoom)
	assert.Equal(t, domain.RoomCode("ROOM"), room)

	// Idempotent: unregistering an unknown id is a no-op.
	room, inRoom = r.Unregister("c1")
	assert.False(t, inRoom)
	assert.Empty(t, room)
	assert.Equal(t, 0, r.Count())
}

func TestRegistrySettersIgnoreUnknownIDs(t *testing.T) {
	r := NewRegistry()
	r.SetIdentity("ghost", domain.Participant{Name: "x"})
	r.SetMediaState("ghost", domain.MediaState{Muted: true})
	assert.False(t, r.SetRoom("ghost", "ROOM"))
	r.ClearRoom("ghost")
	assert.Equal(t, 0, r.Count())
}
