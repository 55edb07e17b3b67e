package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetnexa/meetnexa/internal/domain"
)

func TestRoomsGetOrCreate(t *testing.T) {
	r := NewRooms()
	rm := r.getOrCreate("A")
	same := r.getOrCreate("A")
	assert.Same(t, rm, same)
	assert.Equal(t, 1, r.Count())

	_, ok := r.get("B")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Count())
}

func TestRoomsDeleteEmptyOnly(t *testing.T) {
	r := NewRooms()
	rm := r.getOrCreate("A")
	rm.mu.Lock()
	rm.members = append(rm.members, "c1")
	rm.hostID = "c1"
	rm.mu.Unlock()

	err := r.Delete("A")
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, 1, r.Count())

	rm.mu.Lock()
	rm.removeMember("c1")
	rm.mu.Unlock()
	require.NoError(t, r.Delete("A"))
	assert.Equal(t, 0, r.Count())

	// Deleting an absent room is fine.
	require.NoError(t, r.Delete("A"))
}

func TestRoomsStatus(t *testing.T) {
	r := NewRooms()
	assert.Equal(t, false, r.Status("NONE").Exists)

	rm := r.getOrCreate("A")
	rm.mu.Lock()
	rm.members = append(rm.members, "c1", "c2")
	rm.hostID = "c1"
	rm.active = true
	rm.mu.Unlock()

	st := r.Status("A")
	assert.True(t, st.Exists)
	assert.True(t, st.Active)
	assert.Equal(t, 2, st.MemberCount)
}

func TestRoomResetClearsAllState(t *testing.T) {
	rm := newRoom("A")
	rm.members = append(rm.members, "c1")
	rm.pending["c1"] = struct{}{}
	rm.hostID = "c1"
	rm.active = true

	rm.reset()
	assert.Empty(t, rm.members)
	assert.Empty(t, rm.pending)
	assert.Empty(t, rm.hostID)
	assert.False(t, rm.active)
}
