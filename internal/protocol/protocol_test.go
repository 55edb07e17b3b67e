package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetnexa/meetnexa/internal/domain"
)

func TestDecodeJoin(t *testing.T) {
	ev, err := DecodeInbound([]byte(`{"type":"join","roomCode":"abcd","displayName":"alice","contactHint":"a@b.c","isHostIntent":true}`))
	require.NoError(t, err)
	join, ok := ev.(Join)
	require.True(t, ok)
	assert.Equal(t, "abcd", join.RoomCode)
	assert.Equal(t, "alice", join.DisplayName)
	assert.Equal(t, "a@b.c", join.ContactHint)
	assert.True(t, join.IsHost)
}

func TestDecodeOfferKeepsSDPOpaque(t *testing.T) {
	ev, err := DecodeInbound([]byte(`{"type":"offer","targetConnectionId":"c2","sdp":{"type":"offer","sdp":"v=0 whatever"}}`))
	require.NoError(t, err)
	offer, ok := ev.(Offer)
	require.True(t, ok)
	assert.Equal(t, "c2", offer.Target)
	assert.Equal(t, "v=0 whatever", offer.SDP.SDP)
}

func TestDecodeICECandidate(t *testing.T) {
	ev, err := DecodeInbound([]byte(`{"type":"ice-candidate","targetConnectionId":"c2","candidate":{"candidate":"candidate:0 1 UDP 1 1.2.3.4 1234 typ host","sdpMid":"0"}}`))
	require.NoError(t, err)
	ice, ok := ev.(ICECandidate)
	require.True(t, ok)
	assert.Equal(t, "c2", ice.Target)
	require.NotNil(t, ice.Candidate.SDPMid)
	assert.Equal(t, "0", *ice.Candidate.SDPMid)
}

func TestDecodeMediaState(t *testing.T) {
	ev, err := DecodeInbound([]byte(`{"type":"media-state","muted":true,"cameraOff":false,"screenSharing":true}`))
	require.NoError(t, err)
	ms, ok := ev.(MediaState)
	require.True(t, ok)
	assert.True(t, ms.Muted)
	assert.False(t, ms.CameraOff)
	assert.True(t, ms.ScreenSharing)
}

func TestDecodeBareEvents(t *testing.T) {
	ev, err := DecodeInbound([]byte(`{"type":"start-meeting"}`))
	require.NoError(t, err)
	assert.IsType(t, StartMeeting{}, ev)

	ev, err = DecodeInbound([]byte(`{"type":"leave"}`))
	require.NoError(t, err)
	assert.IsType(t, Leave{}, ev)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"format-hard-drive"}`))
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":`))
	assert.Error(t, err)

	_, err = DecodeInbound([]byte(`{"type":"chat","body":42}`))
	assert.Error(t, err)
}

func TestEncodeChatMessageShape(t *testing.T) {
	frame, err := Encode(ChatMessage{
		Type: TypeChatMessage,
		ChatMessage: domain.ChatMessage{
			ID:         "m1",
			SenderID:   "c1",
			SenderName: "alice",
			Body:       "hi",
		},
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(frame, &m))
	assert.Equal(t, TypeChatMessage, m["type"])
	assert.Equal(t, "m1", m["id"])
	assert.Equal(t, "c1", m["senderConnectionId"])
	assert.Equal(t, "alice", m["senderName"])
	assert.Equal(t, "hi", m["body"])
}
