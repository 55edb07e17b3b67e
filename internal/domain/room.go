package domain

import "strings"

// RoomCode is the short shareable key of one meeting. Codes are
// case-insensitive; NormalizeRoomCode is the single place that rule lives.
type RoomCode string

func NormalizeRoomCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// MediaState is the per-participant transient media flags. Owned by the
// connection that reports it; never checked against actual hardware.
type MediaState struct {
	Muted         bool `json:"muted"`
	CameraOff     bool `json:"cameraOff"`
	ScreenSharing bool `json:"screenSharing"`
}
