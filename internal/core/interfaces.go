package core

import "github.com/meetnexa/meetnexa/internal/domain"

// Frame is one encoded outbound message.
type Frame []byte

// SignalConnection abstracts the messaging transport of one connection.
// Owned by the adapter; the adapter must Close() it. TrySend must never
// block: delivery is best-effort, at-most-once, and a failed send must not
// roll back whatever mutation produced it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberDTO is a read-only roster view for snapshots and APIs
// (no transport fields).
type MemberDTO struct {
	ID         domain.ConnID     `json:"connectionId"`
	Name       string            `json:"displayName"`
	MediaState domain.MediaState `json:"mediaState"`
}

// RoomStatus is the diagnostics view of one room code. Safe to request
// for codes that were never joined.
type RoomStatus struct {
	Exists      bool `json:"exists"`
	Active      bool `json:"isActive"`
	MemberCount int  `json:"participantCount"`
}
