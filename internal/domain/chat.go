package domain

import "time"

// ChatMessage is immutable once created. The id and timestamp are
// assigned server-side so every member renders the same authoritative copy.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   ConnID    `json:"senderConnectionId"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}
