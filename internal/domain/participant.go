// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxDisplayNameLen = 64

var (
	ErrDisplayNameEmpty   = errors.New("display name empty")
	ErrDisplayNameTooLong = errors.New("display name too long")
)

// ConnID identifies one live transport connection. Assigned at connect
// time, never reused while the process runs.
type ConnID string

// Participant is the identity a connection declared at join time.
// Nothing here is verified.
type Participant struct {
	Name        string `json:"displayName"`
	ContactHint string `json:"contactHint,omitempty"`
}

// NewParticipant validates the declared identity; the contact hint is
// free-form and passes through untouched.
func NewParticipant(name, contactHint string) (Participant, error) {
	if len(name) == 0 {
		return Participant{}, ErrDisplayNameEmpty
	}
	if len(name) > MaxDisplayNameLen {
		return Participant{}, ErrDisplayNameTooLong
	}
	return Participant{Name: name, ContactHint: contactHint}, nil
}
