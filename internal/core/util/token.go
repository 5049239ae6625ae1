package util

import "github.com/google/uuid"

// NewSessionToken returns a fresh opaque session credential. No embedded
// claims: validity is equality against the stored value, nothing else.
func NewSessionToken() string {
	return uuid.NewString()
}
