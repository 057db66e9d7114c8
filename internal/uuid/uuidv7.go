// Package uuid generates the identifiers used throughout the ledger.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a random, time-ordered UUIDv7 string. It is used for movement
// primary keys and for the group id that ties the two legs of a transfer or
// swap together, so two operations issued in the same millisecond never collide.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
