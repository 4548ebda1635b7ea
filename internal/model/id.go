package model

import "github.com/oklog/ulid/v2"

// NewID generates a ULID string used to identify invocation records.
func NewID() string {
	return ulid.Make().String()
}
