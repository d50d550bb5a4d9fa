// Package uuid wraps github.com/google/uuid so that IDs can be bound
// directly from gin URI and query parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// Parse parses s into a UUID. The empty string parses to Nil.
func Parse(s string) (UUID, error) {
	var u UUID
	err := u.UnmarshalParam(s)
	return u, err
}

// UnmarshalParam implements gin's BindUnmarshaler for UUID
// by means of https://pkg.go.dev/github.com/google/uuid#Parse
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// Ptr returns a pointer to the underlying google UUID, or nil for Nil.
//
// Models reference optional parents by *google_uuid.UUID.
func (u UUID) Ptr() *google_uuid.UUID {
	if u == Nil {
		return nil
	}

	id := u.UUID
	return &id
}
