package uuid

import (
	"github.com/google/uuid"
)

// UUID is a thin wrapper around google's uuid.UUID. A freshly generated
// value is the `name` part of every asset identifier: random 128-bit, so
// concurrent uploads share no counter and collisions are negligible.
type UUID uuid.UUID

// NewUUID creates a new random UUID.
func NewUUID() UUID {
	return UUID(uuid.New())
}

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(u).String()), nil
}

func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*u = UUID(parsed)
	return nil
}
