package valueobject

import (
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
)

// EntityID wraps a well-formed, non-nil UUID.
type EntityID struct {
	value uuid.UUID
}

// NewEntityID generates a random (v4) identifier.
func NewEntityID() EntityID {
	return EntityID{value: uuid.New()}
}

func EntityIDFromUUID(u uuid.UUID) (EntityID, error) {
	if u == uuid.Nil {
		return EntityID{}, apperror.RequiredField("id")
	}
	return EntityID{value: u}, nil
}

func ParseEntityID(raw string) (EntityID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EntityID{}, apperror.RequiredField("id")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return EntityID{}, apperror.InvalidFormat("invalid id format", "id is not a valid UUID")
	}
	return EntityIDFromUUID(u)
}

func (id EntityID) UUID() uuid.UUID { return id.value }
func (id EntityID) String() string  { return id.value.String() }
func (id EntityID) IsZero() bool    { return id.value == uuid.Nil }
