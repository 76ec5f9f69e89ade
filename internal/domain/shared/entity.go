package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit fields shared by every
// persisted domain type. Aggregates embed it through BaseAggregateRoot.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns a BaseEntity with a fresh ID and both audit
// timestamps set to now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a mutation on the entity's audit trail. Mutators call it
// instead of assigning UpdatedAt directly.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// GetID returns the entity ID.
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp.
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last mutation timestamp.
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Entity is the read-side view of BaseEntity, for code that only needs
// identity and audit access.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

var _ Entity = (*BaseEntity)(nil)
