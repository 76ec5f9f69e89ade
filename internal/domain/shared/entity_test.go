package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()
	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestBaseEntityTouch(t *testing.T) {
	e := NewBaseEntity()
	created := e.CreatedAt
	e.UpdatedAt = created.Add(-time.Minute)

	e.Touch()

	assert.Equal(t, created, e.CreatedAt)
	assert.True(t, e.UpdatedAt.After(created.Add(-time.Minute)))
	assert.False(t, e.UpdatedAt.Before(created))
}
