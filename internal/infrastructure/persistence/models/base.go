package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with a version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// OrgAggregateModel provides common persistence fields for org-scoped
// aggregate roots.
type OrgAggregateModel struct {
	AggregateModel
	OrgID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// FromDomainOrgAggregateRoot populates OrgAggregateModel from a domain OrgAggregateRoot
func (m *OrgAggregateModel) FromDomainOrgAggregateRoot(o shared.OrgAggregateRoot) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrgID = o.OrgID
	m.CreatedBy = o.CreatedBy
}

// ToDomainOrgAggregateRoot rebuilds a domain OrgAggregateRoot from the model
func (m *OrgAggregateModel) ToDomainOrgAggregateRoot() shared.OrgAggregateRoot {
	return shared.OrgAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		OrgID:     m.OrgID,
		CreatedBy: m.CreatedBy,
	}
}
