package types

import (
  "time"
  "github.com/google/uuid"
)

// Detail is a named attribute definition scoped to the lists it is
// attached to through list_detail_relations.
type Detail struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name          string      `gorm:"not null;column:name" json:"name"`
  Description   string      `gorm:"column:description" json:"description"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (Detail) TableName() string {
  return "details"
}
