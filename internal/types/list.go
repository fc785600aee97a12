package types

import (
  "time"
  "github.com/google/uuid"
)

// List is a user-owned named collection of items sharing a detail
// schema. The stored Tethered flag is display metadata; the list_tethers
// row is authoritative for schema resolution.
type List struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name          string      `gorm:"not null;column:name" json:"name"`
  Description   string      `gorm:"column:description" json:"description"`
  Tethered      bool        `gorm:"not null;default:false;column:tethered" json:"tethered"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (List) TableName() string {
  return "lists"
}
