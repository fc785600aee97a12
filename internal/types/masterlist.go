package types

import (
  "time"
  "github.com/google/uuid"
)

// MasterList is the admin-owned template analogue of List: readable by
// any logged-in user, writable by admins only.
type MasterList struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name          string      `gorm:"not null;column:name" json:"name"`
  Description   string      `gorm:"column:description" json:"description"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (MasterList) TableName() string {
  return "master_lists"
}

type MasterItem struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name        string      `gorm:"not null;column:name" json:"name"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (MasterItem) TableName() string {
  return "master_items"
}

type MasterDetail struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name          string      `gorm:"not null;column:name" json:"name"`
  Description   string      `gorm:"column:description" json:"description"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (MasterDetail) TableName() string {
  return "master_details"
}
