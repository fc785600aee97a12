package types

import (
  "time"
  "github.com/google/uuid"
)

type Item struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name        string      `gorm:"not null;column:name" json:"name"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Item) TableName() string {
  return "items"
}
