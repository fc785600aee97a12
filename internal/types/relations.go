package types

import (
  "time"
  "github.com/google/uuid"
)

// Join tables are application-managed; no database-level cascade exists,
// so every delete path has to clean these up explicitly.

type ListItemRelation struct {
  ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ListID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"list_id"`
  ItemID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"item_id"`
  CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}

func (ListItemRelation) TableName() string {
  return "list_item_relations"
}

type ListDetailRelation struct {
  ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ListID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"list_id"`
  DetailID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"detail_id"`
  CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}

func (ListDetailRelation) TableName() string {
  return "list_detail_relations"
}

// ItemDetailRelation is the content-bearing EAV cell for plain lists.
type ItemDetailRelation struct {
  ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ItemID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"item_id"`
  DetailID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"detail_id"`
  Content   string      `gorm:"column:content" json:"content"`
  CreatedAt time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

func (ItemDetailRelation) TableName() string {
  return "item_detail_relations"
}
