package types

import (
  "time"
  "github.com/google/uuid"
)

type MasterListItemRelation struct {
  ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  MasterListID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_list_id"`
  MasterItemID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_item_id"`
  CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
}

func (MasterListItemRelation) TableName() string {
  return "master_list_item_relations"
}

type MasterListDetailRelation struct {
  ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  MasterListID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_list_id"`
  MasterDetailID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_detail_id"`
  CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
}

func (MasterListDetailRelation) TableName() string {
  return "master_list_detail_relations"
}

// MasterItemDetailRelation is the content-bearing EAV cell for master
// lists, mirroring item_detail_relations.
type MasterItemDetailRelation struct {
  ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  MasterItemID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_item_id"`
  MasterDetailID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_detail_id"`
  MasterContent    string      `gorm:"column:master_content" json:"master_content"`
  CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}

func (MasterItemDetailRelation) TableName() string {
  return "master_item_detail_relations"
}
