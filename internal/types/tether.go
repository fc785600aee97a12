package types

import (
  "time"
  "github.com/google/uuid"
)

// ListTether binds a derived list to a master list. One per list;
// tethering is one-directional and permanent.
type ListTether struct {
  ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ListID         uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"list_id"`
  MasterListID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_list_id"`
  CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
}

func (ListTether) TableName() string {
  return "list_tethers"
}

// UntetheredContent is the per-(list, item, master detail) content cell
// used by tethered lists in place of item_detail_relations. The content
// is local to the derived list and diverges freely from the master.
type UntetheredContent struct {
  ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ListID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"list_id"`
  ItemID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"item_id"`
  MasterDetailID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_detail_id"`
  Content          string      `gorm:"column:content" json:"content"`
  CreatedAt        time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time   `gorm:"not null" json:"updated_at"`
}

func (UntetheredContent) TableName() string {
  return "untethered_content"
}
