package types

import (
  "time"
  "github.com/google/uuid"
)

type Agent struct {
  ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name           string      `gorm:"not null;column:name" json:"name"`
  Description    string      `gorm:"column:description" json:"description"`
  ModelID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"model_id"`
  Role           string      `gorm:"not null;column:role" json:"role"`
  Instructions   string      `gorm:"not null;column:instructions" json:"instructions"`
  CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (Agent) TableName() string {
  return "agents"
}

// TetheredAgent is a pure pointer at a master agent; it carries no
// configuration of its own.
type TetheredAgent struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  MasterAgentID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"master_agent_id"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
}

func (TetheredAgent) TableName() string {
  return "tethered_agents"
}

type MasterAgent struct {
  ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CreatorID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"creator_id"`
  Name           string      `gorm:"not null;column:name" json:"name"`
  Description    string      `gorm:"column:description" json:"description"`
  ModelID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"model_id"`
  Role           string      `gorm:"not null;column:role" json:"role"`
  Instructions   string      `gorm:"not null;column:instructions" json:"instructions"`
  CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (MasterAgent) TableName() string {
  return "master_agents"
}
