package types

import (
  "time"
  "github.com/google/uuid"
)

// AgentModel is the provider/model catalog seeded at initialization and
// referenced by agents and master agents.
type AgentModel struct {
  ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  ProviderName   string      `gorm:"not null;column:provider_name" json:"provider_name"`
  ProviderCode   string      `gorm:"not null;column:provider_code" json:"provider_code"`
  ModelName      string      `gorm:"not null;column:model_name" json:"model_name"`
  ModelCode      string      `gorm:"not null;uniqueIndex;column:model_code" json:"model_code"`
  Description    string      `gorm:"column:model_description" json:"model_description"`
  CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
}

func (AgentModel) TableName() string {
  return "agent_models"
}
