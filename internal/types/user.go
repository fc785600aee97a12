package types

import (
  "time"
  "github.com/google/uuid"
)

type User struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Username    string      `gorm:"uniqueIndex;not null;column:username" json:"username"`
  Password    string      `gorm:"not null;column:password" json:"-"`
  Admin       bool        `gorm:"not null;default:false;column:admin" json:"admin"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "users"
}
