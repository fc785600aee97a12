package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterAgentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, masterAgents []*types.MasterAgent) ([]*types.MasterAgent, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, masterAgentIDs []uuid.UUID) ([]*types.MasterAgent, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.MasterAgent, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, masterAgentIDs []uuid.UUID) error
}

type masterAgentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterAgentRepo(db *gorm.DB, baseLog *logger.Logger) MasterAgentRepo {
  repoLog := baseLog.With("repo", "MasterAgentRepo")
  return &masterAgentRepo{db: db, log: repoLog}
}

func (mar *masterAgentRepo) Create(ctx context.Context, tx *gorm.DB, masterAgents []*types.MasterAgent) ([]*types.MasterAgent, error) {
  transaction := tx
  if transaction == nil {
    transaction = mar.db
  }

  if len(masterAgents) == 0 {
    return []*types.MasterAgent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&masterAgents).Error; err != nil {
    return nil, err
  }

  return masterAgents, nil
}

func (mar *masterAgentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, masterAgentIDs []uuid.UUID) ([]*types.MasterAgent, error) {
  transaction := tx
  if transaction == nil {
    transaction = mar.db
  }

  var results []*types.MasterAgent

  if len(masterAgentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", masterAgentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mar *masterAgentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.MasterAgent, error) {
  transaction := tx
  if transaction == nil {
    transaction = mar.db
  }

  var results []*types.MasterAgent

  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mar *masterAgentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = mar.db
  }

  return transaction.WithContext(ctx).
    Model(&types.MasterAgent{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (mar *masterAgentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, masterAgentIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mar.db
  }

  if len(masterAgentIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", masterAgentIDs).
    Delete(&types.MasterAgent{}).Error
}
