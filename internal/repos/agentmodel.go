package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type AgentModelRepo interface {
  Create(ctx context.Context, tx *gorm.DB, agentModels []*types.AgentModel) ([]*types.AgentModel, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, agentModelIDs []uuid.UUID) ([]*types.AgentModel, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AgentModel, error)
}

type agentModelRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAgentModelRepo(db *gorm.DB, baseLog *logger.Logger) AgentModelRepo {
  repoLog := baseLog.With("repo", "AgentModelRepo")
  return &agentModelRepo{db: db, log: repoLog}
}

func (amr *agentModelRepo) Create(ctx context.Context, tx *gorm.DB, agentModels []*types.AgentModel) ([]*types.AgentModel, error) {
  transaction := tx
  if transaction == nil {
    transaction = amr.db
  }

  if len(agentModels) == 0 {
    return []*types.AgentModel{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&agentModels).Error; err != nil {
    return nil, err
  }

  return agentModels, nil
}

func (amr *agentModelRepo) GetByIDs(ctx context.Context, tx *gorm.DB, agentModelIDs []uuid.UUID) ([]*types.AgentModel, error) {
  transaction := tx
  if transaction == nil {
    transaction = amr.db
  }

  var results []*types.AgentModel

  if len(agentModelIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", agentModelIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (amr *agentModelRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AgentModel, error) {
  transaction := tx
  if transaction == nil {
    transaction = amr.db
  }

  var results []*types.AgentModel

  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
