package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type AgentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, agents []*types.Agent) ([]*types.Agent, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, agentIDs []uuid.UUID) ([]*types.Agent, error)
  GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.Agent, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, agentIDs []uuid.UUID) error
}

type agentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAgentRepo(db *gorm.DB, baseLog *logger.Logger) AgentRepo {
  repoLog := baseLog.With("repo", "AgentRepo")
  return &agentRepo{db: db, log: repoLog}
}

func (ar *agentRepo) Create(ctx context.Context, tx *gorm.DB, agents []*types.Agent) ([]*types.Agent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(agents) == 0 {
    return []*types.Agent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&agents).Error; err != nil {
    return nil, err
  }

  return agents, nil
}

func (ar *agentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, agentIDs []uuid.UUID) ([]*types.Agent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Agent

  if len(agentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", agentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *agentRepo) GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.Agent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Agent

  if len(creatorIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_id IN ?", creatorIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *agentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Agent{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (ar *agentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, agentIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(agentIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", agentIDs).
    Delete(&types.Agent{}).Error
}
