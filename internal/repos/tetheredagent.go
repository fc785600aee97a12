package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type TetheredAgentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tetheredAgents []*types.TetheredAgent) ([]*types.TetheredAgent, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, tetheredAgentIDs []uuid.UUID) ([]*types.TetheredAgent, error)
  GetViewsByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.TetheredAgentView, error)
  DeleteByIDs(ctx context.Context, tx *gorm.DB, tetheredAgentIDs []uuid.UUID) error
  DeleteByMasterAgentID(ctx context.Context, tx *gorm.DB, masterAgentID uuid.UUID) error
}

type tetheredAgentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTetheredAgentRepo(db *gorm.DB, baseLog *logger.Logger) TetheredAgentRepo {
  repoLog := baseLog.With("repo", "TetheredAgentRepo")
  return &tetheredAgentRepo{db: db, log: repoLog}
}

func (tar *tetheredAgentRepo) Create(ctx context.Context, tx *gorm.DB, tetheredAgents []*types.TetheredAgent) ([]*types.TetheredAgent, error) {
  transaction := tx
  if transaction == nil {
    transaction = tar.db
  }

  if len(tetheredAgents) == 0 {
    return []*types.TetheredAgent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&tetheredAgents).Error; err != nil {
    return nil, err
  }

  return tetheredAgents, nil
}

func (tar *tetheredAgentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tetheredAgentIDs []uuid.UUID) ([]*types.TetheredAgent, error) {
  transaction := tx
  if transaction == nil {
    transaction = tar.db
  }

  var results []*types.TetheredAgent

  if len(tetheredAgentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", tetheredAgentIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetViewsByCreatorID joins each tethered agent with the name and
// description of the master agent it points at.
func (tar *tetheredAgentRepo) GetViewsByCreatorID(ctx context.Context, tx *gorm.DB, creatorID uuid.UUID) ([]*types.TetheredAgentView, error) {
  transaction := tx
  if transaction == nil {
    transaction = tar.db
  }

  var results []*types.TetheredAgentView

  if err := transaction.WithContext(ctx).
    Table("tethered_agents ta").
    Select("ta.id, ta.master_agent_id, ma.name, ma.description, ta.created_at").
    Joins("JOIN master_agents ma ON ma.id = ta.master_agent_id").
    Where("ta.creator_id = ?", creatorID).
    Order("ta.created_at ASC").
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tar *tetheredAgentRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, tetheredAgentIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tar.db
  }

  if len(tetheredAgentIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", tetheredAgentIDs).
    Delete(&types.TetheredAgent{}).Error
}

func (tar *tetheredAgentRepo) DeleteByMasterAgentID(ctx context.Context, tx *gorm.DB, masterAgentID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = tar.db
  }

  return transaction.WithContext(ctx).
    Where("master_agent_id = ?", masterAgentID).
    Delete(&types.TetheredAgent{}).Error
}
