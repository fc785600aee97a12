package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterListRepo interface {
  Create(ctx context.Context, tx *gorm.DB, masterLists []*types.MasterList) ([]*types.MasterList, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, masterListIDs []uuid.UUID) ([]*types.MasterList, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.MasterList, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, masterListIDs []uuid.UUID) error
}

type masterListRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterListRepo(db *gorm.DB, baseLog *logger.Logger) MasterListRepo {
  repoLog := baseLog.With("repo", "MasterListRepo")
  return &masterListRepo{db: db, log: repoLog}
}

func (mlr *masterListRepo) Create(ctx context.Context, tx *gorm.DB, masterLists []*types.MasterList) ([]*types.MasterList, error) {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }

  if len(masterLists) == 0 {
    return []*types.MasterList{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&masterLists).Error; err != nil {
    return nil, err
  }

  return masterLists, nil
}

func (mlr *masterListRepo) GetByIDs(ctx context.Context, tx *gorm.DB, masterListIDs []uuid.UUID) ([]*types.MasterList, error) {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }

  var results []*types.MasterList

  if len(masterListIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", masterListIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mlr *masterListRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.MasterList, error) {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }

  var results []*types.MasterList

  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mlr *masterListRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.MasterList{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (mlr *masterListRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, masterListIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }

  if len(masterListIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", masterListIDs).
    Delete(&types.MasterList{}).Error
}
