package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type ListTetherRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tethers []*types.ListTether) ([]*types.ListTether, error)
  GetByListIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) ([]*types.ListTether, error)
  GetByMasterListIDs(ctx context.Context, tx *gorm.DB, masterListIDs []uuid.UUID) ([]*types.ListTether, error)
  DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
  DeleteByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
}

type listTetherRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewListTetherRepo(db *gorm.DB, baseLog *logger.Logger) ListTetherRepo {
  repoLog := baseLog.With("repo", "ListTetherRepo")
  return &listTetherRepo{db: db, log: repoLog}
}

func (ltr *listTetherRepo) Create(ctx context.Context, tx *gorm.DB, tethers []*types.ListTether) ([]*types.ListTether, error) {
  transaction := tx
  if transaction == nil {
    transaction = ltr.db
  }

  if len(tethers) == 0 {
    return []*types.ListTether{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&tethers).Error; err != nil {
    return nil, err
  }

  return tethers, nil
}

func (ltr *listTetherRepo) GetByListIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) ([]*types.ListTether, error) {
  transaction := tx
  if transaction == nil {
    transaction = ltr.db
  }

  var results []*types.ListTether

  if len(listIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("list_id IN ?", listIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ltr *listTetherRepo) GetByMasterListIDs(ctx context.Context, tx *gorm.DB, masterListIDs []uuid.UUID) ([]*types.ListTether, error) {
  transaction := tx
  if transaction == nil {
    transaction = ltr.db
  }

  var results []*types.ListTether

  if len(masterListIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("master_list_id IN ?", masterListIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ltr *listTetherRepo) DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ltr.db
  }

  return transaction.WithContext(ctx).
    Where("list_id = ?", listID).
    Delete(&types.ListTether{}).Error
}

func (ltr *listTetherRepo) DeleteByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ltr.db
  }

  return transaction.WithContext(ctx).
    Where("master_list_id = ?", masterListID).
    Delete(&types.ListTether{}).Error
}
