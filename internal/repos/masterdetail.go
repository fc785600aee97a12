package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterDetailRepo interface {
  Create(ctx context.Context, tx *gorm.DB, masterDetails []*types.MasterDetail) ([]*types.MasterDetail, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, masterDetailIDs []uuid.UUID) ([]*types.MasterDetail, error)
  GetByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) ([]*types.MasterDetail, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, masterDetailIDs []uuid.UUID) error
  DeleteScopedToMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
}

type masterDetailRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterDetailRepo(db *gorm.DB, baseLog *logger.Logger) MasterDetailRepo {
  repoLog := baseLog.With("repo", "MasterDetailRepo")
  return &masterDetailRepo{db: db, log: repoLog}
}

func (mdr *masterDetailRepo) Create(ctx context.Context, tx *gorm.DB, masterDetails []*types.MasterDetail) ([]*types.MasterDetail, error) {
  transaction := tx
  if transaction == nil {
    transaction = mdr.db
  }

  if len(masterDetails) == 0 {
    return []*types.MasterDetail{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&masterDetails).Error; err != nil {
    return nil, err
  }

  return masterDetails, nil
}

func (mdr *masterDetailRepo) GetByIDs(ctx context.Context, tx *gorm.DB, masterDetailIDs []uuid.UUID) ([]*types.MasterDetail, error) {
  transaction := tx
  if transaction == nil {
    transaction = mdr.db
  }

  var results []*types.MasterDetail

  if len(masterDetailIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", masterDetailIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mdr *masterDetailRepo) GetByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) ([]*types.MasterDetail, error) {
  transaction := tx
  if transaction == nil {
    transaction = mdr.db
  }

  var results []*types.MasterDetail

  if err := transaction.WithContext(ctx).
    Joins("JOIN master_list_detail_relations r ON r.master_detail_id = master_details.id").
    Where("r.master_list_id = ?", masterListID).
    Order("master_details.created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mdr *masterDetailRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = mdr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.MasterDetail{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (mdr *masterDetailRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, masterDetailIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mdr.db
  }

  if len(masterDetailIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", masterDetailIDs).
    Delete(&types.MasterDetail{}).Error
}

func (mdr *masterDetailRepo) DeleteScopedToMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mdr.db
  }

  sub := transaction.WithContext(ctx).
    Table("master_list_detail_relations").
    Select("master_detail_id").
    Where("master_list_id = ?", masterListID)

  return transaction.WithContext(ctx).
    Where("id IN (?)", sub).
    Delete(&types.MasterDetail{}).Error
}
