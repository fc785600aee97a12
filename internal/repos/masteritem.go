package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterItemRepo interface {
  Create(ctx context.Context, tx *gorm.DB, masterItems []*types.MasterItem) ([]*types.MasterItem, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) ([]*types.MasterItem, error)
  GetByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) ([]*types.MasterItem, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) error
  DeleteScopedToMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
}

type masterItemRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterItemRepo(db *gorm.DB, baseLog *logger.Logger) MasterItemRepo {
  repoLog := baseLog.With("repo", "MasterItemRepo")
  return &masterItemRepo{db: db, log: repoLog}
}

func (mir *masterItemRepo) Create(ctx context.Context, tx *gorm.DB, masterItems []*types.MasterItem) ([]*types.MasterItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = mir.db
  }

  if len(masterItems) == 0 {
    return []*types.MasterItem{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&masterItems).Error; err != nil {
    return nil, err
  }

  return masterItems, nil
}

func (mir *masterItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) ([]*types.MasterItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = mir.db
  }

  var results []*types.MasterItem

  if len(masterItemIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", masterItemIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mir *masterItemRepo) GetByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) ([]*types.MasterItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = mir.db
  }

  var results []*types.MasterItem

  if err := transaction.WithContext(ctx).
    Joins("JOIN master_list_item_relations r ON r.master_item_id = master_items.id").
    Where("r.master_list_id = ?", masterListID).
    Order("master_items.created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mir *masterItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = mir.db
  }

  return transaction.WithContext(ctx).
    Model(&types.MasterItem{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (mir *masterItemRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mir.db
  }

  if len(masterItemIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", masterItemIDs).
    Delete(&types.MasterItem{}).Error
}

func (mir *masterItemRepo) DeleteScopedToMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mir.db
  }

  sub := transaction.WithContext(ctx).
    Table("master_list_item_relations").
    Select("master_item_id").
    Where("master_list_id = ?", masterListID)

  return transaction.WithContext(ctx).
    Where("id IN (?)", sub).
    Delete(&types.MasterItem{}).Error
}
