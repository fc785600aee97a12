package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterListItemRelationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, relations []*types.MasterListItemRelation) ([]*types.MasterListItemRelation, error)
  GetByMasterItemIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) ([]*types.MasterListItemRelation, error)
  DeleteByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
  DeleteByMasterListAndItem(ctx context.Context, tx *gorm.DB, masterListID, masterItemID uuid.UUID) error
}

type masterListItemRelationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterListItemRelationRepo(db *gorm.DB, baseLog *logger.Logger) MasterListItemRelationRepo {
  repoLog := baseLog.With("repo", "MasterListItemRelationRepo")
  return &masterListItemRelationRepo{db: db, log: repoLog}
}

func (mlir *masterListItemRelationRepo) Create(ctx context.Context, tx *gorm.DB, relations []*types.MasterListItemRelation) ([]*types.MasterListItemRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = mlir.db
  }

  if len(relations) == 0 {
    return []*types.MasterListItemRelation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&relations).Error; err != nil {
    return nil, err
  }

  return relations, nil
}

func (mlir *masterListItemRelationRepo) GetByMasterItemIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) ([]*types.MasterListItemRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = mlir.db
  }

  var results []*types.MasterListItemRelation

  if len(masterItemIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("master_item_id IN ?", masterItemIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mlir *masterListItemRelationRepo) DeleteByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mlir.db
  }

  return transaction.WithContext(ctx).
    Where("master_list_id = ?", masterListID).
    Delete(&types.MasterListItemRelation{}).Error
}

func (mlir *masterListItemRelationRepo) DeleteByMasterListAndItem(ctx context.Context, tx *gorm.DB, masterListID, masterItemID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mlir.db
  }

  return transaction.WithContext(ctx).
    Where("master_list_id = ? AND master_item_id = ?", masterListID, masterItemID).
    Delete(&types.MasterListItemRelation{}).Error
}

type MasterListDetailRelationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, relations []*types.MasterListDetailRelation) ([]*types.MasterListDetailRelation, error)
  GetByMasterDetailIDs(ctx context.Context, tx *gorm.DB, masterDetailIDs []uuid.UUID) ([]*types.MasterListDetailRelation, error)
  DeleteByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
  DeleteByMasterDetailID(ctx context.Context, tx *gorm.DB, masterDetailID uuid.UUID) error
}

type masterListDetailRelationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterListDetailRelationRepo(db *gorm.DB, baseLog *logger.Logger) MasterListDetailRelationRepo {
  repoLog := baseLog.With("repo", "MasterListDetailRelationRepo")
  return &masterListDetailRelationRepo{db: db, log: repoLog}
}

func (mldr *masterListDetailRelationRepo) Create(ctx context.Context, tx *gorm.DB, relations []*types.MasterListDetailRelation) ([]*types.MasterListDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = mldr.db
  }

  if len(relations) == 0 {
    return []*types.MasterListDetailRelation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&relations).Error; err != nil {
    return nil, err
  }

  return relations, nil
}

func (mldr *masterListDetailRelationRepo) GetByMasterDetailIDs(ctx context.Context, tx *gorm.DB, masterDetailIDs []uuid.UUID) ([]*types.MasterListDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = mldr.db
  }

  var results []*types.MasterListDetailRelation

  if len(masterDetailIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("master_detail_id IN ?", masterDetailIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mldr *masterListDetailRelationRepo) DeleteByMasterListID(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mldr.db
  }

  return transaction.WithContext(ctx).
    Where("master_list_id = ?", masterListID).
    Delete(&types.MasterListDetailRelation{}).Error
}

func (mldr *masterListDetailRelationRepo) DeleteByMasterDetailID(ctx context.Context, tx *gorm.DB, masterDetailID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = mldr.db
  }

  return transaction.WithContext(ctx).
    Where("master_detail_id = ?", masterDetailID).
    Delete(&types.MasterListDetailRelation{}).Error
}
