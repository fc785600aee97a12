package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

// MasterItemDetailRelationRepo manages the content cells of master
// lists, mirroring ItemDetailRelationRepo.
type MasterItemDetailRelationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, relations []*types.MasterItemDetailRelation) ([]*types.MasterItemDetailRelation, error)
  GetByMasterItemIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) ([]*types.MasterItemDetailRelation, error)
  UpdateContent(ctx context.Context, tx *gorm.DB, masterItemID, masterDetailID uuid.UUID, content string) error
  DeleteByMasterItemID(ctx context.Context, tx *gorm.DB, masterItemID uuid.UUID) error
  DeleteByMasterDetailID(ctx context.Context, tx *gorm.DB, masterDetailID uuid.UUID) error
  DeleteByItemsOfMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
}

type masterItemDetailRelationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMasterItemDetailRelationRepo(db *gorm.DB, baseLog *logger.Logger) MasterItemDetailRelationRepo {
  repoLog := baseLog.With("repo", "MasterItemDetailRelationRepo")
  return &masterItemDetailRelationRepo{db: db, log: repoLog}
}

func (midr *masterItemDetailRelationRepo) Create(ctx context.Context, tx *gorm.DB, relations []*types.MasterItemDetailRelation) ([]*types.MasterItemDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = midr.db
  }

  if len(relations) == 0 {
    return []*types.MasterItemDetailRelation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&relations).Error; err != nil {
    return nil, err
  }

  return relations, nil
}

func (midr *masterItemDetailRelationRepo) GetByMasterItemIDs(ctx context.Context, tx *gorm.DB, masterItemIDs []uuid.UUID) ([]*types.MasterItemDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = midr.db
  }

  var results []*types.MasterItemDetailRelation

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

func (midr *masterItemDetailRelationRepo) UpdateContent(ctx context.Context, tx *gorm.DB, masterItemID, masterDetailID uuid.UUID, content string) error {
  transaction := tx
  if transaction == nil {
    transaction = midr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.MasterItemDetailRelation{}).
    Where("master_item_id = ? AND master_detail_id = ?", masterItemID, masterDetailID).
    Update("master_content", content).Error
}

func (midr *masterItemDetailRelationRepo) DeleteByMasterItemID(ctx context.Context, tx *gorm.DB, masterItemID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = midr.db
  }

  return transaction.WithContext(ctx).
    Where("master_item_id = ?", masterItemID).
    Delete(&types.MasterItemDetailRelation{}).Error
}

func (midr *masterItemDetailRelationRepo) DeleteByMasterDetailID(ctx context.Context, tx *gorm.DB, masterDetailID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = midr.db
  }

  return transaction.WithContext(ctx).
    Where("master_detail_id = ?", masterDetailID).
    Delete(&types.MasterItemDetailRelation{}).Error
}

func (midr *masterItemDetailRelationRepo) DeleteByItemsOfMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = midr.db
  }

  sub := transaction.WithContext(ctx).
    Table("master_list_item_relations").
    Select("master_item_id").
    Where("master_list_id = ?", masterListID)

  return transaction.WithContext(ctx).
    Where("master_item_id IN (?)", sub).
    Delete(&types.MasterItemDetailRelation{}).Error
}
