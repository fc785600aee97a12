package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

// ItemDetailRelationRepo manages the content-bearing EAV cells of plain
// (untethered) lists.
type ItemDetailRelationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, relations []*types.ItemDetailRelation) ([]*types.ItemDetailRelation, error)
  GetByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ItemDetailRelation, error)
  UpdateContent(ctx context.Context, tx *gorm.DB, itemID, detailID uuid.UUID, content string) error
  DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
  DeleteByDetailID(ctx context.Context, tx *gorm.DB, detailID uuid.UUID) error
  DeleteByItemsOfList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
}

type itemDetailRelationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewItemDetailRelationRepo(db *gorm.DB, baseLog *logger.Logger) ItemDetailRelationRepo {
  repoLog := baseLog.With("repo", "ItemDetailRelationRepo")
  return &itemDetailRelationRepo{db: db, log: repoLog}
}

func (idr *itemDetailRelationRepo) Create(ctx context.Context, tx *gorm.DB, relations []*types.ItemDetailRelation) ([]*types.ItemDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = idr.db
  }

  if len(relations) == 0 {
    return []*types.ItemDetailRelation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&relations).Error; err != nil {
    return nil, err
  }

  return relations, nil
}

func (idr *itemDetailRelationRepo) GetByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ItemDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = idr.db
  }

  var results []*types.ItemDetailRelation

  if len(itemIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("item_id IN ?", itemIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (idr *itemDetailRelationRepo) UpdateContent(ctx context.Context, tx *gorm.DB, itemID, detailID uuid.UUID, content string) error {
  transaction := tx
  if transaction == nil {
    transaction = idr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.ItemDetailRelation{}).
    Where("item_id = ? AND detail_id = ?", itemID, detailID).
    Update("content", content).Error
}

func (idr *itemDetailRelationRepo) DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = idr.db
  }

  return transaction.WithContext(ctx).
    Where("item_id = ?", itemID).
    Delete(&types.ItemDetailRelation{}).Error
}

func (idr *itemDetailRelationRepo) DeleteByDetailID(ctx context.Context, tx *gorm.DB, detailID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = idr.db
  }

  return transaction.WithContext(ctx).
    Where("detail_id = ?", detailID).
    Delete(&types.ItemDetailRelation{}).Error
}

// DeleteByItemsOfList removes every content cell attached to any item
// joined to the given list.
func (idr *itemDetailRelationRepo) DeleteByItemsOfList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = idr.db
  }

  sub := transaction.WithContext(ctx).
    Table("list_item_relations").
    Select("item_id").
    Where("list_id = ?", listID)

  return transaction.WithContext(ctx).
    Where("item_id IN (?)", sub).
    Delete(&types.ItemDetailRelation{}).Error
}
