package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type ItemRepo interface {
  Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.Item, error)
  GetByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.Item, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error
  DeleteScopedToList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
}

type itemRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
  repoLog := baseLog.With("repo", "ItemRepo")
  return &itemRepo{db: db, log: repoLog}
}

func (ir *itemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  if len(items) == 0 {
    return []*types.Item{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
    return nil, err
  }

  return items, nil
}

func (ir *itemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.Item, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.Item

  if len(itemIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", itemIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *itemRepo) GetByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.Item, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var results []*types.Item

  if err := transaction.WithContext(ctx).
    Joins("JOIN list_item_relations r ON r.item_id = items.id").
    Where("r.list_id = ?", listID).
    Order("items.created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ir *itemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Item{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (ir *itemRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  if len(itemIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", itemIDs).
    Delete(&types.Item{}).Error
}

// DeleteScopedToList removes only the items joined to the given list,
// never items joined elsewhere.
func (ir *itemRepo) DeleteScopedToList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  sub := transaction.WithContext(ctx).
    Table("list_item_relations").
    Select("item_id").
    Where("list_id = ?", listID)

  return transaction.WithContext(ctx).
    Where("id IN (?)", sub).
    Delete(&types.Item{}).Error
}
