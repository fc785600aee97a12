package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type ListItemRelationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, relations []*types.ListItemRelation) ([]*types.ListItemRelation, error)
  GetByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ListItemRelation, error)
  GetByListIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) ([]*types.ListItemRelation, error)
  DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
  DeleteByListAndItem(ctx context.Context, tx *gorm.DB, listID, itemID uuid.UUID) error
}

type listItemRelationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewListItemRelationRepo(db *gorm.DB, baseLog *logger.Logger) ListItemRelationRepo {
  repoLog := baseLog.With("repo", "ListItemRelationRepo")
  return &listItemRelationRepo{db: db, log: repoLog}
}

func (lir *listItemRelationRepo) Create(ctx context.Context, tx *gorm.DB, relations []*types.ListItemRelation) ([]*types.ListItemRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = lir.db
  }

  if len(relations) == 0 {
    return []*types.ListItemRelation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&relations).Error; err != nil {
    return nil, err
  }

  return relations, nil
}

func (lir *listItemRelationRepo) GetByItemIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ListItemRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = lir.db
  }

  var results []*types.ListItemRelation

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

func (lir *listItemRelationRepo) GetByListIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) ([]*types.ListItemRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = lir.db
  }

  var results []*types.ListItemRelation

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

func (lir *listItemRelationRepo) DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = lir.db
  }

  return transaction.WithContext(ctx).
    Where("list_id = ?", listID).
    Delete(&types.ListItemRelation{}).Error
}

func (lir *listItemRelationRepo) DeleteByListAndItem(ctx context.Context, tx *gorm.DB, listID, itemID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = lir.db
  }

  return transaction.WithContext(ctx).
    Where("list_id = ? AND item_id = ?", listID, itemID).
    Delete(&types.ListItemRelation{}).Error
}

type ListDetailRelationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, relations []*types.ListDetailRelation) ([]*types.ListDetailRelation, error)
  GetByDetailIDs(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID) ([]*types.ListDetailRelation, error)
  DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
  DeleteByDetailID(ctx context.Context, tx *gorm.DB, detailID uuid.UUID) error
}

type listDetailRelationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewListDetailRelationRepo(db *gorm.DB, baseLog *logger.Logger) ListDetailRelationRepo {
  repoLog := baseLog.With("repo", "ListDetailRelationRepo")
  return &listDetailRelationRepo{db: db, log: repoLog}
}

func (ldr *listDetailRelationRepo) Create(ctx context.Context, tx *gorm.DB, relations []*types.ListDetailRelation) ([]*types.ListDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ldr.db
  }

  if len(relations) == 0 {
    return []*types.ListDetailRelation{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&relations).Error; err != nil {
    return nil, err
  }

  return relations, nil
}

func (ldr *listDetailRelationRepo) GetByDetailIDs(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID) ([]*types.ListDetailRelation, error) {
  transaction := tx
  if transaction == nil {
    transaction = ldr.db
  }

  var results []*types.ListDetailRelation

  if len(detailIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("detail_id IN ?", detailIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ldr *listDetailRelationRepo) DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ldr.db
  }

  return transaction.WithContext(ctx).
    Where("list_id = ?", listID).
    Delete(&types.ListDetailRelation{}).Error
}

func (ldr *listDetailRelationRepo) DeleteByDetailID(ctx context.Context, tx *gorm.DB, detailID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ldr.db
  }

  return transaction.WithContext(ctx).
    Where("detail_id = ?", detailID).
    Delete(&types.ListDetailRelation{}).Error
}
