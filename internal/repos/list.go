package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type ListRepo interface {
  Create(ctx context.Context, tx *gorm.DB, lists []*types.List) ([]*types.List, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) ([]*types.List, error)
  GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.List, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) error
}

type listRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewListRepo(db *gorm.DB, baseLog *logger.Logger) ListRepo {
  repoLog := baseLog.With("repo", "ListRepo")
  return &listRepo{db: db, log: repoLog}
}

func (lr *listRepo) Create(ctx context.Context, tx *gorm.DB, lists []*types.List) ([]*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(lists) == 0 {
    return []*types.List{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&lists).Error; err != nil {
    return nil, err
  }

  return lists, nil
}

func (lr *listRepo) GetByIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) ([]*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.List

  if len(listIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", listIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *listRepo) GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.List, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.List

  if len(creatorIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("creator_id IN ?", creatorIDs).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (lr *listRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.List{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (lr *listRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, listIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(listIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", listIDs).
    Delete(&types.List{}).Error
}
