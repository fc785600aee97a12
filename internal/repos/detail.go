package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

type DetailRepo interface {
  Create(ctx context.Context, tx *gorm.DB, details []*types.Detail) ([]*types.Detail, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID) ([]*types.Detail, error)
  GetByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.Detail, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  DeleteByIDs(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID) error
  DeleteScopedToList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
}

type detailRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDetailRepo(db *gorm.DB, baseLog *logger.Logger) DetailRepo {
  repoLog := baseLog.With("repo", "DetailRepo")
  return &detailRepo{db: db, log: repoLog}
}

func (dr *detailRepo) Create(ctx context.Context, tx *gorm.DB, details []*types.Detail) ([]*types.Detail, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  if len(details) == 0 {
    return []*types.Detail{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&details).Error; err != nil {
    return nil, err
  }

  return details, nil
}

func (dr *detailRepo) GetByIDs(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID) ([]*types.Detail, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []*types.Detail

  if len(detailIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", detailIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dr *detailRepo) GetByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.Detail, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []*types.Detail

  if err := transaction.WithContext(ctx).
    Joins("JOIN list_detail_relations r ON r.detail_id = details.id").
    Where("r.list_id = ?", listID).
    Order("details.created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dr *detailRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Detail{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (dr *detailRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, detailIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  if len(detailIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", detailIDs).
    Delete(&types.Detail{}).Error
}

func (dr *detailRepo) DeleteScopedToList(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  sub := transaction.WithContext(ctx).
    Table("list_detail_relations").
    Select("detail_id").
    Where("list_id = ?", listID)

  return transaction.WithContext(ctx).
    Where("id IN (?)", sub).
    Delete(&types.Detail{}).Error
}
