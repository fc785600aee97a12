package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/types"
)

// UntetheredContentRepo manages the content cells of tethered lists,
// keyed by (list, item, master detail).
type UntetheredContentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, contents []*types.UntetheredContent) ([]*types.UntetheredContent, error)
  GetByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.UntetheredContent, error)
  UpdateContent(ctx context.Context, tx *gorm.DB, listID, itemID, masterDetailID uuid.UUID, content string) error
  DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error
  DeleteByListAndItem(ctx context.Context, tx *gorm.DB, listID, itemID uuid.UUID) error
  DeleteByMasterDetailID(ctx context.Context, tx *gorm.DB, masterDetailID uuid.UUID) error
  DeleteByDetailsOfMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error
}

type untetheredContentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUntetheredContentRepo(db *gorm.DB, baseLog *logger.Logger) UntetheredContentRepo {
  repoLog := baseLog.With("repo", "UntetheredContentRepo")
  return &untetheredContentRepo{db: db, log: repoLog}
}

func (ucr *untetheredContentRepo) Create(ctx context.Context, tx *gorm.DB, contents []*types.UntetheredContent) ([]*types.UntetheredContent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  if len(contents) == 0 {
    return []*types.UntetheredContent{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&contents).Error; err != nil {
    return nil, err
  }

  return contents, nil
}

func (ucr *untetheredContentRepo) GetByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]*types.UntetheredContent, error) {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  var results []*types.UntetheredContent

  if err := transaction.WithContext(ctx).
    Where("list_id = ?", listID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ucr *untetheredContentRepo) UpdateContent(ctx context.Context, tx *gorm.DB, listID, itemID, masterDetailID uuid.UUID, content string) error {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.UntetheredContent{}).
    Where("list_id = ? AND item_id = ? AND master_detail_id = ?", listID, itemID, masterDetailID).
    Update("content", content).Error
}

func (ucr *untetheredContentRepo) DeleteByListID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  return transaction.WithContext(ctx).
    Where("list_id = ?", listID).
    Delete(&types.UntetheredContent{}).Error
}

func (ucr *untetheredContentRepo) DeleteByListAndItem(ctx context.Context, tx *gorm.DB, listID, itemID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  return transaction.WithContext(ctx).
    Where("list_id = ? AND item_id = ?", listID, itemID).
    Delete(&types.UntetheredContent{}).Error
}

func (ucr *untetheredContentRepo) DeleteByMasterDetailID(ctx context.Context, tx *gorm.DB, masterDetailID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  return transaction.WithContext(ctx).
    Where("master_detail_id = ?", masterDetailID).
    Delete(&types.UntetheredContent{}).Error
}

// DeleteByDetailsOfMasterList clears every derived-list cell keyed to
// any master detail of the given master list.
func (ucr *untetheredContentRepo) DeleteByDetailsOfMasterList(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ucr.db
  }

  sub := transaction.WithContext(ctx).
    Table("master_list_detail_relations").
    Select("master_detail_id").
    Where("master_list_id = ?", masterListID)

  return transaction.WithContext(ctx).
    Where("master_detail_id IN (?)", sub).
    Delete(&types.UntetheredContent{}).Error
}
