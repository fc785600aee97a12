package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/yungbote/incontext-backend/internal/apierr"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/normalization"
  "github.com/yungbote/incontext-backend/internal/repos"
  "github.com/yungbote/incontext-backend/internal/types"
)

type DetailService interface {
  GetEffectiveDetails(ctx context.Context, listID uuid.UUID) ([]types.DetailRef, bool, error)
  CreateDetail(ctx context.Context, listID uuid.UUID, name, description string) (*types.Detail, error)
  UpdateDetail(ctx context.Context, listID, detailID uuid.UUID, name, description string) error
  DeleteDetail(ctx context.Context, listID, detailID uuid.UUID) error
}

type detailService struct {
  db                     *gorm.DB
  log                    *logger.Logger
  listService            ListService
  detailRepo             repos.DetailRepo
  itemRepo               repos.ItemRepo
  listDetailRelationRepo repos.ListDetailRelationRepo
  itemDetailRelationRepo repos.ItemDetailRelationRepo
  listTetherRepo         repos.ListTetherRepo
}

func NewDetailService(
  db *gorm.DB,
  log *logger.Logger,
  listService ListService,
  detailRepo repos.DetailRepo,
  itemRepo repos.ItemRepo,
  listDetailRelationRepo repos.ListDetailRelationRepo,
  itemDetailRelationRepo repos.ItemDetailRelationRepo,
  listTetherRepo repos.ListTetherRepo,
) DetailService {
  serviceLog := log.With("service", "DetailService")
  return &detailService{
    db:                     db,
    log:                    serviceLog,
    listService:            listService,
    detailRepo:             detailRepo,
    itemRepo:               itemRepo,
    listDetailRelationRepo: listDetailRelationRepo,
    itemDetailRelationRepo: itemDetailRelationRepo,
    listTetherRepo:         listTetherRepo,
  }
}

func (ds *detailService) GetEffectiveDetails(ctx context.Context, listID uuid.UUID) ([]types.DetailRef, bool, error) {
  if _, err := ds.listService.GetListChecked(ctx, nil, listID); err != nil {
    return nil, false, err
  }
  details, tethered, _, err := ds.listService.ResolveEffectiveDetails(ctx, nil, listID)
  if err != nil {
    return nil, false, err
  }
  return details, tethered, nil
}

// resolveDetailInList mirrors the item lookup rules: absent detail is a
// 404, a detail attached to a different list is a 400.
func (ds *detailService) resolveDetailInList(ctx context.Context, tx *gorm.DB, listID, detailID uuid.UUID) (*types.Detail, error) {
  details, err := ds.detailRepo.GetByIDs(ctx, tx, []uuid.UUID{detailID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch detail: %w", err)
  }
  if len(details) == 0 {
    return nil, apierr.NotFound("Detail")
  }
  relations, rErr := ds.listDetailRelationRepo.GetByDetailIDs(ctx, tx, []uuid.UUID{detailID})
  if rErr != nil {
    return nil, fmt.Errorf("Failed to fetch list detail relation: %w", rErr)
  }
  if len(relations) == 0 {
    return nil, apierr.NotFound("Detail")
  }
  if relations[0].ListID != listID {
    return nil, apierr.NotRelated("Detail")
  }
  return details[0], nil
}

func (ds *detailService) CreateDetail(ctx context.Context, listID uuid.UUID, name, description string) (*types.Detail, error) {
  list, err := ds.listService.GetListChecked(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  tethers, tErr := ds.listTetherRepo.GetByListIDs(ctx, nil, []uuid.UUID{listID})
  if tErr != nil {
    return nil, fmt.Errorf("Failed to fetch list tether: %w", tErr)
  }
  if len(tethers) > 0 {
    return nil, apierr.Forbidden("Tethered lists cannot gain new details")
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  now := time.Now()
  detail := &types.Detail{
    ID:          uuid.New(),
    CreatorID:   list.CreatorID,
    Name:        name,
    Description: description,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := ds.detailRepo.Create(ctx, tx, []*types.Detail{detail}); cErr != nil {
      return fmt.Errorf("Failed to create detail: %w", cErr)
    }
    relation := &types.ListDetailRelation{
      ID:        uuid.New(),
      ListID:    listID,
      DetailID:  detail.ID,
      CreatedAt: now,
    }
    if _, rErr := ds.listDetailRelationRepo.Create(ctx, tx, []*types.ListDetailRelation{relation}); rErr != nil {
      return fmt.Errorf("Failed to create list detail relation: %w", rErr)
    }
    // Every existing item gets an empty cell so its edit form shows
    // the new column immediately.
    items, iErr := ds.itemRepo.GetByListID(ctx, tx, listID)
    if iErr != nil {
      return fmt.Errorf("Failed to fetch list items: %w", iErr)
    }
    if len(items) > 0 {
      cells := make([]*types.ItemDetailRelation, 0, len(items))
      for _, item := range items {
        cells = append(cells, &types.ItemDetailRelation{
          ID:        uuid.New(),
          ItemID:    item.ID,
          DetailID:  detail.ID,
          CreatedAt: now,
          UpdatedAt: now,
        })
      }
      if _, bErr := ds.itemDetailRelationRepo.Create(ctx, tx, cells); bErr != nil {
        return fmt.Errorf("Failed to backfill item detail relations: %w", bErr)
      }
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return detail, nil
}

func (ds *detailService) UpdateDetail(ctx context.Context, listID, detailID uuid.UUID, name, description string) error {
  if _, err := ds.listService.GetListChecked(ctx, nil, listID); err != nil {
    return err
  }
  if _, err := ds.resolveDetailInList(ctx, nil, listID, detailID); err != nil {
    return err
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return apierr.Validation("Name is required.")
  }
  if err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ds.detailRepo.UpdateFields(ctx, tx, detailID, map[string]interface{}{
      "name":        name,
      "description": description,
      "updated_at":  time.Now(),
    })
  }); err != nil {
    return fmt.Errorf("Failed to update detail: %w", err)
  }
  return nil
}

func (ds *detailService) DeleteDetail(ctx context.Context, listID, detailID uuid.UUID) error {
  if _, err := ds.listService.GetListChecked(ctx, nil, listID); err != nil {
    return err
  }
  if _, err := ds.resolveDetailInList(ctx, nil, listID, detailID); err != nil {
    return err
  }
  return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := ds.itemDetailRelationRepo.DeleteByDetailID(ctx, tx, detailID); err != nil {
      return fmt.Errorf("Failed to delete item detail relations: %w", err)
    }
    if err := ds.listDetailRelationRepo.DeleteByDetailID(ctx, tx, detailID); err != nil {
      return fmt.Errorf("Failed to delete list detail relation: %w", err)
    }
    if err := ds.detailRepo.DeleteByIDs(ctx, tx, []uuid.UUID{detailID}); err != nil {
      return fmt.Errorf("Failed to delete detail: %w", err)
    }
    return nil
  })
}
