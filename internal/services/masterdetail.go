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
  "github.com/yungbote/incontext-backend/internal/requestdata"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterDetailService interface {
  CreateMasterDetail(ctx context.Context, masterListID uuid.UUID, name, description string) (*types.MasterDetail, error)
  UpdateMasterDetail(ctx context.Context, masterListID, masterDetailID uuid.UUID, name, description string) error
  DeleteMasterDetail(ctx context.Context, masterListID, masterDetailID uuid.UUID) error
}

type masterDetailService struct {
  db                           *gorm.DB
  log                          *logger.Logger
  masterListService            MasterListService
  masterDetailRepo             repos.MasterDetailRepo
  masterItemRepo               repos.MasterItemRepo
  masterListDetailRelationRepo repos.MasterListDetailRelationRepo
  masterItemDetailRelationRepo repos.MasterItemDetailRelationRepo
  listTetherRepo               repos.ListTetherRepo
  listItemRelationRepo         repos.ListItemRelationRepo
  untetheredContentRepo        repos.UntetheredContentRepo
}

func NewMasterDetailService(
  db *gorm.DB,
  log *logger.Logger,
  masterListService MasterListService,
  masterDetailRepo repos.MasterDetailRepo,
  masterItemRepo repos.MasterItemRepo,
  masterListDetailRelationRepo repos.MasterListDetailRelationRepo,
  masterItemDetailRelationRepo repos.MasterItemDetailRelationRepo,
  listTetherRepo repos.ListTetherRepo,
  listItemRelationRepo repos.ListItemRelationRepo,
  untetheredContentRepo repos.UntetheredContentRepo,
) MasterDetailService {
  serviceLog := log.With("service", "MasterDetailService")
  return &masterDetailService{
    db:                           db,
    log:                          serviceLog,
    masterListService:            masterListService,
    masterDetailRepo:             masterDetailRepo,
    masterItemRepo:               masterItemRepo,
    masterListDetailRelationRepo: masterListDetailRelationRepo,
    masterItemDetailRelationRepo: masterItemDetailRelationRepo,
    listTetherRepo:               listTetherRepo,
    listItemRelationRepo:         listItemRelationRepo,
    untetheredContentRepo:        untetheredContentRepo,
  }
}

func (mds *masterDetailService) resolveMasterDetailInList(ctx context.Context, tx *gorm.DB, masterListID, masterDetailID uuid.UUID) (*types.MasterDetail, error) {
  masterDetails, err := mds.masterDetailRepo.GetByIDs(ctx, tx, []uuid.UUID{masterDetailID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch master detail: %w", err)
  }
  if len(masterDetails) == 0 {
    return nil, apierr.NotFound("Master detail")
  }
  relations, rErr := mds.masterListDetailRelationRepo.GetByMasterDetailIDs(ctx, tx, []uuid.UUID{masterDetailID})
  if rErr != nil {
    return nil, fmt.Errorf("Failed to fetch master list detail relation: %w", rErr)
  }
  if len(relations) == 0 {
    return nil, apierr.NotFound("Master detail")
  }
  if relations[0].MasterListID != masterListID {
    return nil, apierr.NotRelated("Master detail")
  }
  return masterDetails[0], nil
}

func (mds *masterDetailService) CreateMasterDetail(ctx context.Context, masterListID uuid.UUID, name, description string) (*types.MasterDetail, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if _, err := mds.masterListService.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return nil, err
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  now := time.Now()
  masterDetail := &types.MasterDetail{
    ID:          uuid.New(),
    CreatorID:   rd.UserID,
    Name:        name,
    Description: description,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := mds.masterDetailRepo.Create(ctx, tx, []*types.MasterDetail{masterDetail}); cErr != nil {
      return fmt.Errorf("Failed to create master detail: %w", cErr)
    }
    relation := &types.MasterListDetailRelation{
      ID:             uuid.New(),
      MasterListID:   masterListID,
      MasterDetailID: masterDetail.ID,
      CreatedAt:      now,
    }
    if _, rErr := mds.masterListDetailRelationRepo.Create(ctx, tx, []*types.MasterListDetailRelation{relation}); rErr != nil {
      return fmt.Errorf("Failed to create master list detail relation: %w", rErr)
    }
    masterItems, miErr := mds.masterItemRepo.GetByMasterListID(ctx, tx, masterListID)
    if miErr != nil {
      return fmt.Errorf("Failed to fetch master items: %w", miErr)
    }
    if len(masterItems) > 0 {
      cells := make([]*types.MasterItemDetailRelation, 0, len(masterItems))
      for _, mi := range masterItems {
        cells = append(cells, &types.MasterItemDetailRelation{
          ID:             uuid.New(),
          MasterItemID:   mi.ID,
          MasterDetailID: masterDetail.ID,
          CreatedAt:      now,
          UpdatedAt:      now,
        })
      }
      if _, bErr := mds.masterItemDetailRelationRepo.Create(ctx, tx, cells); bErr != nil {
        return fmt.Errorf("Failed to backfill master item detail relations: %w", bErr)
      }
    }
    // Every list already tethered to this master gets one empty cell
    // per existing item, keyed to the new master detail. Edit forms on
    // those lists show the new column without per-list action.
    if pErr := mds.propagateToTetheredLists(ctx, tx, masterListID, masterDetail.ID, now); pErr != nil {
      return pErr
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return masterDetail, nil
}

func (mds *masterDetailService) propagateToTetheredLists(ctx context.Context, tx *gorm.DB, masterListID, masterDetailID uuid.UUID, now time.Time) error {
  tethers, tErr := mds.listTetherRepo.GetByMasterListIDs(ctx, tx, []uuid.UUID{masterListID})
  if tErr != nil {
    return fmt.Errorf("Failed to fetch list tethers: %w", tErr)
  }
  if len(tethers) == 0 {
    return nil
  }
  listIDs := make([]uuid.UUID, 0, len(tethers))
  for _, t := range tethers {
    listIDs = append(listIDs, t.ListID)
  }
  relations, rErr := mds.listItemRelationRepo.GetByListIDs(ctx, tx, listIDs)
  if rErr != nil {
    return fmt.Errorf("Failed to fetch list item relations: %w", rErr)
  }
  if len(relations) == 0 {
    return nil
  }
  cells := make([]*types.UntetheredContent, 0, len(relations))
  for _, rel := range relations {
    cells = append(cells, &types.UntetheredContent{
      ID:             uuid.New(),
      ListID:         rel.ListID,
      ItemID:         rel.ItemID,
      MasterDetailID: masterDetailID,
      CreatedAt:      now,
      UpdatedAt:      now,
    })
  }
  if _, cErr := mds.untetheredContentRepo.Create(ctx, tx, cells); cErr != nil {
    return fmt.Errorf("Failed to propagate untethered content: %w", cErr)
  }
  return nil
}

func (mds *masterDetailService) UpdateMasterDetail(ctx context.Context, masterListID, masterDetailID uuid.UUID, name, description string) error {
  if _, err := mds.masterListService.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return err
  }
  if _, err := mds.resolveMasterDetailInList(ctx, nil, masterListID, masterDetailID); err != nil {
    return err
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return apierr.Validation("Name is required.")
  }
  if err := mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return mds.masterDetailRepo.UpdateFields(ctx, tx, masterDetailID, map[string]interface{}{
      "name":        name,
      "description": description,
      "updated_at":  time.Now(),
    })
  }); err != nil {
    return fmt.Errorf("Failed to update master detail: %w", err)
  }
  return nil
}

func (mds *masterDetailService) DeleteMasterDetail(ctx context.Context, masterListID, masterDetailID uuid.UUID) error {
  if _, err := mds.masterListService.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return err
  }
  if _, err := mds.resolveMasterDetailInList(ctx, nil, masterListID, masterDetailID); err != nil {
    return err
  }
  return mds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := mds.masterItemDetailRelationRepo.DeleteByMasterDetailID(ctx, tx, masterDetailID); err != nil {
      return fmt.Errorf("Failed to delete master item detail relations: %w", err)
    }
    if err := mds.untetheredContentRepo.DeleteByMasterDetailID(ctx, tx, masterDetailID); err != nil {
      return fmt.Errorf("Failed to delete untethered content: %w", err)
    }
    if err := mds.masterListDetailRelationRepo.DeleteByMasterDetailID(ctx, tx, masterDetailID); err != nil {
      return fmt.Errorf("Failed to delete master list detail relation: %w", err)
    }
    if err := mds.masterDetailRepo.DeleteByIDs(ctx, tx, []uuid.UUID{masterDetailID}); err != nil {
      return fmt.Errorf("Failed to delete master detail: %w", err)
    }
    return nil
  })
}
