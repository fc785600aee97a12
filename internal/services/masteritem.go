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

type MasterItemService interface {
  CreateMasterItem(ctx context.Context, masterListID uuid.UUID, name string, content map[uuid.UUID]string) (*types.MasterItem, error)
  GetMasterItemView(ctx context.Context, masterListID, masterItemID uuid.UUID) (*types.ItemView, error)
  UpdateMasterItem(ctx context.Context, masterListID, masterItemID uuid.UUID, name string, content map[uuid.UUID]string) error
  DeleteMasterItem(ctx context.Context, masterListID, masterItemID uuid.UUID) error
}

type masterItemService struct {
  db                           *gorm.DB
  log                          *logger.Logger
  masterListService            MasterListService
  masterItemRepo               repos.MasterItemRepo
  masterDetailRepo             repos.MasterDetailRepo
  masterListItemRelationRepo   repos.MasterListItemRelationRepo
  masterItemDetailRelationRepo repos.MasterItemDetailRelationRepo
}

func NewMasterItemService(
  db *gorm.DB,
  log *logger.Logger,
  masterListService MasterListService,
  masterItemRepo repos.MasterItemRepo,
  masterDetailRepo repos.MasterDetailRepo,
  masterListItemRelationRepo repos.MasterListItemRelationRepo,
  masterItemDetailRelationRepo repos.MasterItemDetailRelationRepo,
) MasterItemService {
  serviceLog := log.With("service", "MasterItemService")
  return &masterItemService{
    db:                           db,
    log:                          serviceLog,
    masterListService:            masterListService,
    masterItemRepo:               masterItemRepo,
    masterDetailRepo:             masterDetailRepo,
    masterListItemRelationRepo:   masterListItemRelationRepo,
    masterItemDetailRelationRepo: masterItemDetailRelationRepo,
  }
}

func (mis *masterItemService) resolveMasterItemInList(ctx context.Context, tx *gorm.DB, masterListID, masterItemID uuid.UUID) (*types.MasterItem, error) {
  masterItems, err := mis.masterItemRepo.GetByIDs(ctx, tx, []uuid.UUID{masterItemID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch master item: %w", err)
  }
  if len(masterItems) == 0 {
    return nil, apierr.NotFound("Master item")
  }
  relations, rErr := mis.masterListItemRelationRepo.GetByMasterItemIDs(ctx, tx, []uuid.UUID{masterItemID})
  if rErr != nil {
    return nil, fmt.Errorf("Failed to fetch master list item relation: %w", rErr)
  }
  if len(relations) == 0 {
    return nil, apierr.NotFound("Master item")
  }
  if relations[0].MasterListID != masterListID {
    return nil, apierr.NotRelated("Master item")
  }
  return masterItems[0], nil
}

func (mis *masterItemService) CreateMasterItem(ctx context.Context, masterListID uuid.UUID, name string, content map[uuid.UUID]string) (*types.MasterItem, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if _, err := mis.masterListService.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return nil, err
  }
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  masterDetails, mdErr := mis.masterDetailRepo.GetByMasterListID(ctx, nil, masterListID)
  if mdErr != nil {
    return nil, fmt.Errorf("Failed to fetch master details: %w", mdErr)
  }
  for _, md := range masterDetails {
    if _, ok := content[md.ID]; !ok {
      return nil, apierr.Validation("Content for detail " + md.Name + " is required.")
    }
  }
  now := time.Now()
  masterItem := &types.MasterItem{
    ID:        uuid.New(),
    CreatorID: rd.UserID,
    Name:      name,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := mis.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := mis.masterItemRepo.Create(ctx, tx, []*types.MasterItem{masterItem}); cErr != nil {
      return fmt.Errorf("Failed to create master item: %w", cErr)
    }
    relation := &types.MasterListItemRelation{
      ID:           uuid.New(),
      MasterListID: masterListID,
      MasterItemID: masterItem.ID,
      CreatedAt:    now,
    }
    if _, rErr := mis.masterListItemRelationRepo.Create(ctx, tx, []*types.MasterListItemRelation{relation}); rErr != nil {
      return fmt.Errorf("Failed to create master list item relation: %w", rErr)
    }
    if len(masterDetails) > 0 {
      cells := make([]*types.MasterItemDetailRelation, 0, len(masterDetails))
      for _, md := range masterDetails {
        cells = append(cells, &types.MasterItemDetailRelation{
          ID:             uuid.New(),
          MasterItemID:   masterItem.ID,
          MasterDetailID: md.ID,
          MasterContent:  content[md.ID],
          CreatedAt:      now,
          UpdatedAt:      now,
        })
      }
      if _, cErr := mis.masterItemDetailRelationRepo.Create(ctx, tx, cells); cErr != nil {
        return fmt.Errorf("Failed to create master item detail relations: %w", cErr)
      }
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return masterItem, nil
}

func (mis *masterItemService) GetMasterItemView(ctx context.Context, masterListID, masterItemID uuid.UUID) (*types.ItemView, error) {
  if _, err := mis.masterListService.GetMasterListChecked(ctx, nil, masterListID, false); err != nil {
    return nil, err
  }
  masterItem, err := mis.resolveMasterItemInList(ctx, nil, masterListID, masterItemID)
  if err != nil {
    return nil, err
  }
  masterDetails, mdErr := mis.masterDetailRepo.GetByMasterListID(ctx, nil, masterListID)
  if mdErr != nil {
    return nil, fmt.Errorf("Failed to fetch master details: %w", mdErr)
  }
  details := make([]types.DetailRef, 0, len(masterDetails))
  for _, md := range masterDetails {
    details = append(details, types.DetailRef{ID: md.ID, Name: md.Name, Description: md.Description})
  }
  cells, cErr := mis.masterItemDetailRelationRepo.GetByMasterItemIDs(ctx, nil, []uuid.UUID{masterItemID})
  if cErr != nil {
    return nil, fmt.Errorf("Failed to fetch master item detail relations: %w", cErr)
  }
  content := map[uuid.UUID]map[uuid.UUID]string{}
  for _, c := range cells {
    if content[c.MasterItemID] == nil {
      content[c.MasterItemID] = map[uuid.UUID]string{}
    }
    content[c.MasterItemID][c.MasterDetailID] = c.MasterContent
  }
  items := []*types.Item{{ID: masterItem.ID, CreatorID: masterItem.CreatorID, Name: masterItem.Name, CreatedAt: masterItem.CreatedAt, UpdatedAt: masterItem.UpdatedAt}}
  views := composeItems(items, details, content)
  return views[0], nil
}

func (mis *masterItemService) UpdateMasterItem(ctx context.Context, masterListID, masterItemID uuid.UUID, name string, content map[uuid.UUID]string) error {
  if _, err := mis.masterListService.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return err
  }
  if _, err := mis.resolveMasterItemInList(ctx, nil, masterListID, masterItemID); err != nil {
    return err
  }
  name = normalization.ParseInputString(name)
  if name == "" {
    return apierr.Validation("Name is required.")
  }
  masterDetails, mdErr := mis.masterDetailRepo.GetByMasterListID(ctx, nil, masterListID)
  if mdErr != nil {
    return fmt.Errorf("Failed to fetch master details: %w", mdErr)
  }
  for _, md := range masterDetails {
    if _, ok := content[md.ID]; !ok {
      return apierr.Validation("Content for detail " + md.Name + " is required.")
    }
  }
  return mis.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if uErr := mis.masterItemRepo.UpdateFields(ctx, tx, masterItemID, map[string]interface{}{
      "name":       name,
      "updated_at": time.Now(),
    }); uErr != nil {
      return fmt.Errorf("Failed to update master item: %w", uErr)
    }
    for _, md := range masterDetails {
      value := content[md.ID]
      if cErr := mis.masterItemDetailRelationRepo.UpdateContent(ctx, tx, masterItemID, md.ID, value); cErr != nil {
        return fmt.Errorf("Failed to update master item detail relation: %w", cErr)
      }
    }
    return nil
  })
}

func (mis *masterItemService) DeleteMasterItem(ctx context.Context, masterListID, masterItemID uuid.UUID) error {
  if _, err := mis.masterListService.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return err
  }
  if _, err := mis.resolveMasterItemInList(ctx, nil, masterListID, masterItemID); err != nil {
    return err
  }
  return mis.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := mis.masterItemDetailRelationRepo.DeleteByMasterItemID(ctx, tx, masterItemID); err != nil {
      return fmt.Errorf("Failed to delete master item detail relations: %w", err)
    }
    if err := mis.masterListItemRelationRepo.DeleteByMasterListAndItem(ctx, tx, masterListID, masterItemID); err != nil {
      return fmt.Errorf("Failed to delete master list item relation: %w", err)
    }
    if err := mis.masterItemRepo.DeleteByIDs(ctx, tx, []uuid.UUID{masterItemID}); err != nil {
      return fmt.Errorf("Failed to delete master item: %w", err)
    }
    return nil
  })
}
