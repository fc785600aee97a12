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

type MasterListService interface {
  GetMasterLists(ctx context.Context) ([]*types.MasterList, error)
  CreateMasterList(ctx context.Context, name, description string) (*types.MasterList, error)
  GetMasterListView(ctx context.Context, masterListID uuid.UUID) (*types.MasterListView, error)
  UpdateMasterList(ctx context.Context, masterListID uuid.UUID, name, description string) (*types.MasterList, error)
  DeleteMasterList(ctx context.Context, masterListID uuid.UUID) error

  // GetMasterListChecked resolves the master list or fails with 404.
  // When requireAdmin is set a non-admin caller gets a 403, after the
  // existence check.
  GetMasterListChecked(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID, requireAdmin bool) (*types.MasterList, error)
}

type masterListService struct {
  db                           *gorm.DB
  log                          *logger.Logger
  userRepo                     repos.UserRepo
  masterListRepo               repos.MasterListRepo
  masterItemRepo               repos.MasterItemRepo
  masterDetailRepo             repos.MasterDetailRepo
  masterListItemRelationRepo   repos.MasterListItemRelationRepo
  masterListDetailRelationRepo repos.MasterListDetailRelationRepo
  masterItemDetailRelationRepo repos.MasterItemDetailRelationRepo
  listTetherRepo               repos.ListTetherRepo
  untetheredContentRepo        repos.UntetheredContentRepo
  listRepo                     repos.ListRepo
}

func NewMasterListService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  masterListRepo repos.MasterListRepo,
  masterItemRepo repos.MasterItemRepo,
  masterDetailRepo repos.MasterDetailRepo,
  masterListItemRelationRepo repos.MasterListItemRelationRepo,
  masterListDetailRelationRepo repos.MasterListDetailRelationRepo,
  masterItemDetailRelationRepo repos.MasterItemDetailRelationRepo,
  listTetherRepo repos.ListTetherRepo,
  untetheredContentRepo repos.UntetheredContentRepo,
  listRepo repos.ListRepo,
) MasterListService {
  serviceLog := log.With("service", "MasterListService")
  return &masterListService{
    db:                           db,
    log:                          serviceLog,
    userRepo:                     userRepo,
    masterListRepo:               masterListRepo,
    masterItemRepo:               masterItemRepo,
    masterDetailRepo:             masterDetailRepo,
    masterListItemRelationRepo:   masterListItemRelationRepo,
    masterListDetailRelationRepo: masterListDetailRelationRepo,
    masterItemDetailRelationRepo: masterItemDetailRelationRepo,
    listTetherRepo:               listTetherRepo,
    untetheredContentRepo:        untetheredContentRepo,
    listRepo:                     listRepo,
  }
}

func (mls *masterListService) GetMasterLists(ctx context.Context) ([]*types.MasterList, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if !rd.Admin {
    return nil, apierr.Forbidden("Admin access required")
  }
  masterLists, err := mls.masterListRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch master lists: %w", err)
  }
  return masterLists, nil
}

func (mls *masterListService) GetMasterListChecked(ctx context.Context, tx *gorm.DB, masterListID uuid.UUID, requireAdmin bool) (*types.MasterList, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  masterLists, err := mls.masterListRepo.GetByIDs(ctx, tx, []uuid.UUID{masterListID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch master list: %w", err)
  }
  if len(masterLists) == 0 {
    return nil, apierr.NotFound("Master list")
  }
  if requireAdmin && !rd.Admin {
    return nil, apierr.Forbidden("Admin access required")
  }
  return masterLists[0], nil
}

func (mls *masterListService) CreateMasterList(ctx context.Context, name, description string) (*types.MasterList, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if !rd.Admin {
    return nil, apierr.Forbidden("Admin access required")
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  now := time.Now()
  masterList := &types.MasterList{
    ID:          uuid.New(),
    CreatorID:   rd.UserID,
    Name:        name,
    Description: description,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := mls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := mls.masterListRepo.Create(ctx, tx, []*types.MasterList{masterList}); cErr != nil {
      return fmt.Errorf("Failed to create master list: %w", cErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return masterList, nil
}

func (mls *masterListService) GetMasterListView(ctx context.Context, masterListID uuid.UUID) (*types.MasterListView, error) {
  masterList, err := mls.GetMasterListChecked(ctx, nil, masterListID, false)
  if err != nil {
    return nil, err
  }
  username := ""
  creators, uErr := mls.userRepo.GetByIDs(ctx, nil, []uuid.UUID{masterList.CreatorID})
  if uErr != nil {
    return nil, fmt.Errorf("Failed to fetch master list creator: %w", uErr)
  }
  if len(creators) > 0 {
    username = creators[0].Username
  }
  masterDetails, mdErr := mls.masterDetailRepo.GetByMasterListID(ctx, nil, masterListID)
  if mdErr != nil {
    return nil, fmt.Errorf("Failed to fetch master details: %w", mdErr)
  }
  details := make([]types.DetailRef, 0, len(masterDetails))
  for _, md := range masterDetails {
    details = append(details, types.DetailRef{ID: md.ID, Name: md.Name, Description: md.Description})
  }
  masterItems, miErr := mls.masterItemRepo.GetByMasterListID(ctx, nil, masterListID)
  if miErr != nil {
    return nil, fmt.Errorf("Failed to fetch master items: %w", miErr)
  }
  content := map[uuid.UUID]map[uuid.UUID]string{}
  if len(masterItems) > 0 {
    masterItemIDs := make([]uuid.UUID, 0, len(masterItems))
    for _, mi := range masterItems {
      masterItemIDs = append(masterItemIDs, mi.ID)
    }
    cells, cErr := mls.masterItemDetailRelationRepo.GetByMasterItemIDs(ctx, nil, masterItemIDs)
    if cErr != nil {
      return nil, fmt.Errorf("Failed to fetch master item detail relations: %w", cErr)
    }
    for _, c := range cells {
      if content[c.MasterItemID] == nil {
        content[c.MasterItemID] = map[uuid.UUID]string{}
      }
      content[c.MasterItemID][c.MasterDetailID] = c.MasterContent
    }
  }
  items := make([]*types.Item, 0, len(masterItems))
  for _, mi := range masterItems {
    items = append(items, &types.Item{ID: mi.ID, CreatorID: mi.CreatorID, Name: mi.Name, CreatedAt: mi.CreatedAt, UpdatedAt: mi.UpdatedAt})
  }
  return &types.MasterListView{
    MasterList: masterList,
    Username:   username,
    Details:    details,
    Items:      composeItems(items, details, content),
  }, nil
}

func (mls *masterListService) UpdateMasterList(ctx context.Context, masterListID uuid.UUID, name, description string) (*types.MasterList, error) {
  masterList, err := mls.GetMasterListChecked(ctx, nil, masterListID, true)
  if err != nil {
    return nil, err
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  if err := mls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return mls.masterListRepo.UpdateFields(ctx, tx, masterListID, map[string]interface{}{
      "name":        name,
      "description": description,
      "updated_at":  time.Now(),
    })
  }); err != nil {
    return nil, fmt.Errorf("Failed to update master list: %w", err)
  }
  masterList.Name = name
  masterList.Description = description
  return masterList, nil
}

func (mls *masterListService) DeleteMasterList(ctx context.Context, masterListID uuid.UUID) error {
  if _, err := mls.GetMasterListChecked(ctx, nil, masterListID, true); err != nil {
    return err
  }
  // Tethered lists survive the master's deletion as plain lists with
  // an empty schema; their tether rows and derived content do not.
  tethers, tErr := mls.listTetherRepo.GetByMasterListIDs(ctx, nil, []uuid.UUID{masterListID})
  if tErr != nil {
    return fmt.Errorf("Failed to fetch list tethers: %w", tErr)
  }
  return mls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := mls.masterItemDetailRelationRepo.DeleteByItemsOfMasterList(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete master item detail relations: %w", err)
    }
    if err := mls.untetheredContentRepo.DeleteByDetailsOfMasterList(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete untethered content: %w", err)
    }
    if err := mls.listTetherRepo.DeleteByMasterListID(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete list tethers: %w", err)
    }
    for _, tether := range tethers {
      if err := mls.listRepo.UpdateFields(ctx, tx, tether.ListID, map[string]interface{}{
        "tethered":   false,
        "updated_at": time.Now(),
      }); err != nil {
        return fmt.Errorf("Failed to clear tethered flag on list: %w", err)
      }
    }
    if err := mls.masterDetailRepo.DeleteScopedToMasterList(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete master details: %w", err)
    }
    if err := mls.masterItemRepo.DeleteScopedToMasterList(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete master items: %w", err)
    }
    if err := mls.masterListItemRelationRepo.DeleteByMasterListID(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete master list item relations: %w", err)
    }
    if err := mls.masterListDetailRelationRepo.DeleteByMasterListID(ctx, tx, masterListID); err != nil {
      return fmt.Errorf("Failed to delete master list detail relations: %w", err)
    }
    if err := mls.masterListRepo.DeleteByIDs(ctx, tx, []uuid.UUID{masterListID}); err != nil {
      return fmt.Errorf("Failed to delete master list: %w", err)
    }
    return nil
  })
}
