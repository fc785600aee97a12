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

type ListService interface {
  GetUserLists(ctx context.Context) ([]*types.List, error)
  CreateList(ctx context.Context, name, description string) (*types.List, error)
  GetListView(ctx context.Context, listID uuid.UUID) (*types.ListView, error)
  UpdateList(ctx context.Context, listID uuid.UUID, name, description string) (*types.List, error)
  DeleteList(ctx context.Context, listID uuid.UUID) error
  CreateTetheredList(ctx context.Context, masterListID uuid.UUID) (*types.List, error)

  // GetListChecked resolves the list or fails with 404, then checks
  // ownership and fails with 403. Existence always wins over access.
  GetListChecked(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (*types.List, error)

  // ResolveEffectiveDetails returns the detail schema the list's items
  // answer to. For a tethered list that is the master list's details.
  ResolveEffectiveDetails(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]types.DetailRef, bool, *uuid.UUID, error)
}

type listService struct {
  db                     *gorm.DB
  log                    *logger.Logger
  listRepo               repos.ListRepo
  itemRepo               repos.ItemRepo
  detailRepo             repos.DetailRepo
  listItemRelationRepo   repos.ListItemRelationRepo
  listDetailRelationRepo repos.ListDetailRelationRepo
  itemDetailRelationRepo repos.ItemDetailRelationRepo
  listTetherRepo         repos.ListTetherRepo
  untetheredContentRepo  repos.UntetheredContentRepo
  masterListRepo         repos.MasterListRepo
  masterDetailRepo       repos.MasterDetailRepo
}

func NewListService(
  db *gorm.DB,
  log *logger.Logger,
  listRepo repos.ListRepo,
  itemRepo repos.ItemRepo,
  detailRepo repos.DetailRepo,
  listItemRelationRepo repos.ListItemRelationRepo,
  listDetailRelationRepo repos.ListDetailRelationRepo,
  itemDetailRelationRepo repos.ItemDetailRelationRepo,
  listTetherRepo repos.ListTetherRepo,
  untetheredContentRepo repos.UntetheredContentRepo,
  masterListRepo repos.MasterListRepo,
  masterDetailRepo repos.MasterDetailRepo,
) ListService {
  serviceLog := log.With("service", "ListService")
  return &listService{
    db:                     db,
    log:                    serviceLog,
    listRepo:               listRepo,
    itemRepo:               itemRepo,
    detailRepo:             detailRepo,
    listItemRelationRepo:   listItemRelationRepo,
    listDetailRelationRepo: listDetailRelationRepo,
    itemDetailRelationRepo: itemDetailRelationRepo,
    listTetherRepo:         listTetherRepo,
    untetheredContentRepo:  untetheredContentRepo,
    masterListRepo:         masterListRepo,
    masterDetailRepo:       masterDetailRepo,
  }
}

func (ls *listService) GetUserLists(ctx context.Context) ([]*types.List, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  lists, err := ls.listRepo.GetByCreatorIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch lists for user: %w", err)
  }
  return lists, nil
}

func (ls *listService) CreateList(ctx context.Context, name, description string) (*types.List, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  now := time.Now()
  list := &types.List{
    ID:          uuid.New(),
    CreatorID:   rd.UserID,
    Name:        name,
    Description: description,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := ls.listRepo.Create(ctx, tx, []*types.List{list}); cErr != nil {
      return fmt.Errorf("Failed to create list: %w", cErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return list, nil
}

func (ls *listService) GetListChecked(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (*types.List, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  lists, err := ls.listRepo.GetByIDs(ctx, tx, []uuid.UUID{listID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch list: %w", err)
  }
  if len(lists) == 0 {
    return nil, apierr.NotFound("List")
  }
  list := lists[0]
  if list.CreatorID != rd.UserID {
    return nil, apierr.Forbidden("List belongs to another user")
  }
  return list, nil
}

func (ls *listService) ResolveEffectiveDetails(ctx context.Context, tx *gorm.DB, listID uuid.UUID) ([]types.DetailRef, bool, *uuid.UUID, error) {
  tethers, err := ls.listTetherRepo.GetByListIDs(ctx, tx, []uuid.UUID{listID})
  if err != nil {
    return nil, false, nil, fmt.Errorf("Failed to fetch list tether: %w", err)
  }
  if len(tethers) > 0 {
    masterListID := tethers[0].MasterListID
    masterDetails, mdErr := ls.masterDetailRepo.GetByMasterListID(ctx, tx, masterListID)
    if mdErr != nil {
      return nil, false, nil, fmt.Errorf("Failed to fetch master details: %w", mdErr)
    }
    refs := make([]types.DetailRef, 0, len(masterDetails))
    for _, md := range masterDetails {
      refs = append(refs, types.DetailRef{ID: md.ID, Name: md.Name, Description: md.Description})
    }
    return refs, true, &masterListID, nil
  }
  details, dErr := ls.detailRepo.GetByListID(ctx, tx, listID)
  if dErr != nil {
    return nil, false, nil, fmt.Errorf("Failed to fetch details: %w", dErr)
  }
  refs := make([]types.DetailRef, 0, len(details))
  for _, d := range details {
    refs = append(refs, types.DetailRef{ID: d.ID, Name: d.Name, Description: d.Description})
  }
  return refs, false, nil, nil
}

// composeItems pairs every item with a cell per effective detail,
// falling back to empty content where no stored cell exists.
func composeItems(items []*types.Item, details []types.DetailRef, content map[uuid.UUID]map[uuid.UUID]string) []*types.ItemView {
  views := make([]*types.ItemView, 0, len(items))
  for _, item := range items {
    cells := make([]types.DetailCell, 0, len(details))
    for _, d := range details {
      cell := types.DetailCell{DetailID: d.ID, Name: d.Name}
      if byDetail, ok := content[item.ID]; ok {
        cell.Content = byDetail[d.ID]
      }
      cells = append(cells, cell)
    }
    views = append(views, &types.ItemView{
      ID:        item.ID,
      Name:      item.Name,
      CreatedAt: item.CreatedAt,
      Cells:     cells,
    })
  }
  return views
}

func (ls *listService) GetListView(ctx context.Context, listID uuid.UUID) (*types.ListView, error) {
  list, err := ls.GetListChecked(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  details, tethered, masterListID, err := ls.ResolveEffectiveDetails(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  items, err := ls.itemRepo.GetByListID(ctx, nil, listID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch list items: %w", err)
  }
  content := map[uuid.UUID]map[uuid.UUID]string{}
  if tethered {
    cells, ucErr := ls.untetheredContentRepo.GetByListID(ctx, nil, listID)
    if ucErr != nil {
      return nil, fmt.Errorf("Failed to fetch untethered content: %w", ucErr)
    }
    for _, c := range cells {
      if content[c.ItemID] == nil {
        content[c.ItemID] = map[uuid.UUID]string{}
      }
      content[c.ItemID][c.MasterDetailID] = c.Content
    }
  } else if len(items) > 0 {
    itemIDs := make([]uuid.UUID, 0, len(items))
    for _, item := range items {
      itemIDs = append(itemIDs, item.ID)
    }
    cells, idErr := ls.itemDetailRelationRepo.GetByItemIDs(ctx, nil, itemIDs)
    if idErr != nil {
      return nil, fmt.Errorf("Failed to fetch item detail relations: %w", idErr)
    }
    for _, c := range cells {
      if content[c.ItemID] == nil {
        content[c.ItemID] = map[uuid.UUID]string{}
      }
      content[c.ItemID][c.DetailID] = c.Content
    }
  }
  return &types.ListView{
    List:         list,
    Tethered:     tethered,
    MasterListID: masterListID,
    Details:      details,
    Items:        composeItems(items, details, content),
  }, nil
}

func (ls *listService) UpdateList(ctx context.Context, listID uuid.UUID, name, description string) (*types.List, error) {
  list, err := ls.GetListChecked(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  tethers, tErr := ls.listTetherRepo.GetByListIDs(ctx, nil, []uuid.UUID{listID})
  if tErr != nil {
    return nil, fmt.Errorf("Failed to fetch list tether: %w", tErr)
  }
  if len(tethers) > 0 {
    return nil, apierr.Forbidden("Tethered lists cannot be edited")
  }
  name = normalization.ParseInputString(name)
  description = normalization.ParseInputString(description)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return ls.listRepo.UpdateFields(ctx, tx, listID, map[string]interface{}{
      "name":        name,
      "description": description,
      "updated_at":  time.Now(),
    })
  }); err != nil {
    return nil, fmt.Errorf("Failed to update list: %w", err)
  }
  list.Name = name
  list.Description = description
  return list, nil
}

func (ls *listService) DeleteList(ctx context.Context, listID uuid.UUID) error {
  if _, err := ls.GetListChecked(ctx, nil, listID); err != nil {
    return err
  }
  // Children go first: content cells, then tether rows, then the
  // entities scoped to this list, then the join rows, then the list.
  return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := ls.itemDetailRelationRepo.DeleteByItemsOfList(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete item detail relations: %w", err)
    }
    if err := ls.untetheredContentRepo.DeleteByListID(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete untethered content: %w", err)
    }
    if err := ls.listTetherRepo.DeleteByListID(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete list tether: %w", err)
    }
    if err := ls.detailRepo.DeleteScopedToList(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete details: %w", err)
    }
    if err := ls.itemRepo.DeleteScopedToList(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete items: %w", err)
    }
    if err := ls.listItemRelationRepo.DeleteByListID(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete list item relations: %w", err)
    }
    if err := ls.listDetailRelationRepo.DeleteByListID(ctx, tx, listID); err != nil {
      return fmt.Errorf("Failed to delete list detail relations: %w", err)
    }
    if err := ls.listRepo.DeleteByIDs(ctx, tx, []uuid.UUID{listID}); err != nil {
      return fmt.Errorf("Failed to delete list: %w", err)
    }
    return nil
  })
}

func (ls *listService) CreateTetheredList(ctx context.Context, masterListID uuid.UUID) (*types.List, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  masterLists, mlErr := ls.masterListRepo.GetByIDs(ctx, nil, []uuid.UUID{masterListID})
  if mlErr != nil {
    return nil, fmt.Errorf("Failed to fetch master list: %w", mlErr)
  }
  if len(masterLists) == 0 {
    return nil, apierr.NotFound("Master list")
  }
  now := time.Now()
  list := &types.List{
    ID:        uuid.New(),
    CreatorID: rd.UserID,
    Name:      "tethered",
    Tethered:  true,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := ls.listRepo.Create(ctx, tx, []*types.List{list}); cErr != nil {
      return fmt.Errorf("Failed to create tethered list: %w", cErr)
    }
    tether := &types.ListTether{
      ID:           uuid.New(),
      ListID:       list.ID,
      MasterListID: masterListID,
      CreatedAt:    now,
    }
    if _, tErr := ls.listTetherRepo.Create(ctx, tx, []*types.ListTether{tether}); tErr != nil {
      return fmt.Errorf("Failed to create list tether: %w", tErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return list, nil
}
