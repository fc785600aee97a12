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

type ItemService interface {
  CreateItem(ctx context.Context, listID uuid.UUID, name string, content map[uuid.UUID]string) (*types.Item, error)
  GetItemView(ctx context.Context, listID, itemID uuid.UUID) (*types.ItemView, error)
  UpdateItem(ctx context.Context, listID, itemID uuid.UUID, name string, content map[uuid.UUID]string) error
  DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error
}

type itemService struct {
  db                     *gorm.DB
  log                    *logger.Logger
  listService            ListService
  itemRepo               repos.ItemRepo
  listItemRelationRepo   repos.ListItemRelationRepo
  itemDetailRelationRepo repos.ItemDetailRelationRepo
  untetheredContentRepo  repos.UntetheredContentRepo
}

func NewItemService(
  db *gorm.DB,
  log *logger.Logger,
  listService ListService,
  itemRepo repos.ItemRepo,
  listItemRelationRepo repos.ListItemRelationRepo,
  itemDetailRelationRepo repos.ItemDetailRelationRepo,
  untetheredContentRepo repos.UntetheredContentRepo,
) ItemService {
  serviceLog := log.With("service", "ItemService")
  return &itemService{
    db:                     db,
    log:                    serviceLog,
    listService:            listService,
    itemRepo:               itemRepo,
    listItemRelationRepo:   listItemRelationRepo,
    itemDetailRelationRepo: itemDetailRelationRepo,
    untetheredContentRepo:  untetheredContentRepo,
  }
}

// resolveItemInList checks that the addressed item exists and is
// recorded under the addressed list. A missing item is a 404; an item
// that belongs to a different list is a 400.
func (is *itemService) resolveItemInList(ctx context.Context, tx *gorm.DB, listID, itemID uuid.UUID) (*types.Item, error) {
  items, err := is.itemRepo.GetByIDs(ctx, tx, []uuid.UUID{itemID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch item: %w", err)
  }
  if len(items) == 0 {
    return nil, apierr.NotFound("Item")
  }
  relations, rErr := is.listItemRelationRepo.GetByItemIDs(ctx, tx, []uuid.UUID{itemID})
  if rErr != nil {
    return nil, fmt.Errorf("Failed to fetch list item relation: %w", rErr)
  }
  if len(relations) == 0 {
    return nil, apierr.NotFound("Item")
  }
  if relations[0].ListID != listID {
    return nil, apierr.NotRelated("Item")
  }
  return items[0], nil
}

func (is *itemService) CreateItem(ctx context.Context, listID uuid.UUID, name string, content map[uuid.UUID]string) (*types.Item, error) {
  list, err := is.listService.GetListChecked(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  name = normalization.ParseInputString(name)
  if name == "" {
    return nil, apierr.Validation("Name is required.")
  }
  details, tethered, _, err := is.listService.ResolveEffectiveDetails(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  for _, d := range details {
    if _, ok := content[d.ID]; !ok {
      return nil, apierr.Validation("Content for detail " + d.Name + " is required.")
    }
  }
  now := time.Now()
  item := &types.Item{
    ID:        uuid.New(),
    CreatorID: list.CreatorID,
    Name:      name,
    CreatedAt: now,
    UpdatedAt: now,
  }
  if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := is.itemRepo.Create(ctx, tx, []*types.Item{item}); cErr != nil {
      return fmt.Errorf("Failed to create item: %w", cErr)
    }
    relation := &types.ListItemRelation{
      ID:        uuid.New(),
      ListID:    listID,
      ItemID:    item.ID,
      CreatedAt: now,
    }
    if _, rErr := is.listItemRelationRepo.Create(ctx, tx, []*types.ListItemRelation{relation}); rErr != nil {
      return fmt.Errorf("Failed to create list item relation: %w", rErr)
    }
    if tethered {
      cells := make([]*types.UntetheredContent, 0, len(details))
      for _, d := range details {
        cells = append(cells, &types.UntetheredContent{
          ID:             uuid.New(),
          ListID:         listID,
          ItemID:         item.ID,
          MasterDetailID: d.ID,
          Content:        content[d.ID],
          CreatedAt:      now,
          UpdatedAt:      now,
        })
      }
      if _, ucErr := is.untetheredContentRepo.Create(ctx, tx, cells); ucErr != nil {
        return fmt.Errorf("Failed to create untethered content: %w", ucErr)
      }
    } else {
      cells := make([]*types.ItemDetailRelation, 0, len(details))
      for _, d := range details {
        cells = append(cells, &types.ItemDetailRelation{
          ID:        uuid.New(),
          ItemID:    item.ID,
          DetailID:  d.ID,
          Content:   content[d.ID],
          CreatedAt: now,
          UpdatedAt: now,
        })
      }
      if _, idErr := is.itemDetailRelationRepo.Create(ctx, tx, cells); idErr != nil {
        return fmt.Errorf("Failed to create item detail relations: %w", idErr)
      }
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return item, nil
}

func (is *itemService) GetItemView(ctx context.Context, listID, itemID uuid.UUID) (*types.ItemView, error) {
  if _, err := is.listService.GetListChecked(ctx, nil, listID); err != nil {
    return nil, err
  }
  item, err := is.resolveItemInList(ctx, nil, listID, itemID)
  if err != nil {
    return nil, err
  }
  details, tethered, _, err := is.listService.ResolveEffectiveDetails(ctx, nil, listID)
  if err != nil {
    return nil, err
  }
  content := map[uuid.UUID]map[uuid.UUID]string{}
  if tethered {
    cells, ucErr := is.untetheredContentRepo.GetByListID(ctx, nil, listID)
    if ucErr != nil {
      return nil, fmt.Errorf("Failed to fetch untethered content: %w", ucErr)
    }
    for _, c := range cells {
      if c.ItemID != itemID {
        continue
      }
      if content[c.ItemID] == nil {
        content[c.ItemID] = map[uuid.UUID]string{}
      }
      content[c.ItemID][c.MasterDetailID] = c.Content
    }
  } else {
    cells, idErr := is.itemDetailRelationRepo.GetByItemIDs(ctx, nil, []uuid.UUID{itemID})
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
  views := composeItems([]*types.Item{item}, details, content)
  return views[0], nil
}

func (is *itemService) UpdateItem(ctx context.Context, listID, itemID uuid.UUID, name string, content map[uuid.UUID]string) error {
  if _, err := is.listService.GetListChecked(ctx, nil, listID); err != nil {
    return err
  }
  if _, err := is.resolveItemInList(ctx, nil, listID, itemID); err != nil {
    return err
  }
  name = normalization.ParseInputString(name)
  if name == "" {
    return apierr.Validation("Name is required.")
  }
  details, tethered, _, err := is.listService.ResolveEffectiveDetails(ctx, nil, listID)
  if err != nil {
    return err
  }
  for _, d := range details {
    if _, ok := content[d.ID]; !ok {
      return apierr.Validation("Content for detail " + d.Name + " is required.")
    }
  }
  return is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if uErr := is.itemRepo.UpdateFields(ctx, tx, itemID, map[string]interface{}{
      "name":       name,
      "updated_at": time.Now(),
    }); uErr != nil {
      return fmt.Errorf("Failed to update item: %w", uErr)
    }
    for _, d := range details {
      value := content[d.ID]
      if tethered {
        if ucErr := is.untetheredContentRepo.UpdateContent(ctx, tx, listID, itemID, d.ID, value); ucErr != nil {
          return fmt.Errorf("Failed to update untethered content: %w", ucErr)
        }
      } else {
        if idErr := is.itemDetailRelationRepo.UpdateContent(ctx, tx, itemID, d.ID, value); idErr != nil {
          return fmt.Errorf("Failed to update item detail relation: %w", idErr)
        }
      }
    }
    return nil
  })
}

func (is *itemService) DeleteItem(ctx context.Context, listID, itemID uuid.UUID) error {
  if _, err := is.listService.GetListChecked(ctx, nil, listID); err != nil {
    return err
  }
  if _, err := is.resolveItemInList(ctx, nil, listID, itemID); err != nil {
    return err
  }
  return is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := is.itemDetailRelationRepo.DeleteByItemID(ctx, tx, itemID); err != nil {
      return fmt.Errorf("Failed to delete item detail relations: %w", err)
    }
    if err := is.untetheredContentRepo.DeleteByListAndItem(ctx, tx, listID, itemID); err != nil {
      return fmt.Errorf("Failed to delete untethered content: %w", err)
    }
    if err := is.listItemRelationRepo.DeleteByListAndItem(ctx, tx, listID, itemID); err != nil {
      return fmt.Errorf("Failed to delete list item relation: %w", err)
    }
    if err := is.itemRepo.DeleteByIDs(ctx, tx, []uuid.UUID{itemID}); err != nil {
      return fmt.Errorf("Failed to delete item: %w", err)
    }
    return nil
  })
}
