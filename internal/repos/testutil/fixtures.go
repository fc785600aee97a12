package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/incontext-backend/internal/types"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string, admin bool) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Username:  username,
		Password:  "pw",
		Admin:     admin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedList(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, name string) *types.List {
	tb.Helper()
	l := &types.List{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed list: %v", err)
	}
	return l
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, listID, creatorID uuid.UUID, name string) *types.Item {
	tb.Helper()
	i := &types.Item{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	rel := &types.ListItemRelation{ID: uuid.New(), ListID: listID, ItemID: i.ID, CreatedAt: time.Now()}
	if err := tx.WithContext(ctx).Create(rel).Error; err != nil {
		tb.Fatalf("seed list item relation: %v", err)
	}
	return i
}

func SeedDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, listID, creatorID uuid.UUID, name string) *types.Detail {
	tb.Helper()
	d := &types.Detail{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed detail: %v", err)
	}
	rel := &types.ListDetailRelation{ID: uuid.New(), ListID: listID, DetailID: d.ID, CreatedAt: time.Now()}
	if err := tx.WithContext(ctx).Create(rel).Error; err != nil {
		tb.Fatalf("seed list detail relation: %v", err)
	}
	return d
}

func SeedCell(tb testing.TB, ctx context.Context, tx *gorm.DB, itemID, detailID uuid.UUID, content string) *types.ItemDetailRelation {
	tb.Helper()
	c := &types.ItemDetailRelation{
		ID:        uuid.New(),
		ItemID:    itemID,
		DetailID:  detailID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed item detail relation: %v", err)
	}
	return c
}

func SeedMasterList(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, name string) *types.MasterList {
	tb.Helper()
	ml := &types.MasterList{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(ml).Error; err != nil {
		tb.Fatalf("seed master list: %v", err)
	}
	return ml
}

func SeedMasterDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, masterListID, creatorID uuid.UUID, name string) *types.MasterDetail {
	tb.Helper()
	md := &types.MasterDetail{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(md).Error; err != nil {
		tb.Fatalf("seed master detail: %v", err)
	}
	rel := &types.MasterListDetailRelation{ID: uuid.New(), MasterListID: masterListID, MasterDetailID: md.ID, CreatedAt: time.Now()}
	if err := tx.WithContext(ctx).Create(rel).Error; err != nil {
		tb.Fatalf("seed master list detail relation: %v", err)
	}
	return md
}

func SeedTether(tb testing.TB, ctx context.Context, tx *gorm.DB, listID, masterListID uuid.UUID) *types.ListTether {
	tb.Helper()
	lt := &types.ListTether{ID: uuid.New(), ListID: listID, MasterListID: masterListID, CreatedAt: time.Now()}
	if err := tx.WithContext(ctx).Create(lt).Error; err != nil {
		tb.Fatalf("seed list tether: %v", err)
	}
	return lt
}

func SeedAgentModel(tb testing.TB, ctx context.Context, tx *gorm.DB, modelCode string) *types.AgentModel {
	tb.Helper()
	m := &types.AgentModel{
		ID:           uuid.New(),
		ProviderName: "provider",
		ProviderCode: "prov",
		ModelName:    modelCode,
		ModelCode:    modelCode,
		CreatedAt:    time.Now(),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed agent model: %v", err)
	}
	return m
}
