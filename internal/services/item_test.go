package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/incontext-backend/internal/apierr"
	"github.com/yungbote/incontext-backend/internal/repos/testutil"
)

func TestCreateItemRequiresFullDetailCoverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	uctx := authedCtx(user)

	list, err := env.listService.CreateList(uctx, "books", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	author, err := env.detailService.CreateDetail(uctx, list.ID, "author", "")
	if err != nil {
		t.Fatalf("create detail: %v", err)
	}
	if _, err := env.detailService.CreateDetail(uctx, list.ID, "year", ""); err != nil {
		t.Fatalf("create detail: %v", err)
	}

	_, err = env.itemService.CreateItem(uctx, list.ID, "dune", map[uuid.UUID]string{
		author.ID: "herbert",
	})
	if err == nil {
		t.Fatal("expected validation error for missing detail content")
	}
	if code := apierr.CodeOf(err); code != "validation_failed" {
		t.Fatalf("code=%q, want validation_failed", code)
	}
}

func TestItemAddressedThroughWrongList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	uctx := authedCtx(user)

	listA, err := env.listService.CreateList(uctx, "a", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	listB, err := env.listService.CreateList(uctx, "b", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	item, err := env.itemService.CreateItem(uctx, listA.ID, "dune", map[uuid.UUID]string{})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	// Wrong list is a 400, not a 404: the item exists, the addressing
	// is bad.
	_, err = env.itemService.GetItemView(uctx, listB.ID, item.ID)
	if status := apierr.StatusOf(err); status != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", status)
	}
	if code := apierr.CodeOf(err); code != "not_related" {
		t.Fatalf("code=%q, want not_related", code)
	}

	// A missing item is a 404.
	_, err = env.itemService.GetItemView(uctx, listA.ID, uuid.New())
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", status)
	}
}

func TestUpdateItemContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	uctx := authedCtx(user)

	list, err := env.listService.CreateList(uctx, "books", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	author, err := env.detailService.CreateDetail(uctx, list.ID, "author", "")
	if err != nil {
		t.Fatalf("create detail: %v", err)
	}
	item, err := env.itemService.CreateItem(uctx, list.ID, "dune", map[uuid.UUID]string{author.ID: "hebert"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := env.itemService.UpdateItem(uctx, list.ID, item.ID, "dune", map[uuid.UUID]string{author.ID: "herbert"}); err != nil {
		t.Fatalf("update item: %v", err)
	}

	view, err := env.itemService.GetItemView(uctx, list.ID, item.ID)
	if err != nil {
		t.Fatalf("get item view: %v", err)
	}
	if view.Cells[0].Content != "herbert" {
		t.Fatalf("content=%q, want herbert", view.Cells[0].Content)
	}
}

func TestUpdateItemRequiresFullDetailCoverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	uctx := authedCtx(user)

	list, err := env.listService.CreateList(uctx, "books", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	author, err := env.detailService.CreateDetail(uctx, list.ID, "author", "")
	if err != nil {
		t.Fatalf("create detail: %v", err)
	}
	year, err := env.detailService.CreateDetail(uctx, list.ID, "year", "")
	if err != nil {
		t.Fatalf("create detail: %v", err)
	}
	item, err := env.itemService.CreateItem(uctx, list.ID, "dune", map[uuid.UUID]string{author.ID: "herbert", year.ID: "1965"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	err = env.itemService.UpdateItem(uctx, list.ID, item.ID, "dune", map[uuid.UUID]string{author.ID: "herbert"})
	if err == nil || err.Error() != "Content for detail year is required." {
		t.Fatalf("err=%v, want missing-detail validation", err)
	}

	view, vErr := env.itemService.GetItemView(uctx, list.ID, item.ID)
	if vErr != nil {
		t.Fatalf("get item view: %v", vErr)
	}
	for _, cell := range view.Cells {
		if cell.Name == "year" && cell.Content != "1965" {
			t.Fatalf("year=%q, want 1965", cell.Content)
		}
	}
}

func TestDeleteItemOnTetheredListAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	actx := authedCtx(admin)
	uctx := authedCtx(user)

	master, err := env.masterListService.CreateMasterList(actx, "wines", "")
	if err != nil {
		t.Fatalf("create master list: %v", err)
	}
	region, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "region", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}
	list, err := env.listService.CreateTetheredList(uctx, master.ID)
	if err != nil {
		t.Fatalf("create tethered list: %v", err)
	}
	item, err := env.itemService.CreateItem(uctx, list.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	// Tethered lists freeze their schema, not their item set.
	if err := env.itemService.DeleteItem(uctx, list.ID, item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if n := env.count(t, "items"); n != 0 {
		t.Fatalf("items rows=%d, want 0", n)
	}
	if n := env.count(t, "untethered_content"); n != 0 {
		t.Fatalf("untethered_content rows=%d, want 0", n)
	}
}
