package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/incontext-backend/internal/apierr"
	"github.com/yungbote/incontext-backend/internal/repos/testutil"
)

func TestCreateListRequiresName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)

	_, err := env.listService.CreateList(authedCtx(user), "   ", "desc")
	if err == nil {
		t.Fatal("expected validation error for empty name")
	}
	if status := apierr.StatusOf(err); status != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", status, http.StatusBadRequest)
	}
	if code := apierr.CodeOf(err); code != "validation_failed" {
		t.Fatalf("code=%q, want validation_failed", code)
	}
}

func TestListViewComposesDetailCells(t *testing.T) {
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

	item, err := env.itemService.CreateItem(uctx, list.ID, "dune", map[uuid.UUID]string{
		author.ID: "herbert",
		year.ID:   "1965",
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	view, err := env.listService.GetListView(uctx, list.ID)
	if err != nil {
		t.Fatalf("get list view: %v", err)
	}
	if view.Tethered {
		t.Fatal("plain list reported as tethered")
	}
	if len(view.Details) != 2 {
		t.Fatalf("details=%d, want 2", len(view.Details))
	}
	if len(view.Items) != 1 {
		t.Fatalf("items=%d, want 1", len(view.Items))
	}
	got := view.Items[0]
	if got.ID != item.ID || got.Name != "dune" {
		t.Fatalf("unexpected item: %+v", got)
	}
	cells := map[string]string{}
	for _, cell := range got.Cells {
		cells[cell.Name] = cell.Content
	}
	if cells["author"] != "herbert" || cells["year"] != "1965" {
		t.Fatalf("unexpected cells: %v", cells)
	}
}

func TestListLookupExistenceBeatsOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, env.db, "owner", false)
	other := testutil.SeedUser(t, ctx, env.db, "other", false)
	list := testutil.SeedList(t, ctx, env.db, owner.ID, "private")

	// A list that does not exist is a 404 even for a stranger.
	_, err := env.listService.GetListView(authedCtx(other), uuid.New())
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("missing list: status=%d, want 404", status)
	}

	// A list that exists but belongs to someone else is a 403.
	_, err = env.listService.GetListView(authedCtx(other), list.ID)
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("foreign list: status=%d, want 403", status)
	}

	// The owner sees it.
	if _, err := env.listService.GetListView(authedCtx(owner), list.ID); err != nil {
		t.Fatalf("owner view: %v", err)
	}
}

func TestTetheredListImmutable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	master := testutil.SeedMasterList(t, ctx, env.db, admin.ID, "template")

	list, err := env.listService.CreateTetheredList(authedCtx(user), master.ID)
	if err != nil {
		t.Fatalf("create tethered list: %v", err)
	}
	if list.Name != "tethered" {
		t.Fatalf("placeholder name=%q, want tethered", list.Name)
	}

	_, err = env.listService.UpdateList(authedCtx(user), list.ID, "renamed", "")
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("edit tethered list: status=%d, want 403", status)
	}

	_, err = env.detailService.CreateDetail(authedCtx(user), list.ID, "extra", "")
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("new detail on tethered list: status=%d, want 403", status)
	}
}

func TestCreateTetheredListMissingMaster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)

	_, err := env.listService.CreateTetheredList(authedCtx(user), uuid.New())
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", status)
	}
}

func TestTetheredListViewUsesMasterSchema(t *testing.T) {
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
	if _, err := env.itemService.CreateItem(uctx, list.ID, "barolo", map[uuid.UUID]string{
		region.ID: "piedmont",
	}); err != nil {
		t.Fatalf("create item on tethered list: %v", err)
	}

	view, err := env.listService.GetListView(uctx, list.ID)
	if err != nil {
		t.Fatalf("get tethered list view: %v", err)
	}
	if !view.Tethered {
		t.Fatal("tethered list reported as plain")
	}
	if view.MasterListID == nil || *view.MasterListID != master.ID {
		t.Fatalf("master list id=%v, want %v", view.MasterListID, master.ID)
	}
	if len(view.Details) != 1 || view.Details[0].ID != region.ID || view.Details[0].Name != "region" {
		t.Fatalf("unexpected details: %+v", view.Details)
	}
	if len(view.Items) != 1 || view.Items[0].Cells[0].Content != "piedmont" {
		t.Fatalf("unexpected items: %+v", view.Items)
	}

	// Content stays local: it lives in untethered_content, not in the
	// plain-list cell table.
	if n := env.count(t, "untethered_content"); n != 1 {
		t.Fatalf("untethered_content rows=%d, want 1", n)
	}
	if n := env.count(t, "item_detail_relations"); n != 0 {
		t.Fatalf("item_detail_relations rows=%d, want 0", n)
	}
}

func TestDeleteListCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	uctx := authedCtx(user)

	list, err := env.listService.CreateList(uctx, "books", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	detail, err := env.detailService.CreateDetail(uctx, list.ID, "author", "")
	if err != nil {
		t.Fatalf("create detail: %v", err)
	}
	for _, name := range []string{"dune", "emma"} {
		if _, err := env.itemService.CreateItem(uctx, list.ID, name, map[uuid.UUID]string{detail.ID: "x"}); err != nil {
			t.Fatalf("create item %s: %v", name, err)
		}
	}

	// A second list must survive untouched.
	otherList, err := env.listService.CreateList(uctx, "other", "")
	if err != nil {
		t.Fatalf("create other list: %v", err)
	}
	otherDetail, err := env.detailService.CreateDetail(uctx, otherList.ID, "note", "")
	if err != nil {
		t.Fatalf("create other detail: %v", err)
	}
	if _, err := env.itemService.CreateItem(uctx, otherList.ID, "keepme", map[uuid.UUID]string{otherDetail.ID: "y"}); err != nil {
		t.Fatalf("create other item: %v", err)
	}

	if err := env.listService.DeleteList(uctx, list.ID); err != nil {
		t.Fatalf("delete list: %v", err)
	}

	for table, want := range map[string]int64{
		"lists":                 1,
		"items":                 1,
		"details":               1,
		"list_item_relations":   1,
		"list_detail_relations": 1,
		"item_detail_relations": 1,
	} {
		if n := env.count(t, table); n != want {
			t.Fatalf("%s rows=%d, want %d", table, n, want)
		}
	}
}

func TestDeleteDetailLeavesItems(t *testing.T) {
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
	if _, err := env.itemService.CreateItem(uctx, list.ID, "dune", map[uuid.UUID]string{author.ID: "herbert", year.ID: "1965"}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := env.detailService.DeleteDetail(uctx, list.ID, year.ID); err != nil {
		t.Fatalf("delete detail: %v", err)
	}

	if n := env.count(t, "items"); n != 1 {
		t.Fatalf("items rows=%d, want 1", n)
	}
	if n := env.count(t, "details"); n != 1 {
		t.Fatalf("details rows=%d, want 1", n)
	}
	if n := env.count(t, "item_detail_relations"); n != 1 {
		t.Fatalf("item_detail_relations rows=%d, want 1", n)
	}
}

func TestDetailBackfillOnExistingItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	uctx := authedCtx(user)

	list, err := env.listService.CreateList(uctx, "books", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := env.itemService.CreateItem(uctx, list.ID, "dune", map[uuid.UUID]string{}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := env.itemService.CreateItem(uctx, list.ID, "emma", map[uuid.UUID]string{}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if _, err := env.detailService.CreateDetail(uctx, list.ID, "author", ""); err != nil {
		t.Fatalf("create detail: %v", err)
	}

	// One empty cell per existing item.
	if n := env.count(t, "item_detail_relations"); n != 2 {
		t.Fatalf("item_detail_relations rows=%d, want 2", n)
	}

	view, err := env.listService.GetListView(uctx, list.ID)
	if err != nil {
		t.Fatalf("get list view: %v", err)
	}
	for _, item := range view.Items {
		if len(item.Cells) != 1 || item.Cells[0].Content != "" {
			t.Fatalf("unexpected cells for %s: %+v", item.Name, item.Cells)
		}
	}
}
