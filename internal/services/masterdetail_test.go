package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/incontext-backend/internal/apierr"
	"github.com/yungbote/incontext-backend/internal/repos/testutil"
	"github.com/yungbote/incontext-backend/internal/types"
)

func TestMasterDetailPropagatesToTetheredLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	alice := testutil.SeedUser(t, ctx, env.db, "alice", false)
	bob := testutil.SeedUser(t, ctx, env.db, "bob", false)
	actx := authedCtx(admin)

	master, err := env.masterListService.CreateMasterList(actx, "wines", "")
	if err != nil {
		t.Fatalf("create master list: %v", err)
	}
	// A second master and its tethered list must not receive rows.
	otherMaster, err := env.masterListService.CreateMasterList(actx, "beers", "")
	if err != nil {
		t.Fatalf("create other master list: %v", err)
	}

	aliceList, err := env.listService.CreateTetheredList(authedCtx(alice), master.ID)
	if err != nil {
		t.Fatalf("alice tethered list: %v", err)
	}
	bobList, err := env.listService.CreateTetheredList(authedCtx(bob), master.ID)
	if err != nil {
		t.Fatalf("bob tethered list: %v", err)
	}
	strayList, err := env.listService.CreateTetheredList(authedCtx(bob), otherMaster.ID)
	if err != nil {
		t.Fatalf("stray tethered list: %v", err)
	}

	// Alice has two items, bob has one, the stray list has one.
	for _, name := range []string{"barolo", "chianti"} {
		if _, err := env.itemService.CreateItem(authedCtx(alice), aliceList.ID, name, map[uuid.UUID]string{}); err != nil {
			t.Fatalf("alice item %s: %v", name, err)
		}
	}
	if _, err := env.itemService.CreateItem(authedCtx(bob), bobList.ID, "rioja", map[uuid.UUID]string{}); err != nil {
		t.Fatalf("bob item: %v", err)
	}
	if _, err := env.itemService.CreateItem(authedCtx(bob), strayList.ID, "stout", map[uuid.UUID]string{}); err != nil {
		t.Fatalf("stray item: %v", err)
	}

	detail, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "region", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}

	// One empty cell per (tethered list, item) pair of this master:
	// alice 2 + bob 1 = 3. The stray list gets none.
	var cells []*types.UntetheredContent
	if err := env.db.Where("master_detail_id = ?", detail.ID).Find(&cells).Error; err != nil {
		t.Fatalf("load untethered content: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("propagated cells=%d, want 3", len(cells))
	}
	perList := map[uuid.UUID]int{}
	for _, c := range cells {
		if c.Content != "" {
			t.Fatalf("propagated cell has content %q, want empty", c.Content)
		}
		perList[c.ListID]++
	}
	if perList[aliceList.ID] != 2 || perList[bobList.ID] != 1 || perList[strayList.ID] != 0 {
		t.Fatalf("per-list counts=%v", perList)
	}
}

func TestMasterContentDivergesPerTetheredList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	alice := testutil.SeedUser(t, ctx, env.db, "alice", false)
	bob := testutil.SeedUser(t, ctx, env.db, "bob", false)
	actx := authedCtx(admin)

	master, err := env.masterListService.CreateMasterList(actx, "wines", "")
	if err != nil {
		t.Fatalf("create master list: %v", err)
	}
	region, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "region", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}

	aliceList, err := env.listService.CreateTetheredList(authedCtx(alice), master.ID)
	if err != nil {
		t.Fatalf("alice tethered list: %v", err)
	}
	bobList, err := env.listService.CreateTetheredList(authedCtx(bob), master.ID)
	if err != nil {
		t.Fatalf("bob tethered list: %v", err)
	}

	aliceItem, err := env.itemService.CreateItem(authedCtx(alice), aliceList.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont"})
	if err != nil {
		t.Fatalf("alice item: %v", err)
	}
	if _, err := env.itemService.CreateItem(authedCtx(bob), bobList.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont"}); err != nil {
		t.Fatalf("bob item: %v", err)
	}

	if err := env.itemService.UpdateItem(authedCtx(alice), aliceList.ID, aliceItem.ID, "barolo", map[uuid.UUID]string{region.ID: "langhe"}); err != nil {
		t.Fatalf("update alice item: %v", err)
	}

	aliceView, err := env.listService.GetListView(authedCtx(alice), aliceList.ID)
	if err != nil {
		t.Fatalf("alice view: %v", err)
	}
	bobView, err := env.listService.GetListView(authedCtx(bob), bobList.ID)
	if err != nil {
		t.Fatalf("bob view: %v", err)
	}
	if got := aliceView.Items[0].Cells[0].Content; got != "langhe" {
		t.Fatalf("alice content=%q, want langhe", got)
	}
	if got := bobView.Items[0].Cells[0].Content; got != "piedmont" {
		t.Fatalf("bob content=%q, want piedmont", got)
	}
}

func TestMasterListWritesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	master := testutil.SeedMasterList(t, ctx, env.db, admin.ID, "template")

	// Non-admin reads are fine.
	if _, err := env.masterListService.GetMasterListView(authedCtx(user), master.ID); err != nil {
		t.Fatalf("non-admin read: %v", err)
	}

	// Non-admin writes fail with 403 when the entity exists.
	_, err := env.masterListService.UpdateMasterList(authedCtx(user), master.ID, "renamed", "")
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("non-admin update: status=%d, want 403", status)
	}

	// A missing entity reads as 404 even for a non-admin.
	_, err = env.masterListService.UpdateMasterList(authedCtx(user), uuid.New(), "renamed", "")
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("missing master list: status=%d, want 404", status)
	}
}

func TestDeleteMasterListRemovesTethersAndDerivedContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	alice := testutil.SeedUser(t, ctx, env.db, "alice", false)
	actx := authedCtx(admin)

	master, err := env.masterListService.CreateMasterList(actx, "wines", "")
	if err != nil {
		t.Fatalf("create master list: %v", err)
	}
	region, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "region", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}
	if _, err := env.masterItemService.CreateMasterItem(actx, master.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont"}); err != nil {
		t.Fatalf("create master item: %v", err)
	}
	list, err := env.listService.CreateTetheredList(authedCtx(alice), master.ID)
	if err != nil {
		t.Fatalf("create tethered list: %v", err)
	}
	if _, err := env.itemService.CreateItem(authedCtx(alice), list.ID, "chianti", map[uuid.UUID]string{region.ID: "tuscany"}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := env.masterListService.DeleteMasterList(actx, master.ID); err != nil {
		t.Fatalf("delete master list: %v", err)
	}

	for table, want := range map[string]int64{
		"master_lists":                 0,
		"master_items":                 0,
		"master_details":               0,
		"master_list_item_relations":   0,
		"master_list_detail_relations": 0,
		"master_item_detail_relations": 0,
		"list_tethers":                 0,
		"untethered_content":           0,
		// The derived list and its items survive as an empty-schema list.
		"lists": 1,
		"items": 1,
	} {
		if n := env.count(t, table); n != want {
			t.Fatalf("%s rows=%d, want %d", table, n, want)
		}
	}

	// The surviving list no longer reads as tethered.
	lists, err := env.listService.GetUserLists(authedCtx(alice))
	if err != nil {
		t.Fatalf("get user lists: %v", err)
	}
	if len(lists) != 1 || lists[0].Tethered {
		t.Fatalf("surviving list should have the tethered flag cleared: %+v", lists[0])
	}
}

func TestMasterListIndexRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	testutil.SeedMasterList(t, ctx, env.db, admin.ID, "template")

	_, err := env.masterListService.GetMasterLists(authedCtx(user))
	if status := apierr.StatusOf(err); status != http.StatusForbidden {
		t.Fatalf("non-admin index: status=%d, want 403", status)
	}

	masterLists, err := env.masterListService.GetMasterLists(authedCtx(admin))
	if err != nil {
		t.Fatalf("admin index: %v", err)
	}
	if len(masterLists) != 1 {
		t.Fatalf("master lists=%d, want 1", len(masterLists))
	}
}
