package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/incontext-backend/internal/apierr"
	"github.com/yungbote/incontext-backend/internal/repos/testutil"
)

func TestMasterItemView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	user := testutil.SeedUser(t, ctx, env.db, "alice", false)
	actx := authedCtx(admin)

	master, err := env.masterListService.CreateMasterList(actx, "wines", "")
	if err != nil {
		t.Fatalf("create master list: %v", err)
	}
	region, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "region", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}
	barolo, err := env.masterItemService.CreateMasterItem(actx, master.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont"})
	if err != nil {
		t.Fatalf("create master item: %v", err)
	}

	// The single-item view is public to any logged-in user.
	view, err := env.masterItemService.GetMasterItemView(authedCtx(user), master.ID, barolo.ID)
	if err != nil {
		t.Fatalf("get master item view: %v", err)
	}
	if view.Name != "barolo" {
		t.Fatalf("name=%q, want barolo", view.Name)
	}
	if len(view.Cells) != 1 || view.Cells[0].Name != "region" || view.Cells[0].Content != "piedmont" {
		t.Fatalf("unexpected cells: %+v", view.Cells)
	}

	_, err = env.masterItemService.GetMasterItemView(authedCtx(user), master.ID, uuid.New())
	if status := apierr.StatusOf(err); status != http.StatusNotFound {
		t.Fatalf("missing master item: status=%d, want 404", status)
	}

	other, err := env.masterListService.CreateMasterList(actx, "beers", "")
	if err != nil {
		t.Fatalf("create other master list: %v", err)
	}
	_, err = env.masterItemService.GetMasterItemView(authedCtx(user), other.ID, barolo.ID)
	if status, code := apierr.StatusOf(err), apierr.CodeOf(err); status != http.StatusBadRequest || code != "not_related" {
		t.Fatalf("wrong master list: status=%d code=%q, want 400 not_related", status, code)
	}
}

func TestUpdateMasterItemRequiresFullDetailCoverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, env.db, "admin", true)
	actx := authedCtx(admin)

	master, err := env.masterListService.CreateMasterList(actx, "wines", "")
	if err != nil {
		t.Fatalf("create master list: %v", err)
	}
	region, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "region", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}
	grape, err := env.masterDetailService.CreateMasterDetail(actx, master.ID, "grape", "")
	if err != nil {
		t.Fatalf("create master detail: %v", err)
	}
	barolo, err := env.masterItemService.CreateMasterItem(actx, master.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont", grape.ID: "nebbiolo"})
	if err != nil {
		t.Fatalf("create master item: %v", err)
	}

	err = env.masterItemService.UpdateMasterItem(actx, master.ID, barolo.ID, "barolo", map[uuid.UUID]string{region.ID: "piedmont"})
	if err == nil || err.Error() != "Content for detail grape is required." {
		t.Fatalf("err=%v, want missing-detail validation", err)
	}

	// Nothing changed.
	view, vErr := env.masterItemService.GetMasterItemView(actx, master.ID, barolo.ID)
	if vErr != nil {
		t.Fatalf("get master item view: %v", vErr)
	}
	for _, cell := range view.Cells {
		if cell.Name == "grape" && cell.Content != "nebbiolo" {
			t.Fatalf("grape=%q, want nebbiolo", cell.Content)
		}
	}
}
