package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/incontext-backend/internal/repos"
	"github.com/yungbote/incontext-backend/internal/repos/testutil"
	"github.com/yungbote/incontext-backend/internal/requestdata"
	"github.com/yungbote/incontext-backend/internal/types"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB

	authService         AuthService
	listService         ListService
	itemService         ItemService
	detailService       DetailService
	masterListService   MasterListService
	masterItemService   MasterItemService
	masterDetailService MasterDetailService
	agentService        AgentService
	masterAgentService  MasterAgentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	userTokenRepo := repos.NewUserTokenRepo(db, log)
	listRepo := repos.NewListRepo(db, log)
	itemRepo := repos.NewItemRepo(db, log)
	detailRepo := repos.NewDetailRepo(db, log)
	listItemRelationRepo := repos.NewListItemRelationRepo(db, log)
	listDetailRelationRepo := repos.NewListDetailRelationRepo(db, log)
	itemDetailRelationRepo := repos.NewItemDetailRelationRepo(db, log)
	listTetherRepo := repos.NewListTetherRepo(db, log)
	untetheredContentRepo := repos.NewUntetheredContentRepo(db, log)
	masterListRepo := repos.NewMasterListRepo(db, log)
	masterItemRepo := repos.NewMasterItemRepo(db, log)
	masterDetailRepo := repos.NewMasterDetailRepo(db, log)
	masterListItemRelationRepo := repos.NewMasterListItemRelationRepo(db, log)
	masterListDetailRelationRepo := repos.NewMasterListDetailRelationRepo(db, log)
	masterItemDetailRelationRepo := repos.NewMasterItemDetailRelationRepo(db, log)
	agentRepo := repos.NewAgentRepo(db, log)
	tetheredAgentRepo := repos.NewTetheredAgentRepo(db, log)
	masterAgentRepo := repos.NewMasterAgentRepo(db, log)
	agentModelRepo := repos.NewAgentModelRepo(db, log)

	authService := NewAuthService(db, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
	listService := NewListService(
		db, log,
		listRepo, itemRepo, detailRepo,
		listItemRelationRepo, listDetailRelationRepo, itemDetailRelationRepo,
		listTetherRepo, untetheredContentRepo,
		masterListRepo, masterDetailRepo,
	)
	itemService := NewItemService(db, log, listService, itemRepo, listItemRelationRepo, itemDetailRelationRepo, untetheredContentRepo)
	detailService := NewDetailService(db, log, listService, detailRepo, itemRepo, listDetailRelationRepo, itemDetailRelationRepo, listTetherRepo)
	masterListService := NewMasterListService(
		db, log, userRepo,
		masterListRepo, masterItemRepo, masterDetailRepo,
		masterListItemRelationRepo, masterListDetailRelationRepo, masterItemDetailRelationRepo,
		listTetherRepo, untetheredContentRepo, listRepo,
	)
	masterItemService := NewMasterItemService(db, log, masterListService, masterItemRepo, masterDetailRepo, masterListItemRelationRepo, masterItemDetailRelationRepo)
	masterDetailService := NewMasterDetailService(
		db, log, masterListService,
		masterDetailRepo, masterItemRepo,
		masterListDetailRelationRepo, masterItemDetailRelationRepo,
		listTetherRepo, listItemRelationRepo, untetheredContentRepo,
	)
	agentService := NewAgentService(db, log, agentRepo, tetheredAgentRepo, masterAgentRepo, agentModelRepo)
	masterAgentService := NewMasterAgentService(db, log, masterAgentRepo, tetheredAgentRepo, agentModelRepo)

	return &testEnv{
		db:                  db,
		authService:         authService,
		listService:         listService,
		itemService:         itemService,
		detailService:       detailService,
		masterListService:   masterListService,
		masterItemService:   masterItemService,
		masterDetailService: masterDetailService,
		agentService:        agentService,
		masterAgentService:  masterAgentService,
	}
}

func authedCtx(user *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   user.ID,
		Username: user.Username,
		Admin:    user.Admin,
	})
}

func (e *testEnv) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	if err := e.db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
