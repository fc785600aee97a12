package services

import (
  "context"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/yungbote/incontext-backend/internal/apierr"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/repos"
  "github.com/yungbote/incontext-backend/internal/requestdata"
  "github.com/yungbote/incontext-backend/internal/types"
)

type MasterAgentService interface {
  GetMasterAgents(ctx context.Context) ([]*types.MasterAgent, error)
  CreateMasterAgent(ctx context.Context, input AgentInput) (*types.MasterAgent, error)
  GetMasterAgentChecked(ctx context.Context, masterAgentID uuid.UUID, requireAdmin bool) (*types.MasterAgent, error)
  UpdateMasterAgent(ctx context.Context, masterAgentID uuid.UUID, input AgentInput) (*types.MasterAgent, error)
  DeleteMasterAgent(ctx context.Context, masterAgentID uuid.UUID) error
  GetAgentModels(ctx context.Context) ([]*types.AgentModel, error)
}

type masterAgentService struct {
  db                *gorm.DB
  log               *logger.Logger
  masterAgentRepo   repos.MasterAgentRepo
  tetheredAgentRepo repos.TetheredAgentRepo
  agentModelRepo    repos.AgentModelRepo
}

func NewMasterAgentService(
  db *gorm.DB,
  log *logger.Logger,
  masterAgentRepo repos.MasterAgentRepo,
  tetheredAgentRepo repos.TetheredAgentRepo,
  agentModelRepo repos.AgentModelRepo,
) MasterAgentService {
  serviceLog := log.With("service", "MasterAgentService")
  return &masterAgentService{
    db:                db,
    log:               serviceLog,
    masterAgentRepo:   masterAgentRepo,
    tetheredAgentRepo: tetheredAgentRepo,
    agentModelRepo:    agentModelRepo,
  }
}

func (mas *masterAgentService) GetMasterAgents(ctx context.Context) ([]*types.MasterAgent, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if !rd.Admin {
    return nil, apierr.Forbidden("Admin access required")
  }
  masterAgents, err := mas.masterAgentRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch master agents: %w", err)
  }
  return masterAgents, nil
}

func (mas *masterAgentService) GetMasterAgentChecked(ctx context.Context, masterAgentID uuid.UUID, requireAdmin bool) (*types.MasterAgent, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  masterAgents, err := mas.masterAgentRepo.GetByIDs(ctx, nil, []uuid.UUID{masterAgentID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch master agent: %w", err)
  }
  if len(masterAgents) == 0 {
    return nil, apierr.NotFound("Master agent")
  }
  if requireAdmin && !rd.Admin {
    return nil, apierr.Forbidden("Admin access required")
  }
  return masterAgents[0], nil
}

func (mas *masterAgentService) CreateMasterAgent(ctx context.Context, input AgentInput) (*types.MasterAgent, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if !rd.Admin {
    return nil, apierr.Forbidden("Admin access required")
  }
  if vErr := validateAgentInput(&input); vErr != nil {
    return nil, vErr
  }
  models, mErr := mas.agentModelRepo.GetByIDs(ctx, nil, []uuid.UUID{input.ModelID})
  if mErr != nil {
    return nil, fmt.Errorf("Failed to fetch agent model: %w", mErr)
  }
  if len(models) == 0 {
    return nil, apierr.Validation("Model is not recognized.")
  }
  now := time.Now()
  masterAgent := &types.MasterAgent{
    ID:           uuid.New(),
    CreatorID:    rd.UserID,
    Name:         input.Name,
    Description:  input.Description,
    ModelID:      input.ModelID,
    Role:         input.Role,
    Instructions: input.Instructions,
    CreatedAt:    now,
    UpdatedAt:    now,
  }
  if err := mas.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := mas.masterAgentRepo.Create(ctx, tx, []*types.MasterAgent{masterAgent}); cErr != nil {
      return fmt.Errorf("Failed to create master agent: %w", cErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return masterAgent, nil
}

func (mas *masterAgentService) UpdateMasterAgent(ctx context.Context, masterAgentID uuid.UUID, input AgentInput) (*types.MasterAgent, error) {
  masterAgent, err := mas.GetMasterAgentChecked(ctx, masterAgentID, true)
  if err != nil {
    return nil, err
  }
  if vErr := validateAgentInput(&input); vErr != nil {
    return nil, vErr
  }
  models, mErr := mas.agentModelRepo.GetByIDs(ctx, nil, []uuid.UUID{input.ModelID})
  if mErr != nil {
    return nil, fmt.Errorf("Failed to fetch agent model: %w", mErr)
  }
  if len(models) == 0 {
    return nil, apierr.Validation("Model is not recognized.")
  }
  if err := mas.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return mas.masterAgentRepo.UpdateFields(ctx, tx, masterAgentID, map[string]interface{}{
      "name":         input.Name,
      "description":  input.Description,
      "model_id":     input.ModelID,
      "role":         input.Role,
      "instructions": input.Instructions,
      "updated_at":   time.Now(),
    })
  }); err != nil {
    return nil, fmt.Errorf("Failed to update master agent: %w", err)
  }
  masterAgent.Name = input.Name
  masterAgent.Description = input.Description
  masterAgent.ModelID = input.ModelID
  masterAgent.Role = input.Role
  masterAgent.Instructions = input.Instructions
  return masterAgent, nil
}

func (mas *masterAgentService) DeleteMasterAgent(ctx context.Context, masterAgentID uuid.UUID) error {
  if _, err := mas.GetMasterAgentChecked(ctx, masterAgentID, true); err != nil {
    return err
  }
  // Tethered agents are pure pointers, so they go down with the master.
  return mas.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := mas.tetheredAgentRepo.DeleteByMasterAgentID(ctx, tx, masterAgentID); err != nil {
      return fmt.Errorf("Failed to delete tethered agents: %w", err)
    }
    if err := mas.masterAgentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{masterAgentID}); err != nil {
      return fmt.Errorf("Failed to delete master agent: %w", err)
    }
    return nil
  })
}

func (mas *masterAgentService) GetAgentModels(ctx context.Context) ([]*types.AgentModel, error) {
  models, err := mas.agentModelRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch agent models: %w", err)
  }
  return models, nil
}
