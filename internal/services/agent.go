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

type AgentInput struct {
  Name           string
  Description    string
  ModelID        uuid.UUID
  Role           string
  Instructions   string
}

type AgentService interface {
  GetAgents(ctx context.Context) ([]*types.Agent, []*types.TetheredAgentView, error)
  CreateAgent(ctx context.Context, input AgentInput) (*types.Agent, error)
  GetAgentChecked(ctx context.Context, agentID uuid.UUID) (*types.Agent, error)
  UpdateAgent(ctx context.Context, agentID uuid.UUID, input AgentInput) (*types.Agent, error)
  DeleteAgent(ctx context.Context, agentID uuid.UUID) error
  CreateTetheredAgent(ctx context.Context, masterAgentID uuid.UUID) (*types.TetheredAgent, error)
  DeleteTetheredAgent(ctx context.Context, tetheredAgentID uuid.UUID) error
}

type agentService struct {
  db                *gorm.DB
  log               *logger.Logger
  agentRepo         repos.AgentRepo
  tetheredAgentRepo repos.TetheredAgentRepo
  masterAgentRepo   repos.MasterAgentRepo
  agentModelRepo    repos.AgentModelRepo
}

func NewAgentService(
  db *gorm.DB,
  log *logger.Logger,
  agentRepo repos.AgentRepo,
  tetheredAgentRepo repos.TetheredAgentRepo,
  masterAgentRepo repos.MasterAgentRepo,
  agentModelRepo repos.AgentModelRepo,
) AgentService {
  serviceLog := log.With("service", "AgentService")
  return &agentService{
    db:                db,
    log:               serviceLog,
    agentRepo:         agentRepo,
    tetheredAgentRepo: tetheredAgentRepo,
    masterAgentRepo:   masterAgentRepo,
    agentModelRepo:    agentModelRepo,
  }
}

func validateAgentInput(input *AgentInput) error {
  input.Name = normalization.ParseInputString(input.Name)
  input.Description = normalization.ParseInputString(input.Description)
  input.Role = normalization.ParseInputString(input.Role)
  input.Instructions = normalization.ParseInputString(input.Instructions)
  if input.Name == "" {
    return apierr.Validation("Name is required.")
  }
  if input.ModelID == uuid.Nil {
    return apierr.Validation("Model is required.")
  }
  if input.Role == "" {
    return apierr.Validation("Role is required.")
  }
  if input.Instructions == "" {
    return apierr.Validation("Instructions are required.")
  }
  return nil
}

func (as *agentService) checkModel(ctx context.Context, modelID uuid.UUID) error {
  models, err := as.agentModelRepo.GetByIDs(ctx, nil, []uuid.UUID{modelID})
  if err != nil {
    return fmt.Errorf("Failed to fetch agent model: %w", err)
  }
  if len(models) == 0 {
    return apierr.Validation("Model is not recognized.")
  }
  return nil
}

func (as *agentService) GetAgents(ctx context.Context) ([]*types.Agent, []*types.TetheredAgentView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, nil, apierr.Unauthorized("No request data found in context")
  }
  agents, err := as.agentRepo.GetByCreatorIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, nil, fmt.Errorf("Failed to fetch agents: %w", err)
  }
  tethered, tErr := as.tetheredAgentRepo.GetViewsByCreatorID(ctx, nil, rd.UserID)
  if tErr != nil {
    return nil, nil, fmt.Errorf("Failed to fetch tethered agents: %w", tErr)
  }
  return agents, tethered, nil
}

func (as *agentService) CreateAgent(ctx context.Context, input AgentInput) (*types.Agent, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  if vErr := validateAgentInput(&input); vErr != nil {
    return nil, vErr
  }
  if mErr := as.checkModel(ctx, input.ModelID); mErr != nil {
    return nil, mErr
  }
  now := time.Now()
  agent := &types.Agent{
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
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := as.agentRepo.Create(ctx, tx, []*types.Agent{agent}); cErr != nil {
      return fmt.Errorf("Failed to create agent: %w", cErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return agent, nil
}

func (as *agentService) GetAgentChecked(ctx context.Context, agentID uuid.UUID) (*types.Agent, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  agents, err := as.agentRepo.GetByIDs(ctx, nil, []uuid.UUID{agentID})
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch agent: %w", err)
  }
  if len(agents) == 0 {
    return nil, apierr.NotFound("Agent")
  }
  agent := agents[0]
  if agent.CreatorID != rd.UserID {
    return nil, apierr.Forbidden("Agent belongs to another user")
  }
  return agent, nil
}

func (as *agentService) UpdateAgent(ctx context.Context, agentID uuid.UUID, input AgentInput) (*types.Agent, error) {
  agent, err := as.GetAgentChecked(ctx, agentID)
  if err != nil {
    return nil, err
  }
  if vErr := validateAgentInput(&input); vErr != nil {
    return nil, vErr
  }
  if mErr := as.checkModel(ctx, input.ModelID); mErr != nil {
    return nil, mErr
  }
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return as.agentRepo.UpdateFields(ctx, tx, agentID, map[string]interface{}{
      "name":         input.Name,
      "description":  input.Description,
      "model_id":     input.ModelID,
      "role":         input.Role,
      "instructions": input.Instructions,
      "updated_at":   time.Now(),
    })
  }); err != nil {
    return nil, fmt.Errorf("Failed to update agent: %w", err)
  }
  agent.Name = input.Name
  agent.Description = input.Description
  agent.ModelID = input.ModelID
  agent.Role = input.Role
  agent.Instructions = input.Instructions
  return agent, nil
}

func (as *agentService) DeleteAgent(ctx context.Context, agentID uuid.UUID) error {
  if _, err := as.GetAgentChecked(ctx, agentID); err != nil {
    return err
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return as.agentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{agentID})
  })
}

func (as *agentService) CreateTetheredAgent(ctx context.Context, masterAgentID uuid.UUID) (*types.TetheredAgent, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return nil, apierr.Unauthorized("No request data found in context")
  }
  masterAgents, mErr := as.masterAgentRepo.GetByIDs(ctx, nil, []uuid.UUID{masterAgentID})
  if mErr != nil {
    return nil, fmt.Errorf("Failed to fetch master agent: %w", mErr)
  }
  if len(masterAgents) == 0 {
    return nil, apierr.NotFound("Master agent")
  }
  tetheredAgent := &types.TetheredAgent{
    ID:            uuid.New(),
    CreatorID:     rd.UserID,
    MasterAgentID: masterAgentID,
    CreatedAt:     time.Now(),
  }
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := as.tetheredAgentRepo.Create(ctx, tx, []*types.TetheredAgent{tetheredAgent}); cErr != nil {
      return fmt.Errorf("Failed to create tethered agent: %w", cErr)
    }
    return nil
  }); err != nil {
    return nil, err
  }
  return tetheredAgent, nil
}

func (as *agentService) DeleteTetheredAgent(ctx context.Context, tetheredAgentID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return apierr.Unauthorized("No request data found in context")
  }
  tetheredAgents, err := as.tetheredAgentRepo.GetByIDs(ctx, nil, []uuid.UUID{tetheredAgentID})
  if err != nil {
    return fmt.Errorf("Failed to fetch tethered agent: %w", err)
  }
  if len(tetheredAgents) == 0 {
    return apierr.NotFound("Tethered agent")
  }
  if tetheredAgents[0].CreatorID != rd.UserID {
    return apierr.Forbidden("Tethered agent belongs to another user")
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return as.tetheredAgentRepo.DeleteByIDs(ctx, tx, []uuid.UUID{tetheredAgentID})
  })
}
